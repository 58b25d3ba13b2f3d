package platform

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestCopyFile(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "site.url")
	content := []byte("[InternetShortcut]\r\nURL=https://example.com/\r\n")
	if err := os.WriteFile(src, content, 0640); err != nil {
		t.Fatal(err)
	}

	dst := filepath.Join(tmp, "copy.url")
	if err := CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile failed: %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(content) {
		t.Errorf("copy content = %q, want %q", got, content)
	}

	if runtime.GOOS != "windows" {
		info, _ := os.Stat(dst)
		if perm := info.Mode().Perm(); perm != 0640 {
			t.Errorf("copy permissions = %o, want %o", perm, 0640)
		}
	}

	same, err := SameFile(src, dst)
	if err != nil {
		t.Fatal(err)
	}
	if same {
		t.Error("a copy must not share identity with its source")
	}
}

func TestCopyFileNeverOverwrites(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "src")
	dst := filepath.Join(tmp, "dst")
	if err := os.WriteFile(src, []byte("new"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dst, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := CopyFile(src, dst); err == nil {
		t.Fatal("expected error copying onto an existing file")
	}
	got, _ := os.ReadFile(dst)
	if string(got) != "old" {
		t.Errorf("existing file was modified: %q", got)
	}
}

func TestCopyFileRejectsDirectory(t *testing.T) {
	tmp := t.TempDir()
	dst := filepath.Join(tmp, "out")
	if err := CopyFile(tmp, dst); err == nil {
		t.Fatal("expected error copying a directory")
	}
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Error("destination should not exist after a failed copy")
	}
}

func TestCopyFileReportsChmodFailure(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "src")
	dst := filepath.Join(tmp, "dst")
	if err := os.WriteFile(src, []byte("data"), 0755); err != nil {
		t.Fatal(err)
	}

	denied := errors.New("operation not permitted")
	orig := chmodFile
	chmodFile = func(string, os.FileMode) error { return denied }
	t.Cleanup(func() { chmodFile = orig })

	if err := CopyFile(src, dst); !errors.Is(err, denied) {
		t.Fatalf("CopyFile error = %v, want %v", err, denied)
	}
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Error("destination should be removed when permissions cannot be restored")
	}
}
