package userdata

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gameshelf-labs/gameshelf/internal/platform"
)

// CheckRegistryDir reports on the registry directory: existence, that it is
// a writable directory, and how many entry objects it holds. When fix is
// true, a missing directory is created.
func CheckRegistryDir(w io.Writer, dir string, fix bool) error {
	fmt.Fprintln(w, "Registry check:")

	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		fmt.Fprintf(w, "  [MISS] %s does not exist\n", dir)
		if !fix {
			fmt.Fprintln(w, "         It is created on the first registration, or run 'gameshelf doctor --fix'")
			return nil
		}
		if mkErr := os.MkdirAll(dir, DirPermNormal); mkErr != nil {
			fmt.Fprintf(w, "  [FAIL] Could not create %s: %v\n", dir, mkErr)
			return fmt.Errorf("creating registry directory: %w", mkErr)
		}
		fmt.Fprintf(w, "  [FIX ] Created %s\n", dir)
		return nil
	}
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", dir, err)
		return err
	}
	if !info.IsDir() {
		fmt.Fprintf(w, "  [FAIL] %s is not a directory\n", dir)
		return fmt.Errorf("%s is not a directory", dir)
	}
	fmt.Fprintf(w, "  [ OK ] %s exists\n", dir)

	if err := checkWritable(dir); err != nil {
		fmt.Fprintf(w, "  [FAIL] %s is not writable: %v\n", dir, err)
	} else {
		fmt.Fprintf(w, "  [ OK ] %s is writable\n", dir)
	}

	checkObjects(w, dir)
	return nil
}

func checkWritable(dir string) error {
	f, err := os.CreateTemp(dir, ".doctor-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}

// checkObjects counts stored objects and flags dangling symlinks.
func checkObjects(w io.Writer, dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] reading %s: %v\n", dir, err)
		return
	}

	count := 0
	for _, e := range entries {
		if e.IsDir() {
			fmt.Fprintf(w, "  [WARN] %s is a directory and will be ignored\n", e.Name())
			continue
		}
		count++

		if e.Type()&os.ModeSymlink == 0 {
			continue
		}
		path := filepath.Join(dir, e.Name())
		target, err := platform.ReadSymlinkTarget(path)
		if err != nil {
			fmt.Fprintf(w, "  [WARN] %s: %v\n", e.Name(), err)
			continue
		}
		if _, err := os.Stat(target); os.IsNotExist(err) {
			fmt.Fprintf(w, "  [WARN] %s -> %s (target does not exist)\n", e.Name(), target)
		}
	}
	fmt.Fprintf(w, "  [ OK ] %d stored entr%s\n", count, pluralY(count))
}

func pluralY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
