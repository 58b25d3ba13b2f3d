package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// HardLink creates link as a second directory entry for target. Both must
// live on the same volume; callers fall back to CopyFile when this fails.
func HardLink(target, link string) error {
	return os.Link(target, link)
}

// IsSymlink reports whether info describes a symbolic link.
func IsSymlink(info os.FileInfo) bool {
	return info != nil && info.Mode()&os.ModeSymlink != 0
}

// ReadSymlinkTarget resolves a symlink exactly one level. Relative targets
// are resolved against the directory containing the link.
func ReadSymlinkTarget(path string) (string, error) {
	target, err := os.Readlink(path)
	if err != nil {
		return "", fmt.Errorf("reading symlink %s: %w", path, err)
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(path), target)
	}
	return filepath.Clean(target), nil
}

// SameFile reports whether a and b name the same underlying file (inode
// identity on Unix, file index on Windows).
func SameFile(a, b string) (bool, error) {
	ai, err := os.Stat(a)
	if err != nil {
		return false, err
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false, err
	}
	return os.SameFile(ai, bi), nil
}
