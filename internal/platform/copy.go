package platform

import (
	"fmt"
	"io"
	"os"
)

// chmodFile is swapped out in tests.
var chmodFile = Chmod

// CopyFile copies src to dst byte for byte, preserving the permission bits
// of src. dst must not exist: the copy never overwrites, and a partially
// written dst is removed on failure.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", src)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return err
	}

	// OpenFile applies the umask; restore the source bits exactly.
	if err := chmodFile(dst, info.Mode().Perm()); err != nil {
		os.Remove(dst)
		return err
	}
	return nil
}
