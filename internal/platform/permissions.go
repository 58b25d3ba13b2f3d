package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// windowsExecExts are the extensions Windows runs without an opener.
var windowsExecExts = map[string]bool{
	".exe": true,
	".bat": true,
	".cmd": true,
	".com": true,
}

// Chmod sets file permissions. On Windows this is a no-op because Windows
// does not support Unix-style permission bits.
func Chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}

// IsExecutable reports whether the regular file at path can be run directly.
func IsExecutable(path string, info os.FileInfo) bool {
	if info == nil || !info.Mode().IsRegular() {
		return false
	}
	if runtime.GOOS == "windows" {
		return windowsExecExts[strings.ToLower(filepath.Ext(path))]
	}
	return info.Mode().Perm()&0111 != 0
}
