package pkg

import (
	"fmt"
	"os"
	"unsafe"
)

// BytesToString converts bytes slice to a string without extra allocation
func BytesToString(buf []byte) string {
	return *(*string)(unsafe.Pointer(&buf))
}

// EnsureDir creates the directory at path (and its parents) if it doesn't
// exist yet. It fails when path exists but is not a directory.
func EnsureDir(path string) (created bool, err error) {
	stat, err := os.Stat(path)
	switch {
	case err == nil && stat.IsDir():
		return false, nil
	case err == nil:
		return false, fmt.Errorf("%s is not a directory", path)
	case !os.IsNotExist(err):
		return false, err
	}

	if err := os.MkdirAll(path, 0o755); err != nil {
		return false, fmt.Errorf("create dir %s: %w", path, err)
	}
	return true, nil
}
