package util

import (
	"os"
	"path/filepath"
)

func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

// WriteFile writes b to path, creating the parent directory first.
func WriteFile(path string, b []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := EnsureDir(dir); err != nil {
			return err
		}
	}
	return os.WriteFile(path, b, 0o644)
}
