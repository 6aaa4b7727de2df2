package utils

import (
	"os"
	"path/filepath"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

func Exists(path string) (isDir bool, exists bool, err error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	return info.IsDir(), true, nil
}

// IsFile reports whether path exists and is not a directory.
func IsFile(path string) bool {
	isDir, exists, err := Exists(path)
	return err == nil && exists && !isDir
}

func CreateDir(path string) error {
	return os.MkdirAll(path, dirPerm)
}

// OutputFile writes data to path, creating missing parent directories.
func OutputFile(path string, data []byte) error {
	if err := CreateDir(filepath.Dir(path)); err != nil {
		return err
	}
	return os.WriteFile(path, data, filePerm)
}
