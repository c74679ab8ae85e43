package io

import (
	"io/fs"
	"os"
)

var _ FileIO = (*MediaFileSystem)(nil)

// MediaFileSystem is the default implementation of file io using the os package
type MediaFileSystem struct{}

// ReadDir is a wrapper around os.ReadDir
func (o *MediaFileSystem) ReadDir(dir string) ([]fs.DirEntry, error) {
	return os.ReadDir(dir)
}

// Stat is a wrapper around os.Stat
func (o *MediaFileSystem) Stat(target string) (fs.FileInfo, error) {
	return os.Stat(target)
}

// DirExists reports whether path exists and is a directory
func (o *MediaFileSystem) DirExists(path string) bool {
	info, err := o.Stat(path)
	if err != nil {
		return false
	}

	return info.IsDir()
}
