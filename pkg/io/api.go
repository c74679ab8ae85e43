package io

import (
	"io/fs"
)

// FileIO is the read-only view of the filesystem used when looking for episodes on disk
type FileIO interface {
	ReadDir(dir string) ([]fs.DirEntry, error)
	Stat(target string) (fs.FileInfo, error)
	DirExists(path string) bool
}
