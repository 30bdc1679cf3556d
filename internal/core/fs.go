package core

import (
	"io/fs"
	"os"
)

// FileSystem is the read-only slice of the filesystem the resolvers need.
type FileSystem interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
}

// RealFS is a real filesystem implementation using os package
type RealFS struct{}

func (f *RealFS) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }
func (f *RealFS) ReadFile(name string) ([]byte, error)  { return os.ReadFile(name) }
