package filesystem

import (
	"io"
	"io/fs"
	"os"
)

// OSFileSystem reads tracked files using the operating system primitives.
type OSFileSystem struct{}

// Stat retrieves file metadata.
func (OSFileSystem) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// ReadFile reads file contents.
func (OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Open opens a file for sequential reading.
func (OSFileSystem) Open(path string) (io.ReadCloser, error) {
	file, openError := os.Open(path)
	if openError != nil {
		return nil, openError
	}
	return file, nil
}
