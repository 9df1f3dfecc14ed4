package filecheck

import (
	"io"
	"io/fs"
	"os"
)

// FileSystem abstracts file system operations for testability.
type FileSystem interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string, limit int64) ([]byte, error)
}

// RealFileSystem implements FileSystem using the actual file system.
type RealFileSystem struct{}

// Stat returns file info for the given path.
func (r *RealFileSystem) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

// ReadFile reads a file's contents, optionally limited to the first
// `limit` bytes. If limit is 0 or negative, reads the entire file.
func (r *RealFileSystem) ReadFile(name string, limit int64) ([]byte, error) {
	if limit <= 0 {
		return os.ReadFile(name) //nolint:gosec // intentional: paths come from operator config
	}

	f, err := os.Open(name) //nolint:gosec // intentional: paths come from operator config
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return io.ReadAll(io.LimitReader(f, limit))
}
