package filesystem

import (
	"io"
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo so both implementations share the
// standard metadata type.
type FileInfo = fs.FileInfo

// FileSystemProvider is the read-only view of a source directory.
type FileSystemProvider interface {
	// ReadDir lists the direct children of a directory. Subdirectories are
	// included; callers filter them.
	ReadDir(path string) ([]FileInfo, error)

	// ReadFile reads a whole file.
	ReadFile(path string) ([]byte, error)

	// Open returns a reader over a file's raw bytes.
	Open(path string) (io.ReadCloser, error)

	// Stat returns metadata for a file or directory.
	Stat(path string) (FileInfo, error)
}
