package bookfs

import (
	"io"
	"strings"
)

// FileSystemType is an identifier for supported FileSystems
type FileSystemType int

// Identifiers for supported FileSystemTypes
const (
	Local FileSystemType = iota
	S3
)

// FileSystem provides the file backend for statistics runs.
// Input records are read from a file system, and the statistics artifact
// is written back to one.
// This is abstracted to allow remote filesystems like S3 to be supported.
type FileSystem interface {
	// ListFiles returns the regular files directly inside dir whose base
	// name matches pattern (filepath.Match syntax). Subdirectories are not
	// descended into.
	ListFiles(dir, pattern string) ([]FileInfo, error)
	Stat(filePath string) (FileInfo, error)
	OpenReader(filePath string) (io.ReadCloser, error)
	// OpenWriter returns a writer whose contents only become visible at
	// filePath once Close succeeds. See Discard.
	OpenWriter(filePath string) (io.WriteCloser, error)
	Init() error
	Join(elem ...string) string
}

// FileInfo provides information about a file
type FileInfo struct {
	Name  string // file path
	Size  int64  // file size in bytes
	IsDir bool
}

// Discard abandons a writer returned by OpenWriter without publishing
// anything it buffered. Writers that cannot be abandoned are closed.
func Discard(w io.WriteCloser) error {
	if d, ok := w.(interface{ Discard() error }); ok {
		return d.Discard()
	}
	return w.Close()
}

// InitFilesystem intializes a filesystem of the given type
func InitFilesystem(fsType FileSystemType) FileSystem {
	var fs FileSystem
	switch fsType {
	case Local:
		fs = &LocalFileSystem{}
	case S3:
		fs = &S3FileSystem{}
	}

	fs.Init()
	return fs
}

// InferFilesystem initializes a filesystem by inferring its type from
// a file address.
// For example, locations starting with "s3://" will resolve to an S3
// filesystem.
func InferFilesystem(location string) FileSystem {
	if strings.HasPrefix(location, "s3://") {
		return InitFilesystem(S3)
	}
	return InitFilesystem(Local)
}
