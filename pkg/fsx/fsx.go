// Package fsx abstracts attachment storage behind a small file system
// interface with local-disk and S3 implementations.
package fsx

import (
	"context"
	"time"
)

// FileInfo describes a stored file.
type FileInfo struct {
	Name        string
	Size        int64
	ModTime     time.Time
	ContentType string
}

// FileReader provides read operations.
type FileReader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	Stat(ctx context.Context, path string) (FileInfo, error)
	Exists(ctx context.Context, path string) (bool, error)
}

// FileWriter provides write operations.
type FileWriter interface {
	WriteFile(ctx context.Context, path string, data []byte) error
}

// FileDeleter provides deletion operations.
type FileDeleter interface {
	DeleteFile(ctx context.Context, path string) error
}

// PathOperations provides path manipulation.
type PathOperations interface {
	Join(elem ...string) string
}

// FileSystem combines all file operations.
type FileSystem interface {
	FileReader
	FileWriter
	FileDeleter
	PathOperations
}
