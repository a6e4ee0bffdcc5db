// Package fsxlocal implements fsx.FileSystem on local disk.
package fsxlocal

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/Abraxas-365/relaycrm/pkg/fsx"
)

// LocalFileSystem stores files under a base directory.
type LocalFileSystem struct {
	basePath string
}

// NewLocalFileSystem creates the base directory if needed and returns a local
// file system rooted at it.
func NewLocalFileSystem(basePath string) (*LocalFileSystem, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path: %w", err)
	}
	return &LocalFileSystem{basePath: abs}, nil
}

// GetBasePath returns the resolved root directory.
func (l *LocalFileSystem) GetBasePath() string { return l.basePath }

func (l *LocalFileSystem) fullPath(path string) string {
	cleaned := filepath.Clean("/" + path)
	return filepath.Join(l.basePath, cleaned)
}

func (l *LocalFileSystem) ReadFile(_ context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(l.fullPath(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

func (l *LocalFileSystem) Stat(_ context.Context, path string) (fsx.FileInfo, error) {
	full := l.fullPath(path)
	info, err := os.Stat(full)
	if err != nil {
		if os.IsNotExist(err) {
			return fsx.FileInfo{}, fmt.Errorf("file not found: %s", path)
		}
		return fsx.FileInfo{}, fmt.Errorf("failed to stat file: %w", err)
	}
	return fsx.FileInfo{
		Name:        info.Name(),
		Size:        info.Size(),
		ModTime:     info.ModTime(),
		ContentType: detectContentType(full),
	}, nil
}

func (l *LocalFileSystem) Exists(_ context.Context, path string) (bool, error) {
	_, err := os.Stat(l.fullPath(path))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat file: %w", err)
	}
	return true, nil
}

func (l *LocalFileSystem) WriteFile(_ context.Context, path string, data []byte) error {
	full := l.fullPath(path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func (l *LocalFileSystem) DeleteFile(_ context.Context, path string) error {
	if err := os.Remove(l.fullPath(path)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", path)
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (l *LocalFileSystem) Join(elem ...string) string {
	return strings.Join(elem, "/")
}

func detectContentType(path string) string {
	ct := mime.TypeByExtension(filepath.Ext(path))
	if ct == "" {
		return "application/octet-stream"
	}
	return ct
}
