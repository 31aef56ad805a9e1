// Package local stores verification photos on the local filesystem.
package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type DiskStore struct {
	basePath string
}

func New(basePath string) (*DiskStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	return &DiskStore{basePath: basePath}, nil
}

func (s *DiskStore) Save(ctx context.Context, key string, data []byte) error {
	path, err := s.safeJoin(key)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	return nil
}

func (s *DiskStore) Open(ctx context.Context, key string) ([]byte, error) {
	path, err := s.safeJoin(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image not found")
		}
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	return data, nil
}

func (s *DiskStore) Delete(ctx context.Context, key string) error {
	path, err := s.safeJoin(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("image not found")
		}
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

// BasePath is the directory served statically for image downloads.
func (s *DiskStore) BasePath() string {
	return s.basePath
}

// safeJoin resolves key relative to basePath and rejects directory traversal.
// Keys are server-generated, but never trust a path component anyway.
func (s *DiskStore) safeJoin(key string) (string, error) {
	absBase, err := filepath.Abs(s.basePath)
	if err != nil {
		return "", fmt.Errorf("invalid base path: %w", err)
	}

	absPath, err := filepath.Abs(filepath.Join(s.basePath, key))
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal attempt")
	}
	return absPath, nil
}
