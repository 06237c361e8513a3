package storage

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/photoshare/photoshare/internal/core/ports"
)

// LocalStore keeps blobs on the local filesystem, served from a static route.
// Used in development and tests; production uses GCSStore.
type LocalStore struct {
	basePath string
	baseURL  string
}

func NewLocalStore(basePath, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &LocalStore{basePath: basePath, baseURL: baseURL}, nil
}

func (s *LocalStore) Upload(_ context.Context, data []byte, originalName, _ string) (string, error) {
	name := newObjectName(originalName)
	if err := os.WriteFile(filepath.Join(s.basePath, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}
	return s.baseURL + "/" + name, nil
}

func (s *LocalStore) Delete(_ context.Context, url string) error {
	name := objectNameFromURL(url)
	if name == "" || name == "." {
		return fmt.Errorf("delete blob: no object name in %q", url)
	}
	if err := os.Remove(filepath.Join(s.basePath, name)); err != nil {
		return fmt.Errorf("delete blob: %w", err)
	}
	return nil
}

func (s *LocalStore) Properties(_ context.Context, url string) (*ports.BlobProperties, error) {
	name := objectNameFromURL(url)
	info, err := os.Stat(filepath.Join(s.basePath, name))
	if err != nil {
		return nil, fmt.Errorf("stat blob: %w", err)
	}
	return &ports.BlobProperties{
		ContentType: mime.TypeByExtension(filepath.Ext(name)),
		Size:        info.Size(),
		UpdatedAt:   info.ModTime(),
	}, nil
}
