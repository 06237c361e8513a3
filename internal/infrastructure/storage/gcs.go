package storage

import (
	"context"
	"fmt"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/photoshare/photoshare/internal/core/ports"
)

// GCSStore keeps blobs in a Google Cloud Storage bucket. Objects are publicly
// addressable under https://storage.googleapis.com/<bucket>/<name>.
type GCSStore struct {
	client *gcs.Client
	bucket string
}

// NewGCSStore creates the client once at startup; an empty credentialsFile
// falls back to application default credentials.
func NewGCSStore(ctx context.Context, bucket, credentialsFile string) (*GCSStore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gcs client: %w", err)
	}
	return &GCSStore{client: client, bucket: bucket}, nil
}

func (s *GCSStore) Upload(ctx context.Context, data []byte, originalName, contentType string) (string, error) {
	name := newObjectName(originalName)
	w := s.client.Bucket(s.bucket).Object(name).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write blob: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, name), nil
}

func (s *GCSStore) Delete(ctx context.Context, url string) error {
	name := objectNameFromURL(url)
	if name == "" || name == "." {
		return fmt.Errorf("delete blob: no object name in %q", url)
	}
	if err := s.client.Bucket(s.bucket).Object(name).Delete(ctx); err != nil {
		return fmt.Errorf("delete blob: %w", err)
	}
	return nil
}

func (s *GCSStore) Properties(ctx context.Context, url string) (*ports.BlobProperties, error) {
	attrs, err := s.client.Bucket(s.bucket).Object(objectNameFromURL(url)).Attrs(ctx)
	if err != nil {
		return nil, fmt.Errorf("blob attrs: %w", err)
	}
	return &ports.BlobProperties{
		ContentType: attrs.ContentType,
		Size:        attrs.Size,
		UpdatedAt:   attrs.Updated,
	}, nil
}

func (s *GCSStore) Close() error {
	return s.client.Close()
}
