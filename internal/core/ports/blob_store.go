package ports

import (
	"context"
	"time"
)

// BlobProperties is the metadata reported for a stored object.
type BlobProperties struct {
	ContentType string
	Size        int64
	UpdatedAt   time.Time
}

// BlobStore abstracts the object store holding uploaded images. Implementations
// assign a globally unique object name on upload and return the public URL;
// Delete and Properties derive the object name from the URL suffix.
type BlobStore interface {
	Upload(ctx context.Context, data []byte, originalName, contentType string) (string, error)
	Delete(ctx context.Context, url string) error
	Properties(ctx context.Context, url string) (*BlobProperties, error)
}

// BlobCleaner schedules best-effort blob deletions off the request path.
// Exactly one deletion attempt is made per scheduled URL; failures are
// logged, never retried, and never surfaced to the caller.
type BlobCleaner interface {
	Schedule(url string)
}
