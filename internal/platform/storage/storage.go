package storage

import (
	"context"
	"io"
)

// ObjectStore is the image host consumed by the upload and admin flows.
// Upload failures surface to the uploader; delete failures are the caller's
// choice to swallow (account cleanup is best-effort).
type ObjectStore interface {
	// Upload stores an object under key and returns its public URL together
	// with the object identifier used for later deletion.
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) (url string, publicID string, err error)

	// Delete removes a previously uploaded object by its identifier.
	Delete(ctx context.Context, publicID string) error
}

// Config holds object store configuration.
type Config struct {
	Endpoint  string // R2 endpoint: https://<account_id>.r2.cloudflarestorage.com
	AccessKey string
	SecretKey string
	Bucket    string
	BaseURL   string // Public URL base for uploaded objects
}
