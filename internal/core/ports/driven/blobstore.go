package driven

import "context"

// BlobStore stores opaque payloads by key.
type BlobStore interface {
	// Put stores data under key, replacing any existing payload.
	Put(ctx context.Context, key string, data []byte, contentType string) error

	// Get retrieves the payload stored under key.
	// Returns domain.ErrNotFound if nothing is stored there.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes the payload. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
