package ports

import "context"

// ObjectStore downloads objects from a storage bucket.
type ObjectStore interface {
	Download(ctx context.Context, bucket, object string) ([]byte, error)
}
