package supabase

import (
	"context"
	"fmt"

	storage_go "github.com/supabase-community/storage-go"
)

// ObjectStore wraps the Supabase storage client behind the ports.ObjectStore
// interface so the catalog can be tested without a live project.
type ObjectStore struct {
	client *storage_go.Client
}

// NewObjectStore creates a storage client for the project.
func NewObjectStore(projectURL, serviceRoleKey string) *ObjectStore {
	return &ObjectStore{
		client: storage_go.NewClient(projectURL, serviceRoleKey, nil),
	}
}

// Download fetches an object from the bucket.
func (s *ObjectStore) Download(_ context.Context, bucket, object string) ([]byte, error) {
	data, err := s.client.DownloadFile(bucket, object)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s/%s: %w", bucket, object, err)
	}
	return data, nil
}
