package supabase

import (
	"context"
	"io"
	"mime"
	"path/filepath"
	"time"

	storage_go "github.com/supabase-community/storage-go"
	supa "github.com/supabase-community/supabase-go"

	"mathclasses-backend/internal/repository"
)

// FileStore serves blobs from a Supabase storage bucket.
type FileStore struct {
	client *supa.Client
	bucket string
}

// NewFileStore creates a file store against the given bucket.
func NewFileStore(client *supa.Client, bucket string) *FileStore {
	return &FileStore{client: client, bucket: bucket}
}

func (s *FileStore) Upload(ctx context.Context, path string, data io.Reader) error {
	var opts []storage_go.FileOptions
	// Stored with the right MIME type so signed-URL downloads open in the
	// browser instead of forcing a save dialog.
	if contentType := mime.TypeByExtension(filepath.Ext(path)); contentType != "" {
		opts = append(opts, storage_go.FileOptions{ContentType: &contentType})
	}

	_, err := s.client.Storage.UploadFile(s.bucket, path, data, opts...)
	if err != nil {
		return repository.Unavailable("upload blob", err)
	}
	return nil
}

func (s *FileStore) Remove(ctx context.Context, path string) error {
	_, err := s.client.Storage.RemoveFile(s.bucket, []string{path})
	if err != nil {
		return repository.Unavailable("remove blob", err)
	}
	return nil
}

func (s *FileStore) SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error) {
	resp, err := s.client.Storage.CreateSignedUrl(s.bucket, path, int(ttl.Seconds()))
	if err != nil {
		return "", repository.Unavailable("create signed url", err)
	}
	return resp.SignedURL, nil
}
