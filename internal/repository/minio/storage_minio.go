package minio

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/sajhahub/sajha-hub-backend/internal/repository/ports"
)

func NewClient(endpoint, key, secret string, useSSL bool) (*minio.Client, error) {
	return minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(key, secret, ""),
		Secure: useSSL,
	})
}

// Storage uploads listing and blog images and returns the public URL they
// are served from.
type Storage struct {
	client        *minio.Client
	publicBaseURL string
}

var _ ports.ObjectStorage = (*Storage)(nil)

func NewStorage(client *minio.Client, publicBaseURL string) *Storage {
	return &Storage{client: client, publicBaseURL: publicBaseURL}
}

func (s *Storage) Upload(ctx context.Context, bucket, objectName, contentType string, reader io.Reader, size int64) (string, error) {
	_, err := s.client.PutObject(ctx, bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload object %q: %w", objectName, err)
	}
	return fmt.Sprintf("%s/%s/%s", s.publicBaseURL, bucket, objectName), nil
}
