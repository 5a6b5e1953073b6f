package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioUploader is the upstream image host.
type MinioUploader struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

func NewMinioUploader(endpoint, accessKey, secretKey, bucket, publicURL string, useSSL bool) (*MinioUploader, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	if publicURL == "" {
		scheme := "http"
		if useSSL {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s", scheme, endpoint)
	}

	return &MinioUploader{client: client, bucket: bucket, publicURL: publicURL}, nil
}

func (m *MinioUploader) Upload(ctx context.Context, fileName string, contentType string, data []byte) (string, string, error) {
	now := time.Now()
	objectName := fmt.Sprintf("listings/%d/%02d/%s%s",
		now.Year(), now.Month(), uuid.New().String(), extensionFor(fileName, contentType))

	_, err := m.client.PutObject(ctx, m.bucket, objectName, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": fileName,
			},
		})
	if err != nil {
		return "", "", fmt.Errorf("minio upload: %w", err)
	}

	url := fmt.Sprintf("%s/%s/%s", m.publicURL, m.bucket, objectName)
	return url, objectName, nil
}
