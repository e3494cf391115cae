package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"transcription-api/internal/config"
)

// AudioArchiveService persists uploaded audio for later retrieval. The CRUD
// flow only ever records the filename; archiving the bytes is an optional
// side effect with the same best-effort policy as event publishing.
type AudioArchiveService interface {
	Store(ctx context.Context, id uuid.UUID, file multipart.File, header *multipart.FileHeader) error
}

// MinioAudioArchive implements AudioArchiveService using MinIO.
type MinioAudioArchive struct {
	client *minio.Client
	bucket string
}

// NewMinioAudioArchive creates an archive backed by the configured bucket.
func NewMinioAudioArchive(cfg config.StorageConfig) (*MinioAudioArchive, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &MinioAudioArchive{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

// Store streams the upload into the bucket under audio/<id>/<filename>.
func (a *MinioAudioArchive) Store(ctx context.Context, id uuid.UUID, file multipart.File, header *multipart.FileHeader) error {
	key := fmt.Sprintf("audio/%s/%s", id, filepath.Base(header.Filename))

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := a.client.PutObject(ctx, a.bucket, key, file, header.Size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	return nil
}
