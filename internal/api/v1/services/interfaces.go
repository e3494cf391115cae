package services

import (
	"context"
	"mime/multipart"

	"github.com/google/uuid"
	"transcription-api/internal/api/v1/dto"
)

// TranscriptionService defines the business operations behind the CRUD surface.
type TranscriptionService interface {
	ListTranscriptions(ctx context.Context) ([]dto.TranscriptionResponse, error)
	GetTranscription(ctx context.Context, id uuid.UUID) (*dto.TranscriptionResponse, error)
	CreateTranscription(ctx context.Context, id uuid.UUID, file multipart.File, header *multipart.FileHeader) (*dto.TranscriptionResponse, error)
	UpdateTranscription(ctx context.Context, id uuid.UUID, req *dto.UpdateTranscriptionRequest) (*dto.TranscriptionResponse, error)
	DeleteTranscription(ctx context.Context, id uuid.UUID) error
}
