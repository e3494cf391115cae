package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	apierrors "transcription-api/internal/api/errors"
	"transcription-api/internal/api/v1/dto"
	"transcription-api/internal/app/event"
	"transcription-api/internal/app/model"
	"transcription-api/internal/app/repository"
)

// TranscriptionServiceImpl implements TranscriptionService.
type TranscriptionServiceImpl struct {
	dao       repository.TranscriptionDAO
	publisher event.Publisher
	archive   AudioArchiveService
	logger    *slog.Logger
}

// NewTranscriptionService creates a new transcription service. archive may be
// nil when the audio archive is disabled.
func NewTranscriptionService(
	dao repository.TranscriptionDAO,
	publisher event.Publisher,
	archive AudioArchiveService,
	logger *slog.Logger,
) TranscriptionService {
	return &TranscriptionServiceImpl{
		dao:       dao,
		publisher: publisher,
		archive:   archive,
		logger:    logger,
	}
}

// ListTranscriptions returns every record, newest first.
func (s *TranscriptionServiceImpl) ListTranscriptions(ctx context.Context) ([]dto.TranscriptionResponse, error) {
	records, err := s.dao.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.TranscriptionResponse, 0, len(records))
	for i := range records {
		responses = append(responses, dto.ToTranscriptionResponse(&records[i]))
	}
	return responses, nil
}

// GetTranscription retrieves a single record by id.
func (s *TranscriptionServiceImpl) GetTranscription(ctx context.Context, id uuid.UUID) (*dto.TranscriptionResponse, error) {
	record, err := s.dao.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apierrors.NewNotFoundError("Transcription")
		}
		return nil, err
	}

	resp := dto.ToTranscriptionResponse(record)
	return &resp, nil
}

// CreateTranscription stores a new record for the uploaded file. The
// transcription result is a synchronous placeholder; no speech-to-text runs
// here.
func (s *TranscriptionServiceImpl) CreateTranscription(ctx context.Context, id uuid.UUID, file multipart.File, header *multipart.FileHeader) (*dto.TranscriptionResponse, error) {
	filename := header.Filename
	text := fmt.Sprintf("(Mock transcription of %s)", filename)
	now := time.Now().UTC()

	record := &model.Transcription{
		ID:            id,
		AudioFilename: filename,
		Text:          &text,
		Status:        model.StatusCompleted,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.dao.Insert(ctx, record); err != nil {
		if errors.Is(err, repository.ErrDuplicateID) {
			return nil, apierrors.NewConflictError("Transcription with this ID already exists")
		}
		return nil, err
	}

	// Both side effects are best effort: failures are logged and never reach
	// the HTTP caller.
	if s.archive != nil {
		if err := s.archive.Store(ctx, id, file, header); err != nil {
			s.logger.Warn("audio archive failed", "id", id, "filename", filename, "error", err)
		}
	}
	s.publisher.PublishTranscriptionEvent(record, event.EventTranscriptionCreated)

	resp := dto.ToTranscriptionResponse(record)
	return &resp, nil
}

// UpdateTranscription applies a partial update and returns the refreshed row.
func (s *TranscriptionServiceImpl) UpdateTranscription(ctx context.Context, id uuid.UUID, req *dto.UpdateTranscriptionRequest) (*dto.TranscriptionResponse, error) {
	if req.IsEmpty() {
		return nil, apierrors.NewBadRequestError("No fields provided to update")
	}

	record, err := s.dao.Update(ctx, id, req.ToPatch())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apierrors.NewNotFoundError("Transcription")
		}
		return nil, err
	}

	resp := dto.ToTranscriptionResponse(record)
	return &resp, nil
}

// DeleteTranscription removes a record permanently.
func (s *TranscriptionServiceImpl) DeleteTranscription(ctx context.Context, id uuid.UUID) error {
	if err := s.dao.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apierrors.NewNotFoundError("Transcription")
		}
		return err
	}
	return nil
}
