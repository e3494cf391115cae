package repository

import (
	"context"

	"github.com/google/uuid"
	"transcription-api/internal/app/model"
)

// TranscriptionPatch enumerates the columns a partial update may touch. Each field
// carries its own "was it provided" flag so an omitted field is distinguishable
// from an explicit null.
type TranscriptionPatch struct {
	AudioFilename    *string
	SetAudioFilename bool

	Text    *string
	SetText bool

	Status    *string
	SetStatus bool
}

// IsEmpty reports whether the patch carries no columns at all.
func (p TranscriptionPatch) IsEmpty() bool {
	return !p.SetAudioFilename && !p.SetText && !p.SetStatus
}

// TranscriptionDAO is the persistence contract for transcription records.
// Implementations signal a missing row with sql.ErrNoRows.
type TranscriptionDAO interface {
	// Insert stores a new record. A duplicate primary key surfaces as the
	// driver's unique-violation error.
	Insert(ctx context.Context, t *model.Transcription) error

	// GetByID fetches a single record by primary key.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Transcription, error)

	// GetAll returns every record ordered by created_at descending.
	GetAll(ctx context.Context) ([]model.Transcription, error)

	// Update applies the provided columns plus an unconditional updated_at bump,
	// then returns the refreshed row.
	Update(ctx context.Context, id uuid.UUID, patch TranscriptionPatch) (*model.Transcription, error)

	// Delete removes a record by primary key.
	Delete(ctx context.Context, id uuid.UUID) error

	Close() error
}
