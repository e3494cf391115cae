package model

import (
	"time"

	"github.com/google/uuid"
)

// Transcription statuses. The status column is a free-form label; these are the
// values the service itself writes.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Transcription represents one row in the transcriptions table.
type Transcription struct {
	ID            uuid.UUID
	AudioFilename string
	Text          *string
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
