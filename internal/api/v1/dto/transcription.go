package dto

import (
	"time"

	"github.com/google/uuid"
	"transcription-api/internal/app/model"
	"transcription-api/internal/app/repository"
)

// TranscriptionResponse represents a transcription record in API responses.
type TranscriptionResponse struct {
	ID            uuid.UUID `json:"id"`
	AudioFilename string    `json:"audio_filename"`
	Text          *string   `json:"text"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToTranscriptionResponse converts a model to its response DTO.
func ToTranscriptionResponse(t *model.Transcription) TranscriptionResponse {
	return TranscriptionResponse{
		ID:            t.ID,
		AudioFilename: t.AudioFilename,
		Text:          t.Text,
		Status:        t.Status,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// UpdateTranscriptionRequest is the partial-update payload. Only the three
// mutable columns may appear; anything the caller omits is left untouched.
type UpdateTranscriptionRequest struct {
	AudioFilename Optional[string] `json:"audio_filename"`
	Text          Optional[string] `json:"text"`
	Status        Optional[string] `json:"status"`
}

// IsEmpty reports whether the payload supplied zero fields.
func (r *UpdateTranscriptionRequest) IsEmpty() bool {
	return !r.AudioFilename.Set && !r.Text.Set && !r.Status.Set
}

// ToPatch maps the supplied fields onto a repository patch.
func (r *UpdateTranscriptionRequest) ToPatch() repository.TranscriptionPatch {
	patch := repository.TranscriptionPatch{}
	if r.AudioFilename.Set {
		patch.SetAudioFilename = true
		patch.AudioFilename = r.AudioFilename.Ptr()
	}
	if r.Text.Set {
		patch.SetText = true
		patch.Text = r.Text.Ptr()
	}
	if r.Status.Set {
		patch.SetStatus = true
		patch.Status = r.Status.Ptr()
	}
	return patch
}
