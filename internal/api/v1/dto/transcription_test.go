package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateTranscriptionRequest_PresenceTracking(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		validate func(*testing.T, UpdateTranscriptionRequest)
	}{
		{
			name:    "empty_payload",
			payload: `{}`,
			validate: func(t *testing.T, req UpdateTranscriptionRequest) {
				assert.True(t, req.IsEmpty())
			},
		},
		{
			name:    "status_only",
			payload: `{"status":"failed"}`,
			validate: func(t *testing.T, req UpdateTranscriptionRequest) {
				assert.False(t, req.IsEmpty())
				assert.True(t, req.Status.Set)
				assert.False(t, req.Status.Null)
				assert.Equal(t, "failed", req.Status.Value)
				assert.False(t, req.AudioFilename.Set)
				assert.False(t, req.Text.Set)
			},
		},
		{
			name:    "explicit_null_is_present",
			payload: `{"text":null}`,
			validate: func(t *testing.T, req UpdateTranscriptionRequest) {
				assert.False(t, req.IsEmpty())
				assert.True(t, req.Text.Set)
				assert.True(t, req.Text.Null)
				assert.Nil(t, req.Text.Ptr())
			},
		},
		{
			name:    "all_fields",
			payload: `{"audio_filename":"b.wav","text":"hello","status":"processing"}`,
			validate: func(t *testing.T, req UpdateTranscriptionRequest) {
				assert.Equal(t, "b.wav", req.AudioFilename.Value)
				assert.Equal(t, "hello", req.Text.Value)
				assert.Equal(t, "processing", req.Status.Value)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req UpdateTranscriptionRequest
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &req))
			tt.validate(t, req)
		})
	}
}

func TestUpdateTranscriptionRequest_ToPatch(t *testing.T) {
	var req UpdateTranscriptionRequest
	require.NoError(t, json.Unmarshal([]byte(`{"status":"failed","text":null}`), &req))

	patch := req.ToPatch()

	assert.False(t, patch.SetAudioFilename)
	assert.True(t, patch.SetStatus)
	require.NotNil(t, patch.Status)
	assert.Equal(t, "failed", *patch.Status)
	assert.True(t, patch.SetText)
	assert.Nil(t, patch.Text)
	assert.False(t, patch.IsEmpty())
}
