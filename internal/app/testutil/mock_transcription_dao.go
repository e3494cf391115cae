package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"transcription-api/internal/app/model"
	"transcription-api/internal/app/repository"
)

// MockTranscriptionDAO is a mock implementation of repository.TranscriptionDAO
type MockTranscriptionDAO struct {
	mock.Mock
}

func NewMockTranscriptionDAO(t *testing.T) *MockTranscriptionDAO {
	m := &MockTranscriptionDAO{}
	m.Test(t)
	return m
}

func (m *MockTranscriptionDAO) Insert(ctx context.Context, t *model.Transcription) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTranscriptionDAO) GetByID(ctx context.Context, id uuid.UUID) (*model.Transcription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transcription), args.Error(1)
}

func (m *MockTranscriptionDAO) GetAll(ctx context.Context) ([]model.Transcription, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Transcription), args.Error(1)
}

func (m *MockTranscriptionDAO) Update(ctx context.Context, id uuid.UUID, patch repository.TranscriptionPatch) (*model.Transcription, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transcription), args.Error(1)
}

func (m *MockTranscriptionDAO) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTranscriptionDAO) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockPublisher is a mock implementation of event.Publisher
type MockPublisher struct {
	mock.Mock
}

func NewMockPublisher(t *testing.T) *MockPublisher {
	m := &MockPublisher{}
	m.Test(t)
	return m
}

func (m *MockPublisher) PublishTranscriptionEvent(t *model.Transcription, eventType string) {
	m.Called(t, eventType)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
