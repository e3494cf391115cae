package pg

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"transcription-api/internal/app/model"
	"transcription-api/internal/app/repository"
)

// TestPostgresDB_Interface verifies PostgresDB implements TranscriptionDAO
func TestPostgresDB_Interface(t *testing.T) {
	var _ repository.TranscriptionDAO = (*PostgresDB)(nil)
}

func newMockDB(t *testing.T) (*PostgresDB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresDB(db), mock
}

func sampleRecord() *model.Transcription {
	text := "(Mock transcription of a.wav)"
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	return &model.Transcription{
		ID:            uuid.MustParse("11111111-2222-4333-8444-555555555555"),
		AudioFilename: "a.wav",
		Text:          &text,
		Status:        model.StatusCompleted,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func recordRows(records ...*model.Transcription) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "audio_filename", "text", "status", "created_at", "updated_at"})
	for _, r := range records {
		var text interface{}
		if r.Text != nil {
			text = *r.Text
		}
		rows.AddRow(r.ID.String(), r.AudioFilename, text, r.Status, r.CreatedAt, r.UpdatedAt)
	}
	return rows
}

func TestPostgresDB_Insert(t *testing.T) {
	pdb, mock := newMockDB(t)
	record := sampleRecord()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO transcriptions (id, audio_filename, text, status, created_at, updated_at)")).
		WithArgs(record.ID.String(), "a.wav", *record.Text, "completed", record.CreatedAt, record.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := pdb.Insert(context.Background(), record)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDB_Insert_DuplicateID(t *testing.T) {
	pdb, mock := newMockDB(t)
	record := sampleRecord()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO transcriptions")).
		WillReturnError(&pq.Error{Code: "23505"})

	err := pdb.Insert(context.Background(), record)
	assert.ErrorIs(t, err, repository.ErrDuplicateID)
}

func TestPostgresDB_GetByID(t *testing.T) {
	pdb, mock := newMockDB(t)
	record := sampleRecord()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, audio_filename, text, status, created_at, updated_at")).
		WithArgs(record.ID.String()).
		WillReturnRows(recordRows(record))

	got, err := pdb.GetByID(context.Background(), record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.ID, got.ID)
	assert.Equal(t, "a.wav", got.AudioFilename)
	require.NotNil(t, got.Text)
	assert.Equal(t, *record.Text, *got.Text)
	assert.Equal(t, "completed", got.Status)
}

func TestPostgresDB_GetByID_NotFound(t *testing.T) {
	pdb, mock := newMockDB(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, audio_filename, text, status, created_at, updated_at")).
		WithArgs(id.String()).
		WillReturnError(sql.ErrNoRows)

	_, err := pdb.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestPostgresDB_GetAll_OrdersByCreatedAtDesc(t *testing.T) {
	pdb, mock := newMockDB(t)
	first := sampleRecord()
	second := sampleRecord()
	second.ID = uuid.New()
	second.CreatedAt = first.CreatedAt.Add(time.Hour)
	second.UpdatedAt = second.CreatedAt

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC")).
		WillReturnRows(recordRows(second, first))

	got, err := pdb.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, second.ID, got[0].ID)
	assert.Equal(t, first.ID, got[1].ID)
}

func TestPostgresDB_GetAll_Empty(t *testing.T) {
	pdb, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC")).
		WillReturnRows(recordRows())

	got, err := pdb.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPostgresDB_Update_StatusOnly(t *testing.T) {
	pdb, mock := newMockDB(t)
	record := sampleRecord()
	record.Status = model.StatusFailed

	// Only the provided column plus updated_at appear in the SET clause.
	status := "failed"
	mock.ExpectExec(regexp.QuoteMeta("UPDATE transcriptions SET status = $1, updated_at = $2 WHERE id = $3")).
		WithArgs("failed", sqlmock.AnyArg(), record.ID.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, audio_filename, text, status, created_at, updated_at")).
		WithArgs(record.ID.String()).
		WillReturnRows(recordRows(record))

	got, err := pdb.Update(context.Background(), record.ID, repository.TranscriptionPatch{
		Status:    &status,
		SetStatus: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "failed", got.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDB_Update_AllFields(t *testing.T) {
	pdb, mock := newMockDB(t)
	record := sampleRecord()

	filename := "b.wav"
	status := "processing"
	mock.ExpectExec(regexp.QuoteMeta("UPDATE transcriptions SET audio_filename = $1, text = $2, status = $3, updated_at = $4 WHERE id = $5")).
		WithArgs("b.wav", nil, "processing", sqlmock.AnyArg(), record.ID.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, audio_filename, text, status, created_at, updated_at")).
		WithArgs(record.ID.String()).
		WillReturnRows(recordRows(record))

	// Explicit null for text writes NULL.
	_, err := pdb.Update(context.Background(), record.ID, repository.TranscriptionPatch{
		AudioFilename:    &filename,
		SetAudioFilename: true,
		Text:             nil,
		SetText:          true,
		Status:           &status,
		SetStatus:        true,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDB_Update_NotFound(t *testing.T) {
	pdb, mock := newMockDB(t)
	id := uuid.New()
	status := "failed"

	mock.ExpectExec(regexp.QuoteMeta("UPDATE transcriptions SET")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := pdb.Update(context.Background(), id, repository.TranscriptionPatch{
		Status:    &status,
		SetStatus: true,
	})
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestPostgresDB_Delete(t *testing.T) {
	pdb, mock := newMockDB(t)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM transcriptions WHERE id = $1")).
		WithArgs(id.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, pdb.Delete(context.Background(), id))
}

func TestPostgresDB_Delete_NotFound(t *testing.T) {
	pdb, mock := newMockDB(t)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM transcriptions WHERE id = $1")).
		WithArgs(id.String()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, pdb.Delete(context.Background(), id), sql.ErrNoRows)
}

func TestPostgresDB_Close(t *testing.T) {
	pdb, mock := newMockDB(t)
	mock.ExpectClose()
	assert.NoError(t, pdb.Close())
}
