package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"transcription-api/internal/app/model"
	"transcription-api/internal/app/repository"
)

// SQLiteDB implements repository.TranscriptionDAO against SQLite.
type SQLiteDB struct {
	db *sql.DB
}

func NewSQLiteDB(db *sql.DB) *SQLiteDB {
	return &SQLiteDB{db: db}
}

func (sdb *SQLiteDB) Close() error {
	return sdb.db.Close()
}

func (sdb *SQLiteDB) Insert(ctx context.Context, t *model.Transcription) error {
	insertSQL := `INSERT INTO transcriptions (id, audio_filename, text, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := sdb.db.ExecContext(ctx, insertSQL,
		t.ID.String(), t.AudioFilename, nullString(t.Text), t.Status, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return repository.ErrDuplicateID
		}
		return fmt.Errorf("insert transcription: %w", err)
	}
	return nil
}

func (sdb *SQLiteDB) GetByID(ctx context.Context, id uuid.UUID) (*model.Transcription, error) {
	query := `SELECT id, audio_filename, text, status, created_at, updated_at
		FROM transcriptions
		WHERE id = ?`
	return scanTranscription(sdb.db.QueryRowContext(ctx, query, id.String()))
}

func (sdb *SQLiteDB) GetAll(ctx context.Context) ([]model.Transcription, error) {
	query := `SELECT id, audio_filename, text, status, created_at, updated_at
		FROM transcriptions
		ORDER BY created_at DESC`

	rows, err := sdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var transcriptions []model.Transcription
	for rows.Next() {
		t, err := scanTranscriptionRow(rows)
		if err != nil {
			return nil, fmt.Errorf("db scan failed: %w", err)
		}
		transcriptions = append(transcriptions, *t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return transcriptions, nil
}

func (sdb *SQLiteDB) Update(ctx context.Context, id uuid.UUID, patch repository.TranscriptionPatch) (*model.Transcription, error) {
	setClauses := make([]string, 0, 4)
	args := make([]interface{}, 0, 5)

	if patch.SetAudioFilename {
		setClauses = append(setClauses, "audio_filename = ?")
		args = append(args, nullString(patch.AudioFilename))
	}
	if patch.SetText {
		setClauses = append(setClauses, "text = ?")
		args = append(args, nullString(patch.Text))
	}
	if patch.SetStatus {
		setClauses = append(setClauses, "status = ?")
		args = append(args, nullString(patch.Status))
	}

	setClauses = append(setClauses, "updated_at = ?")
	args = append(args, time.Now().UTC())

	args = append(args, id.String())
	updateSQL := fmt.Sprintf("UPDATE transcriptions SET %s WHERE id = ?",
		strings.Join(setClauses, ", "))

	result, err := sdb.db.ExecContext(ctx, updateSQL, args...)
	if err != nil {
		return nil, fmt.Errorf("update transcription: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update transcription: %w", err)
	}
	if affected == 0 {
		return nil, sql.ErrNoRows
	}

	return sdb.GetByID(ctx, id)
}

func (sdb *SQLiteDB) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := sdb.db.ExecContext(ctx, `DELETE FROM transcriptions WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("delete transcription: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete transcription: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTranscription(row *sql.Row) (*model.Transcription, error) {
	return scanTranscriptionRow(row)
}

func scanTranscriptionRow(row rowScanner) (*model.Transcription, error) {
	var (
		t      model.Transcription
		rawID  string
		rawTxt sql.NullString
	)
	if err := row.Scan(&rawID, &t.AudioFilename, &rawTxt, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("invalid transcription id %q: %w", rawID, err)
	}
	t.ID = id
	if rawTxt.Valid {
		t.Text = &rawTxt.String
	}
	return &t, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
