package pg

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"transcription-api/internal/app/model"
	"transcription-api/internal/app/repository"
)

// PostgresDB implements repository.TranscriptionDAO against Postgres.
type PostgresDB struct {
	db *sql.DB
}

// NewPostgresDB wraps an already-opened connection pool.
func NewPostgresDB(db *sql.DB) *PostgresDB {
	return &PostgresDB{db: db}
}

func (pdb *PostgresDB) Close() error {
	return pdb.db.Close()
}

func (pdb *PostgresDB) Insert(ctx context.Context, t *model.Transcription) error {
	insertSQL := `INSERT INTO transcriptions (id, audio_filename, text, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := pdb.db.ExecContext(ctx, insertSQL,
		t.ID.String(), t.AudioFilename, nullString(t.Text), t.Status, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return repository.ErrDuplicateID
		}
		return fmt.Errorf("insert transcription: %w", err)
	}
	return nil
}

func (pdb *PostgresDB) GetByID(ctx context.Context, id uuid.UUID) (*model.Transcription, error) {
	query := `SELECT id, audio_filename, text, status, created_at, updated_at
		FROM transcriptions
		WHERE id = $1`
	return scanTranscription(pdb.db.QueryRowContext(ctx, query, id.String()))
}

func (pdb *PostgresDB) GetAll(ctx context.Context) ([]model.Transcription, error) {
	query := `SELECT id, audio_filename, text, status, created_at, updated_at
		FROM transcriptions
		ORDER BY created_at DESC`

	rows, err := pdb.db.QueryContext(ctx, query)
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

func (pdb *PostgresDB) Update(ctx context.Context, id uuid.UUID, patch repository.TranscriptionPatch) (*model.Transcription, error) {
	setClauses := make([]string, 0, 4)
	args := make([]interface{}, 0, 5)

	// Only the provided columns make it into the SET clause; values are always
	// bound parameters, never interpolated.
	if patch.SetAudioFilename {
		args = append(args, nullString(patch.AudioFilename))
		setClauses = append(setClauses, fmt.Sprintf("audio_filename = $%d", len(args)))
	}
	if patch.SetText {
		args = append(args, nullString(patch.Text))
		setClauses = append(setClauses, fmt.Sprintf("text = $%d", len(args)))
	}
	if patch.SetStatus {
		args = append(args, nullString(patch.Status))
		setClauses = append(setClauses, fmt.Sprintf("status = $%d", len(args)))
	}

	// updated_at is bumped on every mutation, provided fields or not.
	args = append(args, time.Now().UTC())
	setClauses = append(setClauses, fmt.Sprintf("updated_at = $%d", len(args)))

	args = append(args, id.String())
	updateSQL := fmt.Sprintf("UPDATE transcriptions SET %s WHERE id = $%d",
		strings.Join(setClauses, ", "), len(args))

	result, err := pdb.db.ExecContext(ctx, updateSQL, args...)
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

	return pdb.GetByID(ctx, id)
}

func (pdb *PostgresDB) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := pdb.db.ExecContext(ctx, `DELETE FROM transcriptions WHERE id = $1`, id.String())
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
