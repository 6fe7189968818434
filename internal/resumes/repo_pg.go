package resumes

import (
	"context"
	"database/sql"
	"errors"

	"applyai-backend/internal/normalize"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Upsert inserts a resume or overwrites the existing (owner, name) row.
// The conflict path preserves id and created_at.
func (r *PGRepo) Upsert(ctx context.Context, resume Resume) error {
	const query = `
INSERT INTO resumes (id, owner_id, name, content, source_format, storage_key, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (owner_id, name) DO UPDATE SET
    content = EXCLUDED.content,
    source_format = EXCLUDED.source_format,
    storage_key = EXCLUDED.storage_key,
    updated_at = EXCLUDED.updated_at`

	var storageKey sql.NullString
	if resume.StorageKey != "" {
		storageKey = sql.NullString{String: resume.StorageKey, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		resume.ID,
		resume.OwnerID,
		resume.Name,
		resume.Content,
		string(resume.SourceFormat),
		storageKey,
		resume.CreatedAt,
		resume.UpdatedAt,
	)
	return err
}

// ListByOwner returns an owner's resumes, most recently touched first.
func (r *PGRepo) ListByOwner(ctx context.Context, ownerID string) ([]Resume, error) {
	const query = `
SELECT id, owner_id, name, content, source_format, storage_key, created_at, updated_at
FROM resumes
WHERE owner_id = $1
ORDER BY updated_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Resume
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	return out, rows.Err()
}

// GetByOwnerAndName returns the resume with the given natural key.
func (r *PGRepo) GetByOwnerAndName(ctx context.Context, ownerID, name string) (Resume, error) {
	const query = `
SELECT id, owner_id, name, content, source_format, storage_key, created_at, updated_at
FROM resumes
WHERE owner_id = $1 AND name = $2
LIMIT 1`

	row := r.DB.QueryRowContext(ctx, query, ownerID, name)
	resume, err := scanResume(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return resume, nil
}

// Delete removes a resume. Deleting a missing row is a no-op success.
func (r *PGRepo) Delete(ctx context.Context, ownerID, name string) error {
	const query = `DELETE FROM resumes WHERE owner_id = $1 AND name = $2`
	_, err := r.DB.ExecContext(ctx, query, ownerID, name)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var resume Resume
	var sourceFormat string
	var storageKey sql.NullString
	if err := row.Scan(
		&resume.ID,
		&resume.OwnerID,
		&resume.Name,
		&resume.Content,
		&sourceFormat,
		&storageKey,
		&resume.CreatedAt,
		&resume.UpdatedAt,
	); err != nil {
		return Resume{}, err
	}
	resume.SourceFormat = normalize.Format(sourceFormat)
	if storageKey.Valid {
		resume.StorageKey = storageKey.String
	}
	return resume, nil
}

var _ Repo = (*PGRepo)(nil)
