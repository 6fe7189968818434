package analysis

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// PGRepo stores analysis results in Postgres. Sections are kept as a JSONB
// document alongside the raw reply.
type PGRepo struct {
	DB *sql.DB
}

func NewPGRepo(db *sql.DB) *PGRepo {
	return &PGRepo{DB: db}
}

func (r *PGRepo) Save(ctx context.Context, result Result) error {
	sections, err := json.Marshal(result.Sections)
	if err != nil {
		return fmt.Errorf("marshal sections: %w", err)
	}

	const q = `
		INSERT INTO analyses (id, owner_id, job_text, custom_questions, raw_response, sections, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = r.DB.ExecContext(ctx, q,
		result.ID, result.OwnerID, result.JobText, result.CustomQuestions,
		result.RawResponse, sections, result.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}
	return nil
}

func (r *PGRepo) History(ctx context.Context, ownerID string) ([]Result, error) {
	const q = `
		SELECT id, owner_id, job_text, custom_questions, raw_response, sections, created_at
		FROM analyses
		WHERE owner_id = $1
		ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}
	defer rows.Close()

	return collectResults(rows)
}

func (r *PGRepo) HistoryForResume(ctx context.Context, ownerID, resumeName string) ([]Result, error) {
	const q = `
		SELECT id, owner_id, job_text, custom_questions, raw_response, sections, created_at
		FROM analyses
		WHERE owner_id = $1
		  AND EXISTS (
			SELECT 1 FROM jsonb_array_elements(sections) AS section
			WHERE section->>'resumeName' = $2
		  )
		ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, q, ownerID, resumeName)
	if err != nil {
		return nil, fmt.Errorf("query analyses for resume: %w", err)
	}
	defer rows.Close()

	return collectResults(rows)
}

func collectResults(rows *sql.Rows) ([]Result, error) {
	out := make([]Result, 0)
	for rows.Next() {
		var result Result
		var sections []byte
		if err := rows.Scan(
			&result.ID, &result.OwnerID, &result.JobText, &result.CustomQuestions,
			&result.RawResponse, &sections, &result.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		if err := json.Unmarshal(sections, &result.Sections); err != nil {
			return nil, fmt.Errorf("unmarshal sections: %w", err)
		}
		out = append(out, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate analyses: %w", err)
	}
	return out, nil
}
