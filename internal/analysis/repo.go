package analysis

import "context"

// Repo persists analysis results. History is append-only: results are saved
// once and listed, never updated or removed.
type Repo interface {
	Save(ctx context.Context, result Result) error
	History(ctx context.Context, ownerID string) ([]Result, error)

	// HistoryForResume lists the owner's results whose sections include the
	// named resume, newest first.
	HistoryForResume(ctx context.Context, ownerID, resumeName string) ([]Result, error)
}
