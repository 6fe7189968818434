package analysis

import "errors"

var (
	// ErrInsufficientInput means the analysis was requested without a job
	// posting or without any resume. The calling layer should have blocked
	// the action earlier; this is the defensive check.
	ErrInsufficientInput = errors.New("job text and at least one resume are required")

	// ErrGenerationFailed wraps any generation-service failure. The attempt
	// is fatal: no partial result is persisted.
	ErrGenerationFailed = errors.New("generation service failed")

	ErrNotFound = errors.New("not found")
)
