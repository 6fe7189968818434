package resumes

import (
	"time"

	"applyai-backend/internal/normalize"
)

// Resume is a normalized resume document owned by a user. The natural key is
// (OwnerID, Name); re-uploading the same name overwrites. Raw uploaded bytes
// live in the object store under StorageKey.
type Resume struct {
	ID           string
	OwnerID      string
	Name         string
	Content      string
	SourceFormat normalize.Format
	StorageKey   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
