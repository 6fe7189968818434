package resumes

import "context"

// Repo defines persistence operations for resumes.
//
// Upsert is keyed by (owner, name): an existing row keeps its ID and
// CreatedAt, everything else is overwritten. Each call is atomic with
// respect to concurrent readers for the same owner.
type Repo interface {
	Upsert(ctx context.Context, resume Resume) error
	ListByOwner(ctx context.Context, ownerID string) ([]Resume, error)
	GetByOwnerAndName(ctx context.Context, ownerID, name string) (Resume, error)
	Delete(ctx context.Context, ownerID, name string) error
}
