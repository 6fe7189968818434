package resumes

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo, safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]map[string]Resume // ownerID -> name -> resume
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]map[string]Resume),
	}
}

// Upsert stores the resume, preserving ID and CreatedAt for an existing name.
func (r *MemoryRepo) Upsert(ctx context.Context, resume Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	byName, ok := r.data[resume.OwnerID]
	if !ok {
		byName = make(map[string]Resume)
		r.data[resume.OwnerID] = byName
	}
	if existing, ok := byName[resume.Name]; ok {
		resume.ID = existing.ID
		resume.CreatedAt = existing.CreatedAt
	}
	byName[resume.Name] = resume
	return nil
}

// ListByOwner returns an owner's resumes, most recently touched first.
func (r *MemoryRepo) ListByOwner(ctx context.Context, ownerID string) ([]Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	byName := r.data[ownerID]
	out := make([]Resume, 0, len(byName))
	for _, resume := range byName {
		out = append(out, resume)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// GetByOwnerAndName returns the resume with the given natural key.
func (r *MemoryRepo) GetByOwnerAndName(ctx context.Context, ownerID, name string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	resume, ok := r.data[ownerID][name]
	if !ok {
		return Resume{}, ErrNotFound
	}
	return resume, nil
}

// Delete removes a resume. Deleting a missing name is a no-op success.
func (r *MemoryRepo) Delete(ctx context.Context, ownerID, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.data[ownerID], name)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
