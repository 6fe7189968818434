package analysis

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is the in-memory fallback used when no database is configured.
type MemoryRepo struct {
	mu      sync.RWMutex
	byOwner map[string][]Result
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byOwner: make(map[string][]Result)}
}

func (r *MemoryRepo) Save(_ context.Context, result Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byOwner[result.OwnerID] = append(r.byOwner[result.OwnerID], result)
	return nil
}

func (r *MemoryRepo) History(_ context.Context, ownerID string) ([]Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedCopy(r.byOwner[ownerID], nil), nil
}

func (r *MemoryRepo) HistoryForResume(_ context.Context, ownerID, resumeName string) ([]Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedCopy(r.byOwner[ownerID], func(result Result) bool {
		for _, section := range result.Sections {
			if section.ResumeName == resumeName {
				return true
			}
		}
		return false
	}), nil
}

func sortedCopy(items []Result, keep func(Result) bool) []Result {
	out := make([]Result, 0, len(items))
	for _, result := range items {
		if keep == nil || keep(result) {
			out = append(out, result)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
