package resumes

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryRepoUpsertPreservesIdentity(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	first := Resume{ID: "id-1", OwnerID: "u1", Name: "cv", Content: "v1", CreatedAt: created, UpdatedAt: created}
	if err := repo.Upsert(ctx, first); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	second := first
	second.ID = "id-2"
	second.Content = "v2"
	second.CreatedAt = created.Add(time.Hour)
	second.UpdatedAt = created.Add(time.Hour)
	if err := repo.Upsert(ctx, second); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	got, err := repo.GetByOwnerAndName(ctx, "u1", "cv")
	if err != nil {
		t.Fatalf("GetByOwnerAndName: %v", err)
	}
	if got.ID != "id-1" || !got.CreatedAt.Equal(created) {
		t.Errorf("identity not preserved: ID=%q CreatedAt=%v", got.ID, got.CreatedAt)
	}
	if got.Content != "v2" || !got.UpdatedAt.Equal(second.UpdatedAt) {
		t.Errorf("content not replaced: %+v", got)
	}
}

func TestMemoryRepoListOrder(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	base := time.Now().UTC()

	for i, name := range []string{"old", "mid", "new"} {
		ts := base.Add(time.Duration(i) * time.Minute)
		err := repo.Upsert(ctx, Resume{ID: name, OwnerID: "u1", Name: name, CreatedAt: ts, UpdatedAt: ts})
		if err != nil {
			t.Fatalf("Upsert: %v", err)
		}
	}

	out, err := repo.ListByOwner(ctx, "u1")
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(out) != 3 || out[0].Name != "new" || out[2].Name != "old" {
		t.Fatalf("ListByOwner = %+v, want most recently touched first", out)
	}
}

func TestMemoryRepoGetMissing(t *testing.T) {
	repo := NewMemoryRepo()

	_, err := repo.GetByOwnerAndName(context.Background(), "u1", "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestMemoryRepoDeleteIdempotent(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	if err := repo.Delete(ctx, "u1", "never-existed"); err != nil {
		t.Fatalf("Delete missing: %v", err)
	}

	if err := repo.Upsert(ctx, Resume{ID: "r1", OwnerID: "u1", Name: "cv"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := repo.Delete(ctx, "u1", "cv"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, "u1", "cv"); err != nil {
		t.Fatalf("Delete again: %v", err)
	}
	if _, err := repo.GetByOwnerAndName(ctx, "u1", "cv"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound after delete", err)
	}
}

func TestMemoryRepoIsolatesOwners(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	if err := repo.Upsert(ctx, Resume{ID: "r1", OwnerID: "u1", Name: "cv"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	out, err := repo.ListByOwner(ctx, "u2")
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("other owner sees %d resumes, want 0", len(out))
	}
}
