package analysis

import (
	"context"
	"testing"
	"time"
)

func TestMemoryRepoHistoryOrder(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	base := time.Now().UTC()

	for i, id := range []string{"a1", "a2", "a3"} {
		err := repo.Save(ctx, Result{
			ID:        id,
			OwnerID:   "u1",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	out, err := repo.History(ctx, "u1")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(out) != 3 || out[0].ID != "a3" || out[2].ID != "a1" {
		t.Fatalf("History = %+v, want newest first", out)
	}
}

func TestMemoryRepoHistoryForResume(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	save := func(id string, names ...string) {
		sections := make([]Section, 0, len(names))
		for _, name := range names {
			sections = append(sections, Section{ResumeName: name})
		}
		if err := repo.Save(ctx, Result{ID: id, OwnerID: "u1", Sections: sections, CreatedAt: time.Now().UTC()}); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
	save("a1", "alice")
	save("a2", "alice", "bob")
	save("a3", "bob")

	out, err := repo.HistoryForResume(ctx, "u1", "alice")
	if err != nil {
		t.Fatalf("HistoryForResume: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("HistoryForResume = %d results, want 2", len(out))
	}
	for _, result := range out {
		if result.ID == "a3" {
			t.Error("result without the resume must be excluded")
		}
	}
}

func TestMemoryRepoIsolatesOwners(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	if err := repo.Save(ctx, Result{ID: "a1", OwnerID: "u1", CreatedAt: time.Now().UTC()}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out, err := repo.History(ctx, "u2")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("History for other owner = %+v, want empty", out)
	}
}
