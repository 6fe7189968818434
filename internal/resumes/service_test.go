package resumes

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"

	"applyai-backend/internal/normalize"
)

// memStore is an in-memory object store for service tests.
type memStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	saves   int
}

func newMemStore() *memStore {
	return &memStore{objects: make(map[string][]byte)}
}

func (s *memStore) Save(_ context.Context, ownerID, fileName string, r io.Reader) (string, int64, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", 0, "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	key := fmt.Sprintf("%s/%d/%s", ownerID, s.saves, fileName)
	s.objects[key] = data
	return key, int64(len(data)), "application/octet-stream", nil
}

func (s *memStore) Open(_ context.Context, storageKey string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[storageKey]
	if !ok {
		return nil, errors.New("object not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memStore) Delete(_ context.Context, storageKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, storageKey)
	return nil
}

func newTestService() (*Service, *MemoryRepo, *memStore) {
	repo := NewMemoryRepo()
	store := newMemStore()
	return &Service{Repo: repo, Store: store}, repo, store
}

func TestUploadPlainText(t *testing.T) {
	svc, _, store := newTestService()

	resume, err := svc.Upload(context.Background(), "u1", "resume.txt", "text/plain", []byte("Go engineer.\n"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if resume.Name != "resume" {
		t.Errorf("Name = %q, want extension stripped", resume.Name)
	}
	if resume.Content != "Go engineer." {
		t.Errorf("Content = %q, want trimmed text", resume.Content)
	}
	if resume.SourceFormat != normalize.FormatPlainText {
		t.Errorf("SourceFormat = %q", resume.SourceFormat)
	}
	if resume.StorageKey == "" {
		t.Fatal("StorageKey empty, raw bytes not stored")
	}
	if got := store.objects[resume.StorageKey]; string(got) != "Go engineer.\n" {
		t.Errorf("stored bytes = %q, want the original upload", got)
	}
}

func TestUploadReplacePreservesCreatedAt(t *testing.T) {
	svc, _, store := newTestService()
	ctx := context.Background()

	first, err := svc.Upload(ctx, "u1", "cv.txt", "text/plain", []byte("version one"))
	if err != nil {
		t.Fatalf("first Upload: %v", err)
	}
	second, err := svc.Upload(ctx, "u1", "cv.txt", "text/plain", []byte("version two"))
	if err != nil {
		t.Fatalf("second Upload: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("ID changed across replace: %q -> %q", first.ID, second.ID)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("CreatedAt changed across replace: %v -> %v", first.CreatedAt, second.CreatedAt)
	}
	if second.Content != "version two" {
		t.Errorf("Content = %q, want replaced text", second.Content)
	}
	if _, ok := store.objects[first.StorageKey]; ok {
		t.Error("replaced raw object still present")
	}
	if _, ok := store.objects[second.StorageKey]; !ok {
		t.Error("new raw object missing")
	}
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	svc, repo, store := newTestService()

	_, err := svc.Upload(context.Background(), "u1", "photo.png", "image/png", []byte{0x89, 0x50})
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("err = %v, want ErrUnsupportedType", err)
	}
	if out, _ := repo.ListByOwner(context.Background(), "u1"); len(out) != 0 {
		t.Error("row persisted for rejected upload")
	}
	if len(store.objects) != 0 {
		t.Error("object stored for rejected upload")
	}
}

func TestUploadRejectsEmptyDocument(t *testing.T) {
	svc, repo, store := newTestService()

	_, err := svc.Upload(context.Background(), "u1", "blank.txt", "text/plain", []byte("   \n\t "))
	if !errors.Is(err, normalize.ErrEmptyContent) {
		t.Fatalf("err = %v, want normalize.ErrEmptyContent", err)
	}
	if out, _ := repo.ListByOwner(context.Background(), "u1"); len(out) != 0 {
		t.Error("row persisted for empty document")
	}
	if len(store.objects) != 0 {
		t.Error("object stored for empty document")
	}
}

func TestDeleteRemovesRowAndObject(t *testing.T) {
	svc, repo, store := newTestService()
	ctx := context.Background()

	resume, err := svc.Upload(ctx, "u1", "cv.txt", "text/plain", []byte("content"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if err := svc.Delete(ctx, "u1", "cv"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByOwnerAndName(ctx, "u1", "cv"); !errors.Is(err, ErrNotFound) {
		t.Errorf("row still present after delete")
	}
	if _, ok := store.objects[resume.StorageKey]; ok {
		t.Error("raw object still present after delete")
	}

	// Deleting again is a quiet success.
	if err := svc.Delete(ctx, "u1", "cv"); err != nil {
		t.Fatalf("repeat Delete: %v", err)
	}
}

func TestOpenRaw(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Upload(ctx, "u1", "cv.txt", "text/plain", []byte("raw bytes here")); err != nil {
		t.Fatalf("Upload: %v", err)
	}

	rc, resume, err := svc.OpenRaw(ctx, "u1", "cv")
	if err != nil {
		t.Fatalf("OpenRaw: %v", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "raw bytes here" {
		t.Errorf("raw = %q", data)
	}
	if resume.Name != "cv" {
		t.Errorf("resume.Name = %q", resume.Name)
	}

	if _, _, err := svc.OpenRaw(ctx, "u1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing resume: err = %v, want ErrNotFound", err)
	}
}
