package resumes

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"applyai-backend/internal/normalize"
	"applyai-backend/internal/shared/storage/object"
	"applyai-backend/internal/shared/telemetry"
)

// Service contains business logic for resumes.
type Service struct {
	Repo  Repo
	Store object.ObjectStore
}

// Upload normalizes the file, stores the raw bytes, and upserts the resume
// under the filename without its extension. Unrecognized declared types are
// rejected before normalization; nothing is persisted on any failure.
func (s *Service) Upload(ctx context.Context, ownerID, fileName, declaredType string, data []byte) (Resume, error) {
	if strings.TrimSpace(fileName) == "" {
		return Resume{}, ErrInvalidInput
	}

	format, ok := normalize.FormatFromMime(declaredType)
	if !ok {
		return Resume{}, ErrUnsupportedType
	}

	text, err := normalize.Normalize(normalize.Upload{
		Name:         fileName,
		DeclaredType: declaredType,
		Data:         data,
	})
	if err != nil {
		return Resume{}, err
	}

	name := resumeName(fileName)

	var previousKey string
	if existing, err := s.Repo.GetByOwnerAndName(ctx, ownerID, name); err == nil {
		previousKey = existing.StorageKey
	} else if !errors.Is(err, ErrNotFound) {
		return Resume{}, err
	}

	storageKey, _, _, err := s.Store.Save(ctx, ownerID, fileName, bytes.NewReader(data))
	if err != nil {
		return Resume{}, err
	}

	now := time.Now().UTC()
	resume := Resume{
		ID:           uuid.NewString(),
		OwnerID:      ownerID,
		Name:         name,
		Content:      text,
		SourceFormat: format,
		StorageKey:   storageKey,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Repo.Upsert(ctx, resume); err != nil {
		return Resume{}, err
	}

	// The replaced raw object is unreachable once the row points elsewhere.
	if previousKey != "" && previousKey != storageKey {
		if err := s.Store.Delete(ctx, previousKey); err != nil {
			telemetry.Warn("resumes.stale_object_delete_failed", map[string]any{
				"owner_id":    ownerID,
				"storage_key": previousKey,
				"error":       err.Error(),
			})
		}
	}

	return s.Repo.GetByOwnerAndName(ctx, ownerID, name)
}

// List returns the owner's resumes, most recently touched first.
func (s *Service) List(ctx context.Context, ownerID string) ([]Resume, error) {
	if ownerID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByOwner(ctx, ownerID)
}

// Get returns one resume by its natural key.
func (s *Service) Get(ctx context.Context, ownerID, name string) (Resume, error) {
	if ownerID == "" || name == "" {
		return Resume{}, ErrInvalidInput
	}
	return s.Repo.GetByOwnerAndName(ctx, ownerID, name)
}

// Delete removes a resume and its raw object. Deletion is idempotent; past
// analyses referencing the resume are untouched.
func (s *Service) Delete(ctx context.Context, ownerID, name string) error {
	if ownerID == "" || name == "" {
		return ErrInvalidInput
	}

	existing, err := s.Repo.GetByOwnerAndName(ctx, ownerID, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}

	if err := s.Repo.Delete(ctx, ownerID, name); err != nil {
		return err
	}

	if existing.StorageKey != "" {
		if err := s.Store.Delete(ctx, existing.StorageKey); err != nil {
			telemetry.Warn("resumes.raw_object_delete_failed", map[string]any{
				"owner_id":    ownerID,
				"storage_key": existing.StorageKey,
				"error":       err.Error(),
			})
		}
	}
	return nil
}

// OpenRaw returns the original uploaded bytes for re-display or download.
func (s *Service) OpenRaw(ctx context.Context, ownerID, name string) (io.ReadCloser, Resume, error) {
	resume, err := s.Repo.GetByOwnerAndName(ctx, ownerID, name)
	if err != nil {
		return nil, Resume{}, err
	}
	if resume.StorageKey == "" {
		return nil, Resume{}, ErrNotFound
	}
	rc, err := s.Store.Open(ctx, resume.StorageKey)
	if err != nil {
		return nil, Resume{}, err
	}
	return rc, resume, nil
}

// resumeName strips the file extension; "resume.v2.pdf" becomes "resume.v2".
func resumeName(fileName string) string {
	base := strings.TrimSpace(fileName)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
