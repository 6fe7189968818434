package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"applyai-backend/internal/llm"
	"applyai-backend/internal/resumes"
	"applyai-backend/internal/shared/telemetry"
)

// Service runs the resume-to-job pipeline: load resumes, assemble the
// prompt, call the model, parse the reply, persist the result.
type Service struct {
	Repo    Repo
	Resumes resumes.Repo
	LLM     llm.Client
}

func NewService(repo Repo, resumeRepo resumes.Repo, client llm.Client) *Service {
	return &Service{Repo: repo, Resumes: resumeRepo, LLM: client}
}

// Analyze evaluates the owner's resumes against a job posting. An empty
// resumeNames selects all stored resumes. A generation failure aborts the
// attempt without persisting anything; the user retries explicitly.
func (s *Service) Analyze(ctx context.Context, ownerID string, job JobInput, resumeNames []string) (Result, error) {
	if strings.TrimSpace(job.Text) == "" {
		return Result{}, ErrInsufficientInput
	}

	items, err := s.loadResumes(ctx, ownerID, resumeNames)
	if err != nil {
		return Result{}, err
	}
	if len(items) == 0 {
		return Result{}, ErrInsufficientInput
	}

	prompt, err := AssemblePrompt(job, items)
	if err != nil {
		return Result{}, err
	}

	raw, err := s.LLM.Complete(ctx, llm.Request{System: SystemPrompt, Prompt: prompt})
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	result := Result{
		ID:              uuid.NewString(),
		OwnerID:         ownerID,
		JobText:         job.Text,
		CustomQuestions: job.CustomQuestions,
		RawResponse:     raw,
		Sections:        ParseResponse(raw),
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.Repo.Save(ctx, result); err != nil {
		return Result{}, fmt.Errorf("save analysis: %w", err)
	}

	telemetry.Info("analysis.completed", map[string]any{
		"owner_id":    ownerID,
		"analysis_id": result.ID,
		"resumes":     len(items),
		"sections":    len(result.Sections),
	})
	return result, nil
}

// loadResumes resolves the request's resume selection. Names are resolved in
// the order given so prompt and reply ordering match the request.
func (s *Service) loadResumes(ctx context.Context, ownerID string, names []string) ([]resumes.Resume, error) {
	if len(names) == 0 {
		items, err := s.Resumes.ListByOwner(ctx, ownerID)
		if err != nil {
			return nil, fmt.Errorf("list resumes: %w", err)
		}
		return items, nil
	}

	items := make([]resumes.Resume, 0, len(names))
	for _, name := range names {
		resume, err := s.Resumes.GetByOwnerAndName(ctx, ownerID, name)
		if err != nil {
			return nil, err
		}
		items = append(items, resume)
	}
	return items, nil
}

// History lists the owner's past analyses, newest first.
func (s *Service) History(ctx context.Context, ownerID string) ([]Result, error) {
	return s.Repo.History(ctx, ownerID)
}

// HistoryForResume lists past analyses that evaluated the named resume.
// Deleted resumes keep their history, so no existence check is made here.
func (s *Service) HistoryForResume(ctx context.Context, ownerID, resumeName string) ([]Result, error) {
	return s.Repo.HistoryForResume(ctx, ownerID, resumeName)
}
