package analysis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoSave(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	result := Result{
		ID:          "a1",
		OwnerID:     "u1",
		JobText:     "job",
		RawResponse: "raw",
		Sections:    []Section{{ResumeName: "cv", MatchScore: 80}},
		CreatedAt:   time.Now().UTC(),
	}
	sections, _ := json.Marshal(result.Sections)

	mock.ExpectExec("INSERT INTO analyses").
		WithArgs(result.ID, result.OwnerID, result.JobText, result.CustomQuestions,
			result.RawResponse, sections, result.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewPGRepo(db)
	if err := repo.Save(context.Background(), result); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestPGRepoHistory(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Now().UTC()
	sections, _ := json.Marshal([]Section{{ResumeName: "cv", MatchScore: 75}})
	rows := sqlmock.NewRows([]string{
		"id", "owner_id", "job_text", "custom_questions", "raw_response", "sections", "created_at",
	}).AddRow("a2", "u1", "newer job", "", "raw2", sections, now).
		AddRow("a1", "u1", "older job", "", "raw1", sections, now.Add(-time.Hour))

	mock.ExpectQuery("SELECT (.+) FROM analyses").
		WithArgs("u1").
		WillReturnRows(rows)

	repo := NewPGRepo(db)
	out, err := repo.History(context.Background(), "u1")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(out) != 2 || out[0].ID != "a2" {
		t.Fatalf("History = %+v, want two results newest first", out)
	}
	if out[0].Sections[0].MatchScore != 75 {
		t.Errorf("sections not decoded: %+v", out[0].Sections)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestPGRepoHistoryForResume(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	sections, _ := json.Marshal([]Section{{ResumeName: "alice"}})
	rows := sqlmock.NewRows([]string{
		"id", "owner_id", "job_text", "custom_questions", "raw_response", "sections", "created_at",
	}).AddRow("a1", "u1", "job", "", "raw", sections, time.Now().UTC())

	mock.ExpectQuery("SELECT (.+) FROM analyses").
		WithArgs("u1", "alice").
		WillReturnRows(rows)

	repo := NewPGRepo(db)
	out, err := repo.HistoryForResume(context.Background(), "u1", "alice")
	if err != nil {
		t.Fatalf("HistoryForResume: %v", err)
	}
	if len(out) != 1 || out[0].Sections[0].ResumeName != "alice" {
		t.Fatalf("HistoryForResume = %+v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
