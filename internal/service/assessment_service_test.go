package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"job_board_backend/internal/model"
	"job_board_backend/internal/util"
	"path/filepath"
	"testing"
)

func sampleRequest(name string) AssessmentRequest {
	return AssessmentRequest{
		Name:         name,
		Description:  "Checks the basics",
		Instructions: "One attempt per day",
		Difficulty:   model.AssessmentEntry,
		Duration:     20,
		Skills:       []string{"go"},
		Questions: []QuestionInput{{
			Title:        "Is Go garbage collected?",
			QuestionType: model.TrueFalse,
			Answers:      []AnswerInput{{AnswerText: "Yes", IsCorrect: true}, {AnswerText: "No"}},
		}},
	}
}

func countFiles(t *testing.T, dir string) int {
	t.Helper()
	n := 0
	err := filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			n++
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk uploads: %v", err)
	}
	return n
}

func TestCreateStampsSlugAndFlags(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	a, err := s.assessments.Create(ctx, sampleRequest("The Basics of Go"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.Slug != "basics.go" {
		t.Fatalf("slug %q", a.Slug)
	}

	got, err := s.assessments.Get(ctx, a.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	q := got.Questions[0]
	if q.Category != "General" || q.Difficulty != model.QuestionMedium {
		t.Fatalf("defaults not applied: %+v", q)
	}
	if !q.Answers[0].IsCorrect || !q.Answers[0].BooleanText || q.Answers[1].BooleanText {
		t.Fatalf("flags not mirrored: %+v", q.Answers)
	}

	view := CandidateView(got)
	if len(view.Questions) != 1 || len(view.Questions[0].Answers) != 2 || view.Questions[0].Answers[0].ID != q.Answers[0].ID {
		t.Fatalf("candidate view: %+v", view)
	}
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	bad := sampleRequest("Bad")
	bad.Questions[0].Answers[1].IsCorrect = true
	if _, err := s.assessments.Create(ctx, bad); !errors.Is(err, model.ErrInvalidQuestion) {
		t.Fatalf("got %v want ErrInvalidQuestion", err)
	}

	tier := sampleRequest("Tier")
	tier.Difficulty = "GURU"
	if _, err := s.assessments.Create(ctx, tier); !errors.Is(err, util.ErrInvalidAssessment) {
		t.Fatalf("got %v want ErrInvalidAssessment", err)
	}

	var n int64
	s.db.Model(&model.Assessment{}).Count(&n)
	if n != 0 {
		t.Fatalf("%d assessments written by rejected requests", n)
	}
}

func TestUpdateReplacesQuestionByID(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	a, err := s.assessments.Create(ctx, sampleRequest("Update Me"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	req := sampleRequest("Update Me")
	req.Questions[0].ID = a.Questions[0].ID
	req.Questions[0].Answers = []AnswerInput{{AnswerText: "Yes"}, {AnswerText: "No", IsCorrect: true}}
	req.Questions = append(req.Questions, QuestionInput{
		Title:        "Pick the keywords",
		QuestionType: model.MultipleChoice,
		Answers:      []AnswerInput{{AnswerText: "go", IsCorrect: true}, {AnswerText: "run"}, {AnswerText: "defer", IsCorrect: true}},
	})

	got, err := s.assessments.Update(ctx, a.ID, req)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(got.Questions) != 2 || got.Questions[0].ID != a.Questions[0].ID {
		t.Fatalf("questions after update: %+v", got.Questions)
	}
	if got.Questions[0].Answers[0].IsCorrect || !got.Questions[0].Answers[1].IsCorrect {
		t.Fatalf("answers not replaced: %+v", got.Questions[0].Answers)
	}
}

func TestAddQuestionNeedsAssessment(t *testing.T) {
	s := newTestServices(t)
	in := sampleRequest("x").Questions[0]
	if _, err := s.assessments.AddQuestion(context.Background(), "missing", in); !errors.Is(err, util.ErrAssessmentNotFound) {
		t.Fatalf("got %v want ErrAssessmentNotFound", err)
	}
}

func TestImportSheetAllOrNothing(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	a, err := s.assessments.Create(ctx, sampleRequest("Imports"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	rows := make([]string, 10)
	for i := range rows {
		rows[i] = fmt.Sprintf("Question %d,one,two,three,four,B,", i+1)
	}
	rows[6] = "Question 7,one,two,three,four,Z,"

	_, err = s.assessments.ImportSheet(ctx, a.ID, SheetUpload{Filename: "bad.csv", ContentType: util.MimeCSV, Content: sheet(rows...)})
	var ie *ImportError
	if !errors.As(err, &ie) || ie.Row != 7 {
		t.Fatalf("got %v want row 7 import error", err)
	}

	got, _ := s.assessments.Get(ctx, a.ID)
	if len(got.Questions) != 1 {
		t.Fatalf("rejected sheet changed question count to %d", len(got.Questions))
	}
	if n := countFiles(t, s.uploads); n != 0 {
		t.Fatalf("rejected sheet was stored (%d files)", n)
	}
}

func TestImportSheetAppendsAndRecordsFile(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	a, err := s.assessments.Create(ctx, sampleRequest("Imports OK"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	raw := sheet(
		"Capital of France?,Paris,London,,,A,",
		"Pick the fruits,Apple,Brick,Cherry,Drill,E,AC",
		"Go is compiled,TRUE,FALSE,,,A,",
	)
	summary, err := s.assessments.ImportSheet(ctx, a.ID, SheetUpload{
		Filename:    "Sheet.CSV",
		ContentType: util.MimeCSV,
		Content:     raw,
		OwnerID:     "recruiter-1",
		Tags:        []string{"imported"},
	})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if summary.Imported != 3 || summary.File.Type != model.FileAssessmentSheet || filepath.Ext(summary.File.Key) != ".csv" {
		t.Fatalf("summary: %+v", summary)
	}

	got, _ := s.assessments.Get(ctx, a.ID)
	if len(got.Questions) != 4 {
		t.Fatalf("questions after import: %d", len(got.Questions))
	}
	types := []model.QuestionType{model.TrueFalse, model.SingleChoice, model.MultipleChoice, model.TrueFalse}
	for i, q := range got.Questions {
		if q.QuestionType != types[i] || q.Position != i {
			t.Fatalf("question %d: type %s position %d", i, q.QuestionType, q.Position)
		}
	}

	var files []model.File
	s.db.Find(&files)
	if len(files) != 1 || files[0].OwnerID != "recruiter-1" {
		t.Fatalf("file rows: %+v", files)
	}
	if n := countFiles(t, s.uploads); n != 1 {
		t.Fatalf("stored files: %d", n)
	}
}

func TestImportSheetGuards(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	if _, err := s.assessments.ImportSheet(ctx, "missing", SheetUpload{Filename: "a.csv", Content: sheet("Q,a,b,,,A,")}); !errors.Is(err, util.ErrAssessmentNotFound) {
		t.Fatalf("got %v want ErrAssessmentNotFound", err)
	}

	a, err := s.assessments.Create(ctx, sampleRequest("Guards"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	s.assessments.Importer.MaxBytes = 10
	if _, err := s.assessments.ImportSheet(ctx, a.ID, SheetUpload{Filename: "a.csv", Content: sheet("Q,a,b,,,A,")}); !errors.Is(err, util.ErrSheetTooLarge) {
		t.Fatalf("got %v want ErrSheetTooLarge", err)
	}
}
