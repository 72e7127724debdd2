package repository

import (
	"context"
	"errors"
	"job_board_backend/internal/model"
	"job_board_backend/internal/util"
	"job_board_backend/pkg/database"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func choiceQuestion(title string, options ...string) model.Question {
	q := model.Question{
		Title:        title,
		QuestionType: model.SingleChoice,
		Difficulty:   model.QuestionMedium,
		Category:     "General",
	}
	for i, text := range options {
		q.Answers = append(q.Answers, model.Answer{AnswerText: text, IsCorrect: i == 0, BooleanText: i == 0})
	}
	return q
}

func newAssessment(name string, questions ...model.Question) *model.Assessment {
	return &model.Assessment{
		Name:         name,
		Description:  "desc",
		Instructions: "answer everything",
		Difficulty:   model.AssessmentJunior,
		Duration:     30,
		Questions:    questions,
	}
}

func countRows(t *testing.T, db *gorm.DB, m interface{}, where string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	if err := db.Model(m).Where(where, args...).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestCreateAggregateWritesTreeInOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewAssessmentRepository(db, nil)
	ctx := context.Background()

	a := newAssessment("Go Basics",
		choiceQuestion("q1", "a", "b"),
		choiceQuestion("q2", "a", "b", "c"),
		choiceQuestion("q3", "a", "b", "c", "d"),
	)
	if err := repo.CreateAggregate(ctx, a); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.FindAggregate(ctx, a.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(got.Questions) != 3 {
		t.Fatalf("questions: got %d want 3", len(got.Questions))
	}
	for i, q := range got.Questions {
		if q.Position != i {
			t.Fatalf("question %d position %d", i, q.Position)
		}
		if len(q.Answers) != i+2 {
			t.Fatalf("question %d answers: got %d want %d", i, len(q.Answers), i+2)
		}
		if q.Answers[0].AnswerText != "a" || !q.Answers[0].IsCorrect {
			t.Fatalf("question %d answer order broken: %+v", i, q.Answers)
		}
	}
}

func TestCreateAggregateRejectsDuplicateName(t *testing.T) {
	db := newTestDB(t)
	repo := NewAssessmentRepository(db, nil)
	ctx := context.Background()

	if err := repo.CreateAggregate(ctx, newAssessment("SQL", choiceQuestion("q", "a", "b"))); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := repo.CreateAggregate(ctx, newAssessment("SQL", choiceQuestion("other", "a", "b")))
	if !errors.Is(err, util.ErrDuplicateName) {
		t.Fatalf("got %v want ErrDuplicateName", err)
	}
	if n := countRows(t, db, &model.Question{}, "title = ?", "other"); n != 0 {
		t.Fatalf("duplicate create leaked %d questions", n)
	}

	// Names are case-sensitive.
	if err := repo.CreateAggregate(ctx, newAssessment("sql", choiceQuestion("q", "a", "b"))); err != nil {
		t.Fatalf("create lower-case name: %v", err)
	}
}

func TestCreateAggregateIsAtomic(t *testing.T) {
	db := newTestDB(t)
	repo := NewAssessmentRepository(db, nil)

	answerInserts := 0
	err := db.Callback().Create().Before("gorm:create").Register("test:fail_third_answers", func(tx *gorm.DB) {
		if tx.Statement.Table == "answers" {
			answerInserts++
			if answerInserts == 3 {
				tx.AddError(errors.New("disk full"))
			}
		}
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}

	a := newAssessment("Atomic",
		choiceQuestion("q1", "a", "b"),
		choiceQuestion("q2", "a", "b"),
		choiceQuestion("q3", "a", "b"),
		choiceQuestion("q4", "a", "b"),
	)
	if err := repo.CreateAggregate(context.Background(), a); err == nil {
		t.Fatalf("expected failure on third answer insert")
	}

	if n := countRows(t, db, &model.Assessment{}, "name = ?", "Atomic"); n != 0 {
		t.Fatalf("assessment visible after rollback")
	}
	if n := countRows(t, db, &model.Question{}, "1 = 1"); n != 0 {
		t.Fatalf("%d questions visible after rollback", n)
	}
	if n := countRows(t, db, &model.Answer{}, "1 = 1"); n != 0 {
		t.Fatalf("%d answers visible after rollback", n)
	}
}

func TestUpdateAggregateDiffsByID(t *testing.T) {
	db := newTestDB(t)
	repo := NewAssessmentRepository(db, nil)
	ctx := context.Background()

	a := newAssessment("Diff",
		choiceQuestion("q1", "a", "b"),
		choiceQuestion("q2", "a", "b"),
		choiceQuestion("q3", "a", "b"),
	)
	if err := repo.CreateAggregate(ctx, a); err != nil {
		t.Fatalf("create: %v", err)
	}
	q1, q2, q3 := a.Questions[0].ID, a.Questions[1].ID, a.Questions[2].ID

	edited := choiceQuestion("q2 edited", "x", "y", "z")
	edited.ID = q2
	added := choiceQuestion("q4", "m", "n")

	update := *a
	update.Questions = nil
	update.Description = "new desc"
	if err := repo.UpdateAggregate(ctx, &update, []model.Question{edited, added}); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.FindAggregate(ctx, a.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Description != "new desc" {
		t.Fatalf("description not updated: %q", got.Description)
	}
	if len(got.Questions) != 2 {
		t.Fatalf("questions: got %d want 2", len(got.Questions))
	}
	if got.Questions[0].ID != q2 || got.Questions[0].Title != "q2 edited" {
		t.Fatalf("first question: %+v", got.Questions[0])
	}
	if len(got.Questions[0].Answers) != 3 || got.Questions[0].Answers[0].AnswerText != "x" {
		t.Fatalf("answers not replaced: %+v", got.Questions[0].Answers)
	}
	if got.Questions[1].Title != "q4" || got.Questions[1].Position != 1 {
		t.Fatalf("added question: %+v", got.Questions[1])
	}
	if n := countRows(t, db, &model.Answer{}, "question_id IN ?", []string{q1, q3}); n != 0 {
		t.Fatalf("%d answers of dropped questions remain", n)
	}
	if n := countRows(t, db, &model.Answer{}, "question_id = ?", q2); n != 3 {
		t.Fatalf("q2 answers: got %d want 3", n)
	}
}

func TestUpdateAggregateRejectsForeignQuestion(t *testing.T) {
	db := newTestDB(t)
	repo := NewAssessmentRepository(db, nil)
	ctx := context.Background()

	a := newAssessment("Mine", choiceQuestion("q1", "a", "b"))
	other := newAssessment("Theirs", choiceQuestion("t1", "a", "b"))
	for _, x := range []*model.Assessment{a, other} {
		if err := repo.CreateAggregate(ctx, x); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	stolen := choiceQuestion("hijack", "a", "b")
	stolen.ID = other.Questions[0].ID
	update := *a
	update.Name = "Renamed"
	err := repo.UpdateAggregate(ctx, &update, []model.Question{stolen})
	if !errors.Is(err, util.ErrForeignQuestion) {
		t.Fatalf("got %v want ErrForeignQuestion", err)
	}

	got, err := repo.FindAggregate(ctx, a.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Name != "Mine" || len(got.Questions) != 1 || got.Questions[0].Title != "q1" {
		t.Fatalf("failed update changed the aggregate: %+v", got)
	}
}

func TestUpdateAggregateKeepsQuestionsWhenNil(t *testing.T) {
	db := newTestDB(t)
	repo := NewAssessmentRepository(db, nil)
	ctx := context.Background()

	a := newAssessment("Keep", choiceQuestion("q1", "a", "b"))
	if err := repo.CreateAggregate(ctx, a); err != nil {
		t.Fatalf("create: %v", err)
	}
	update := *a
	update.Duration = 90
	if err := repo.UpdateAggregate(ctx, &update, nil); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := repo.FindAggregate(ctx, a.ID)
	if got.Duration != 90 || len(got.Questions) != 1 {
		t.Fatalf("got duration %d with %d questions", got.Duration, len(got.Questions))
	}
}

func TestUpdateAggregateRejectsTakenName(t *testing.T) {
	db := newTestDB(t)
	repo := NewAssessmentRepository(db, nil)
	ctx := context.Background()

	a := newAssessment("First")
	b := newAssessment("Second")
	for _, x := range []*model.Assessment{a, b} {
		if err := repo.CreateAggregate(ctx, x); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	update := *b
	update.Name = "First"
	if err := repo.UpdateAggregate(ctx, &update, nil); !errors.Is(err, util.ErrDuplicateName) {
		t.Fatalf("got %v want ErrDuplicateName", err)
	}
}

func TestAppendQuestions(t *testing.T) {
	db := newTestDB(t)
	repo := NewAssessmentRepository(db, nil)
	ctx := context.Background()

	if err := repo.AppendQuestions(ctx, "missing", []model.Question{choiceQuestion("q", "a", "b")}); !errors.Is(err, util.ErrAssessmentNotFound) {
		t.Fatalf("got %v want ErrAssessmentNotFound", err)
	}

	a := newAssessment("Append", choiceQuestion("q1", "a", "b"))
	if err := repo.CreateAggregate(ctx, a); err != nil {
		t.Fatalf("create: %v", err)
	}
	extra := []model.Question{choiceQuestion("q2", "a", "b"), choiceQuestion("q3", "a", "b")}
	if err := repo.AppendQuestions(ctx, a.ID, extra); err != nil {
		t.Fatalf("append: %v", err)
	}
	if extra[0].ID == "" || extra[1].Position != 2 {
		t.Fatalf("appended questions not stamped: %+v", extra)
	}

	got, _ := repo.FindAggregate(ctx, a.ID)
	if len(got.Questions) != 3 || got.Questions[0].Title != "q1" || got.Questions[2].Title != "q3" {
		t.Fatalf("unexpected order after append: %+v", got.Questions)
	}
}

func TestDeleteQuestionAndAggregate(t *testing.T) {
	db := newTestDB(t)
	repo := NewAssessmentRepository(db, nil)
	ctx := context.Background()

	a := newAssessment("Delete", choiceQuestion("q1", "a", "b"), choiceQuestion("q2", "a", "b"))
	if err := repo.CreateAggregate(ctx, a); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.DeleteQuestion(ctx, a.ID, "nope"); !errors.Is(err, util.ErrQuestionNotFound) {
		t.Fatalf("got %v want ErrQuestionNotFound", err)
	}
	if err := repo.DeleteQuestion(ctx, a.ID, a.Questions[0].ID); err != nil {
		t.Fatalf("delete question: %v", err)
	}
	if n := countRows(t, db, &model.Answer{}, "question_id = ?", a.Questions[0].ID); n != 0 {
		t.Fatalf("answers of deleted question remain")
	}

	if err := repo.DeleteAggregate(ctx, a.ID); err != nil {
		t.Fatalf("delete aggregate: %v", err)
	}
	if _, err := repo.FindAggregate(ctx, a.ID); !errors.Is(err, util.ErrAssessmentNotFound) {
		t.Fatalf("got %v want ErrAssessmentNotFound", err)
	}
	if n := countRows(t, db, &model.Answer{}, "1 = 1"); n != 0 {
		t.Fatalf("%d answers left after aggregate delete", n)
	}
	if err := repo.DeleteAggregate(ctx, a.ID); !errors.Is(err, util.ErrAssessmentNotFound) {
		t.Fatalf("second delete: got %v", err)
	}
}

func TestListFiltersAndPages(t *testing.T) {
	db := newTestDB(t)
	repo := NewAssessmentRepository(db, nil)
	ctx := context.Background()

	for _, name := range []string{"Go Junior", "Go Senior", "Rust Junior"} {
		a := newAssessment(name)
		if name == "Go Senior" {
			a.Difficulty = model.AssessmentSenior
		}
		if err := repo.CreateAggregate(ctx, a); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	list, total, err := repo.List(ctx, AssessmentFilter{Search: "Go", Page: 1, Limit: 1})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(list) != 1 {
		t.Fatalf("search: total %d len %d", total, len(list))
	}

	_, total, err = repo.List(ctx, AssessmentFilter{Difficulty: model.AssessmentJunior})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 {
		t.Fatalf("difficulty filter: total %d want 2", total)
	}
}
