package service

import (
	"bytes"
	"context"
	"fmt"
	"job_board_backend/internal/config"
	"job_board_backend/internal/model"
	"job_board_backend/internal/repository"
	"job_board_backend/internal/util"
	"job_board_backend/pkg/logger"
	"job_board_backend/pkg/monitoring"
	"job_board_backend/pkg/tracing"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

const sheetObjectPrefix = "assessment_sheets"

type AssessmentService struct {
	Repo     *repository.AssessmentRepository
	Files    *repository.FileRepository
	Storage  *StorageService
	Importer config.ImporterConfig
}

func NewAssessmentService(repo *repository.AssessmentRepository, files *repository.FileRepository, storage *StorageService, cfg config.ImporterConfig) *AssessmentService {
	return &AssessmentService{Repo: repo, Files: files, Storage: storage, Importer: cfg}
}

type AnswerInput struct {
	AnswerText string `json:"answerText" binding:"required"`
	IsCorrect  bool   `json:"isCorrect"`
	Feedback   string `json:"feedback"`
}

// QuestionInput is a full question with its answer set. ID is only read by
// updates, where it names the stored question being replaced.
type QuestionInput struct {
	ID           string                   `json:"id"`
	Title        string                   `json:"title" binding:"required"`
	QuestionType model.QuestionType       `json:"questionType" binding:"required"`
	Difficulty   model.QuestionDifficulty `json:"difficulty"`
	Category     string                   `json:"category"`
	Tags         []string                 `json:"tags"`
	Answers      []AnswerInput            `json:"answers" binding:"required,min=2,max=4,dive"`
}

// AssessmentRequest backs create and update. On update a nil Questions
// leaves the stored questions alone while an empty list removes them all.
type AssessmentRequest struct {
	Name         string                     `json:"name" binding:"required"`
	Description  string                     `json:"description" binding:"required"`
	Instructions string                     `json:"instructions" binding:"required"`
	Difficulty   model.AssessmentDifficulty `json:"difficulty" binding:"required"`
	Duration     int                        `json:"duration" binding:"min=0"`
	Tags         []string                   `json:"tags"`
	Skills       []string                   `json:"skills"`
	Questions    []QuestionInput            `json:"questions" binding:"omitempty,dive"`
}

// SheetUpload is a question sheet already read from the request.
type SheetUpload struct {
	Filename    string
	ContentType string
	Content     []byte
	OwnerID     string
	Category    string
	Difficulty  model.QuestionDifficulty
	Tags        []string
}

type ImportSummary struct {
	File      *model.File      `json:"file"`
	Imported  int              `json:"imported"`
	Questions []model.Question `json:"questions"`
}

// CandidateAnswer and CandidateQuestion hide correctness flags from test takers.
type CandidateAnswer struct {
	ID         string `json:"id"`
	AnswerText string `json:"answerText"`
}

type CandidateQuestion struct {
	ID           string                   `json:"id"`
	Title        string                   `json:"title"`
	QuestionType model.QuestionType       `json:"questionType"`
	Difficulty   model.QuestionDifficulty `json:"difficulty"`
	Category     string                   `json:"category"`
	Answers      []CandidateAnswer        `json:"answers"`
}

type CandidateAssessment struct {
	ID           string                     `json:"id"`
	Name         string                     `json:"name"`
	Slug         string                     `json:"slug"`
	Description  string                     `json:"description"`
	Instructions string                     `json:"instructions"`
	Difficulty   model.AssessmentDifficulty `json:"difficulty"`
	Duration     int                        `json:"duration"`
	Tags         []string                   `json:"tags"`
	Skills       []string                   `json:"skills"`
	Questions    []CandidateQuestion        `json:"questions"`
}

func CandidateView(a *model.Assessment) *CandidateAssessment {
	view := &CandidateAssessment{
		ID:           a.ID,
		Name:         a.Name,
		Slug:         a.Slug,
		Description:  a.Description,
		Instructions: a.Instructions,
		Difficulty:   a.Difficulty,
		Duration:     a.Duration,
		Tags:         a.Tags,
		Skills:       a.Skills,
		Questions:    make([]CandidateQuestion, len(a.Questions)),
	}
	for i, q := range a.Questions {
		cq := CandidateQuestion{
			ID:           q.ID,
			Title:        q.Title,
			QuestionType: q.QuestionType,
			Difficulty:   q.Difficulty,
			Category:     q.Category,
			Answers:      make([]CandidateAnswer, len(q.Answers)),
		}
		for j, ans := range q.Answers {
			cq.Answers[j] = CandidateAnswer{ID: ans.ID, AnswerText: ans.AnswerText}
		}
		view.Questions[i] = cq
	}
	return view
}

func (s *AssessmentService) toQuestion(in QuestionInput) (model.Question, error) {
	q := model.Question{
		Title:        strings.TrimSpace(in.Title),
		QuestionType: in.QuestionType,
		Difficulty:   in.Difficulty,
		Category:     strings.TrimSpace(in.Category),
		Tags:         in.Tags,
		Answers:      make([]model.Answer, len(in.Answers)),
	}
	q.ID = in.ID
	if q.Difficulty == "" {
		q.Difficulty = model.QuestionDifficulty(s.Importer.DefaultDifficulty)
	}
	if q.Category == "" {
		q.Category = s.Importer.DefaultCategory
	}
	for i, a := range in.Answers {
		q.Answers[i] = model.Answer{
			AnswerText:  strings.TrimSpace(a.AnswerText),
			IsCorrect:   a.IsCorrect,
			BooleanText: a.IsCorrect,
			Feedback:    a.Feedback,
		}
	}
	if err := model.ValidateQuestion(&q); err != nil {
		return q, err
	}
	return q, nil
}

func (s *AssessmentService) toQuestions(in []QuestionInput) ([]model.Question, error) {
	if in == nil {
		return nil, nil
	}
	qs := make([]model.Question, len(in))
	for i := range in {
		q, err := s.toQuestion(in[i])
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		qs[i] = q
	}
	return qs, nil
}

func toAssessment(req AssessmentRequest) (*model.Assessment, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", util.ErrInvalidAssessment)
	}
	if !req.Difficulty.Valid() {
		return nil, fmt.Errorf("%w: unknown difficulty %q", util.ErrInvalidAssessment, req.Difficulty)
	}
	return &model.Assessment{
		Name:         name,
		Slug:         util.ToSlug(name),
		Description:  req.Description,
		Instructions: req.Instructions,
		Difficulty:   req.Difficulty,
		Duration:     req.Duration,
		Tags:         req.Tags,
		Skills:       req.Skills,
	}, nil
}

func (s *AssessmentService) Create(ctx context.Context, req AssessmentRequest) (*model.Assessment, error) {
	ctx, span := tracing.Tracer.Start(ctx, "AssessmentService.Create")
	defer span.End()

	a, err := toAssessment(req)
	if err != nil {
		return nil, err
	}
	if a.Questions, err = s.toQuestions(req.Questions); err != nil {
		return nil, err
	}

	if err := s.Repo.CreateAggregate(ctx, a); err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("assessment.id", a.ID), attribute.Int("assessment.questions", len(a.Questions)))
	return a, nil
}

func (s *AssessmentService) Get(ctx context.Context, id string) (*model.Assessment, error) {
	return s.Repo.FindAggregate(ctx, id)
}

func (s *AssessmentService) List(ctx context.Context, f repository.AssessmentFilter) ([]model.Assessment, int64, error) {
	return s.Repo.List(ctx, f)
}

func (s *AssessmentService) Update(ctx context.Context, id string, req AssessmentRequest) (*model.Assessment, error) {
	ctx, span := tracing.Tracer.Start(ctx, "AssessmentService.Update")
	defer span.End()

	a, err := toAssessment(req)
	if err != nil {
		return nil, err
	}
	a.ID = id
	questions, err := s.toQuestions(req.Questions)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.UpdateAggregate(ctx, a, questions); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return s.Repo.FindAggregate(ctx, id)
}

func (s *AssessmentService) AddQuestion(ctx context.Context, assessmentID string, in QuestionInput) (*model.Question, error) {
	in.ID = ""
	q, err := s.toQuestion(in)
	if err != nil {
		return nil, err
	}
	qs := []model.Question{q}
	if err := s.Repo.AppendQuestions(ctx, assessmentID, qs); err != nil {
		return nil, err
	}
	return &qs[0], nil
}

func (s *AssessmentService) DeleteQuestion(ctx context.Context, assessmentID, questionID string) error {
	return s.Repo.DeleteQuestion(ctx, assessmentID, questionID)
}

func (s *AssessmentService) Delete(ctx context.Context, id string) error {
	return s.Repo.DeleteAggregate(ctx, id)
}

func (s *AssessmentService) importOptions(up SheetUpload) ImportOptions {
	opts := ImportOptions{
		Category:   up.Category,
		Difficulty: up.Difficulty,
		Tags:       up.Tags,
		MaxRows:    s.Importer.MaxRows,
	}
	if opts.Category == "" {
		opts.Category = s.Importer.DefaultCategory
	}
	if opts.Difficulty == "" {
		opts.Difficulty = model.QuestionDifficulty(s.Importer.DefaultDifficulty)
	}
	return opts
}

// ImportSheet parses the sheet, stores the original file, appends the
// questions in one transaction and records the file. A sheet that fails to
// parse is never uploaded; a failed append removes the uploaded object.
func (s *AssessmentService) ImportSheet(ctx context.Context, assessmentID string, up SheetUpload) (*ImportSummary, error) {
	ctx, span := tracing.Tracer.Start(ctx, "AssessmentService.ImportSheet")
	defer span.End()
	span.SetAttributes(attribute.String("assessment.id", assessmentID), attribute.Int("sheet.bytes", len(up.Content)))

	fail := func(outcome string, err error) (*ImportSummary, error) {
		monitoring.ImportCounter.WithLabelValues(outcome).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		return nil, err
	}

	if s.Importer.MaxBytes > 0 && int64(len(up.Content)) > s.Importer.MaxBytes {
		return fail("rejected", fmt.Errorf("%w: %d bytes, limit %d", util.ErrSheetTooLarge, len(up.Content), s.Importer.MaxBytes))
	}
	if _, err := s.Repo.FindByID(ctx, assessmentID); err != nil {
		return fail("rejected", err)
	}

	questions, err := ImportQuestions(up.Content, assessmentID, s.importOptions(up))
	if err != nil {
		logger.Log.Warn("question sheet rejected",
			zap.String("assessmentId", assessmentID),
			zap.String("file", up.Filename),
			zap.Error(err),
		)
		return fail("rejected", err)
	}

	key := ObjectKey(sheetObjectPrefix, up.Filename)
	url, err := s.Storage.Upload(ctx, key, bytes.NewReader(up.Content), int64(len(up.Content)), up.ContentType)
	if err != nil {
		return fail("failed", fmt.Errorf("store question sheet: %w", err))
	}

	if err := s.Repo.AppendQuestions(ctx, assessmentID, questions); err != nil {
		if derr := s.Storage.Delete(ctx, key); derr != nil {
			logger.Log.Warn("orphaned question sheet", zap.String("key", key), zap.Error(derr))
		}
		return fail("failed", err)
	}

	file := &model.File{
		Name:        up.Filename,
		URL:         url,
		Key:         key,
		Type:        model.FileAssessmentSheet,
		ContentType: up.ContentType,
		Size:        int64(len(up.Content)),
		OwnerID:     up.OwnerID,
	}
	if err := s.Files.Create(ctx, file); err != nil {
		// The questions are committed; only the file record is missing.
		logger.Log.Error("record question sheet", zap.String("key", key), zap.Error(err))
	}

	monitoring.ImportCounter.WithLabelValues("ok").Inc()
	monitoring.ImportedQuestions.Add(float64(len(questions)))
	logger.Log.Info("question sheet imported",
		zap.String("assessmentId", assessmentID),
		zap.String("file", up.Filename),
		zap.Int("questions", len(questions)),
	)
	return &ImportSummary{File: file, Imported: len(questions), Questions: questions}, nil
}
