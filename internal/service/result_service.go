package service

import (
	"context"
	"errors"
	"fmt"
	"job_board_backend/internal/config"
	"job_board_backend/internal/model"
	"job_board_backend/internal/repository"
	"job_board_backend/internal/util"
	"job_board_backend/pkg/logger"
	"job_board_backend/pkg/monitoring"
	"job_board_backend/pkg/tracing"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type SubmissionRequest struct {
	Answers []SubmittedAnswer `json:"answers" binding:"required,dive"`
}

// ResultService grades submissions and stores one result per attempt. The
// grading policy can be swapped at runtime by the config watcher.
type ResultService struct {
	Assessments *repository.AssessmentRepository
	Results     *repository.ResultRepository

	mu     sync.RWMutex
	policy config.GradingConfig
	now    func() time.Time
}

func NewResultService(assessments *repository.AssessmentRepository, results *repository.ResultRepository, policy config.GradingConfig) *ResultService {
	return &ResultService{
		Assessments: assessments,
		Results:     results,
		policy:      policy,
		now:         time.Now,
	}
}

func (s *ResultService) Policy() config.GradingConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.policy
}

func (s *ResultService) UpdatePolicy(policy config.GradingConfig) {
	s.mu.Lock()
	s.policy = policy
	s.mu.Unlock()
	logger.Log.Info("grading policy updated",
		zap.Int("passMark", policy.PassMark),
		zap.Int("cooldownHours", policy.CooldownHours),
	)
}

// Submit grades one attempt and stores the result. userID may be empty for
// anonymous attempts, which skip the cooldown check.
func (s *ResultService) Submit(ctx context.Context, assessmentID, userID string, items []SubmittedAnswer) (*model.UserResult, error) {
	ctx, span := tracing.Tracer.Start(ctx, "ResultService.Submit")
	defer span.End()
	span.SetAttributes(attribute.String("assessment.id", assessmentID), attribute.Int("submission.items", len(items)))

	policy := s.Policy()
	now := s.now()

	// Early rejection before grading; CreateAfterCooldown repeats the check
	// under a lock.
	if userID != "" {
		last, err := s.Results.FindLatest(ctx, userID, assessmentID)
		switch {
		case err == nil && now.Before(last.Cooldown):
			return nil, fmt.Errorf("%w until %s", util.ErrCooldownActive, last.Cooldown.Format(time.RFC3339))
		case err != nil && !errors.Is(err, util.ErrResultNotFound):
			return nil, err
		}
	}

	a, err := s.Assessments.FindAggregate(ctx, assessmentID)
	if err != nil {
		return nil, err
	}

	score, err := Grade(a.Questions, items, policy.PassMark)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	result := &model.UserResult{
		UserID:         userID,
		AssessmentID:   assessmentID,
		TotalQuestions: score.TotalQuestions,
		Score:          score.TotalScore,
		Percentage:     score.Percentage,
		Status:         score.Verdict,
		Results:        score.Breakdown,
		Cooldown:       now.Add(policy.Cooldown()),
	}
	if err := s.Results.CreateAfterCooldown(ctx, result, now); err != nil {
		return nil, err
	}

	monitoring.GradingCounter.WithLabelValues(string(score.Verdict)).Inc()
	logger.Log.Info("submission graded",
		zap.String("assessmentId", assessmentID),
		zap.String("userId", userID),
		zap.Int("score", score.TotalScore),
		zap.Int("percentage", score.Percentage),
		zap.String("verdict", string(score.Verdict)),
	)
	return result, nil
}

func (s *ResultService) ListByAssessment(ctx context.Context, assessmentID string, page, limit int) ([]model.UserResult, int64, error) {
	if _, err := s.Assessments.FindByID(ctx, assessmentID); err != nil {
		return nil, 0, err
	}
	return s.Results.ListByAssessment(ctx, assessmentID, page, limit)
}

func (s *ResultService) ListByUser(ctx context.Context, userID string, page, limit int) ([]model.UserResult, int64, error) {
	return s.Results.ListByUser(ctx, userID, page, limit)
}

func (s *ResultService) Latest(ctx context.Context, userID, assessmentID string) (*model.UserResult, error) {
	return s.Results.FindLatest(ctx, userID, assessmentID)
}
