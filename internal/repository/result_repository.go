package repository

import (
	"context"
	"errors"
	"fmt"
	"job_board_backend/internal/model"
	"job_board_backend/internal/util"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ResultRepository is insert-only; a retake writes a new row.
type ResultRepository struct {
	DB *gorm.DB
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{DB: db}
}

// CreateAfterCooldown inserts result unless the user's previous result for
// the same assessment is still cooling down at now. The check and the insert
// share one transaction that locks the assessment row, so concurrent
// attempts by one user are serialized. Anonymous results skip the check.
func (r *ResultRepository) CreateAfterCooldown(ctx context.Context, result *model.UserResult, now time.Time) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a model.Assessment
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&a, "id = ?", result.AssessmentID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrAssessmentNotFound
		}
		if err != nil {
			return err
		}

		if result.UserID != "" {
			var last model.UserResult
			err := tx.Where("user_id = ? AND assessment_id = ?", result.UserID, result.AssessmentID).
				Order("created_at desc").
				First(&last).Error
			switch {
			case err == nil && now.Before(last.Cooldown):
				return fmt.Errorf("%w until %s", util.ErrCooldownActive, last.Cooldown.Format(time.RFC3339))
			case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
				return err
			}
		}

		return tx.Create(result).Error
	})
}

func (r *ResultRepository) ListByAssessment(ctx context.Context, assessmentID string, page, limit int) ([]model.UserResult, int64, error) {
	return r.list(ctx, r.DB.Where("assessment_id = ?", assessmentID), page, limit)
}

func (r *ResultRepository) ListByUser(ctx context.Context, userID string, page, limit int) ([]model.UserResult, int64, error) {
	return r.list(ctx, r.DB.Where("user_id = ?", userID), page, limit)
}

func (r *ResultRepository) list(ctx context.Context, query *gorm.DB, page, limit int) ([]model.UserResult, int64, error) {
	var results []model.UserResult
	var total int64

	query = query.WithContext(ctx).Model(&model.UserResult{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = util.DefaultPage
	}
	if limit < 1 {
		limit = util.DefaultLimit
	}
	err := query.Order("created_at desc").Offset((page - 1) * limit).Limit(limit).Find(&results).Error
	return results, total, err
}

// FindLatest returns the newest result of userID for assessmentID.
func (r *ResultRepository) FindLatest(ctx context.Context, userID, assessmentID string) (*model.UserResult, error) {
	var result model.UserResult
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND assessment_id = ?", userID, assessmentID).
		Order("created_at desc").
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrResultNotFound
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}
