package repository

import (
	"context"
	"errors"
	"job_board_backend/internal/model"
	"job_board_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AssessmentRepository struct {
	DB    *gorm.DB
	Cache *AssessmentCache
}

func NewAssessmentRepository(db *gorm.DB, cache *AssessmentCache) *AssessmentRepository {
	return &AssessmentRepository{DB: db, Cache: cache}
}

type AssessmentFilter struct {
	Page       int
	Limit      int
	Difficulty model.AssessmentDifficulty
	Search     string
}

func byPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position asc")
}

// insertQuestion writes the question row and then its answers. IDs are
// always fresh so a payload can never collide with stored rows.
func insertQuestion(tx *gorm.DB, assessmentID string, q *model.Question, position int) error {
	q.ID = model.GenerateUUID()
	q.AssessmentID = assessmentID
	q.Position = position
	if err := tx.Omit(clause.Associations).Create(q).Error; err != nil {
		return err
	}
	return insertAnswers(tx, q)
}

func insertAnswers(tx *gorm.DB, q *model.Question) error {
	if len(q.Answers) == 0 {
		return nil
	}
	for i := range q.Answers {
		q.Answers[i].ID = model.GenerateUUID()
		q.Answers[i].QuestionID = q.ID
		q.Answers[i].Position = i
	}
	return tx.Create(&q.Answers).Error
}

func nameTaken(tx *gorm.DB, name, exceptID string) (bool, error) {
	var count int64
	query := tx.Model(&model.Assessment{}).Where("name = ?", name)
	if exceptID != "" {
		query = query.Where("id <> ?", exceptID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AssessmentRepository) NameExists(ctx context.Context, name string) (bool, error) {
	return nameTaken(r.DB.WithContext(ctx), name, "")
}

// CreateAggregate writes the assessment, then every question followed by its
// answers, in one transaction. A taken name writes nothing.
func (r *AssessmentRepository) CreateAggregate(ctx context.Context, a *model.Assessment) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := nameTaken(tx, a.Name, "")
		if err != nil {
			return err
		}
		if taken {
			return util.ErrDuplicateName
		}

		a.ID = model.GenerateUUID()
		if err := tx.Omit(clause.Associations).Create(a).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return util.ErrDuplicateName
			}
			return err
		}

		for i := range a.Questions {
			if err := insertQuestion(tx, a.ID, &a.Questions[i], i); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *AssessmentRepository) FindByID(ctx context.Context, id string) (*model.Assessment, error) {
	var a model.Assessment
	err := r.DB.WithContext(ctx).First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAssessmentNotFound
	}
	return &a, err
}

// FindAggregate loads the assessment with questions and answers in position order.
func (r *AssessmentRepository) FindAggregate(ctx context.Context, id string) (*model.Assessment, error) {
	if a, ok := r.Cache.Get(ctx, id); ok {
		return a, nil
	}
	version := r.Cache.Version(ctx, id)

	var a model.Assessment
	err := r.DB.WithContext(ctx).
		Preload("Questions", byPosition).
		Preload("Questions.Answers", byPosition).
		First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAssessmentNotFound
	}
	if err != nil {
		return nil, err
	}

	r.Cache.Set(ctx, &a, version)
	return &a, nil
}

func (r *AssessmentRepository) List(ctx context.Context, f AssessmentFilter) ([]model.Assessment, int64, error) {
	var as []model.Assessment
	var total int64

	query := r.DB.WithContext(ctx).Model(&model.Assessment{})
	if f.Difficulty != "" {
		query = query.Where("difficulty = ?", f.Difficulty)
	}
	if f.Search != "" {
		query = query.Where("name LIKE ?", "%"+f.Search+"%")
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Page < 1 {
		f.Page = util.DefaultPage
	}
	if f.Limit < 1 {
		f.Limit = util.DefaultLimit
	}
	offset := (f.Page - 1) * f.Limit
	err := query.Order("created_at desc").Offset(offset).Limit(f.Limit).Find(&as).Error
	return as, total, err
}

// UpdateAggregate reconciles the stored aggregate against the payload by
// question ID. Matched questions get their answers replaced before their
// own fields; unmatched payload questions are inserted; stored questions the
// payload omits are deleted. Assessment fields are written last. A nil
// questions slice leaves the questions untouched.
func (r *AssessmentRepository) UpdateAggregate(ctx context.Context, a *model.Assessment, questions []model.Question) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stored model.Assessment
		if err := tx.First(&stored, "id = ?", a.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrAssessmentNotFound
			}
			return err
		}

		if a.Name != stored.Name {
			taken, err := nameTaken(tx, a.Name, a.ID)
			if err != nil {
				return err
			}
			if taken {
				return util.ErrDuplicateName
			}
		}

		if questions != nil {
			if err := r.reconcileQuestions(tx, a.ID, questions); err != nil {
				return err
			}
		}

		err := tx.Model(&model.Assessment{}).Where("id = ?", a.ID).Updates(map[string]interface{}{
			"name":         a.Name,
			"slug":         a.Slug,
			"description":  a.Description,
			"instructions": a.Instructions,
			"difficulty":   a.Difficulty,
			"duration":     a.Duration,
			"tags":         a.Tags,
			"skills":       a.Skills,
		}).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return util.ErrDuplicateName
		}
		return err
	})
	if err == nil {
		r.Cache.Invalidate(ctx, a.ID)
	}
	return err
}

func (r *AssessmentRepository) reconcileQuestions(tx *gorm.DB, assessmentID string, questions []model.Question) error {
	var storedIDs []string
	if err := tx.Model(&model.Question{}).Where("assessment_id = ?", assessmentID).Pluck("id", &storedIDs).Error; err != nil {
		return err
	}
	stored := make(map[string]bool, len(storedIDs))
	for _, id := range storedIDs {
		stored[id] = true
	}

	kept := make(map[string]bool, len(questions))
	for i := range questions {
		q := &questions[i]
		if q.ID == "" {
			if err := insertQuestion(tx, assessmentID, q, i); err != nil {
				return err
			}
			continue
		}
		if !stored[q.ID] {
			return util.ErrForeignQuestion
		}
		if kept[q.ID] {
			return util.ErrDuplicateQuestion
		}
		kept[q.ID] = true

		if err := tx.Where("question_id = ?", q.ID).Delete(&model.Answer{}).Error; err != nil {
			return err
		}
		if err := insertAnswers(tx, q); err != nil {
			return err
		}

		q.AssessmentID = assessmentID
		q.Position = i
		err := tx.Model(&model.Question{}).Where("id = ?", q.ID).Updates(map[string]interface{}{
			"title":         q.Title,
			"question_type": q.QuestionType,
			"difficulty":    q.Difficulty,
			"category":      q.Category,
			"tags":          q.Tags,
			"position":      q.Position,
		}).Error
		if err != nil {
			return err
		}
	}

	var dropped []string
	for _, id := range storedIDs {
		if !kept[id] {
			dropped = append(dropped, id)
		}
	}
	if len(dropped) == 0 {
		return nil
	}
	if err := tx.Where("question_id IN ?", dropped).Delete(&model.Answer{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", dropped).Delete(&model.Question{}).Error
}

// AppendQuestions adds questions after the current last position without
// touching the others. The slice elements receive their new IDs.
func (r *AssessmentRepository) AppendQuestions(ctx context.Context, assessmentID string, questions []model.Question) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Assessment{}).Where("id = ?", assessmentID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return util.ErrAssessmentNotFound
		}

		var last struct{ Max int }
		err := tx.Model(&model.Question{}).
			Select("COALESCE(MAX(position), -1) AS max").
			Where("assessment_id = ?", assessmentID).
			Scan(&last).Error
		if err != nil {
			return err
		}

		for i := range questions {
			if err := insertQuestion(tx, assessmentID, &questions[i], last.Max+1+i); err != nil {
				return err
			}
		}
		return nil
	})
	if err == nil {
		r.Cache.Invalidate(ctx, assessmentID)
	}
	return err
}

func (r *AssessmentRepository) DeleteQuestion(ctx context.Context, assessmentID, questionID string) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&model.Question{}).
			Where("id = ? AND assessment_id = ?", questionID, assessmentID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count == 0 {
			return util.ErrQuestionNotFound
		}
		if err := tx.Where("question_id = ?", questionID).Delete(&model.Answer{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Question{}, "id = ?", questionID).Error
	})
	if err == nil {
		r.Cache.Invalidate(ctx, assessmentID)
	}
	return err
}

func (r *AssessmentRepository) DeleteAggregate(ctx context.Context, id string) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&model.Assessment{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrAssessmentNotFound
		}
		questionIDs := tx.Model(&model.Question{}).Select("id").Where("assessment_id = ?", id)
		if err := tx.Where("question_id IN (?)", questionIDs).Delete(&model.Answer{}).Error; err != nil {
			return err
		}
		return tx.Where("assessment_id = ?", id).Delete(&model.Question{}).Error
	})
	if err == nil {
		r.Cache.Invalidate(ctx, id)
	}
	return err
}
