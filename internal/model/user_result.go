package model

import (
	"time"

	"gorm.io/datatypes"
)

type Verdict string

const (
	Pass Verdict = "PASS"
	Fail Verdict = "FAIL"
)

// GradedAnswer is one line of a result breakdown.
type GradedAnswer struct {
	QuestionID string `json:"questionId"`
	AnswerID   string `json:"answerId"`
	Correct    bool   `json:"correct"`
}

// UserResult is written once per graded submission and never updated.
// swagger:model UserResult
type UserResult struct {
	UUIDBase
	UserID         string                            `gorm:"index;type:varchar(36)" json:"userId,omitempty"`
	AssessmentID   string                            `gorm:"index;type:varchar(36);not null" json:"assessmentId"`
	TotalQuestions int                               `gorm:"not null" json:"totalQuestions"`
	Score          int                               `gorm:"not null" json:"score"`
	Percentage     int                               `gorm:"not null" json:"percentage"`
	Status         Verdict                           `gorm:"size:10;not null" json:"status"`
	Results        datatypes.JSONSlice[GradedAnswer] `json:"results"`
	Cooldown       time.Time                         `gorm:"not null" json:"cooldown"`
}

func (UserResult) TableName() string {
	return "user_assessments"
}
