package model

import (
	"gorm.io/datatypes"
)

type AssessmentDifficulty string

const (
	AssessmentGraduate     AssessmentDifficulty = "GRADUATE"
	AssessmentEntry        AssessmentDifficulty = "ENTRY"
	AssessmentJunior       AssessmentDifficulty = "JUNIOR"
	AssessmentIntermediate AssessmentDifficulty = "INTERMEDIATE"
	AssessmentSenior       AssessmentDifficulty = "SENIOR"
	AssessmentCLevel       AssessmentDifficulty = "C_LEVEL"
)

func (d AssessmentDifficulty) Valid() bool {
	switch d {
	case AssessmentGraduate, AssessmentEntry, AssessmentJunior, AssessmentIntermediate, AssessmentSenior, AssessmentCLevel:
		return true
	}
	return false
}

type QuestionDifficulty string

const (
	QuestionEasy   QuestionDifficulty = "EASY"
	QuestionMedium QuestionDifficulty = "MEDIUM"
	QuestionHard   QuestionDifficulty = "HARD"
)

func (d QuestionDifficulty) Valid() bool {
	return d == QuestionEasy || d == QuestionMedium || d == QuestionHard
}

type QuestionType string

const (
	SingleChoice   QuestionType = "SINGLE_CHOICE"
	MultipleChoice QuestionType = "MULTIPLE_CHOICE"
	TrueFalse      QuestionType = "TRUE_FALSE"
)

// Assessment is the aggregate root. Questions and their answers are only
// written through the repository's aggregate methods.
// swagger:model Assessment
type Assessment struct {
	UUIDBase
	Name         string                      `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Slug         string                      `gorm:"size:64" json:"slug"`
	Description  string                      `gorm:"type:text;not null" json:"description"`
	Instructions string                      `gorm:"type:text;not null" json:"instructions"`
	Difficulty   AssessmentDifficulty        `gorm:"size:20;index" json:"difficulty"`
	Duration     int                         `gorm:"default:0" json:"duration"` // Minutes
	Tags         datatypes.JSONSlice[string] `json:"tags"`
	Skills       datatypes.JSONSlice[string] `json:"skills"`
	Questions    []Question                  `gorm:"foreignKey:AssessmentID" json:"questions,omitempty"`
}

func (Assessment) TableName() string {
	return "assessments"
}

// swagger:model Question
type Question struct {
	UUIDBase
	AssessmentID string                      `gorm:"index;type:varchar(36);not null" json:"assessmentId"`
	Title        string                      `gorm:"type:text;not null" json:"title"`
	QuestionType QuestionType                `gorm:"size:20;not null" json:"questionType"`
	Difficulty   QuestionDifficulty          `gorm:"size:10" json:"difficulty"`
	Category     string                      `gorm:"size:100;not null" json:"category"`
	Tags         datatypes.JSONSlice[string] `json:"tags"`
	Position     int                         `gorm:"default:0" json:"position"`
	Answers      []Answer                    `gorm:"foreignKey:QuestionID" json:"answers"`
}

func (Question) TableName() string {
	return "questions"
}

// Answer keeps IsCorrect and BooleanText as separate columns; grading
// requires both to be true.
// swagger:model Answer
type Answer struct {
	UUIDBase
	QuestionID  string `gorm:"index;type:varchar(36);not null" json:"questionId"`
	AnswerText  string `gorm:"type:text;not null" json:"answerText"`
	IsCorrect   bool   `gorm:"not null" json:"isCorrect"`
	BooleanText bool   `gorm:"not null" json:"booleanText"`
	Feedback    string `gorm:"type:text" json:"feedback"`
	Position    int    `gorm:"default:0" json:"position"`
}

func (Answer) TableName() string {
	return "answers"
}
