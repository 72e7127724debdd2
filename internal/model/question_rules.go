package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidQuestion marks a question aggregate that breaks its shape rules.
var ErrInvalidQuestion = errors.New("invalid question")

const (
	MinChoiceAnswers = 2
	MaxChoiceAnswers = 4
)

func invalidQuestion(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidQuestion, fmt.Sprintf(format, args...))
}

// ValidateQuestion checks the per-type answer rules:
//
//	TRUE_FALSE       exactly 2 answers, exactly 1 correct
//	SINGLE_CHOICE    2..4 answers, exactly 1 correct
//	MULTIPLE_CHOICE  2..4 answers, at least 1 correct
//
// and that every answer has text and agreeing IsCorrect/BooleanText flags.
func ValidateQuestion(q *Question) error {
	if strings.TrimSpace(q.Title) == "" {
		return invalidQuestion("title is required")
	}

	correct := 0
	for i, a := range q.Answers {
		if strings.TrimSpace(a.AnswerText) == "" {
			return invalidQuestion("answer %d has no text", i+1)
		}
		if a.IsCorrect != a.BooleanText {
			return invalidQuestion("answer %d has is_correct=%t but boolean_text=%t", i+1, a.IsCorrect, a.BooleanText)
		}
		if a.IsCorrect {
			correct++
		}
	}

	n := len(q.Answers)
	switch q.QuestionType {
	case TrueFalse:
		if n != 2 {
			return invalidQuestion("true/false question needs exactly 2 answers, got %d", n)
		}
		if correct != 1 {
			return invalidQuestion("true/false question needs exactly 1 correct answer, got %d", correct)
		}
	case SingleChoice:
		if n < MinChoiceAnswers || n > MaxChoiceAnswers {
			return invalidQuestion("single choice question needs %d-%d answers, got %d", MinChoiceAnswers, MaxChoiceAnswers, n)
		}
		if correct != 1 {
			return invalidQuestion("single choice question needs exactly 1 correct answer, got %d", correct)
		}
	case MultipleChoice:
		if n < MinChoiceAnswers || n > MaxChoiceAnswers {
			return invalidQuestion("multiple choice question needs %d-%d answers, got %d", MinChoiceAnswers, MaxChoiceAnswers, n)
		}
		if correct < 1 {
			return invalidQuestion("multiple choice question needs at least 1 correct answer")
		}
	default:
		return invalidQuestion("unknown question type %q", q.QuestionType)
	}

	if q.Difficulty != "" && !q.Difficulty.Valid() {
		return invalidQuestion("unknown difficulty %q", q.Difficulty)
	}
	return nil
}
