package service

import (
	"fmt"
	"job_board_backend/internal/model"
	"job_board_backend/internal/util"
)

const DefaultPassMark = 50

// SubmittedAnswer is one (question, chosen answer) pair of a submission.
type SubmittedAnswer struct {
	QuestionID string `json:"questionId" binding:"required"`
	AnswerID   string `json:"answerId" binding:"required"`
}

type Score struct {
	TotalQuestions int                  `json:"totalQuestions"`
	TotalScore     int                  `json:"totalScore"`
	Percentage     int                  `json:"percentage"`
	Verdict        model.Verdict        `json:"verdict"`
	Breakdown      []model.GradedAnswer `json:"breakdown"`
}

// Percentage rounds up: 1 of 3 is 34.
func Percentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return (score*100 + total - 1) / total
}

func VerdictFor(percentage, passMark int) model.Verdict {
	if percentage >= passMark {
		return model.Pass
	}
	return model.Fail
}

// Grade scores items against the stored questions of one assessment. Every
// pair is resolved before anything is counted, so a foreign or repeated pair
// fails the whole submission. An answer counts only when both its IsCorrect
// and BooleanText flags are set.
//
// The denominator is the number of pairs submitted, not the number of
// questions: unanswered questions are not counted, and each pair is scored
// on its own even when a single-choice question is answered twice.
func Grade(questions []model.Question, items []SubmittedAnswer, passMark int) (*Score, error) {
	if len(items) == 0 {
		return nil, util.ErrEmptySubmission
	}

	answers := make(map[string]map[string]*model.Answer, len(questions))
	for i := range questions {
		q := &questions[i]
		byID := make(map[string]*model.Answer, len(q.Answers))
		for j := range q.Answers {
			byID[q.Answers[j].ID] = &q.Answers[j]
		}
		answers[q.ID] = byID
	}

	chosen := make([]*model.Answer, len(items))
	seen := make(map[SubmittedAnswer]bool, len(items))
	for i, item := range items {
		byID, ok := answers[item.QuestionID]
		if !ok {
			return nil, fmt.Errorf("%w: question %s", util.ErrForeignAnswer, item.QuestionID)
		}
		a, ok := byID[item.AnswerID]
		if !ok {
			return nil, fmt.Errorf("%w: answer %s is not an option of question %s", util.ErrForeignAnswer, item.AnswerID, item.QuestionID)
		}
		if seen[item] {
			return nil, fmt.Errorf("%w: question %s answer %s", util.ErrDuplicateAnswer, item.QuestionID, item.AnswerID)
		}
		seen[item] = true
		chosen[i] = a
	}

	score := &Score{
		TotalQuestions: len(items),
		Breakdown:      make([]model.GradedAnswer, len(items)),
	}
	for i, a := range chosen {
		correct := a.IsCorrect && a.BooleanText
		if correct {
			score.TotalScore++
		}
		score.Breakdown[i] = model.GradedAnswer{
			QuestionID: items[i].QuestionID,
			AnswerID:   items[i].AnswerID,
			Correct:    correct,
		}
	}

	score.Percentage = Percentage(score.TotalScore, score.TotalQuestions)
	score.Verdict = VerdictFor(score.Percentage, passMark)
	return score, nil
}
