package util

import "errors"

// Sheet import
var (
	ErrMalformedSheet   = errors.New("malformed question sheet")
	ErrUnknownColumn    = errors.New("unknown column")
	ErrMissingColumn    = errors.New("missing required column")
	ErrMissingCell      = errors.New("missing required cell")
	ErrInvalidAnswerKey = errors.New("invalid answer key")
	ErrInvalidOption    = errors.New("invalid option letter")
	ErrUnknownOption    = errors.New("answer key references an empty option")
	ErrTooManyRows      = errors.New("too many rows")
	ErrSheetTooLarge    = errors.New("question sheet too large")
)

// Grading
var (
	ErrEmptySubmission = errors.New("submission has no answers")
	ErrForeignAnswer   = errors.New("answer does not belong to the assessment")
	ErrDuplicateAnswer = errors.New("answer submitted more than once")
	ErrCooldownActive  = errors.New("assessment cooldown still active")
)

// Persistence
var (
	ErrAssessmentNotFound = errors.New("assessment not found")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrResultNotFound     = errors.New("result not found")
	ErrDuplicateName      = errors.New("assessment name already exists")
	ErrForeignQuestion    = errors.New("question does not belong to the assessment")
	ErrDuplicateQuestion  = errors.New("question listed more than once")
	ErrInvalidAssessment  = errors.New("invalid assessment")
)
