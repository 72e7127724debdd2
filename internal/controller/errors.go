package controller

import (
	"errors"
	"job_board_backend/internal/model"
	"job_board_backend/internal/service"
	"job_board_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

var badRequestErrors = []error{
	model.ErrInvalidQuestion,
	util.ErrInvalidAssessment,
	util.ErrEmptySubmission,
	util.ErrForeignAnswer,
	util.ErrDuplicateAnswer,
	util.ErrForeignQuestion,
	util.ErrDuplicateQuestion,
}

var notFoundErrors = []error{
	util.ErrAssessmentNotFound,
	util.ErrQuestionNotFound,
	util.ErrResultNotFound,
}

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// respondError maps domain errors onto the response envelope. Anything
// unrecognised is logged and reported as a 500.
func respondError(ctx *gin.Context, err error) {
	var importErr *service.ImportError
	switch {
	case errors.Is(err, util.ErrSheetTooLarge):
		util.Error(ctx, http.StatusRequestEntityTooLarge, err.Error())
	case errors.As(err, &importErr):
		util.Fail(ctx, http.StatusBadRequest, importErr.Error(), gin.H{
			"row":    importErr.Row,
			"column": importErr.Column,
			"value":  importErr.Value,
		})
	case isAny(err, badRequestErrors):
		util.BadRequest(ctx, err.Error())
	case isAny(err, notFoundErrors):
		util.Error(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, util.ErrDuplicateName):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrCooldownActive):
		util.Error(ctx, http.StatusTooManyRequests, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
