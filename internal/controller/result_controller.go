package controller

import (
	"job_board_backend/internal/service"
	"job_board_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ResultController struct {
	Service *service.ResultService
}

func NewResultController(svc *service.ResultService) *ResultController {
	return &ResultController{Service: svc}
}

// @Summary Submit answers for grading
// @Tags results
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "assessment id"
// @Param body body service.SubmissionRequest true "chosen answers"
// @Success 201 {object} util.Response{data=model.UserResult}
// @Failure 400 {object} util.Response "empty or foreign answers"
// @Failure 429 {object} util.Response "cooldown active"
// @Router /api/assessments/{id}/submit [post]
func (c *ResultController) Submit(ctx *gin.Context) {
	var req service.SubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	userID := ""
	if user := util.GetUserFromContext(ctx); user != nil {
		userID = user.UserID
	}

	result, err := c.Service.Submit(ctx.Request.Context(), ctx.Param("id"), userID, req.Answers)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, result)
}

// @Summary Results of one assessment
// @Tags results
// @Produce json
// @Security BearerAuth
// @Param id path string true "assessment id"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/assessments/{id}/results [get]
func (c *ResultController) ListByAssessment(ctx *gin.Context) {
	page, limit := util.ParsePage(ctx)
	list, total, err := c.Service.ListByAssessment(ctx.Request.Context(), ctx.Param("id"), page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Page(ctx, list, total, page, limit)
}

// @Summary Results of one user
// @Tags results
// @Produce json
// @Security BearerAuth
// @Param userId path string true "user id"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/users/{userId}/results [get]
func (c *ResultController) ListByUser(ctx *gin.Context) {
	page, limit := util.ParsePage(ctx)
	list, total, err := c.Service.ListByUser(ctx.Request.Context(), ctx.Param("userId"), page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Page(ctx, list, total, page, limit)
}

// @Summary Latest result of a user for an assessment
// @Tags results
// @Produce json
// @Security BearerAuth
// @Param userId path string true "user id"
// @Param assessmentId path string true "assessment id"
// @Success 200 {object} util.Response{data=model.UserResult}
// @Router /api/users/{userId}/results/{assessmentId} [get]
func (c *ResultController) Latest(ctx *gin.Context) {
	result, err := c.Service.Latest(ctx.Request.Context(), ctx.Param("userId"), ctx.Param("assessmentId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
