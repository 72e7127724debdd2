package controller

import (
	"bytes"
	"io"
	"job_board_backend/internal/model"
	"job_board_backend/internal/repository"
	"job_board_backend/internal/service"
	"job_board_backend/internal/util"
	"strings"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	Service *service.AssessmentService
}

func NewAssessmentController(svc *service.AssessmentService) *AssessmentController {
	return &AssessmentController{Service: svc}
}

func canAuthor(ctx *gin.Context) bool {
	user := util.GetUserFromContext(ctx)
	return user != nil && (user.Role == model.Recruiter || user.Role == model.Admin)
}

// @Summary List assessments
// @Tags assessments
// @Produce json
// @Security BearerAuth
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Param difficulty query string false "difficulty tier"
// @Param search query string false "name contains"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/assessments [get]
func (c *AssessmentController) List(ctx *gin.Context) {
	page, limit := util.ParsePage(ctx)
	filter := repository.AssessmentFilter{
		Page:       page,
		Limit:      limit,
		Difficulty: model.AssessmentDifficulty(strings.ToUpper(ctx.Query("difficulty"))),
		Search:     strings.TrimSpace(ctx.Query("search")),
	}

	list, total, err := c.Service.List(ctx.Request.Context(), filter)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Page(ctx, list, total, page, limit)
}

// Get returns the full aggregate to authors and a view without answer
// flags to everyone else.
// @Summary Get an assessment with its questions
// @Tags assessments
// @Produce json
// @Security BearerAuth
// @Param id path string true "assessment id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/assessments/{id} [get]
func (c *AssessmentController) Get(ctx *gin.Context) {
	a, err := c.Service.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	if canAuthor(ctx) {
		util.Success(ctx, a)
		return
	}
	util.Success(ctx, service.CandidateView(a))
}

// @Summary Create an assessment with its questions
// @Tags assessments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.AssessmentRequest true "assessment"
// @Success 201 {object} util.Response
// @Failure 409 {object} util.Response "name taken"
// @Router /api/assessments [post]
func (c *AssessmentController) Create(ctx *gin.Context) {
	var req service.AssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	a, err := c.Service.Create(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, a)
}

// @Summary Update an assessment; questions are matched by id
// @Tags assessments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "assessment id"
// @Param body body service.AssessmentRequest true "assessment"
// @Success 200 {object} util.Response
// @Router /api/assessments/{id} [put]
func (c *AssessmentController) Update(ctx *gin.Context) {
	var req service.AssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	a, err := c.Service.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, a)
}

// @Summary Delete an assessment with its questions
// @Tags assessments
// @Security BearerAuth
// @Param id path string true "assessment id"
// @Success 200 {object} util.Response
// @Router /api/assessments/{id} [delete]
func (c *AssessmentController) Delete(ctx *gin.Context) {
	if err := c.Service.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary Append one question
// @Tags assessments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "assessment id"
// @Param body body service.QuestionInput true "question"
// @Success 201 {object} util.Response
// @Router /api/assessments/{id}/questions [post]
func (c *AssessmentController) AddQuestion(ctx *gin.Context) {
	var req service.QuestionInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.Service.AddQuestion(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, q)
}

// @Summary Delete one question
// @Tags assessments
// @Security BearerAuth
// @Param id path string true "assessment id"
// @Param questionId path string true "question id"
// @Success 200 {object} util.Response
// @Router /api/assessments/{id}/questions/{questionId} [delete]
func (c *AssessmentController) DeleteQuestion(ctx *gin.Context) {
	if err := c.Service.DeleteQuestion(ctx.Request.Context(), ctx.Param("id"), ctx.Param("questionId")); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary Import questions from a CSV sheet
// @Description Columns: Question, A, B, C, D, Answer and optional E. The whole sheet is rejected on the first bad row.
// @Tags assessments
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "assessment id"
// @Param file formData file true "question sheet"
// @Param category formData string false "category for every question"
// @Param difficulty formData string false "EASY, MEDIUM or HARD"
// @Param tags formData string false "comma separated tags"
// @Success 201 {object} util.Response{data=service.ImportSummary}
// @Failure 400 {object} util.Response "row and column of the first bad cell"
// @Failure 413 {object} util.Response
// @Router /api/assessments/{id}/import [post]
func (c *AssessmentController) Import(ctx *gin.Context) {
	header, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "File is required")
		return
	}
	if !util.HasAllowedExtension(header.Filename, util.AllowedSheetExtensions) {
		util.BadRequest(ctx, "Only .csv question sheets are accepted")
		return
	}

	maxBytes := c.Service.Importer.MaxBytes
	if maxBytes > 0 && header.Size > maxBytes {
		respondError(ctx, util.ErrSheetTooLarge)
		return
	}

	f, err := header.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer f.Close()

	var reader io.Reader = f
	if maxBytes > 0 {
		reader = io.LimitReader(f, maxBytes+1)
	}
	content, err := io.ReadAll(reader)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	contentType, err := util.ValidateMimeType(bytes.NewReader(content), util.AllowedSheetMimeTypes)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	var tags []string
	for _, t := range strings.Split(ctx.PostForm("tags"), ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}

	upload := service.SheetUpload{
		Filename:    header.Filename,
		ContentType: contentType,
		Content:     content,
		Category:    strings.TrimSpace(ctx.PostForm("category")),
		Difficulty:  model.QuestionDifficulty(strings.ToUpper(ctx.PostForm("difficulty"))),
		Tags:        tags,
	}
	if user := util.GetUserFromContext(ctx); user != nil {
		upload.OwnerID = user.UserID
	}

	summary, err := c.Service.ImportSheet(ctx.Request.Context(), ctx.Param("id"), upload)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, summary)
}
