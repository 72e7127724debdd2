package util

import (
	"job_board_backend/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PageResponse 分页响应结构
type PageResponse struct {
	List  interface{} `json:"list"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

func respond(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{Code: code, Message: message, Data: data})
}

func Success(c *gin.Context, data interface{}) {
	respond(c, http.StatusOK, "success", data)
}

func Created(c *gin.Context, data interface{}) {
	respond(c, http.StatusCreated, "created", data)
}

// Page wraps one page of a listing.
func Page(c *gin.Context, list interface{}, total int64, page, limit int) {
	Success(c, PageResponse{List: list, Total: total, Page: page, Limit: limit})
}

func Error(c *gin.Context, code int, message string) {
	respond(c, code, message, nil)
}

// Fail is Error with a payload describing what was rejected, such as the
// row and column of a bad sheet cell.
func Fail(c *gin.Context, code int, message string, detail interface{}) {
	respond(c, code, message, detail)
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message)
}

// LogInternalError hides err from the client. It is logged with the route
// and caller, and attached to the gin context so the tracing middleware
// marks the span as failed.
func LogInternalError(c *gin.Context, err error) {
	c.Error(err)
	logger.Log.Error("Internal server error",
		zap.String("method", c.Request.Method),
		zap.String("route", c.FullPath()),
		zap.String("userId", c.GetString("userId")),
		zap.Error(err),
	)
	Error(c, http.StatusInternalServerError, "Internal server error")
}
