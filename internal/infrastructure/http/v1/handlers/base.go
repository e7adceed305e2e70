// Package handlers provides HTTP request handlers.
package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"procurement/internal/core/apperror"
	appctx "procurement/internal/core/context"
)

// BaseHandler provides common handler utilities.
type BaseHandler struct{}

// NewBaseHandler creates a new base handler.
func NewBaseHandler() *BaseHandler {
	return &BaseHandler{}
}

// BindJSON decodes the request body into obj. An empty body leaves obj at
// its zero value so the domain validation can report the missing fields.
func (h *BaseHandler) BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		h.Error(c, apperror.NewInvalidInput("body", "invalid request body").WithCause(err))
		return false
	}
	return true
}

// BindQuery binds query parameters.
func (h *BaseHandler) BindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		h.Error(c, apperror.NewInvalidInput("query", "invalid query parameters").WithCause(err))
		return false
	}
	return true
}

// ParseID reads the :id path parameter. A malformed id cannot name an
// existing record, so it is reported as not found.
func (h *BaseHandler) ParseID(c *gin.Context, entity string) (int64, bool) {
	raw := c.Param("id")
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.Error(c, apperror.NewNotFound(entity, raw))
		return 0, false
	}
	return parsed, true
}

// Error registers err on the Gin context and aborts the request.
// The JSON response is produced by middleware.ErrorHandler.
func (h *BaseHandler) Error(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// GetUserID extracts user ID from request context.
func (h *BaseHandler) GetUserID(c *gin.Context) string {
	return appctx.GetUserID(c.Request.Context())
}

// OK sends 200 response with data.
func (h *BaseHandler) OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Created sends 201 response with data.
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}
