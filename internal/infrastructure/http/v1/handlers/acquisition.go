package handlers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"procurement/internal/core/apperror"
	"procurement/internal/domain/acquisition"
	"procurement/internal/domain/history"
	"procurement/internal/infrastructure/export"
	"procurement/internal/infrastructure/http/v1/dto"
	"procurement/pkg/logger"
)

const entityAcquisition = "acquisition"

// AcquisitionService is the part of acquisition.Service the handlers use.
type AcquisitionService interface {
	Create(ctx context.Context, in acquisition.Input) (*acquisition.Acquisition, error)
	Update(ctx context.Context, acquisitionID int64, in acquisition.Input) (*acquisition.Acquisition, error)
	SetStatus(ctx context.Context, acquisitionID int64, p acquisition.StatusPayload) (*acquisition.Acquisition, error)
	Get(ctx context.Context, acquisitionID int64) (*acquisition.Acquisition, error)
	Search(ctx context.Context, c acquisition.Criteria) []acquisition.Acquisition
	History(ctx context.Context, acquisitionID int64) ([]history.Entry, error)
}

// AcquisitionHandler serves /api/acquisitions.
type AcquisitionHandler struct {
	*BaseHandler
	service AcquisitionService
	now     func() time.Time
}

// NewAcquisitionHandler creates a new acquisition handler.
func NewAcquisitionHandler(base *BaseHandler, service AcquisitionService) *AcquisitionHandler {
	return &AcquisitionHandler{BaseHandler: base, service: service, now: time.Now}
}

// List handles GET /acquisitions.
func (h *AcquisitionHandler) List(c *gin.Context) {
	var q dto.AcquisitionQuery
	if !h.BindQuery(c, &q) {
		return
	}
	h.OK(c, h.service.Search(c.Request.Context(), q.ToCriteria()))
}

// Export handles GET /acquisitions/export.xlsx with the list filters.
func (h *AcquisitionHandler) Export(c *gin.Context) {
	var q dto.AcquisitionQuery
	if !h.BindQuery(c, &q) {
		return
	}
	records := h.service.Search(c.Request.Context(), q.ToCriteria())

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, records); err != nil {
		h.Error(c, apperror.NewInternal(err))
		return
	}

	filename := fmt.Sprintf("acquisitions-%s.xlsx", h.now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, export.ContentTypeXLSX, buf.Bytes())
}

// Get handles GET /acquisitions/:id.
func (h *AcquisitionHandler) Get(c *gin.Context) {
	acquisitionID, ok := h.ParseID(c, entityAcquisition)
	if !ok {
		return
	}
	a, err := h.service.Get(c.Request.Context(), acquisitionID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, a)
}

// Create handles POST /acquisitions.
func (h *AcquisitionHandler) Create(c *gin.Context) {
	var req dto.AcquisitionRequest
	if !h.BindJSON(c, &req) {
		return
	}
	in, err := acquisition.Validate(req.ToPayload())
	if err != nil {
		h.Error(c, err)
		return
	}
	a, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, a)
}

// Update handles PUT /acquisitions/:id. Existence is checked before the
// body is validated.
func (h *AcquisitionHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	acquisitionID, ok := h.ParseID(c, entityAcquisition)
	if !ok {
		return
	}
	// A missing record is reported as 404 even when the body is malformed
	// or invalid, so look it up before decoding. The service checks again
	// under its lock.
	if _, err := h.service.Get(ctx, acquisitionID); err != nil {
		h.Error(c, err)
		return
	}

	var req dto.AcquisitionRequest
	if !h.BindJSON(c, &req) {
		return
	}
	in, err := acquisition.Validate(req.ToPayload())
	if err != nil {
		h.Error(c, err)
		return
	}
	a, err := h.service.Update(ctx, acquisitionID, in)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, a)
}

// SetStatus handles PATCH /acquisitions/:id/status.
func (h *AcquisitionHandler) SetStatus(c *gin.Context) {
	ctx := c.Request.Context()
	acquisitionID, ok := h.ParseID(c, entityAcquisition)
	if !ok {
		return
	}
	// 404 wins over body errors here too; see Update.
	if _, err := h.service.Get(ctx, acquisitionID); err != nil {
		h.Error(c, err)
		return
	}

	var req dto.StatusRequest
	if !h.BindJSON(c, &req) {
		return
	}
	a, err := h.service.SetStatus(ctx, acquisitionID, req.ToPayload())
	if err != nil {
		h.Error(c, err)
		return
	}
	logger.Debug(ctx, "status request handled", logger.FieldAcquisitionID, a.ID, "by", h.GetUserID(c))
	h.OK(c, a)
}

// History handles GET /acquisitions/:id/history.
func (h *AcquisitionHandler) History(c *gin.Context) {
	acquisitionID, ok := h.ParseID(c, entityAcquisition)
	if !ok {
		return
	}
	entries, err := h.service.History(c.Request.Context(), acquisitionID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, entries)
}
