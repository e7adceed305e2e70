package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"procurement/internal/core/apperror"
	"procurement/internal/domain/catalog"
)

// CatalogProvider supplies the reference lists.
type CatalogProvider interface {
	Catalogs(ctx context.Context) catalog.Catalogs
}

// CatalogHandler serves /api/catalogs.
type CatalogHandler struct {
	*BaseHandler
	provider CatalogProvider
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(base *BaseHandler, provider CatalogProvider) *CatalogHandler {
	return &CatalogHandler{BaseHandler: base, provider: provider}
}

// Get handles GET /catalogs.
func (h *CatalogHandler) Get(c *gin.Context) {
	h.OK(c, h.provider.Catalogs(c.Request.Context()))
}

// GetXML handles GET /catalogs.xml.
func (h *CatalogHandler) GetXML(c *gin.Context) {
	data, err := h.provider.Catalogs(c.Request.Context()).XML()
	if err != nil {
		h.Error(c, apperror.NewInternal(err))
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", data)
}
