// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"
)

// AcquisitionRouteHandler defines the handlers behind /acquisitions.
type AcquisitionRouteHandler interface {
	List(c *gin.Context)
	Export(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	SetStatus(c *gin.Context)
	History(c *gin.Context)
}

// RegisterAcquisitionRoutes wires the acquisition routes on group. Every
// handler in guard runs before the mutating routes only.
//
// Usage:
//
//	handler := handlers.NewAcquisitionHandler(baseHandler, service)
//	RegisterAcquisitionRoutes(api.Group("/acquisitions"), handler, middleware.Auth(jwt))
func RegisterAcquisitionRoutes(group *gin.RouterGroup, handler AcquisitionRouteHandler, guard ...gin.HandlerFunc) {
	mutating := func(h gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, guard...), h)
	}

	group.GET("", handler.List)
	group.GET("/export.xlsx", handler.Export)
	group.GET("/:id", handler.Get)
	group.GET("/:id/history", handler.History)
	group.POST("", mutating(handler.Create)...)
	group.PUT("/:id", mutating(handler.Update)...)
	group.PATCH("/:id/status", mutating(handler.SetStatus)...)
}
