package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"procurement/internal/core/apperror"
	"procurement/internal/infrastructure/http/v1/handlers"
	"procurement/internal/infrastructure/http/v1/middleware"
	"procurement/internal/infrastructure/metrics"
	"procurement/pkg/logger"
)

// Service is everything the API needs from the acquisition service.
type Service interface {
	handlers.AcquisitionService
	handlers.CatalogProvider
	handlers.Counter
}

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Service owns acquisitions, history and catalogs
	Service Service

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator guards mutating routes; nil disables auth
	JWTValidator middleware.JWTValidator

	// Metrics is optional; when set /metrics is served
	Metrics *metrics.Metrics

	// Storage is pinged by the readiness probe
	Storage handlers.Pinger

	// StorageDriver is reported by /health/info
	StorageDriver string

	// CORSAllowOrigin is sent in Access-Control-Allow-Origin
	CORSAllowOrigin string
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	// Numbers reach the validator as json.Number so decimals stay exact.
	binding.EnableDecoderUseNumber = true

	if cfg.Logger == nil {
		cfg.Logger = logger.Default()
	}

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace(cfg.Logger))
	router.Use(middleware.Logger(cfg.Logger))
	if cfg.Metrics != nil {
		router.Use(middleware.Metrics(cfg.Metrics))
	}
	router.Use(middleware.CORS(cfg.CORSAllowOrigin))
	router.Use(middleware.ErrorHandler())

	router.NoRoute(func(c *gin.Context) {
		_ = c.Error(apperror.NewNotFound("route", c.Request.URL.Path))
	})

	healthHandler := handlers.NewHealthHandler(handlers.HealthConfig{
		Storage:     cfg.Storage,
		Driver:      cfg.StorageDriver,
		Counter:     cfg.Service,
		AuthEnabled: cfg.JWTValidator != nil,
	})
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	if cfg.Metrics != nil {
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	var guard []gin.HandlerFunc
	if cfg.JWTValidator != nil {
		guard = append(guard, middleware.Auth(cfg.JWTValidator))
	}

	baseHandler := handlers.NewBaseHandler()
	api := router.Group("/api")
	{
		catalogHandler := handlers.NewCatalogHandler(baseHandler, cfg.Service)
		api.GET("/catalogs", catalogHandler.Get)
		api.GET("/catalogs.xml", catalogHandler.GetXML)

		acquisitionHandler := handlers.NewAcquisitionHandler(baseHandler, cfg.Service)
		RegisterAcquisitionRoutes(api.Group("/acquisitions"), acquisitionHandler, guard...)
	}

	return router
}
