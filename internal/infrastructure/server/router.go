package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/petfinder-backend/internal/adapter/handler"
	"github.com/marcos-nsantos/petfinder-backend/internal/infrastructure/middleware"
)

type Router struct {
	engine          *gin.Engine
	reportHandler   *handler.ReportHandler
	hospitalHandler *handler.HospitalHandler
	profileHandler  *handler.ProfileHandler
	mapHandler      *handler.MapHandler
	uploadHandler   *handler.UploadHandler
	authMiddleware  *middleware.AuthMiddleware
	rateLimiter     *middleware.RateLimiter
	corsOrigins     []string
	logger          *zap.Logger
}

type RouterConfig struct {
	ReportHandler   *handler.ReportHandler
	HospitalHandler *handler.HospitalHandler
	ProfileHandler  *handler.ProfileHandler
	MapHandler      *handler.MapHandler
	UploadHandler   *handler.UploadHandler
	AuthMiddleware  *middleware.AuthMiddleware
	// RateLimiter is optional.
	RateLimiter *middleware.RateLimiter
	CORSOrigins []string
	Logger      *zap.Logger
	Environment string
}

func NewRouter(cfg RouterConfig) *Router {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	r := &Router{
		engine:          engine,
		reportHandler:   cfg.ReportHandler,
		hospitalHandler: cfg.HospitalHandler,
		profileHandler:  cfg.ProfileHandler,
		mapHandler:      cfg.MapHandler,
		uploadHandler:   cfg.UploadHandler,
		authMiddleware:  cfg.AuthMiddleware,
		rateLimiter:     cfg.RateLimiter,
		corsOrigins:     cfg.CORSOrigins,
		logger:          cfg.Logger,
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

func (r *Router) setupMiddleware() {
	r.engine.Use(middleware.Recovery(r.logger))
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.logger, "/health", "/metrics"))
	r.engine.Use(middleware.Metrics())
	r.engine.Use(middleware.CORS(r.corsOrigins))
}

func (r *Router) setupRoutes() {
	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger documentation
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.engine.Group("/api/v1")
	if r.rateLimiter != nil {
		api.Use(r.rateLimiter.Limit())
	}

	requireAuth := r.authMiddleware.RequireAuth()
	optionalAuth := r.authMiddleware.OptionalAuth()

	{
		reports := api.Group("/reports")
		{
			reports.GET("", r.reportHandler.List)
			reports.GET("/nearby", optionalAuth, r.mapHandler.NearbyReports)
			reports.GET("/:id", r.reportHandler.Get)
			reports.POST("", requireAuth, r.reportHandler.Create)
			reports.PUT("/:id", requireAuth, r.reportHandler.Update)
			reports.PATCH("/:id/status", requireAuth, r.reportHandler.UpdateStatus)
			reports.DELETE("/:id", requireAuth, r.reportHandler.Delete)
			reports.POST("/:id/photos", requireAuth, r.uploadHandler.Upload)
		}

		hospitals := api.Group("/hospitals")
		{
			hospitals.GET("", r.hospitalHandler.List)
			hospitals.GET("/nearby", optionalAuth, r.mapHandler.NearbyHospitals)
			hospitals.GET("/:id", r.hospitalHandler.Get)
			hospitals.POST("/import", requireAuth, r.hospitalHandler.Import)
		}

		mapGroup := api.Group("/map")
		mapGroup.Use(optionalAuth)
		{
			mapGroup.GET("/locate", r.mapHandler.Locate)
			mapGroup.GET("/view", r.mapHandler.View)
			mapGroup.GET("/zoom", r.mapHandler.Zoom)
		}

		me := api.Group("/me")
		me.Use(requireAuth)
		{
			me.GET("", r.profileHandler.Get)
			me.PATCH("", r.profileHandler.Update)
			me.GET("/reports", r.reportHandler.ListMine)
		}

		photos := api.Group("/photos")
		photos.Use(requireAuth)
		{
			photos.DELETE("/:id", r.uploadHandler.Delete)
		}
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
