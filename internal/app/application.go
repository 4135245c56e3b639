package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fairway-content-backend/internal/blocks"
	"fairway-content-backend/internal/config"
	"fairway-content-backend/internal/handlers"
	"fairway-content-backend/internal/middleware"
	"fairway-content-backend/internal/service"
	"fairway-content-backend/pkg/logger"
)

type Application struct {
	cfg *config.Config

	registry       *blocks.Registry
	contentService *service.ContentService
	contentHandler *handlers.ContentHandler
	rateLimits     *middleware.RateLimitManager

	router *gin.Engine
	server *http.Server
}

func New(cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	app := &Application{cfg: cfg}

	app.initServices()
	app.initHandlers()
	app.initRouter()

	app.server = &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        app.router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	return app, nil
}

func (a *Application) Run() error {
	logger.Info("Server starting", map[string]interface{}{
		"port":        a.cfg.Port,
		"environment": a.cfg.Environment,
		"block_types": a.registry.Types(),
	})

	return a.server.ListenAndServe()
}

func (a *Application) Shutdown(ctx context.Context) error {
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			return err
		}
	}

	if a.rateLimits != nil {
		if err := a.rateLimits.Shutdown(); err != nil {
			logger.Error(err, "Failed to stop rate limiter", nil)
		}
	}

	return nil
}

func (a *Application) Router() *gin.Engine {
	return a.router
}

func (a *Application) initServices() {
	a.registry = blocks.DefaultRegistry()
	a.contentService = service.NewContentService(a.registry, service.ContentServiceOptions{
		Development:    a.cfg.IsDevelopment(),
		Logger:         logger.Logger,
		ClassPrefix:    a.cfg.ContentClassPrefix,
		WordsPerMinute: a.cfg.ReadTimeWPM,
		MaxBlocks:      a.cfg.MaxBlocksPerRequest,
		ExcerptLength:  a.cfg.ExcerptLength,
	})
}

func (a *Application) initHandlers() {
	a.contentHandler = handlers.NewContentHandler(a.contentService)
}

func (a *Application) initRouter() {
	if a.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	a.rateLimits = middleware.NewRateLimitManager(context.Background())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(logger.GinLogger())
	router.Use(middleware.SecurityHeadersMiddleware())
	if a.cfg.EnableMetrics {
		router.Use(middleware.MetricsMiddleware())
	}
	router.Use(middleware.RateLimitMiddleware(a.cfg, a.rateLimits))

	if len(a.cfg.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:  a.cfg.CORSOrigins,
			AllowMethods:  []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", middleware.RequestIDHeader},
			ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
			MaxAge:        12 * time.Hour,
		}))
	} else {
		logger.Warn("No CORS origins configured, cross-origin requests are disabled", nil)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "healthy",
			"block_types": len(a.registry.Types()),
		})
	})
	if a.cfg.EnableMetrics {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	v1 := router.Group("/api/v1")
	{
		content := v1.Group("/content")
		content.POST("/render", a.contentHandler.Render)
		content.POST("/sanitize", a.contentHandler.Sanitize)
		content.POST("/read-time", a.contentHandler.ReadTime)
		content.GET("/block-types", a.contentHandler.BlockTypes)
	}

	a.router = router
}
