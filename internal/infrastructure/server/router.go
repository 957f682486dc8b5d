package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/photo-locations/internal/adapter/handler"
	"github.com/marcos-nsantos/photo-locations/internal/infrastructure/middleware"
)

type Router struct {
	engine            *gin.Engine
	extractionHandler *handler.ExtractionHandler
	requestsPerSecond int
	logger            *zap.Logger
}

type RouterConfig struct {
	ExtractionHandler *handler.ExtractionHandler
	RequestsPerSecond int
	Logger            *zap.Logger
	Environment       string
}

func NewRouter(cfg RouterConfig) *Router {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := &Router{
		engine:            gin.New(),
		extractionHandler: cfg.ExtractionHandler,
		requestsPerSecond: cfg.RequestsPerSecond,
		logger:            cfg.Logger,
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

func (r *Router) setupMiddleware() {
	r.engine.Use(middleware.Recovery(r.logger))
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.CORS())
}

func (r *Router) setupRoutes() {
	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.engine.Group("/api/v1")
	{
		extractions := api.Group("/extractions")
		extractions.Use(middleware.Throttle(r.requestsPerSecond))
		{
			extractions.POST("", r.extractionHandler.Extract)
			extractions.POST("/geojson", r.extractionHandler.GeoJSON)
			extractions.POST("/csv", r.extractionHandler.CSV)
		}
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
