package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/image-thumb/internal/http/handlers"
	"github.com/phambaophuc/image-thumb/internal/http/middleware"
	"github.com/phambaophuc/image-thumb/internal/models"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Router struct {
	imageHandler *handlers.ImageHandler
	logger       *zap.Logger
}

func NewRouter(
	imageHandler *handlers.ImageHandler,
	logger *zap.Logger,
) *Router {
	return &Router{
		imageHandler: imageHandler,
		logger:       logger,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger(r.logger))
	router.Use(middleware.ErrorHandler(r.logger))
	router.Use(middleware.Metrics())
	router.Use(middleware.SecurityHeaders())

	router.GET("/health", r.imageHandler.Liveness)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.GET("/health", r.imageHandler.HealthCheck)
		api.GET("/stats", r.imageHandler.GetStats)

		images := api.Group("/images")
		{
			images.GET("", r.imageHandler.ListImages)
			images.GET("/resize", middleware.ValidateResizeParams(), r.imageHandler.ResizeImage)
			images.POST("/warmup", r.imageHandler.Warmup)
			images.GET("/warmup/:id", r.imageHandler.GetJob)
			images.DELETE("/thumbs/:filename", r.imageHandler.Invalidate)
		}
	}

	router.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(http.StatusNotFound, models.APIResponse{
			Success: false,
			Error:   "Route not found",
		})
	})

	return router
}
