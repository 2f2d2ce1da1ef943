package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/image-thumb/internal/config"
	"github.com/phambaophuc/image-thumb/internal/http/handlers"
	"github.com/phambaophuc/image-thumb/internal/http/routes"
	"github.com/phambaophuc/image-thumb/internal/logging"
	"github.com/phambaophuc/image-thumb/internal/metrics"
	"github.com/phambaophuc/image-thumb/internal/services/processor"
	"github.com/phambaophuc/image-thumb/internal/services/queue"
	"github.com/phambaophuc/image-thumb/internal/services/storage"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	// Initialize logger
	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatal("Failed to initialize logger: ", err)
	}
	defer logger.Sync()

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize services
	imageProcessor, err := processor.NewImageProcessor(
		cfg.Images.InputDir,
		cfg.Images.OutputDir,
		processor.WithLogger(logger),
		processor.WithQuality(cfg.Images.JPEGQuality),
		processor.WithMaxDimension(cfg.Images.MaxDimension),
		processor.WithObserver(metrics.NewResizeObserver()),
	)
	if err != nil {
		logger.Fatal("Failed to initialize image processor", zap.Error(err))
	}

	storageService, err := storage.NewStorageService(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize storage service", zap.Error(err))
	}
	defer storageService.Close()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Continue without the queue: warm-up requests then answer 503.
	var queueService *queue.QueueService
	if cfg.RabbitMQ.URL != "" {
		queueService, err = queue.NewQueueService(cfg.RabbitMQ.URL, cfg.RabbitMQ.QueueName, imageProcessor, storageService, logger)
		if err != nil {
			logger.Warn("Failed to initialize queue service", zap.Error(err))
			queueService = nil
		} else if err := queueService.StartWorkers(ctx, cfg.RabbitMQ.Workers); err != nil {
			logger.Warn("Failed to start queue workers", zap.Error(err))
		}
	}
	defer queueService.Close()

	metrics.AvailableImages.Set(float64(len(imageProcessor.ListAvailable())))

	// Initialize handlers
	imageHandler := handlers.NewImageHandler(imageProcessor, storageService, queueService, logger)

	router := routes.NewRouter(imageHandler, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		Handler:      router.SetupRoutes(),
	}

	// Start server
	go func() {
		logger.Info("Starting server",
			zap.String("addr", server.Addr),
			zap.String("input_dir", imageProcessor.InputDir()),
			zap.String("output_dir", imageProcessor.OutputDir()),
			zap.Bool("index", storageService.IndexEnabled()),
			zap.Bool("mirror", storageService.MirrorEnabled()),
			zap.Bool("queue", queueService != nil))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	stop()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
