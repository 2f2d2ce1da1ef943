package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/image-thumb/internal/http/middleware"
	"github.com/phambaophuc/image-thumb/internal/metrics"
	"github.com/phambaophuc/image-thumb/internal/models"
	"github.com/phambaophuc/image-thumb/internal/services/processor"
	"github.com/phambaophuc/image-thumb/internal/services/queue"
	"github.com/phambaophuc/image-thumb/internal/services/storage"
	"go.uber.org/zap"
)

const (
	maxCacheAge = 3600

	cacheHit  = "HIT"
	cacheMiss = "MISS"
)

type ImageHandler struct {
	processor *processor.ImageProcessor
	storage   *storage.StorageService
	queue     *queue.QueueService
	logger    *zap.Logger
}

// NewImageHandler wires the handlers. storage and queue may be nil.
func NewImageHandler(
	processor *processor.ImageProcessor,
	storage *storage.StorageService,
	queue *queue.QueueService,
	logger *zap.Logger,
) *ImageHandler {
	return &ImageHandler{
		processor: processor,
		storage:   storage,
		queue:     queue,
		logger:    logger,
	}
}

// === MAIN API ENDPOINTS ===

func (h *ImageHandler) ListImages(c *gin.Context) {
	images := h.processor.ListAvailable()
	metrics.AvailableImages.Set(float64(len(images)))

	c.JSON(http.StatusOK, models.ImageListResponse{
		Success: true,
		Images:  images,
		Message: fmt.Sprintf("Found %d available images", len(images)),
	})
}

// ResizeImage serves the derived image for a request validated by
// middleware.ValidateResizeParams.
func (h *ImageHandler) ResizeImage(c *gin.Context) {
	req, ok := c.Get(middleware.ResizeRequestKey)
	if !ok {
		h.respondError(c, http.StatusBadRequest, middleware.MsgMissingParams)
		return
	}
	request := req.(models.ProcessingRequest)

	result := h.processor.ProcessImage(request)
	if !result.Success {
		h.respondError(c, http.StatusBadRequest, result.Error)
		return
	}

	status := cacheMiss
	if result.Cached {
		status = cacheHit
		h.recordHit(c)
		if url := h.mirroredURL(c, result.OutputPath); url != "" {
			c.Header("X-Mirror-URL", url)
		}
	} else {
		h.publishInBackground(request, result.OutputPath)
	}

	c.Set(middleware.CacheStatusKey, status)
	c.Header("X-Cache", status)
	c.Header("Cache-Control", fmt.Sprintf("public, max-age=%d", maxCacheAge))
	c.File(result.OutputPath)
}

func (h *ImageHandler) Warmup(c *gin.Context) {
	var req models.WarmupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, fmt.Sprintf("Invalid warm-up request: %v", err))
		return
	}

	if !h.queue.Enabled() {
		h.respondError(c, http.StatusServiceUnavailable, queue.ErrQueueDisabled.Error())
		return
	}

	// Saved before publishing so a fast worker's update is never overwritten.
	job := queue.NewWarmupJob(req)
	h.saveJob(c, job)

	if err := h.queue.PublishJob(c.Request.Context(), job); err != nil {
		h.logger.Error("Failed to queue warm-up job", zap.Error(err))
		job.Status = models.StatusFailed
		job.Error = err.Error()
		h.saveJob(c, job)
		h.respondError(c, http.StatusInternalServerError, "Failed to queue warm-up job")
		return
	}

	c.JSON(http.StatusAccepted, models.APIResponse{
		Success: true,
		Data:    job,
		Message: fmt.Sprintf("Queued %d sizes for %s", len(job.Sizes), job.Filename),
	})
}

// GetJob reports the latest stored state of a warm-up job.
func (h *ImageHandler) GetJob(c *gin.Context) {
	job, err := h.storage.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrJobTrackingDisabled) {
			h.respondError(c, http.StatusServiceUnavailable, err.Error())
			return
		}
		h.logger.Error("Failed to load job", zap.String("job_id", c.Param("id")), zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, "Failed to load job")
		return
	}
	if job == nil {
		h.respondError(c, http.StatusNotFound, "Job not found")
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    job,
	})
}

// Invalidate removes every derived image of a source.
func (h *ImageHandler) Invalidate(c *gin.Context) {
	filename := c.Param("filename")

	removed, err := h.processor.Invalidate(filename)
	if err != nil {
		var inputErr *processor.InputError
		if errors.As(err, &inputErr) {
			h.respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Failed to invalidate derived images",
			zap.String("filename", filename),
			zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, "Failed to remove derived images")
		return
	}

	h.forgetRemoved(c, removed)

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    gin.H{"removed": len(removed)},
	})
}

// Liveness is the plain process probe; it never touches backends.
func (h *ImageHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, models.StatusResponse{
		Status:  "OK",
		Message: "Image Processing API is running",
	})
}

// HealthCheck reports each optional backend; "not configured" counts as
// healthy, anything else unhealthy turns the response into a 503.
func (h *ImageHandler) HealthCheck(c *gin.Context) {
	services := h.storage.HealthCheck(c.Request.Context())
	services["rabbitmq"] = h.queue.HealthCheck()
	overall := h.calculateOverallHealth(services)

	statusCode := http.StatusOK
	if overall == models.HealthUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, models.APIResponse{
		Success: overall == models.HealthHealthy,
		Data: models.HealthCheck{
			Status:    overall,
			Timestamp: time.Now(),
			Services:  services,
		},
	})
}

func (h *ImageHandler) GetStats(c *gin.Context) {
	cacheStats, err := h.storage.GetCacheStats(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to get cache stats", zap.Error(err))
		cacheStats = map[string]interface{}{"error": err.Error()}
	}

	queueStats, err := h.queue.GetQueueStats()
	if err != nil {
		h.logger.Error("Failed to get queue stats", zap.Error(err))
		queueStats = map[string]interface{}{"error": err.Error()}
	}

	stats := map[string]interface{}{
		"cache":     cacheStats,
		"queue":     queueStats,
		"images":    len(h.processor.ListAvailable()),
		"timestamp": time.Now(),
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    stats,
	})
}
