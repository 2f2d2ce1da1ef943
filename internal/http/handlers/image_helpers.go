package handlers

import (
	"context"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/image-thumb/internal/models"
	"github.com/phambaophuc/image-thumb/internal/services/storage"
	"go.uber.org/zap"
)

const publishTimeout = 30 * time.Second

// === RESPONSE HANDLING ===

func (h *ImageHandler) respondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, models.APIResponse{
		Success: false,
		Error:   message,
	})
}

// === STORAGE OPERATIONS ===

func (h *ImageHandler) recordHit(c *gin.Context) {
	if err := h.storage.RecordHit(c.Request.Context()); err != nil {
		h.logger.Warn("Failed to record cache hit", zap.Error(err))
	}
}

// mirroredURL looks up the public URL recorded for a derived image.
func (h *ImageHandler) mirroredURL(c *gin.Context, outputPath string) string {
	image, err := h.storage.GetDerived(c.Request.Context(), filepath.Base(outputPath))
	if err != nil {
		h.logger.Warn("Failed to read index entry", zap.String("path", outputPath), zap.Error(err))
		return ""
	}
	if image == nil {
		return ""
	}
	return image.URL
}

func (h *ImageHandler) saveJob(c *gin.Context, job *models.WarmupJob) {
	if err := h.storage.SaveJob(c.Request.Context(), job); err != nil {
		h.logger.Warn("Failed to save job state", zap.String("job_id", job.ID), zap.Error(err))
	}
}

// publishInBackground mirrors and indexes a new derived image without
// holding up the response.
func (h *ImageHandler) publishInBackground(req models.ProcessingRequest, outputPath string) {
	if !h.storage.IndexEnabled() && !h.storage.MirrorEnabled() {
		return
	}

	image, err := storage.Describe(req, outputPath)
	if err != nil {
		h.logger.Warn("Failed to describe derived image",
			zap.String("path", outputPath),
			zap.Error(err))
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		h.storage.Publish(ctx, []models.DerivedImage{image})
	}()
}

func (h *ImageHandler) forgetRemoved(c *gin.Context, removed []string) {
	if len(removed) == 0 {
		return
	}

	ctx := c.Request.Context()
	if err := h.storage.Forget(ctx, removed...); err != nil {
		h.logger.Warn("Failed to drop index entries", zap.Error(err))
	}
	if err := h.storage.RemoveMirrored(ctx, removed); err != nil {
		h.logger.Warn("Failed to remove mirrored copies", zap.Error(err))
	}
}

// === UTILITY METHODS ===

func (h *ImageHandler) calculateOverallHealth(services map[string]string) string {
	for _, status := range services {
		if status != models.HealthHealthy && status != models.HealthNotConfigured {
			return models.HealthUnhealthy
		}
	}
	return models.HealthHealthy
}
