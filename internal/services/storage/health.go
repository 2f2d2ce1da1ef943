package storage

import (
	"context"

	"github.com/phambaophuc/image-thumb/internal/models"
	storage_go "github.com/supabase-community/storage-go"
	"go.uber.org/zap"
)

// HealthCheck checks Redis + Supabase
func (s *StorageService) HealthCheck(ctx context.Context) map[string]string {
	status := map[string]string{
		"redis":    models.HealthNotConfigured,
		"supabase": models.HealthNotConfigured,
	}

	if s.IndexEnabled() {
		if err := s.redisClient.Ping(ctx).Err(); err != nil {
			status["redis"] = models.HealthUnhealthy + ": " + err.Error()
		} else {
			status["redis"] = models.HealthHealthy
		}
	}

	if s.MirrorEnabled() {
		if _, err := s.sbClient.ListFiles(s.bucket, mirrorPrefix, storage_go.FileSearchOptions{Limit: 1}); err != nil {
			s.logger.Warn("Supabase health check failed", zap.Error(err))
			status["supabase"] = models.HealthUnhealthy + ": " + err.Error()
		} else {
			status["supabase"] = models.HealthHealthy
		}
	}

	return status
}
