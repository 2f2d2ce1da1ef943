package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/phambaophuc/image-thumb/internal/models"
	"github.com/redis/go-redis/v9"
)

const JobKeyPrefix = "warmup_job:"

var ErrJobTrackingDisabled = errors.New("job tracking not configured")

func JobKey(id string) string {
	return JobKeyPrefix + id
}

// SaveJob stores the current state of a warm-up job, replacing any
// earlier state. Jobs expire with the index TTL.
func (s *StorageService) SaveJob(ctx context.Context, job *models.WarmupJob) error {
	if !s.IndexEnabled() {
		return nil
	}

	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	if err := s.redisClient.Set(ctx, JobKey(job.ID), data, s.cacheDuration).Err(); err != nil {
		return fmt.Errorf("job save error: %w", err)
	}
	return nil
}

// GetJob returns the stored job, or nil when it is unknown or expired.
func (s *StorageService) GetJob(ctx context.Context, id string) (*models.WarmupJob, error) {
	if !s.IndexEnabled() {
		return nil, ErrJobTrackingDisabled
	}

	data, err := s.redisClient.Get(ctx, JobKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("job get error: %w", err)
	}

	var job models.WarmupJob
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("job decode error: %w", err)
	}
	return &job, nil
}
