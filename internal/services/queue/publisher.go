package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phambaophuc/image-thumb/internal/models"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

var ErrQueueDisabled = errors.New("warm-up queue not configured")

// NewWarmupJob builds a pending job for req.
func NewWarmupJob(req models.WarmupRequest) *models.WarmupJob {
	return &models.WarmupJob{
		ID:        uuid.New().String(),
		Filename:  req.Filename,
		Sizes:     req.Sizes,
		Status:    models.StatusPending,
		CreatedAt: time.Now().UTC(),
	}
}

func (q *QueueService) PublishJob(ctx context.Context, job *models.WarmupJob) error {
	if !q.Enabled() {
		return ErrQueueDisabled
	}

	jobBytes, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	err = q.channel.Publish(
		"",          // exchange
		q.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         jobBytes,
			DeliveryMode: amqp.Persistent,
			MessageId:    job.ID,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish job: %w", err)
	}

	q.logger.Info("Job published to queue",
		zap.String("job_id", job.ID),
		zap.String("filename", job.Filename),
		zap.Int("sizes", len(job.Sizes)))
	return nil
}
