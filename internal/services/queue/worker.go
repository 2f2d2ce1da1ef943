package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/phambaophuc/image-thumb/internal/metrics"
	"github.com/phambaophuc/image-thumb/internal/models"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// StartWorkers starts count consumers that run until ctx is done.
func (q *QueueService) StartWorkers(ctx context.Context, count int) error {
	for i := 1; i <= max(1, count); i++ {
		if err := q.StartWorker(ctx, i); err != nil {
			return err
		}
	}
	return nil
}

func (q *QueueService) StartWorker(ctx context.Context, workerID int) error {
	msgs, err := q.channel.Consume(
		q.queueName,                        // queue
		fmt.Sprintf("worker-%d", workerID), // consumer
		false,                              // auto-ack
		false,                              // exclusive
		false,                              // no-local
		false,                              // no-wait
		nil,                                // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	q.logger.Info("Worker started", zap.Int("worker_id", workerID))

	go func() {
		for {
			select {
			case <-ctx.Done():
				q.logger.Info("Worker stopping", zap.Int("worker_id", workerID))
				return
			case msg, ok := <-msgs:
				if !ok {
					q.logger.Warn("Message channel closed", zap.Int("worker_id", workerID))
					return
				}

				q.processMessage(ctx, msg, workerID)
			}
		}
	}()

	return nil
}

func (q *QueueService) processMessage(ctx context.Context, msg amqp.Delivery, workerID int) {
	var job models.WarmupJob
	if err := json.Unmarshal(msg.Body, &job); err != nil {
		q.logger.Error("Failed to unmarshal job",
			zap.Error(err),
			zap.Int("worker_id", workerID))
		metrics.WarmupJobsTotal.WithLabelValues("malformed").Inc()
		msg.Nack(false, false) // Don't requeue malformed messages
		return
	}

	q.logger.Info("Processing job",
		zap.String("job_id", job.ID),
		zap.Int("worker_id", workerID))

	q.runJob(ctx, &job)

	if err := msg.Ack(false); err != nil {
		q.logger.Error("Failed to ack message",
			zap.String("job_id", job.ID),
			zap.Error(err))
	}
}

// runJob processes job in place and records its final status.
func (q *QueueService) runJob(ctx context.Context, job *models.WarmupJob) {
	job.Status = models.StatusProcessing
	q.saveJob(ctx, job)

	results, err := q.processJob(ctx, job)
	job.Results = results
	if err != nil {
		job.Status = models.StatusFailed
		job.Error = err.Error()
		q.logger.Error("Job processing failed",
			zap.String("job_id", job.ID),
			zap.Error(err))
	} else {
		job.Status = models.StatusCompleted
		q.logger.Info("Job completed successfully",
			zap.String("job_id", job.ID),
			zap.Int("sizes", len(results)))
	}

	q.saveJob(ctx, job)
	metrics.WarmupJobsTotal.WithLabelValues(job.Status).Inc()
}

func (q *QueueService) saveJob(ctx context.Context, job *models.WarmupJob) {
	if err := q.storage.SaveJob(ctx, job); err != nil {
		q.logger.Warn("Failed to save job state",
			zap.String("job_id", job.ID),
			zap.Error(err))
	}
}
