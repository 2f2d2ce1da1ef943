package queue

import (
	"fmt"

	"github.com/phambaophuc/image-thumb/internal/models"
)

func (q *QueueService) GetQueueStats() (map[string]interface{}, error) {
	if q == nil || q.channel == nil {
		return map[string]interface{}{"status": models.HealthNotConfigured}, nil
	}

	queueInfo, err := q.channel.QueueInspect(q.queueName)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect queue: %w", err)
	}

	stats := map[string]interface{}{
		"messages":  queueInfo.Messages,
		"consumers": queueInfo.Consumers,
		"name":      queueInfo.Name,
	}

	return stats, nil
}

// HealthCheck checks if RabbitMQ is available
func (q *QueueService) HealthCheck() string {
	if q == nil {
		return models.HealthNotConfigured
	}

	if q.conn == nil || q.conn.IsClosed() {
		return models.HealthUnhealthy + ": connection closed"
	}

	if q.channel == nil {
		return models.HealthUnhealthy + ": channel not available"
	}

	return models.HealthHealthy
}
