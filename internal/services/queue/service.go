package queue

import (
	"fmt"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

type QueueService struct {
	conn      *amqp.Connection
	channel   *amqp.Channel
	logger    *zap.Logger
	queueName string
	processor ImageProcessor
	storage   DerivedStore
}

func NewQueueService(
	rabbitmqURL string,
	queueName string,
	processor ImageProcessor,
	storage DerivedStore,
	logger *zap.Logger,
) (*QueueService, error) {
	conn, err := amqp.Dial(rabbitmqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = channel.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	// One unacknowledged job per worker at a time.
	if err := channel.Qos(1, 0, false); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to set prefetch: %w", err)
	}

	return &QueueService{
		conn:      conn,
		channel:   channel,
		logger:    logger,
		queueName: queueName,
		processor: processor,
		storage:   storage,
	}, nil
}

// Enabled reports whether jobs can be published.
func (q *QueueService) Enabled() bool {
	return q != nil && q.channel != nil
}

// Close closes the queue connection
func (q *QueueService) Close() error {
	if q == nil {
		return nil
	}
	if q.channel != nil {
		q.channel.Close()
	}
	if q.conn != nil {
		return q.conn.Close()
	}
	return nil
}
