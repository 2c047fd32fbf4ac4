// Package worker bridges in-process domain events to external systems.
package worker

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/spec-kit/hotel-maintenance/internal/config"
	"github.com/spec-kit/hotel-maintenance/internal/events"
)

// BrokerPublisher forwards every dispatched event to a durable RabbitMQ
// queue as JSON. Publish failures are logged and swallowed; the broker
// is an observer of mutations, never a participant in them.
type BrokerPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	logger  *zap.Logger
}

// StartBrokerPublisher connects to the broker and subscribes to the
// full event stream. Returns nil when no broker URL is configured.
func StartBrokerPublisher(cfg config.BrokerConfig, dispatcher events.Dispatcher, logger *zap.Logger) (*BrokerPublisher, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, err
	}
	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if _, err := channel.QueueDeclare(cfg.Queue, true, false, false, false, nil); err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, err
	}

	publisher := &BrokerPublisher{
		conn:    conn,
		channel: channel,
		queue:   cfg.Queue,
		logger:  logger,
	}
	for _, eventType := range events.AllEventTypes {
		dispatcher.Subscribe(eventType, publisher.handle)
	}
	logger.Info("broker publisher started", zap.String("queue", cfg.Queue))
	return publisher, nil
}

func (p *BrokerPublisher) handle(ctx context.Context, event events.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("marshal event for broker", zap.Error(err))
		return err
	}
	err = p.channel.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		p.logger.Error("publish event to broker", zap.Error(err), zap.String("type", string(event.Type)))
	}
	return err
}

// Close releases the channel and connection.
func (p *BrokerPublisher) Close() {
	if p == nil {
		return
	}
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
