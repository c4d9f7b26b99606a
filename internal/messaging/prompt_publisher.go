package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"prompt-server/internal/interfaces"
)

const (
	// ExchangePromptUpdates is the fanout exchange prompt change events are
	// published to. Agent workers bind ephemeral queues to it and drop any
	// locally held prompt copy on receipt.
	ExchangePromptUpdates = "prompt_updates"
)

// Compile-time check
var _ interfaces.PromptEventPublisher = (*RabbitPromptPublisher)(nil)

// RabbitPromptPublisher publishes prompt change events to RabbitMQ.
type RabbitPromptPublisher struct {
	conn   *amqp091.Connection
	ch     *amqp091.Channel
	logger *zap.Logger
}

// NewRabbitPromptPublisher opens a channel on an established connection and
// declares the durable fanout exchange. Reconnect handling is the caller's
// responsibility.
func NewRabbitPromptPublisher(conn *amqp091.Connection, logger *zap.Logger) (*RabbitPromptPublisher, error) {
	if conn == nil {
		return nil, fmt.Errorf("rabbitmq connection is nil")
	}
	log := logger.Named("RabbitPromptPublisher")

	ch, err := conn.Channel()
	if err != nil {
		log.Error("Failed to open a channel", zap.Error(err))
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		ExchangePromptUpdates, // name
		"fanout",              // type
		true,                  // durable
		false,                 // auto-deleted
		false,                 // internal
		false,                 // no-wait
		nil,                   // arguments
	)
	if err != nil {
		_ = ch.Close()
		log.Error("Failed to declare exchange", zap.Error(err), zap.String("exchange", ExchangePromptUpdates))
		return nil, fmt.Errorf("failed to declare exchange %q: %w", ExchangePromptUpdates, err)
	}

	log.Info("Prompt update exchange declared", zap.String("exchange", ExchangePromptUpdates))
	return &RabbitPromptPublisher{conn: conn, ch: ch, logger: log}, nil
}

// PublishPromptEvent publishes a prompt change event.
func (p *RabbitPromptPublisher) PublishPromptEvent(ctx context.Context, event interfaces.PromptEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal prompt event", zap.Error(err), zap.String("slug", event.Slug))
		return fmt.Errorf("failed to marshal prompt event: %w", err)
	}

	err = p.ch.PublishWithContext(ctx,
		ExchangePromptUpdates, // exchange
		"",                    // routing key (unused for fanout)
		false,                 // mandatory
		false,                 // immediate
		amqp091.Publishing{
			ContentType: "application/json",
			Body:        body,
			Timestamp:   time.Now(),
		},
	)
	if err != nil {
		p.logger.Error("Failed to publish prompt event", zap.Error(err), zap.String("slug", event.Slug))
		return fmt.Errorf("failed to publish prompt event: %w", err)
	}

	p.logger.Debug("Prompt event published",
		zap.String("eventType", string(event.EventType)),
		zap.String("slug", event.Slug),
		zap.Int("versionNumber", event.VersionNumber),
	)
	return nil
}

// Close releases the channel.
func (p *RabbitPromptPublisher) Close() error {
	return p.ch.Close()
}

// NoopPromptPublisher is used when RabbitMQ is not configured.
type NoopPromptPublisher struct{}

func (NoopPromptPublisher) PublishPromptEvent(context.Context, interfaces.PromptEvent) error {
	return nil
}
