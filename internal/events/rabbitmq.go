package events

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"ms-venue/internal/logger"
)

// RabbitPublisher sends each event to a durable queue named after its type.
// A connection is dialled per publish; volumes here are operator-driven.
type RabbitPublisher struct {
	URL    string
	Logger *logger.Logger
	dial   func(url string) (*amqp.Connection, error)
}

func NewRabbitPublisher(url string, log *logger.Logger) *RabbitPublisher {
	return &RabbitPublisher{URL: url, Logger: log, dial: amqp.Dial}
}

func (p *RabbitPublisher) Publish(ctx context.Context, e Event) error {
	queue := string(e.Type)

	conn, err := p.dial(p.URL)
	if err != nil {
		p.Logger.Error("RABBITMQ", fmt.Sprintf("dial failed: %v", err))
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("rabbitmq queue declare %s: %w", queue, err)
	}

	body, err := json.Marshal(e)
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    e.ID,
		Timestamp:    e.OccurredAt,
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queue, false, false, pub); err != nil {
		return fmt.Errorf("rabbitmq publish %s: %w", queue, err)
	}

	p.Logger.LogEvent("PUBLISH", queue, fmt.Sprintf("key=%s id=%s", e.Key, e.ID))
	return nil
}

func (p *RabbitPublisher) Close() error { return nil }
