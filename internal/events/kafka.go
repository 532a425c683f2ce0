package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"ms-venue/internal/logger"
)

// MessageWriter is the subset of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	Writer MessageWriter
	Topics map[Type]string
	Logger *logger.Logger
}

// NewKafkaPublisher builds a publisher writing to brokers. The writer has no
// default topic; each message carries the topic mapped from its event type.
func NewKafkaPublisher(brokers []string, topics map[Type]string, log *logger.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}
	return &KafkaPublisher{Writer: writer, Topics: topics, Logger: log}
}

func (p *KafkaPublisher) Publish(ctx context.Context, e Event) error {
	topic, ok := p.Topics[e.Type]
	if !ok {
		return fmt.Errorf("no kafka topic configured for %s", e.Type)
	}
	msgBytes, err := json.Marshal(e)
	if err != nil {
		return err
	}

	p.Logger.LogEvent("PUBLISH", topic, fmt.Sprintf("key=%s id=%s", e.Key, e.ID))

	return p.Writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(e.Key),
		Value: msgBytes,
		Time:  e.OccurredAt,
	})
}

func (p *KafkaPublisher) Close() error {
	return p.Writer.Close()
}

// EnsureTopicsExist creates topics on the cluster controller, skipping the
// ones that already exist.
func EnsureTopicsExist(ctx context.Context, brokers []string, topics []string, log *logger.Logger) error {
	if len(brokers) == 0 {
		return errors.New("no kafka brokers configured")
	}
	conn, err := kafka.DialContext(ctx, "tcp", brokers[0])
	if err != nil {
		return fmt.Errorf("failed to dial kafka broker %s: %w", brokers[0], err)
	}
	defer conn.Close()

	controller, err := conn.Controller()
	if err != nil {
		return fmt.Errorf("failed to find kafka controller: %w", err)
	}
	controllerConn, err := kafka.DialContext(ctx, "tcp", fmt.Sprintf("%s:%d", controller.Host, controller.Port))
	if err != nil {
		return fmt.Errorf("failed to dial kafka controller: %w", err)
	}
	defer controllerConn.Close()

	for _, topic := range topics {
		err = controllerConn.CreateTopics(kafka.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		})
		switch {
		case err == nil:
			log.Info("KAFKA", "Created topic: "+topic)
		case errors.Is(err, kafka.TopicAlreadyExists):
			log.Debug("KAFKA", "Topic already exists: "+topic)
		default:
			// keep going; the writer auto-creates topics as a fallback
			log.Warn("KAFKA", fmt.Sprintf("Error creating topic %s: %v", topic, err))
		}
	}
	return nil
}
