package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"neurovita_checkout/internal/domain/entities"
	"neurovita_checkout/internal/usecase/interfaces"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

const DefaultOrdersTopic = "neurovita.orders"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaOrderEventPublisher writes order events keyed by order id so one order's events stay ordered.
type KafkaOrderEventPublisher struct {
	w       messageWriter
	topic   string
	timeout time.Duration
	log     zerolog.Logger
}

var _ interfaces.IOrderEventPublisher = (*KafkaOrderEventPublisher)(nil)

func NewKafkaOrderEventPublisher(brokers []string, topic string, log zerolog.Logger) (*KafkaOrderEventPublisher, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka brokers are required")
	}
	if topic == "" {
		topic = DefaultOrdersTopic
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}
	return newKafkaOrderEventPublisher(w, topic, log), nil
}

func newKafkaOrderEventPublisher(w messageWriter, topic string, log zerolog.Logger) *KafkaOrderEventPublisher {
	return &KafkaOrderEventPublisher{w: w, topic: topic, timeout: 3 * time.Second, log: log}
}

func (p *KafkaOrderEventPublisher) Publish(ctx context.Context, evt entities.OrderEvent) error {
	value, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("encoding order event: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(evt.OrderID),
		Value: value,
		Time:  evt.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(evt.EventType)},
			{Key: "event_id", Value: []byte(evt.EventID)},
		},
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publishing %s to %s: %w", evt.EventType, p.topic, err)
	}
	p.log.Debug().Str("topic", p.topic).Str("order_id", evt.OrderID).Str("event_type", evt.EventType).Msg("[order][events] published")
	return nil
}

// Close flushes pending writes.
func (p *KafkaOrderEventPublisher) Close() error {
	return p.w.Close()
}

// LogOrderEventPublisher stands in when no broker is configured; events only reach the log.
type LogOrderEventPublisher struct {
	log zerolog.Logger
}

var _ interfaces.IOrderEventPublisher = (*LogOrderEventPublisher)(nil)

func NewLogOrderEventPublisher(log zerolog.Logger) *LogOrderEventPublisher {
	return &LogOrderEventPublisher{log: log}
}

func (p *LogOrderEventPublisher) Publish(_ context.Context, evt entities.OrderEvent) error {
	p.log.Info().
		Str("event_id", evt.EventID).
		Str("event_type", evt.EventType).
		Str("order_id", evt.OrderID).
		Str("order_number", evt.OrderNumber).
		Str("status", string(evt.Status)).
		Msg("[order][events] event")
	return nil
}
