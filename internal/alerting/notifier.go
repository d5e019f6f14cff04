package alerting

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/andresuchdata/tariff-risk/backend-go/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

const (
	NotifierLog   = "log"
	NotifierKafka = "kafka"
)

// Notifier delivers triggered alerts.
type Notifier interface {
	Notify(ctx context.Context, triggers []domain.AlertTrigger) error
	Close() error
}

// LogNotifier writes each trigger to the structured log.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, triggers []domain.AlertTrigger) error {
	for _, t := range triggers {
		log.Warn().
			Str("rule_id", t.RuleID).
			Str("condition", string(t.Condition)).
			Str("subject", t.Subject).
			Float64("value", t.Value).
			Float64("threshold", t.Threshold).
			Str("email", t.Email).
			Msg(t.Message)
	}
	return nil
}

func (LogNotifier) Close() error { return nil }

// MessageWriter is the subset of *kafka.Writer the notifier needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewWriter builds a producer for the alerts topic.
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 250 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}
}

// KafkaNotifier publishes one JSON message per trigger, keyed by rule id.
type KafkaNotifier struct {
	writer MessageWriter
}

func NewKafkaNotifier(w MessageWriter) *KafkaNotifier {
	return &KafkaNotifier{writer: w}
}

func (n *KafkaNotifier) Notify(ctx context.Context, triggers []domain.AlertTrigger) error {
	if len(triggers) == 0 {
		return nil
	}
	msgs := make([]kafka.Message, 0, len(triggers))
	now := time.Now().UTC()
	for _, t := range triggers {
		body, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("marshal alert trigger: %w", err)
		}
		msgs = append(msgs, kafka.Message{Key: []byte(t.RuleID), Value: body, Time: now})
	}
	if err := n.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish alert triggers: %w", err)
	}
	return nil
}

func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}

// NewNotifier picks the notifier named by kind. Unknown kinds fall back to the log notifier.
func NewNotifier(kind string, brokers []string, topic string) Notifier {
	switch kind {
	case NotifierKafka:
		log.Info().Strs("brokers", brokers).Str("topic", topic).Msg("Alert notifications go to kafka")
		return NewKafkaNotifier(NewWriter(brokers, topic))
	case NotifierLog, "":
		return LogNotifier{}
	default:
		log.Warn().Str("notifier", kind).Msg("Unknown alert notifier, using log")
		return LogNotifier{}
	}
}
