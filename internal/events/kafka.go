package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/DeafMist/trend-poster/internal/logger"
	"github.com/DeafMist/trend-poster/internal/models"
)

const writeTimeout = 5 * time.Second

// MessageWriter is the subset of *kafka.Writer the emitter needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaEmitter publishes every run outcome as a JSON event.
type KafkaEmitter struct {
	writer MessageWriter
	log    *slog.Logger
}

// NewKafkaEmitter writes to topic on brokers.
func NewKafkaEmitter(brokers []string, topic string, log *slog.Logger) *KafkaEmitter {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		MaxAttempts:  3,
	}
	return NewKafkaEmitterWithWriter(writer, logger.OrDiscard(log).With("topic", topic))
}

func NewKafkaEmitterWithWriter(writer MessageWriter, log *slog.Logger) *KafkaEmitter {
	return &KafkaEmitter{writer: writer, log: logger.OrDiscard(log)}
}

// Observe sends outcome. Failures are logged and never reach the pipeline.
func (e *KafkaEmitter) Observe(ctx context.Context, outcome models.RunOutcome) {
	msg, err := BuildMessage(outcome)
	if err != nil {
		e.log.Error("encode run event", slog.Any("err", err), slog.String("run_id", outcome.RunID))
		return
	}

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()

	if err := e.writer.WriteMessages(writeCtx, msg); err != nil {
		e.log.Warn("emit run event", slog.Any("err", err), slog.String("run_id", outcome.RunID))
		return
	}
	e.log.Debug("run event emitted", slog.String("run_id", outcome.RunID))
}

func (e *KafkaEmitter) Close() error {
	return e.writer.Close()
}

// BuildMessage encodes outcome keyed by its run id.
func BuildMessage(outcome models.RunOutcome) (kafka.Message, error) {
	value, err := json.Marshal(outcome)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal outcome: %w", err)
	}
	ts := outcome.FinishedAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	return kafka.Message{
		Key:   []byte(outcome.RunID),
		Value: value,
		Time:  ts,
		Headers: []kafka.Header{
			{Key: "status", Value: []byte(outcome.Status)},
		},
	}, nil
}
