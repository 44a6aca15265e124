package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/hazard-risk-service/internal/config"
	"github.com/couchcryptid/hazard-risk-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Reader consumes observation messages from a Kafka topic as part of a
// consumer group. It implements pipeline.BatchExtractor.
type Reader struct {
	reader        *kafkago.Reader
	flushInterval time.Duration
	logger        *slog.Logger
}

// NewReader creates a Kafka consumer for the configured source topic.
// Offsets are committed explicitly after the pipeline loads a message.
func NewReader(cfg *config.Config, logger *slog.Logger) *Reader {
	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  cfg.KafkaBrokers,
		GroupID:  cfg.KafkaGroupID,
		Topic:    cfg.KafkaSourceTopic,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  cfg.BatchFlushInterval,
	})
	return &Reader{reader: r, flushInterval: cfg.BatchFlushInterval, logger: logger}
}

// ExtractBatch blocks for the first message, then collects up to batchSize
// messages until the flush interval elapses. An empty batch with a nil error
// means the wait ended without data.
func (r *Reader) ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawEvent, error) {
	first, err := r.reader.FetchMessage(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("fetch message: %w", err)
	}

	batch := make([]domain.RawEvent, 0, batchSize)
	batch = append(batch, r.mapMessage(first))

	flushCtx, cancel := context.WithTimeout(ctx, r.flushInterval)
	defer cancel()

	for len(batch) < batchSize {
		msg, err := r.reader.FetchMessage(flushCtx)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) || flushCtx.Err() != nil {
				break
			}
			r.logger.Warn("fetch message failed mid-batch", "error", err, "batch_size", len(batch))
			break
		}
		batch = append(batch, r.mapMessage(msg))
	}

	return batch, nil
}

func (r *Reader) Close() error {
	return r.reader.Close()
}

// mapMessage converts a Kafka message into a RawEvent whose Commit callback
// acknowledges exactly that message.
func (r *Reader) mapMessage(msg kafkago.Message) domain.RawEvent {
	raw := mapMessageToRawEvent(msg)
	raw.Commit = func(ctx context.Context) error {
		return r.reader.CommitMessages(ctx, msg)
	}
	return raw
}

func mapMessageToRawEvent(msg kafkago.Message) domain.RawEvent {
	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	return domain.RawEvent{
		Key:       msg.Key,
		Value:     msg.Value,
		Headers:   headers,
		Topic:     msg.Topic,
		Partition: msg.Partition,
		Offset:    msg.Offset,
		Timestamp: msg.Time,
	}
}
