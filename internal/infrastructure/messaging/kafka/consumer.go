package kafka

import (
	"context"
	"encoding/json"
	"errors"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/krishnashakula/LeaseIQ/internal/config"
	"github.com/krishnashakula/LeaseIQ/internal/infrastructure/monitoring/logging"
	"github.com/krishnashakula/LeaseIQ/internal/infrastructure/monitoring/prometheus"
)

// UploadedHandler processes one document.uploaded event.  A returned error
// leaves the offset uncommitted so the event is redelivered.
type UploadedHandler func(ctx context.Context, ev DocumentUploadedEvent) error

// Consumer reads document.uploaded events for the worker pool.
type Consumer struct {
	reader  *kafkago.Reader
	metrics *prometheus.Metrics
	logger  logging.Logger
}

// NewConsumer joins the configured consumer group on the uploaded topic.
func NewConsumer(cfg config.KafkaConfig, logger logging.Logger) *Consumer {
	return &Consumer{
		reader: kafkago.NewReader(kafkago.ReaderConfig{
			Brokers: cfg.Brokers,
			GroupID: cfg.GroupID,
			Topic:   cfg.UploadedTopic,
		}),
		logger: logger,
	}
}

// WithMetrics attaches the consumed-event counter.  Safe to skip.
func (c *Consumer) WithMetrics(m *prometheus.Metrics) *Consumer {
	c.metrics = m
	return c
}

func (c *Consumer) countConsumed(topic, status string) {
	if c.metrics != nil {
		c.metrics.EventsConsumedTotal.WithLabelValues(topic, status).Inc()
	}
}

// Run consumes events until the context is cancelled.  Malformed payloads
// are logged and committed so a poison message cannot wedge the partition;
// handler failures are logged and left uncommitted for redelivery.
func (c *Consumer) Run(ctx context.Context, handle UploadedHandler) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}

		var ev DocumentUploadedEvent
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			c.countConsumed(msg.Topic, "malformed")
			c.logger.Error("discarding malformed event",
				logging.String("topic", msg.Topic),
				logging.Int64("offset", msg.Offset),
				logging.Err(err))
			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				return err
			}
			continue
		}

		if err := handle(ctx, ev); err != nil {
			c.countConsumed(msg.Topic, "failed")
			c.logger.Error("event handling failed, leaving uncommitted",
				logging.String("job_id", ev.JobID),
				logging.Err(err))
			continue
		}

		c.countConsumed(msg.Topic, "ok")
		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			return err
		}
	}
}

// Close shuts the underlying reader down.
func (c *Consumer) Close() error {
	return c.reader.Close()
}
