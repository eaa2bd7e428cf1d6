package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/krishnashakula/LeaseIQ/internal/config"
	"github.com/krishnashakula/LeaseIQ/internal/infrastructure/monitoring/logging"
	"github.com/krishnashakula/LeaseIQ/internal/infrastructure/monitoring/prometheus"
	pkgerrors "github.com/krishnashakula/LeaseIQ/pkg/errors"
)

// Producer publishes pipeline events.  Messages are keyed by job id so all
// events for one job land in the same partition, in order.
type Producer struct {
	uploaded  *kafkago.Writer
	completed *kafkago.Writer
	metrics   *prometheus.Metrics
	logger    logging.Logger
}

// NewProducer builds writers for both pipeline topics.
func NewProducer(cfg config.KafkaConfig, logger logging.Logger) *Producer {
	newWriter := func(topic string) *kafkago.Writer {
		return &kafkago.Writer{
			Addr:         kafkago.TCP(cfg.Brokers...),
			Topic:        topic,
			Balancer:     &kafkago.Hash{},
			MaxAttempts:  cfg.MaxRetries,
			BatchSize:    cfg.BatchSize,
			RequiredAcks: kafkago.RequireAll,
		}
	}
	return &Producer{
		uploaded:  newWriter(cfg.UploadedTopic),
		completed: newWriter(cfg.CompletedTopic),
		logger:    logger,
	}
}

// WithMetrics attaches the published-event counter.  Safe to skip.
func (p *Producer) WithMetrics(m *prometheus.Metrics) *Producer {
	p.metrics = m
	return p
}

// PublishDocumentUploaded emits a document.uploaded event.
func (p *Producer) PublishDocumentUploaded(ctx context.Context, ev DocumentUploadedEvent) error {
	ev.EventType = EventDocumentUploaded
	return p.publish(ctx, p.uploaded, ev.JobID, ev)
}

// PublishAnalysisCompleted emits an analysis.completed event.
func (p *Producer) PublishAnalysisCompleted(ctx context.Context, ev AnalysisCompletedEvent) error {
	ev.EventType = EventAnalysisCompleted
	return p.publish(ctx, p.completed, ev.JobID, ev)
}

// PublishUploaded adapts the upload service's publisher contract onto the
// uploaded topic.
func (p *Producer) PublishUploaded(ctx context.Context, jobID, documentID, objectKey, filename string, size int64) error {
	return p.PublishDocumentUploaded(ctx, DocumentUploadedEvent{
		JobID:      jobID,
		DocumentID: documentID,
		ObjectKey:  objectKey,
		Filename:   filename,
		SizeBytes:  size,
	})
}

// PublishCompleted adapts the analyzer service's publisher contract onto the
// completed topic.
func (p *Producer) PublishCompleted(ctx context.Context, jobID, documentID, riskLevel string, analysisErr error) error {
	ev := AnalysisCompletedEvent{
		JobID:      jobID,
		DocumentID: documentID,
		RiskLevel:  riskLevel,
		Succeeded:  analysisErr == nil,
	}
	if analysisErr != nil {
		ev.Error = analysisErr.Error()
	}
	return p.PublishAnalysisCompleted(ctx, ev)
}

func (p *Producer) publish(ctx context.Context, w *kafkago.Writer, key string, ev any) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return pkgerrors.Wrap(err, pkgerrors.ErrCodeSerialization, "encode event")
	}
	if err := w.WriteMessages(ctx, kafkago.Message{Key: []byte(key), Value: payload}); err != nil {
		return pkgerrors.Wrap(err, pkgerrors.ErrCodeExternalService,
			fmt.Sprintf("publish to %s", w.Topic))
	}
	if p.metrics != nil {
		p.metrics.EventsPublishedTotal.WithLabelValues(w.Topic).Inc()
	}
	p.logger.Debug("event published",
		logging.String("topic", w.Topic), logging.String("key", key))
	return nil
}

// Close flushes and closes both writers.
func (p *Producer) Close() error {
	if err := p.uploaded.Close(); err != nil {
		return err
	}
	return p.completed.Close()
}
