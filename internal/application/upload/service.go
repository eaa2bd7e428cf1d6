// Package upload accepts lease documents, stores them and kicks off the
// analysis pipeline.
package upload

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/krishnashakula/LeaseIQ/internal/infrastructure/database/postgres/repositories"
	"github.com/krishnashakula/LeaseIQ/internal/infrastructure/monitoring/logging"
	"github.com/krishnashakula/LeaseIQ/internal/infrastructure/monitoring/prometheus"
	pkgerrors "github.com/krishnashakula/LeaseIQ/pkg/errors"
)

// BlobStore writes document bytes.
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
}

// DocumentRepo records document metadata.
type DocumentRepo interface {
	Create(ctx context.Context, doc *repositories.Document) error
}

// UploadPublisher announces stored documents to the worker pool.
type UploadPublisher interface {
	PublishUploaded(ctx context.Context, jobID, documentID, objectKey, filename string, size int64) error
}

// Receipt identifies an accepted upload and its analysis job.
type Receipt struct {
	DocumentID string `json:"document_id"`
	JobID      string `json:"job_id"`
	ObjectKey  string `json:"object_key"`
}

// Service coordinates one upload across blob storage, metadata and the bus.
type Service struct {
	blobs     BlobStore
	documents DocumentRepo
	publisher UploadPublisher
	maxBytes  int64
	metrics   *prometheus.Metrics
	logger    logging.Logger
}

// NewService wires an upload service.  maxBytes caps accepted documents.
func NewService(blobs BlobStore, documents DocumentRepo, publisher UploadPublisher, maxBytes int64, logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Service{
		blobs:     blobs,
		documents: documents,
		publisher: publisher,
		maxBytes:  maxBytes,
		logger:    logger,
	}
}

// WithMetrics attaches upload counters.  Safe to skip.
func (s *Service) WithMetrics(m *prometheus.Metrics) *Service {
	s.metrics = m
	return s
}

func (s *Service) countUpload(status string) {
	if s.metrics != nil {
		s.metrics.UploadsTotal.WithLabelValues(status).Inc()
	}
}

func objectKey(documentID string) string {
	return fmt.Sprintf("documents/%s", documentID)
}

// Accept stores the document and publishes the pipeline event.  The returned
// receipt carries the job id the eventual report will be stored under.  The
// publish is part of the contract: a document nobody will analyze is a
// failed upload.
func (s *Service) Accept(ctx context.Context, filename, contentType string, size int64, r io.Reader) (*Receipt, error) {
	if size <= 0 {
		s.countUpload("rejected")
		return nil, pkgerrors.New(pkgerrors.ErrCodeLeaseDocumentInvalid, "document is empty")
	}
	if size > s.maxBytes {
		s.countUpload("rejected")
		return nil, pkgerrors.Newf(pkgerrors.ErrCodeLeaseDocumentTooLarge,
			"document size %d exceeds the %d byte limit", size, s.maxBytes)
	}

	receipt := &Receipt{
		DocumentID: uuid.NewString(),
		JobID:      uuid.NewString(),
	}
	receipt.ObjectKey = objectKey(receipt.DocumentID)

	if err := s.blobs.Put(ctx, receipt.ObjectKey, r, size, contentType); err != nil {
		s.countUpload("failed")
		return nil, err
	}

	if err := s.documents.Create(ctx, &repositories.Document{
		ID:          receipt.DocumentID,
		ObjectKey:   receipt.ObjectKey,
		Filename:    filename,
		ContentType: contentType,
		SizeBytes:   size,
	}); err != nil {
		s.countUpload("failed")
		return nil, err
	}

	if err := s.publisher.PublishUploaded(ctx, receipt.JobID, receipt.DocumentID,
		receipt.ObjectKey, filename, size); err != nil {
		s.countUpload("failed")
		return nil, err
	}

	s.countUpload("accepted")
	s.logger.Info("document accepted",
		logging.String("document_id", receipt.DocumentID),
		logging.String("job_id", receipt.JobID),
		logging.Int64("size_bytes", size),
	)
	return receipt, nil
}
