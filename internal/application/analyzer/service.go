// Package analyzer orchestrates the document analysis pipeline: fetch the
// document, extract fields, run the rules engine and fan the report out to
// the job store, cache, search index and event bus.
package analyzer

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/krishnashakula/LeaseIQ/internal/application/extraction"
	"github.com/krishnashakula/LeaseIQ/internal/domain/analysis"
	"github.com/krishnashakula/LeaseIQ/internal/infrastructure/monitoring/logging"
	"github.com/krishnashakula/LeaseIQ/internal/infrastructure/monitoring/prometheus"
	pkgerrors "github.com/krishnashakula/LeaseIQ/pkg/errors"
)

// ReportStore is the write-once job store.
type ReportStore interface {
	Save(ctx context.Context, report *analysis.AnalysisReport, documentID string) error
	Get(ctx context.Context, jobID string) (*analysis.AnalysisReport, error)
	ListRecent(ctx context.Context, limit int) ([]*analysis.AnalysisReport, error)
}

// ReportCache fronts the job store for reads.  Both methods are best-effort
// from the service's point of view.
type ReportCache interface {
	Get(ctx context.Context, jobID string) (*analysis.AnalysisReport, error)
	Set(ctx context.Context, report *analysis.AnalysisReport) error
}

// ReportIndex feeds the search cluster.
type ReportIndex interface {
	IndexReport(ctx context.Context, report *analysis.AnalysisReport) error
}

// DocumentMeta tracks document lifecycle state.
type DocumentMeta interface {
	UpdateStatus(ctx context.Context, id, status string) error
}

// BlobStore reads stored document content.
type BlobStore interface {
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}

// CompletionPublisher announces finished analyses.
type CompletionPublisher interface {
	PublishCompleted(ctx context.Context, jobID, documentID, riskLevel string, analysisErr error) error
}

// Document lifecycle statuses, mirrored by the metadata store.
const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Service runs analyses and serves reports.
type Service struct {
	engine    *analysis.Engine
	extractor extraction.FieldExtractor
	store     ReportStore
	cache     ReportCache
	index     ReportIndex
	documents DocumentMeta
	blobs     BlobStore
	publisher CompletionPublisher
	metrics   *prometheus.Metrics
	logger    logging.Logger
}

// Deps bundles the service's collaborators.  Cache, index, documents, blobs,
// publisher and metrics may be nil; the service degrades to store-only
// operation.
type Deps struct {
	Engine    *analysis.Engine
	Extractor extraction.FieldExtractor
	Store     ReportStore
	Cache     ReportCache
	Index     ReportIndex
	Documents DocumentMeta
	Blobs     BlobStore
	Publisher CompletionPublisher
	Metrics   *prometheus.Metrics
	Logger    logging.Logger
}

// NewService wires a Service from its dependencies.
func NewService(d Deps) *Service {
	logger := d.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Service{
		engine:    d.Engine,
		extractor: d.Extractor,
		store:     d.Store,
		cache:     d.Cache,
		index:     d.Index,
		documents: d.Documents,
		blobs:     d.Blobs,
		publisher: d.Publisher,
		metrics:   d.Metrics,
		logger:    logger,
	}
}

// AnalyzeFields runs the engine over pre-extracted fields and persists the
// report.  The job id in the returned report is authoritative.  Persisting
// is write-once: a duplicate job id fails without touching the stored
// report.  Cache and index failures are logged, not returned; the report is
// durable once the store accepts it.
func (s *Service) AnalyzeFields(ctx context.Context, jobID string, fields map[string]string, documentID string) (*analysis.AnalysisReport, error) {
	return s.analyzeFields(ctx, jobID, fields, documentID, "api")
}

func (s *Service) analyzeFields(ctx context.Context, jobID string, fields map[string]string, documentID, trigger string) (report *analysis.AnalysisReport, err error) {
	start := time.Now()
	defer func() { s.recordAnalysis(trigger, start, err) }()

	report, err = s.engine.Analyze(analysis.AnalyzeRequest{JobID: jobID, Fields: fields})
	if err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, report, documentID); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, report); err != nil {
			s.logger.Warn("report cache write failed",
				logging.String("job_id", report.JobID), logging.Err(err))
		}
	}
	if s.index != nil {
		if err := s.index.IndexReport(ctx, report); err != nil {
			s.logger.Warn("report indexing failed",
				logging.String("job_id", report.JobID), logging.Err(err))
		}
	}
	return report, nil
}

// AnalyzeText extracts fields from raw document text and runs the analysis
// over them.  The synchronous counterpart of ProcessDocument for callers who
// already hold the text.
func (s *Service) AnalyzeText(ctx context.Context, jobID, text, documentID string) (*analysis.AnalysisReport, error) {
	if s.extractor == nil {
		return nil, pkgerrors.New(pkgerrors.ErrCodeExtractionFailed, "field extraction is not configured")
	}
	fields, err := s.extractor.Extract(ctx, text)
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeExtractionFailed, "extract fields from request text")
	}
	return s.analyzeFields(ctx, jobID, fields, documentID, "api")
}

func (s *Service) recordAnalysis(trigger string, start time.Time, err error) {
	if s.metrics == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	s.metrics.AnalysesTotal.WithLabelValues(status).Inc()
	s.metrics.AnalysisDuration.WithLabelValues(trigger).Observe(time.Since(start).Seconds())
}

// ProcessDocument runs the full pipeline for a stored document: mark it
// processing, read its content, extract fields, analyze and record the
// outcome.  The completion event is published for both success and failure.
func (s *Service) ProcessDocument(ctx context.Context, jobID, documentID, objectKey string) error {
	if s.documents != nil {
		if err := s.documents.UpdateStatus(ctx, documentID, StatusProcessing); err != nil {
			return err
		}
	}

	report, err := s.runPipeline(ctx, jobID, documentID, objectKey)

	status := StatusCompleted
	riskLevel := ""
	if err != nil {
		status = StatusFailed
	} else {
		riskLevel = report.BusinessIntelligence.RiskAssessment.Level
	}

	if s.documents != nil {
		if statusErr := s.documents.UpdateStatus(ctx, documentID, status); statusErr != nil {
			s.logger.Error("document status update failed",
				logging.String("document_id", documentID), logging.Err(statusErr))
		}
	}
	if s.publisher != nil {
		if pubErr := s.publisher.PublishCompleted(ctx, jobID, documentID, riskLevel, err); pubErr != nil {
			s.logger.Error("completion event publish failed",
				logging.String("job_id", jobID), logging.Err(pubErr))
		}
	}
	return err
}

func (s *Service) runPipeline(ctx context.Context, jobID, documentID, objectKey string) (*analysis.AnalysisReport, error) {
	if s.blobs == nil {
		return nil, pkgerrors.New(pkgerrors.ErrCodeStorageError, "document storage is not configured")
	}

	body, err := s.blobs.Get(ctx, objectKey)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	content, err := io.ReadAll(body)
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeStorageError,
			fmt.Sprintf("read document %s", objectKey))
	}

	if s.extractor == nil {
		return nil, pkgerrors.New(pkgerrors.ErrCodeExtractionFailed, "field extraction is not configured")
	}
	fields, err := s.extractor.Extract(ctx, string(content))
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeExtractionFailed,
			fmt.Sprintf("extract fields from %s", documentID))
	}

	return s.analyzeFields(ctx, jobID, fields, documentID, "event")
}

// GetReport serves a report, cache first.  A store hit refills the cache.
func (s *Service) GetReport(ctx context.Context, jobID string) (*analysis.AnalysisReport, error) {
	if s.cache != nil {
		report, err := s.cache.Get(ctx, jobID)
		if err != nil {
			s.logger.Warn("report cache read failed",
				logging.String("job_id", jobID), logging.Err(err))
		} else if report != nil {
			if s.metrics != nil {
				s.metrics.CacheHitsTotal.Inc()
			}
			return report, nil
		}
		if s.metrics != nil {
			s.metrics.CacheMissesTotal.Inc()
		}
	}

	report, err := s.store.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, report); err != nil {
			s.logger.Warn("report cache refill failed",
				logging.String("job_id", jobID), logging.Err(err))
		}
	}
	return report, nil
}

// ListReports returns the most recent reports from the job store.
func (s *Service) ListReports(ctx context.Context, limit int) ([]*analysis.AnalysisReport, error) {
	return s.store.ListRecent(ctx, limit)
}
