package analysis

import (
	"github.com/google/uuid"

	pkgerrors "github.com/krishnashakula/LeaseIQ/pkg/errors"

	"github.com/krishnashakula/LeaseIQ/internal/domain/lease"
	"github.com/krishnashakula/LeaseIQ/internal/infrastructure/monitoring/logging"
)

// Engine assembles a full analysis report from raw extracted fields.
type Engine struct {
	market MarketDataProvider
	policy string
	logger logging.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithCompliancePolicy sets the policy for rules with missing inputs.
func WithCompliancePolicy(policy string) Option {
	return func(e *Engine) { e.policy = policy }
}

// WithLogger sets the engine logger.
func WithLogger(l logging.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine builds an Engine against the given market data provider.
func NewEngine(market MarketDataProvider, opts ...Option) *Engine {
	e := &Engine{
		market: market,
		policy: PolicyExclude,
		logger: logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AnalyzeRequest carries one lease through the engine.  JobID is optional; a
// fresh UUID is assigned when empty.
type AnalyzeRequest struct {
	JobID  string
	Fields map[string]string
}

// Analyze normalizes the raw fields and runs all four analysis sections.
// A nil field map is the only rejected input; an empty map is a legitimate
// worst-case lease.  Market provider failures degrade the market-dependent
// sections instead of failing the whole analysis.
func (e *Engine) Analyze(req AnalyzeRequest) (*AnalysisReport, error) {
	if req.Fields == nil {
		return nil, pkgerrors.NewValidationError("fields must not be nil")
	}

	jobID := req.JobID
	if jobID == "" {
		jobID = uuid.NewString()
	}

	rec := lease.Normalize(req.Fields)

	data, err := e.market.MarketData()
	degraded := err != nil
	if degraded {
		e.logger.Warn("market data unavailable, running degraded analysis",
			logging.String("job_id", jobID), logging.Err(err))
	}

	report := &AnalysisReport{
		JobID: jobID,
		Lease: rec,
		BusinessIntelligence: BusinessIntelligence{
			RiskAssessment:       ScoreRisk(rec),
			ComplianceReport:     ScoreCompliance(rec, e.policy),
			RevenueOpportunities: DetectRevenueOpportunities(rec, data, degraded),
			MarketAnalysis:       CompareToMarket(rec, data, degraded),
		},
	}

	e.logger.Debug("analysis complete",
		logging.String("job_id", jobID),
		logging.Int("risk_score", report.BusinessIntelligence.RiskAssessment.Score),
		logging.Int("compliance_score", report.BusinessIntelligence.ComplianceReport.Score),
	)
	return report, nil
}
