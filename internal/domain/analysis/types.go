// Package analysis implements the lease analysis rules engine: risk scoring,
// compliance checking, market comparison and revenue opportunity detection,
// assembled into a single report.
//
// Everything in this package is deterministic: the same normalized lease and
// the same market dataset always produce a byte-identical report.  Timestamps
// and request metadata belong to the transport envelope, not here.
package analysis

import "github.com/krishnashakula/LeaseIQ/internal/domain/lease"

// Risk levels, ordered from least to most severe.
const (
	RiskLevelLow      = "low"
	RiskLevelMedium   = "medium"
	RiskLevelHigh     = "high"
	RiskLevelCritical = "critical"
)

// Compliance statuses.
const (
	ComplianceFullyCompliant  = "fully_compliant"
	ComplianceMostlyCompliant = "mostly_compliant"
	ComplianceNeedsAttention  = "needs_attention"
	ComplianceNonCompliant    = "non_compliant"
)

// Market positions.
const (
	PositionBelowMarket = "below_market"
	PositionAtMarket    = "at_market"
	PositionAboveMarket = "above_market"
	PositionUnknown     = "unknown"
)

// Effort levels for revenue opportunities.
const (
	EffortLow    = "low"
	EffortMedium = "medium"
	EffortHigh   = "high"
)

// Violation severities.
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"
)

// AnalysisReport is the engine's complete output for one lease.
type AnalysisReport struct {
	JobID                string               `json:"job_id"`
	Lease                *lease.Record        `json:"lease_record"`
	BusinessIntelligence BusinessIntelligence `json:"business_intelligence"`
}

// BusinessIntelligence groups the four analysis sections.
type BusinessIntelligence struct {
	RiskAssessment       RiskAssessment        `json:"risk_assessment"`
	ComplianceReport     ComplianceReport      `json:"compliance_report"`
	RevenueOpportunities RevenueOpportunitySet `json:"revenue_opportunities"`
	MarketAnalysis       MarketComparison      `json:"market_analysis"`
}

// RiskAssessment is the additive risk score with its contributing factors.
// Recommendations follow the factor order, one per triggered factor.
type RiskAssessment struct {
	Score           int          `json:"score"`
	Level           string       `json:"level"`
	Factors         []RiskFactor `json:"factors"`
	Recommendations []string     `json:"recommendations"`
	Presentation    Presentation `json:"presentation"`
}

// RiskFactor is one triggered risk heuristic.
type RiskFactor struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Points      int    `json:"points"`
}

// ComplianceReport is the deductive compliance score with rule outcomes.
// RemediationSteps follow the violation order, one per violated rule.
type ComplianceReport struct {
	Score            int                   `json:"score"`
	Status           string                `json:"status"`
	Violations       []ComplianceViolation `json:"violations"`
	RemediationSteps []string              `json:"remediation_steps"`
	Unevaluated      []UnevaluatedRule     `json:"unevaluated"`
	Policy           string                `json:"policy"`
	Presentation     Presentation          `json:"presentation"`
}

// ComplianceViolation is one failed compliance rule.
type ComplianceViolation struct {
	RuleID      string `json:"rule_id"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	Deduction   int    `json:"deduction"`
}

// UnevaluatedRule records a rule whose inputs were missing from the lease.
type UnevaluatedRule struct {
	RuleID string `json:"rule_id"`
	Reason string `json:"reason"`
}

// RevenueOpportunitySet is the detected opportunities, sorted by descending
// annual value, with their exact sum.
type RevenueOpportunitySet struct {
	Opportunities    []RevenueOpportunity `json:"opportunities"`
	TotalAnnualValue float64              `json:"total_annual_value"`
}

// RevenueOpportunity is one detected upside with its annualized value.
type RevenueOpportunity struct {
	Type        string  `json:"type"`
	Description string  `json:"description"`
	AnnualValue float64 `json:"annual_value"`
	Effort      string  `json:"effort"`
}

// MarketComparison positions the lease rent against comparable rents.
// RentPercentile and SubjectRent are nil when the rent is unknown;
// ComparableRentRange is nil when the dataset is empty or unavailable;
// Degraded marks provider failures.
type MarketComparison struct {
	SubjectRent         *float64   `json:"subject_rent"`
	ComparableRentRange *RentRange `json:"comparable_rent_range"`
	RentPercentile      *float64   `json:"rent_percentile"`
	MarketMedian        *float64   `json:"market_median,omitempty"`
	SampleSize          int        `json:"sample_size"`
	Position            string     `json:"position"`
	Narrative           string     `json:"narrative"`
	Degraded            bool       `json:"degraded,omitempty"`
}

// RentRange is the min/max of the comparable-rent dataset.
type RentRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Presentation carries display hints derived solely from a score level.
type Presentation struct {
	Color string `json:"color"`
	Badge string `json:"badge"`
}
