// Package portfolio aggregates per-lease reports into portfolio-level
// metrics.
package portfolio

import (
	"context"
	"sort"

	"github.com/krishnashakula/LeaseIQ/internal/domain/analysis"
	"github.com/krishnashakula/LeaseIQ/internal/infrastructure/monitoring/logging"
	pkgerrors "github.com/krishnashakula/LeaseIQ/pkg/errors"
)

// ReportLoader fetches individual reports by job id.
type ReportLoader interface {
	GetReport(ctx context.Context, jobID string) (*analysis.AnalysisReport, error)
}

// Summary is the portfolio rollup.  All averages are over the analyzed
// leases; the risk distribution counts leases per level.
type Summary struct {
	TotalLeases             int              `json:"total_leases"`
	AverageRiskScore        float64          `json:"average_risk_score"`
	AverageComplianceScore  float64          `json:"average_compliance_score"`
	RiskDistribution        map[string]int   `json:"risk_distribution"`
	TotalRevenueOpportunity float64          `json:"total_revenue_opportunity"`
	HighestRiskLeases       []RankedLease    `json:"highest_risk_leases"`
	MissingJobIDs           []string         `json:"missing_job_ids,omitempty"`
	Health                  PortfolioHealth  `json:"health"`
}

// RankedLease identifies one lease in a ranking.
type RankedLease struct {
	JobID     string `json:"job_id"`
	RiskScore int    `json:"risk_score"`
	RiskLevel string `json:"risk_level"`
}

// PortfolioHealth grades the portfolio from its average risk.
type PortfolioHealth struct {
	Grade     string  `json:"grade"`
	RiskIndex float64 `json:"risk_index"`
}

// Analyzer rolls up reports.
type Analyzer struct {
	loader ReportLoader
	logger logging.Logger
}

// NewAnalyzer builds a portfolio analyzer over the given loader.
func NewAnalyzer(loader ReportLoader, logger logging.Logger) *Analyzer {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Analyzer{loader: loader, logger: logger}
}

// topRiskCount limits the highest-risk ranking.
const topRiskCount = 3

// Analyze loads each job's report and aggregates.  Job ids without a stored
// report are collected and reported, not fatal; a portfolio where no report
// resolves at all is an error, as is an empty id list.
func (a *Analyzer) Analyze(ctx context.Context, jobIDs []string) (*Summary, error) {
	if len(jobIDs) == 0 {
		return nil, pkgerrors.New(pkgerrors.ErrCodePortfolioEmpty, "no job ids supplied")
	}

	reports := make([]*analysis.AnalysisReport, 0, len(jobIDs))
	missing := []string{}
	for _, id := range jobIDs {
		report, err := a.loader.GetReport(ctx, id)
		if err != nil {
			if pkgerrors.IsNotFound(err) {
				missing = append(missing, id)
				continue
			}
			return nil, err
		}
		reports = append(reports, report)
	}
	if len(reports) == 0 {
		return nil, pkgerrors.New(pkgerrors.ErrCodePortfolioEmpty,
			"none of the supplied job ids resolved to a report")
	}

	summary := &Summary{
		TotalLeases:      len(reports),
		RiskDistribution: map[string]int{},
		MissingJobIDs:    missing,
	}

	riskSum, complianceSum := 0, 0
	ranked := make([]RankedLease, 0, len(reports))
	for _, r := range reports {
		bi := r.BusinessIntelligence
		riskSum += bi.RiskAssessment.Score
		complianceSum += bi.ComplianceReport.Score
		summary.RiskDistribution[bi.RiskAssessment.Level]++
		summary.TotalRevenueOpportunity += bi.RevenueOpportunities.TotalAnnualValue
		ranked = append(ranked, RankedLease{
			JobID:     r.JobID,
			RiskScore: bi.RiskAssessment.Score,
			RiskLevel: bi.RiskAssessment.Level,
		})
	}

	summary.AverageRiskScore = float64(riskSum) / float64(len(reports))
	summary.AverageComplianceScore = float64(complianceSum) / float64(len(reports))

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].RiskScore > ranked[j].RiskScore })
	if len(ranked) > topRiskCount {
		ranked = ranked[:topRiskCount]
	}
	summary.HighestRiskLeases = ranked
	summary.Health = healthFor(summary.AverageRiskScore)

	return summary, nil
}

func healthFor(avgRisk float64) PortfolioHealth {
	grade := "A"
	switch {
	case avgRisk > 80:
		grade = "F"
	case avgRisk > 60:
		grade = "D"
	case avgRisk > 45:
		grade = "C"
	case avgRisk > 30:
		grade = "B"
	}
	return PortfolioHealth{Grade: grade, RiskIndex: avgRisk}
}
