package portfolio

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/krishnashakula/LeaseIQ/internal/domain/analysis"
	pkgerrors "github.com/krishnashakula/LeaseIQ/pkg/errors"
)

type mockLoader struct{ mock.Mock }

func (m *mockLoader) GetReport(ctx context.Context, jobID string) (*analysis.AnalysisReport, error) {
	args := m.Called(ctx, jobID)
	if r := args.Get(0); r != nil {
		return r.(*analysis.AnalysisReport), args.Error(1)
	}
	return nil, args.Error(1)
}

func report(jobID string, risk int, level string, compliance int, revenue float64) *analysis.AnalysisReport {
	return &analysis.AnalysisReport{
		JobID: jobID,
		BusinessIntelligence: analysis.BusinessIntelligence{
			RiskAssessment:   analysis.RiskAssessment{Score: risk, Level: level},
			ComplianceReport: analysis.ComplianceReport{Score: compliance},
			RevenueOpportunities: analysis.RevenueOpportunitySet{
				TotalAnnualValue: revenue,
			},
		},
	}
}

func TestAnalyzeAggregates(t *testing.T) {
	loader := &mockLoader{}
	loader.On("GetReport", mock.Anything, "a").Return(report("a", 10, "low", 100, 300), nil)
	loader.On("GetReport", mock.Anything, "b").Return(report("b", 45, "medium", 80, 1746), nil)
	loader.On("GetReport", mock.Anything, "c").Return(report("c", 70, "high", 55, 6300), nil)
	loader.On("GetReport", mock.Anything, "d").Return(report("d", 85, "critical", 20, 0), nil)

	summary, err := NewAnalyzer(loader, nil).Analyze(context.Background(), []string{"a", "b", "c", "d"})
	require.NoError(t, err)

	assert.Equal(t, 4, summary.TotalLeases)
	assert.InDelta(t, 52.5, summary.AverageRiskScore, 0.001)
	assert.InDelta(t, 63.75, summary.AverageComplianceScore, 0.001)
	assert.Equal(t, map[string]int{"low": 1, "medium": 1, "high": 1, "critical": 1}, summary.RiskDistribution)
	assert.InDelta(t, 8346.0, summary.TotalRevenueOpportunity, 0.001)

	require.Len(t, summary.HighestRiskLeases, 3)
	assert.Equal(t, "d", summary.HighestRiskLeases[0].JobID)
	assert.Equal(t, "c", summary.HighestRiskLeases[1].JobID)
	assert.Equal(t, "b", summary.HighestRiskLeases[2].JobID)

	assert.Equal(t, "C", summary.Health.Grade)
}

func TestAnalyzeMissingReportsAreCollected(t *testing.T) {
	loader := &mockLoader{}
	loader.On("GetReport", mock.Anything, "a").Return(report("a", 10, "low", 100, 0), nil)
	loader.On("GetReport", mock.Anything, "gone").
		Return(nil, pkgerrors.New(pkgerrors.ErrCodeJobNotFound, "not found"))

	summary, err := NewAnalyzer(loader, nil).Analyze(context.Background(), []string{"a", "gone"})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.TotalLeases)
	assert.Equal(t, []string{"gone"}, summary.MissingJobIDs)
}

func TestAnalyzeEmptyPortfolio(t *testing.T) {
	_, err := NewAnalyzer(&mockLoader{}, nil).Analyze(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodePortfolioEmpty))
}

func TestAnalyzeNothingResolves(t *testing.T) {
	loader := &mockLoader{}
	loader.On("GetReport", mock.Anything, "gone").
		Return(nil, pkgerrors.New(pkgerrors.ErrCodeJobNotFound, "not found"))

	_, err := NewAnalyzer(loader, nil).Analyze(context.Background(), []string{"gone"})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodePortfolioEmpty))
}

func TestAnalyzeStoreFailureIsFatal(t *testing.T) {
	loader := &mockLoader{}
	loader.On("GetReport", mock.Anything, "a").
		Return(nil, pkgerrors.New(pkgerrors.ErrCodeDatabaseError, "connection lost"))

	_, err := NewAnalyzer(loader, nil).Analyze(context.Background(), []string{"a"})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeDatabaseError))
}

func TestHealthGrades(t *testing.T) {
	tests := []struct {
		avg  float64
		want string
	}{
		{10, "A"}, {30, "A"}, {31, "B"}, {45, "B"}, {46, "C"}, {60, "C"},
		{61, "D"}, {80, "D"}, {81, "F"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, healthFor(tt.avg).Grade, "avg %.0f", tt.avg)
	}
}
