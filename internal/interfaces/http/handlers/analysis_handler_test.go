package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishnashakula/LeaseIQ/internal/application/extraction"
	"github.com/krishnashakula/LeaseIQ/internal/domain/analysis"
	pkgerrors "github.com/krishnashakula/LeaseIQ/pkg/errors"
)

type stubMarket struct{}

func (stubMarket) MarketData() (analysis.MarketData, error) {
	return analysis.MarketData{
		Rents: []decimal.Decimal{
			decimal.NewFromInt(2400), decimal.NewFromInt(2600), decimal.NewFromInt(2800),
		},
		AveragePetFee: decimal.NewFromInt(25),
	}, nil
}

// memoryService backs handler tests with the real engine and an in-memory
// write-once store.
type memoryService struct {
	engine  *analysis.Engine
	reports map[string]*analysis.AnalysisReport
	order   []string
}

func newMemoryService() *memoryService {
	return &memoryService{
		engine:  analysis.NewEngine(stubMarket{}),
		reports: map[string]*analysis.AnalysisReport{},
	}
}

func (s *memoryService) AnalyzeFields(_ context.Context, jobID string, fields map[string]string, _ string) (*analysis.AnalysisReport, error) {
	report, err := s.engine.Analyze(analysis.AnalyzeRequest{JobID: jobID, Fields: fields})
	if err != nil {
		return nil, err
	}
	if _, exists := s.reports[report.JobID]; exists {
		return nil, pkgerrors.Newf(pkgerrors.ErrCodeJobAlreadyFinal,
			"report for job %s already exists", report.JobID)
	}
	s.reports[report.JobID] = report
	s.order = append(s.order, report.JobID)
	return report, nil
}

func (s *memoryService) AnalyzeText(ctx context.Context, jobID, text, documentID string) (*analysis.AnalysisReport, error) {
	fields, err := extraction.NewRegexExtractor().Extract(ctx, text)
	if err != nil {
		return nil, err
	}
	return s.AnalyzeFields(ctx, jobID, fields, documentID)
}

func (s *memoryService) GetReport(_ context.Context, jobID string) (*analysis.AnalysisReport, error) {
	report, ok := s.reports[jobID]
	if !ok {
		return nil, pkgerrors.Newf(pkgerrors.ErrCodeJobNotFound, "job %s not found", jobID)
	}
	return report, nil
}

func (s *memoryService) ListReports(_ context.Context, limit int) ([]*analysis.AnalysisReport, error) {
	out := []*analysis.AnalysisReport{}
	for i := len(s.order) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.reports[s.order[i]])
	}
	return out, nil
}

func newTestRouter(svc AnalysisService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewAnalysisHandler(svc).Register(r.Group("/api/v1"))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func leaseFields() map[string]string {
	return map[string]string{
		"monthly_rent":          "4850",
		"security_deposit":      "9700",
		"notice_period_days":    "30",
		"lease_term_months":     "24",
		"has_escalation_clause": "false",
	}
}

func TestCreateAnalysis(t *testing.T) {
	r := newTestRouter(newMemoryService())
	w := doJSON(t, r, http.MethodPost, "/api/v1/analyses",
		gin.H{"job_id": "job-1", "fields": leaseFields()})

	require.Equal(t, http.StatusCreated, w.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "status")
	assert.Contains(t, body, "job_id")
	assert.Contains(t, body, "analysis_type")
	assert.Contains(t, body, "timestamp")
	require.Contains(t, body, "business_intelligence")

	var bi map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body["business_intelligence"], &bi))
	for _, key := range []string{
		"risk_assessment", "compliance_report", "revenue_opportunities", "market_analysis",
	} {
		assert.Contains(t, bi, key)
	}
}

func TestCreateAnalysisDuplicateJobConflicts(t *testing.T) {
	r := newTestRouter(newMemoryService())

	w := doJSON(t, r, http.MethodPost, "/api/v1/analyses",
		gin.H{"job_id": "job-1", "fields": leaseFields()})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/analyses",
		gin.H{"job_id": "job-1", "fields": leaseFields()})
	require.Equal(t, http.StatusConflict, w.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "error", body.Status)
	assert.Equal(t, "STORE_002", body.Error.Code)
}

func TestCreateAnalysisMissingFields(t *testing.T) {
	r := newTestRouter(newMemoryService())
	w := doJSON(t, r, http.MethodPost, "/api/v1/analyses", gin.H{"job_id": "job-1"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateAnalysisFromText(t *testing.T) {
	r := newTestRouter(newMemoryService())
	text := "The monthly rent is $4,850.00 per month. " +
		"Tenant shall pay a security deposit of $9,700.00 upon signing. " +
		"Either party may terminate with 30 days written notice."

	w := doJSON(t, r, http.MethodPost, "/api/v1/analyses", gin.H{
		"job_id": "job-text-1",
		"text":   text,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "job-text-1", body["job_id"])
	bi, ok := body["business_intelligence"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, bi, "risk_assessment")
	assert.Contains(t, bi, "compliance_report")
}

func TestCreateAnalysisMalformedBody(t *testing.T) {
	r := newTestRouter(newMemoryService())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses",
		bytes.NewBufferString("{not json"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAnalysisSections(t *testing.T) {
	svc := newMemoryService()
	r := newTestRouter(svc)
	doJSON(t, r, http.MethodPost, "/api/v1/analyses",
		gin.H{"job_id": "job-1", "fields": leaseFields()})

	tests := []struct {
		path string
		key  string
	}{
		{"/api/v1/analyses/job-1", "business_intelligence"},
		{"/api/v1/analyses/job-1/risk", "risk_assessment"},
		{"/api/v1/analyses/job-1/compliance", "compliance_report"},
		{"/api/v1/analyses/job-1/revenue", "revenue_opportunities"},
		{"/api/v1/analyses/job-1/market", "market_analysis"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			w := doJSON(t, r, http.MethodGet, tt.path, nil)
			require.Equal(t, http.StatusOK, w.Code)

			var body map[string]json.RawMessage
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Contains(t, body, tt.key)

			var analysisType string
			require.NoError(t, json.Unmarshal(body["analysis_type"], &analysisType))
			assert.Equal(t, tt.key, analysisType)
		})
	}
}

func TestGetAnalysisNotFound(t *testing.T) {
	r := newTestRouter(newMemoryService())
	w := doJSON(t, r, http.MethodGet, "/api/v1/analyses/missing", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "STORE_001", body.Error.Code)
}

func TestListAnalyses(t *testing.T) {
	svc := newMemoryService()
	r := newTestRouter(svc)
	doJSON(t, r, http.MethodPost, "/api/v1/analyses", gin.H{"job_id": "a", "fields": leaseFields()})
	doJSON(t, r, http.MethodPost, "/api/v1/analyses", gin.H{"job_id": "b", "fields": leaseFields()})

	w := doJSON(t, r, http.MethodGet, "/api/v1/analyses?limit=1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Count   int                        `json:"count"`
		Reports []*analysis.AnalysisReport `json:"reports"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
	require.Len(t, body.Reports, 1)
	assert.Equal(t, "b", body.Reports[0].JobID)
}
