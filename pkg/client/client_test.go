package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/krishnashakula/LeaseIQ/pkg/errors"
)

func TestAnalyzeRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/analyses", r.URL.Path)

		var req AnalyzeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "job-1", req.JobID)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":                "success",
			"job_id":                "job-1",
			"analysis_type":         "business_intelligence",
			"timestamp":             "2026-01-01T00:00:00Z",
			"business_intelligence": map[string]any{"risk_assessment": map[string]any{"score": 10}},
		})
	}))
	defer srv.Close()

	report, err := New(srv.URL).Analyze(context.Background(), AnalyzeRequest{
		JobID:  "job-1",
		Fields: map[string]string{"monthly_rent": "2500"},
	})
	require.NoError(t, err)
	assert.Equal(t, "job-1", report.JobID)
	assert.Contains(t, string(report.BusinessIntelligence), "risk_assessment")
}

func TestGetReportNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "error",
			"error": map[string]string{
				"code":    "STORE_001",
				"message": "job missing not found",
			},
		})
	}))
	defer srv.Close()

	_, err := New(srv.URL).GetReport(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeJobNotFound))
}

func TestOpaqueServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL).GetReport(context.Background(), "job-1")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeExternalService))
}

func TestServerUnreachable(t *testing.T) {
	_, err := New("http://127.0.0.1:1").GetReport(context.Background(), "job-1")
	require.Error(t, err)
}
