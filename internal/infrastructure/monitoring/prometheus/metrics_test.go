package prometheus

import (
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics_RegistersWithoutPanic(t *testing.T) {
	m := NewMetrics("leaseiq")
	require.NotNil(t, m)
	require.NotNil(t, m.Registry())
}

func TestMetrics_CountersObserve(t *testing.T) {
	m := NewMetrics("leaseiq")

	m.AnalysesTotal.WithLabelValues("success").Inc()
	m.AnalysesTotal.WithLabelValues("success").Inc()
	m.AnalysesTotal.WithLabelValues("failed").Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.AnalysesTotal.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AnalysesTotal.WithLabelValues("failed")))
}

func TestMetrics_HandlerServesExposition(t *testing.T) {
	m := NewMetrics("leaseiq")
	m.UploadsTotal.WithLabelValues("accepted").Inc()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	m.Handler().ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "leaseiq_uploads_total")
}

func TestMetrics_SeparateRegistriesDoNotCollide(t *testing.T) {
	// Two instances must be constructible in one process (tests rely on it).
	a := NewMetrics("leaseiq")
	b := NewMetrics("leaseiq")
	assert.NotSame(t, a.Registry(), b.Registry())
}
