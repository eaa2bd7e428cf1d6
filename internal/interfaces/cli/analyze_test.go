package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lease.txt")
	content := `Monthly rent is $2,500 per month. Security deposit of $5,000.
Either party may give 60 days written notice. Term of 12 months.
Pet fee of $50 per month. Rent shall increase per the escalation schedule.`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs([]string{"analyze", path, "--job-id", "cli-job"})

	require.NoError(t, cmd.Execute())

	var report struct {
		JobID                string                     `json:"job_id"`
		BusinessIntelligence map[string]json.RawMessage `json:"business_intelligence"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, "cli-job", report.JobID)
	assert.Contains(t, report.BusinessIntelligence, "risk_assessment")
	assert.Contains(t, report.BusinessIntelligence, "compliance_report")
}

func TestAnalyzeCommandMissingFile(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"analyze", "/nonexistent/lease.txt"})
	require.Error(t, cmd.Execute())
}
