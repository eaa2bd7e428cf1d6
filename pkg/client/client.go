// Package client is a small typed HTTP client for the LeaseIQ API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	pkgerrors "github.com/krishnashakula/LeaseIQ/pkg/errors"
)

// Client talks to one LeaseIQ server.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// New builds a client for the given base URL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AnalyzeRequest submits pre-extracted fields for analysis.
type AnalyzeRequest struct {
	JobID  string            `json:"job_id,omitempty"`
	Fields map[string]string `json:"fields"`
}

// Report is the server's analysis envelope.
type Report struct {
	Status               string          `json:"status"`
	JobID                string          `json:"job_id"`
	AnalysisType         string          `json:"analysis_type"`
	Timestamp            string          `json:"timestamp"`
	BusinessIntelligence json.RawMessage `json:"business_intelligence"`
}

// Analyze runs a synchronous analysis over pre-extracted fields.
func (c *Client) Analyze(ctx context.Context, req AnalyzeRequest) (*Report, error) {
	var report Report
	if err := c.do(ctx, http.MethodPost, "/api/v1/analyses", req, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// GetReport fetches the full report for a job id.
func (c *Client) GetReport(ctx context.Context, jobID string) (*Report, error) {
	var report Report
	path := "/api/v1/analyses/" + url.PathEscape(jobID)
	if err := c.do(ctx, http.MethodGet, path, nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// PortfolioSummary is the rollup envelope returned by the server.
type PortfolioSummary struct {
	Status    string          `json:"status"`
	Timestamp string          `json:"timestamp"`
	Portfolio json.RawMessage `json:"portfolio"`
}

// AnalyzePortfolio rolls up the given jobs.
func (c *Client) AnalyzePortfolio(ctx context.Context, jobIDs []string) (*PortfolioSummary, error) {
	var summary PortfolioSummary
	body := map[string][]string{"job_ids": jobIDs}
	if err := c.do(ctx, http.MethodPost, "/api/v1/portfolio/analyze", body, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// apiError is the server's error envelope.
type apiError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Detail  string `json:"detail"`
	} `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(err, pkgerrors.ErrCodeSerialization, "encode request")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return pkgerrors.Wrap(err, pkgerrors.ErrCodeInternal, "build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return pkgerrors.Wrap(err, pkgerrors.ErrCodeExternalService,
			fmt.Sprintf("%s %s", method, path))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return pkgerrors.Wrap(err, pkgerrors.ErrCodeExternalService, "read response")
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr apiError
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error.Code != "" {
			return pkgerrors.New(pkgerrors.ErrorCode(apiErr.Error.Code), apiErr.Error.Message).
				WithDetail(apiErr.Error.Detail)
		}
		return pkgerrors.Newf(pkgerrors.ErrCodeExternalService,
			"server returned %d for %s %s", resp.StatusCode, method, path)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return pkgerrors.Wrap(err, pkgerrors.ErrCodeSerialization, "decode response")
		}
	}
	return nil
}
