// Package opensearch indexes assembled reports for full-text search.
package opensearch

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/opensearch-project/opensearch-go/v3"
	"github.com/opensearch-project/opensearch-go/v3/opensearchapi"

	"github.com/krishnashakula/LeaseIQ/internal/config"
	"github.com/krishnashakula/LeaseIQ/internal/domain/analysis"
	pkgerrors "github.com/krishnashakula/LeaseIQ/pkg/errors"
)

// Index stores a flattened projection of each report so searches can filter
// on level, status and position without deep JSON paths.
type Index struct {
	client *opensearchapi.Client
	name   string
}

// NewIndex connects to the cluster.
func NewIndex(cfg config.OpenSearchConfig) (*Index, error) {
	client, err := opensearchapi.NewClient(opensearchapi.Config{
		Client: opensearch.Config{
			Addresses: cfg.Addresses,
			Username:  cfg.User,
			Password:  cfg.Password,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: cfg.InsecureSkipVerify},
			},
		},
	})
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeExternalService, "opensearch connect")
	}
	return &Index{client: client, name: cfg.IndexName}, nil
}

// reportDoc is the indexed projection of a report.
type reportDoc struct {
	JobID            string   `json:"job_id"`
	RiskScore        int      `json:"risk_score"`
	RiskLevel        string   `json:"risk_level"`
	ComplianceScore  int      `json:"compliance_score"`
	ComplianceStatus string   `json:"compliance_status"`
	MarketPosition   string   `json:"market_position"`
	TotalAnnualValue float64  `json:"total_annual_value"`
	ViolationRules   []string `json:"violation_rules"`
}

func projectReport(report *analysis.AnalysisReport) reportDoc {
	bi := report.BusinessIntelligence
	rules := make([]string, 0, len(bi.ComplianceReport.Violations))
	for _, v := range bi.ComplianceReport.Violations {
		rules = append(rules, v.RuleID)
	}
	return reportDoc{
		JobID:            report.JobID,
		RiskScore:        bi.RiskAssessment.Score,
		RiskLevel:        bi.RiskAssessment.Level,
		ComplianceScore:  bi.ComplianceReport.Score,
		ComplianceStatus: bi.ComplianceReport.Status,
		MarketPosition:   bi.MarketAnalysis.Position,
		TotalAnnualValue: bi.RevenueOpportunities.TotalAnnualValue,
		ViolationRules:   rules,
	}
}

// IndexReport upserts the projection for one report under its job id.
func (i *Index) IndexReport(ctx context.Context, report *analysis.AnalysisReport) error {
	payload, err := json.Marshal(projectReport(report))
	if err != nil {
		return pkgerrors.Wrap(err, pkgerrors.ErrCodeSerialization, "encode report projection")
	}
	_, err = i.client.Index(ctx, opensearchapi.IndexReq{
		Index:      i.name,
		DocumentID: report.JobID,
		Body:       bytes.NewReader(payload),
	})
	if err != nil {
		return pkgerrors.Wrap(err, pkgerrors.ErrCodeExternalService,
			fmt.Sprintf("index report %s", report.JobID))
	}
	return nil
}

// SearchQuery narrows a report search.  Zero values mean no filter.
type SearchQuery struct {
	RiskLevel        string
	ComplianceStatus string
	MarketPosition   string
	MinRiskScore     int
	Limit            int
}

// SearchResult is one matching report projection.
type SearchResult struct {
	JobID            string  `json:"job_id"`
	RiskScore        int     `json:"risk_score"`
	RiskLevel        string  `json:"risk_level"`
	ComplianceScore  int     `json:"compliance_score"`
	ComplianceStatus string  `json:"compliance_status"`
	MarketPosition   string  `json:"market_position"`
	TotalAnnualValue float64 `json:"total_annual_value"`
}

// Search returns the projections matching the query, most recent first by
// indexing order.
func (i *Index) Search(ctx context.Context, q SearchQuery) ([]SearchResult, error) {
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 20
	}

	filters := []string{}
	if q.RiskLevel != "" {
		filters = append(filters, fmt.Sprintf(`{"term":{"risk_level":%q}}`, q.RiskLevel))
	}
	if q.ComplianceStatus != "" {
		filters = append(filters, fmt.Sprintf(`{"term":{"compliance_status":%q}}`, q.ComplianceStatus))
	}
	if q.MarketPosition != "" {
		filters = append(filters, fmt.Sprintf(`{"term":{"market_position":%q}}`, q.MarketPosition))
	}
	if q.MinRiskScore > 0 {
		filters = append(filters, fmt.Sprintf(`{"range":{"risk_score":{"gte":%d}}}`, q.MinRiskScore))
	}

	body := fmt.Sprintf(`{"size":%d,"query":{"bool":{"filter":[%s]}},"sort":[{"risk_score":"desc"}]}`,
		q.Limit, strings.Join(filters, ","))

	resp, err := i.client.Search(ctx, &opensearchapi.SearchReq{
		Indices: []string{i.name},
		Body:    strings.NewReader(body),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeExternalService, "search reports")
	}

	results := make([]SearchResult, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		var r SearchResult
		if err := json.Unmarshal(hit.Source, &r); err != nil {
			return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeSerialization, "decode search hit")
		}
		results = append(results, r)
	}
	return results, nil
}
