// Package repositories holds the PostgreSQL-backed stores.
package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/krishnashakula/LeaseIQ/internal/domain/analysis"
	pkgerrors "github.com/krishnashakula/LeaseIQ/pkg/errors"
)

// ReportRepository persists analysis reports keyed by job id.  Reports are
// write-once: a job id can never be overwritten.
type ReportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository builds a repository over the given pool.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{pool: pool}
}

// Save stores a report under its job id.  Saving a job id that already
// exists fails with ErrCodeJobAlreadyFinal and leaves the stored report
// untouched.
func (r *ReportRepository) Save(ctx context.Context, report *analysis.AnalysisReport, documentID string) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return pkgerrors.Wrap(err, pkgerrors.ErrCodeSerialization, "marshal report")
	}

	var docID *string
	if documentID != "" {
		docID = &documentID
	}

	tag, err := r.pool.Exec(ctx,
		`INSERT INTO analysis_reports (job_id, document_id, report)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (job_id) DO NOTHING`,
		report.JobID, docID, payload)
	if err != nil {
		return pkgerrors.Wrap(err, pkgerrors.ErrCodeDatabaseError,
			fmt.Sprintf("insert report %s", report.JobID))
	}
	if tag.RowsAffected() == 0 {
		return pkgerrors.Newf(pkgerrors.ErrCodeJobAlreadyFinal,
			"report for job %s already exists", report.JobID)
	}
	return nil
}

// Get loads the report for a job id.
func (r *ReportRepository) Get(ctx context.Context, jobID string) (*analysis.AnalysisReport, error) {
	var payload []byte
	err := r.pool.QueryRow(ctx,
		`SELECT report FROM analysis_reports WHERE job_id = $1`, jobID).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, pkgerrors.Newf(pkgerrors.ErrCodeJobNotFound, "job %s not found", jobID)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeDatabaseError,
			fmt.Sprintf("load report %s", jobID))
	}

	var report analysis.AnalysisReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeSerialization,
			fmt.Sprintf("unmarshal report %s", jobID))
	}
	return &report, nil
}

// ListRecent returns up to limit reports, newest first.
func (r *ReportRepository) ListRecent(ctx context.Context, limit int) ([]*analysis.AnalysisReport, error) {
	if limit < 1 {
		limit = 20
	}
	rows, err := r.pool.Query(ctx,
		`SELECT report FROM analysis_reports ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeDatabaseError, "list reports")
	}
	defer rows.Close()

	reports := make([]*analysis.AnalysisReport, 0, limit)
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeDatabaseError, "scan report")
		}
		var report analysis.AnalysisReport
		if err := json.Unmarshal(payload, &report); err != nil {
			return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeSerialization, "unmarshal report")
		}
		reports = append(reports, &report)
	}
	if err := rows.Err(); err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeDatabaseError, "iterate reports")
	}
	return reports, nil
}
