package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/krishnashakula/LeaseIQ/internal/domain/analysis"
	pkgerrors "github.com/krishnashakula/LeaseIQ/pkg/errors"
)

// AnalysisService is the slice of the analyzer service the handler needs.
type AnalysisService interface {
	AnalyzeFields(ctx context.Context, jobID string, fields map[string]string, documentID string) (*analysis.AnalysisReport, error)
	AnalyzeText(ctx context.Context, jobID, text, documentID string) (*analysis.AnalysisReport, error)
	GetReport(ctx context.Context, jobID string) (*analysis.AnalysisReport, error)
	ListReports(ctx context.Context, limit int) ([]*analysis.AnalysisReport, error)
}

// AnalysisHandler serves report creation and retrieval.
type AnalysisHandler struct {
	service AnalysisService
}

// NewAnalysisHandler builds the handler.
func NewAnalysisHandler(service AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{service: service}
}

// Register mounts the analysis routes on the given group.
func (h *AnalysisHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/analyses", h.create)
	rg.GET("/analyses", h.list)
	rg.GET("/analyses/:jobID", h.get)
	rg.GET("/analyses/:jobID/risk", h.getRisk)
	rg.GET("/analyses/:jobID/compliance", h.getCompliance)
	rg.GET("/analyses/:jobID/revenue", h.getRevenue)
	rg.GET("/analyses/:jobID/market", h.getMarket)
}

type createAnalysisRequest struct {
	JobID  string            `json:"job_id"`
	Fields map[string]string `json:"fields"`
	Text   string            `json:"text"`
}

func (h *AnalysisHandler) create(c *gin.Context) {
	var req createAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, pkgerrors.Wrap(err, pkgerrors.ErrCodeBadRequest, "decode request body"))
		return
	}
	if req.Fields == nil && req.Text == "" {
		writeError(c, pkgerrors.NewValidationError("fields or text is required"))
		return
	}

	var report *analysis.AnalysisReport
	var err error
	if req.Fields != nil {
		report, err = h.service.AnalyzeFields(c.Request.Context(), req.JobID, req.Fields, "")
	} else {
		report, err = h.service.AnalyzeText(c.Request.Context(), req.JobID, req.Text, "")
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, envelope("business_intelligence", report.JobID,
		"business_intelligence", report.BusinessIntelligence))
}

func (h *AnalysisHandler) list(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	reports, err := h.service.ListReports(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"count":   len(reports),
		"reports": reports,
	})
}

func (h *AnalysisHandler) get(c *gin.Context) {
	report, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, envelope("business_intelligence", report.JobID,
		"business_intelligence", report.BusinessIntelligence))
}

func (h *AnalysisHandler) getRisk(c *gin.Context) {
	report, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, envelope("risk_assessment", report.JobID,
		"risk_assessment", report.BusinessIntelligence.RiskAssessment))
}

func (h *AnalysisHandler) getCompliance(c *gin.Context) {
	report, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, envelope("compliance_report", report.JobID,
		"compliance_report", report.BusinessIntelligence.ComplianceReport))
}

func (h *AnalysisHandler) getRevenue(c *gin.Context) {
	report, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, envelope("revenue_opportunities", report.JobID,
		"revenue_opportunities", report.BusinessIntelligence.RevenueOpportunities))
}

func (h *AnalysisHandler) getMarket(c *gin.Context) {
	report, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, envelope("market_analysis", report.JobID,
		"market_analysis", report.BusinessIntelligence.MarketAnalysis))
}

func (h *AnalysisHandler) load(c *gin.Context) (*analysis.AnalysisReport, bool) {
	jobID := c.Param("jobID")
	if jobID == "" {
		writeError(c, pkgerrors.NewValidationError("job id is required"))
		return nil, false
	}
	report, err := h.service.GetReport(c.Request.Context(), jobID)
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	return report, true
}
