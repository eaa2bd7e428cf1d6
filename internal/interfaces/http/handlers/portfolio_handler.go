package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/krishnashakula/LeaseIQ/internal/application/portfolio"
	pkgerrors "github.com/krishnashakula/LeaseIQ/pkg/errors"
)

// PortfolioService rolls up stored reports.
type PortfolioService interface {
	Analyze(ctx context.Context, jobIDs []string) (*portfolio.Summary, error)
}

// PortfolioHandler serves portfolio rollups.
type PortfolioHandler struct {
	service PortfolioService
}

// NewPortfolioHandler builds the handler.
func NewPortfolioHandler(service PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{service: service}
}

// Register mounts the portfolio route on the given group.
func (h *PortfolioHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/portfolio/analyze", h.analyze)
}

type portfolioRequest struct {
	JobIDs []string `json:"job_ids"`
}

func (h *PortfolioHandler) analyze(c *gin.Context) {
	var req portfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, pkgerrors.Wrap(err, pkgerrors.ErrCodeBadRequest, "decode request body"))
		return
	}

	summary, err := h.service.Analyze(c.Request.Context(), req.JobIDs)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"portfolio": summary,
	})
}
