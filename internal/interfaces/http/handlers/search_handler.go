package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/krishnashakula/LeaseIQ/internal/infrastructure/search/opensearch"
)

// SearchService queries the report index.
type SearchService interface {
	Search(ctx context.Context, q opensearch.SearchQuery) ([]opensearch.SearchResult, error)
}

// SearchHandler serves report search.
type SearchHandler struct {
	service SearchService
}

// NewSearchHandler builds the handler.
func NewSearchHandler(service SearchService) *SearchHandler {
	return &SearchHandler{service: service}
}

// Register mounts the search route on the given group.
func (h *SearchHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/reports/search", h.search)
}

func (h *SearchHandler) search(c *gin.Context) {
	minRisk, _ := strconv.Atoi(c.DefaultQuery("min_risk_score", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	results, err := h.service.Search(c.Request.Context(), opensearch.SearchQuery{
		RiskLevel:        c.Query("risk_level"),
		ComplianceStatus: c.Query("compliance_status"),
		MarketPosition:   c.Query("market_position"),
		MinRiskScore:     minRisk,
		Limit:            limit,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"count":   len(results),
		"results": results,
	})
}
