// Package http assembles the gin router and the server lifecycle.
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/krishnashakula/LeaseIQ/internal/config"
	"github.com/krishnashakula/LeaseIQ/internal/infrastructure/monitoring/logging"
	"github.com/krishnashakula/LeaseIQ/internal/infrastructure/monitoring/prometheus"
	"github.com/krishnashakula/LeaseIQ/internal/interfaces/http/handlers"
	"github.com/krishnashakula/LeaseIQ/internal/interfaces/http/middleware"
)

// RouterDeps bundles everything the router mounts.  Upload, Portfolio and
// Search are optional; their routes are omitted when nil.
type RouterDeps struct {
	Analysis  handlers.AnalysisService
	Upload    handlers.UploadService
	Portfolio handlers.PortfolioService
	Search    handlers.SearchService
	Health    *handlers.HealthHandler
	Metrics   *prometheus.Metrics
	Logger    logging.Logger
}

// NewRouter builds the full route table.
func NewRouter(cfg config.ServerConfig, deps RouterDeps) *gin.Engine {
	gin.SetMode(ginMode(cfg.Mode))

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(deps.Logger))
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.MaxMultipartMemory = cfg.MaxUploadBytes

	if deps.Health != nil {
		deps.Health.Register(r)
	}
	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RateLimit(cfg.RateLimitPerMin))

	handlers.NewAnalysisHandler(deps.Analysis).Register(v1)
	if deps.Upload != nil {
		handlers.NewUploadHandler(deps.Upload).Register(v1)
	}
	if deps.Portfolio != nil {
		handlers.NewPortfolioHandler(deps.Portfolio).Register(v1)
	}
	if deps.Search != nil {
		handlers.NewSearchHandler(deps.Search).Register(v1)
	}

	return r
}

func ginMode(mode string) string {
	switch mode {
	case "debug":
		return gin.DebugMode
	case "test":
		return gin.TestMode
	default:
		return gin.ReleaseMode
	}
}
