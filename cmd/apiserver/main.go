// Command apiserver runs the LeaseIQ HTTP API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/krishnashakula/LeaseIQ/internal/application/analyzer"
	"github.com/krishnashakula/LeaseIQ/internal/application/extraction"
	"github.com/krishnashakula/LeaseIQ/internal/application/portfolio"
	"github.com/krishnashakula/LeaseIQ/internal/application/upload"
	"github.com/krishnashakula/LeaseIQ/internal/config"
	"github.com/krishnashakula/LeaseIQ/internal/domain/analysis"
	"github.com/krishnashakula/LeaseIQ/internal/infrastructure/database/postgres"
	"github.com/krishnashakula/LeaseIQ/internal/infrastructure/database/postgres/repositories"
	redisinfra "github.com/krishnashakula/LeaseIQ/internal/infrastructure/database/redis"
	"github.com/krishnashakula/LeaseIQ/internal/infrastructure/market"
	"github.com/krishnashakula/LeaseIQ/internal/infrastructure/messaging/kafka"
	"github.com/krishnashakula/LeaseIQ/internal/infrastructure/monitoring/logging"
	"github.com/krishnashakula/LeaseIQ/internal/infrastructure/monitoring/prometheus"
	"github.com/krishnashakula/LeaseIQ/internal/infrastructure/search/opensearch"
	miniostore "github.com/krishnashakula/LeaseIQ/internal/infrastructure/storage/minio"
	httpserver "github.com/krishnashakula/LeaseIQ/internal/interfaces/http"
	"github.com/krishnashakula/LeaseIQ/internal/interfaces/http/handlers"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "apiserver:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	logging.SetDefault(logger)
	logger.Info("starting apiserver", logging.String("version", config.Version))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics := prometheus.NewMetrics("leaseiq")

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()
	if err := postgres.Migrate(cfg.Database, logger); err != nil {
		return err
	}

	reportRepo := repositories.NewReportRepository(pool)
	documentRepo := repositories.NewDocumentRepository(pool)

	checks := []handlers.ReadyCheck{
		{Name: "postgres", Check: pool.Ping},
	}

	// The cache, object store, bus and search cluster are each optional:
	// the API degrades to store-only service when one is unreachable at
	// startup.
	var cache analyzer.ReportCache
	var redisClient *redis.Client
	if redisClient, err = redisinfra.NewClient(ctx, cfg.Redis); err != nil {
		logger.Warn("redis unavailable, serving without report cache", logging.Err(err))
	} else {
		defer redisClient.Close()
		cache = redisinfra.NewReportCache(redisClient, cfg.Redis)
		checks = append(checks, handlers.ReadyCheck{
			Name:  "redis",
			Check: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		})
	}

	var blobs *miniostore.DocumentStore
	if blobs, err = miniostore.NewDocumentStore(ctx, cfg.MinIO); err != nil {
		logger.Warn("object storage unavailable, uploads disabled", logging.Err(err))
		blobs = nil
	}

	producer := kafka.NewProducer(cfg.Kafka, logger).WithMetrics(metrics)
	defer producer.Close()

	var index *opensearch.Index
	if index, err = opensearch.NewIndex(cfg.OpenSearch); err != nil {
		logger.Warn("search cluster unavailable, search disabled", logging.Err(err))
		index = nil
	}

	provider, err := marketProvider(cfg.Market)
	if err != nil {
		return err
	}

	engine := analysis.NewEngine(provider,
		analysis.WithCompliancePolicy(cfg.Analysis.CompliancePolicy),
		analysis.WithLogger(logger.Named("engine")),
	)

	deps := analyzer.Deps{
		Engine:    engine,
		Extractor: extraction.NewRegexExtractor(),
		Store:     reportRepo,
		Cache:     cache,
		Metrics:   metrics,
		Logger:    logger.Named("analyzer"),
	}
	if index != nil {
		deps.Index = index
	}
	analyzerSvc := analyzer.NewService(deps)
	portfolioSvc := portfolio.NewAnalyzer(analyzerSvc, logger.Named("portfolio"))

	routerDeps := httpserver.RouterDeps{
		Analysis:  analyzerSvc,
		Portfolio: portfolioSvc,
		Health:    handlers.NewHealthHandler(config.Version, checks...),
		Metrics:   metrics,
		Logger:    logger.Named("http"),
	}
	if blobs != nil {
		routerDeps.Upload = upload.NewService(blobs, documentRepo, producer,
			cfg.Server.MaxUploadBytes, logger.Named("upload")).WithMetrics(metrics)
	}
	if index != nil {
		routerDeps.Search = index
	}

	router := httpserver.NewRouter(cfg.Server, routerDeps)
	server := httpserver.NewServer(cfg.Server, router, logger.Named("http"))

	errCh := make(chan error, 1)
	go func() { errCh <- server.Run() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func marketProvider(cfg config.MarketConfig) (analysis.MarketDataProvider, error) {
	if cfg.DatasetPath != "" {
		return market.NewFileProvider(cfg.DatasetPath)
	}
	return market.NewStaticProvider(cfg.Region), nil
}
