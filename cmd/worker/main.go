// Command worker consumes uploaded-document events and runs analyses.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/krishnashakula/LeaseIQ/internal/application/analyzer"
	"github.com/krishnashakula/LeaseIQ/internal/application/extraction"
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
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "worker:", err)
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
	logger.Info("starting worker", logging.String("version", config.Version))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics := prometheus.NewMetrics("leaseiq")
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	metricsSrv := &http.Server{Addr: fmt.Sprintf(":%d", cfg.Server.Port), Handler: mux}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("metrics listener failed", logging.Err(err))
		}
	}()
	defer metricsSrv.Close()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	blobs, err := miniostore.NewDocumentStore(ctx, cfg.MinIO)
	if err != nil {
		return err
	}

	producer := kafka.NewProducer(cfg.Kafka, logger).WithMetrics(metrics)
	defer producer.Close()

	deps := analyzer.Deps{
		Engine: analysis.NewEngine(
			market.NewStaticProvider(cfg.Market.Region),
			analysis.WithCompliancePolicy(cfg.Analysis.CompliancePolicy),
		),
		Extractor: extraction.NewRegexExtractor(),
		Store:     repositories.NewReportRepository(pool),
		Documents: repositories.NewDocumentRepository(pool),
		Blobs:     blobs,
		Publisher: producer,
		Metrics:   metrics,
		Logger:    logger.Named("analyzer"),
	}

	if redisClient, err := redisinfra.NewClient(ctx, cfg.Redis); err != nil {
		logger.Warn("redis unavailable, skipping report cache warms", logging.Err(err))
	} else {
		defer redisClient.Close()
		deps.Cache = redisinfra.NewReportCache(redisClient, cfg.Redis)
	}
	if index, err := opensearch.NewIndex(cfg.OpenSearch); err != nil {
		logger.Warn("search cluster unavailable, skipping report indexing", logging.Err(err))
	} else {
		deps.Index = index
	}

	svc := analyzer.NewService(deps)

	consumer := kafka.NewConsumer(cfg.Kafka, logger.Named("consumer")).WithMetrics(metrics)
	defer consumer.Close()

	logger.Info("worker consuming",
		logging.String("topic", cfg.Kafka.UploadedTopic),
		logging.String("group", cfg.Kafka.GroupID),
	)
	return consumer.Run(ctx, func(ctx context.Context, ev kafka.DocumentUploadedEvent) error {
		return svc.ProcessDocument(ctx, ev.JobID, ev.DocumentID, ev.ObjectKey)
	})
}
