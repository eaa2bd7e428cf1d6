// Package redis provides the report cache in front of the job store.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/krishnashakula/LeaseIQ/internal/config"
	"github.com/krishnashakula/LeaseIQ/internal/domain/analysis"
	pkgerrors "github.com/krishnashakula/LeaseIQ/pkg/errors"
)

// NewClient connects to Redis and verifies the connection with a ping.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		PoolSize:    cfg.PoolSize,
		DialTimeout: cfg.DialTimeout,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeCacheError, "redis ping")
	}
	return client, nil
}

// ReportCache caches assembled reports by job id.  Reports are immutable, so
// entries never need invalidation before their TTL.
type ReportCache struct {
	client goredis.Cmdable
	prefix string
	ttl    time.Duration
}

// NewReportCache builds a cache using the configured key prefix and TTL.
func NewReportCache(client goredis.Cmdable, cfg config.RedisConfig) *ReportCache {
	return &ReportCache{
		client: client,
		prefix: cfg.KeyPrefix,
		ttl:    cfg.DefaultTTL,
	}
}

func (c *ReportCache) key(jobID string) string {
	return fmt.Sprintf("%s:report:%s", c.prefix, jobID)
}

// Get returns the cached report for a job id, or nil on a miss.  Transport
// errors are returned so callers can fall through to the job store.
func (c *ReportCache) Get(ctx context.Context, jobID string) (*analysis.AnalysisReport, error) {
	raw, err := c.client.Get(ctx, c.key(jobID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeCacheError,
			fmt.Sprintf("cache get %s", jobID))
	}

	var report analysis.AnalysisReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeSerialization,
			fmt.Sprintf("cache decode %s", jobID))
	}
	return &report, nil
}

// Set stores a report under its job id with the default TTL.
func (c *ReportCache) Set(ctx context.Context, report *analysis.AnalysisReport) error {
	raw, err := json.Marshal(report)
	if err != nil {
		return pkgerrors.Wrap(err, pkgerrors.ErrCodeSerialization, "cache encode report")
	}
	if err := c.client.Set(ctx, c.key(report.JobID), raw, c.ttl).Err(); err != nil {
		return pkgerrors.Wrap(err, pkgerrors.ErrCodeCacheError,
			fmt.Sprintf("cache set %s", report.JobID))
	}
	return nil
}
