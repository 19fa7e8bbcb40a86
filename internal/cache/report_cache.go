package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stockpulse/backend-go/internal/config"
	"github.com/stockpulse/backend-go/internal/domain"
)

const reportKeyPrefix = "metrics:report"

// ReportCache memoizes computed metrics reports. Entries are keyed on the
// dataset-store revision plus a hash of the thresholds, so a new upload
// never serves a stale report — the revision simply moves past the old keys
// and the TTL reaps them.
type ReportCache interface {
	Get(ctx context.Context, revision uint64, th domain.Thresholds) (*domain.Report, bool, error)
	Set(ctx context.Context, report *domain.Report) error
}

type redisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopReportCache struct{}

// NewReportCache builds a Redis-backed cache when enabled, otherwise a noop.
func NewReportCache(cfg config.CacheConfig) (ReportCache, error) {
	if !cfg.Enabled {
		return &noopReportCache{}, nil
	}

	var opts *redis.Options
	if cfg.RedisURL != "" {
		parsed, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{
			Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}
	}

	ttl := time.Duration(cfg.ReportTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = time.Minute
	}

	return &redisReportCache{
		client: redis.NewClient(opts),
		ttl:    ttl,
	}, nil
}

// NewNoopReportCache returns a cache that never hits.
func NewNoopReportCache() ReportCache {
	return &noopReportCache{}
}

func (c *redisReportCache) Get(ctx context.Context, revision uint64, th domain.Thresholds) (*domain.Report, bool, error) {
	payload, err := c.client.Get(ctx, reportKey(revision, th)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var report domain.Report
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, false, fmt.Errorf("decode cached report: %w", err)
	}
	return &report, true, nil
}

func (c *redisReportCache) Set(ctx context.Context, report *domain.Report) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report cache: %w", err)
	}
	key := reportKey(report.Revision, report.Thresholds)
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (n *noopReportCache) Get(ctx context.Context, revision uint64, th domain.Thresholds) (*domain.Report, bool, error) {
	return nil, false, nil
}

func (n *noopReportCache) Set(ctx context.Context, report *domain.Report) error {
	return nil
}

func reportKey(revision uint64, th domain.Thresholds) string {
	return fmt.Sprintf("%s:%d:%s", reportKeyPrefix, revision, thresholdHash(th))
}

// thresholdHash produces a stable key fragment for one thresholds value.
func thresholdHash(th domain.Thresholds) string {
	raw := fmt.Sprintf("slow=%.4f|dead=%.4f|days=%.4f|margin=%.4f|ordering=%.4f|holding=%.4f",
		th.SlowMoverCost, th.DeadStockCost, th.SlowMoverDays,
		th.TargetMargin, th.OrderingCost, th.HoldingCostRate)
	sum := sha1.Sum([]byte(raw))
	return hex.EncodeToString(sum[:])
}
