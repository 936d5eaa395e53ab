// Package cache stores finished sentence analyses in Redis, keyed by the
// sentence content so identical sentences across texts share one AI call.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/heartmarshall/reading-copilot/internal/config"
	"github.com/heartmarshall/reading-copilot/internal/domain"
)

const keyPrefix = "copilot:analysis:v1:"

// Entry is a cached analysis result.
type Entry struct {
	Translation string          `json:"translation"`
	Analysis    domain.Analysis `json:"analysis"`
}

// AnalysisCache is a Redis-backed analysis cache.
type AnalysisCache struct {
	rdb *goredis.Client
	ttl time.Duration
	log *slog.Logger
}

// New connects to Redis and verifies the connection with a ping.
func New(ctx context.Context, cfg config.CacheConfig, log *slog.Logger) (*AnalysisCache, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return NewWithClient(rdb, cfg.TTL, log), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(rdb *goredis.Client, ttl time.Duration, log *slog.Logger) *AnalysisCache {
	return &AnalysisCache{
		rdb: rdb,
		ttl: ttl,
		log: log.With("component", "analysis_cache"),
	}
}

// Key returns the Redis key for a sentence content. Surrounding whitespace
// does not change the key.
func Key(content string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(content)))
	return keyPrefix + hex.EncodeToString(sum[:])
}

// Get returns the cached entry for content. A miss is (Entry{}, false, nil).
func (c *AnalysisCache) Get(ctx context.Context, content string) (Entry, bool, error) {
	raw, err := c.rdb.Get(ctx, Key(content)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("redis get: %w", err)
	}

	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		// A corrupt entry is a miss; the next analysis overwrites it.
		c.log.WarnContext(ctx, "discarding undecodable cache entry", slog.String("error", err.Error()))
		return Entry{}, false, nil
	}
	return e, true, nil
}

// Set stores the entry for content with the configured TTL.
func (c *AnalysisCache) Set(ctx context.Context, content string, e Entry) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}
	if err := c.rdb.Set(ctx, Key(content), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Ping checks the connection for readiness probes.
func (c *AnalysisCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close releases the client.
func (c *AnalysisCache) Close() error {
	return c.rdb.Close()
}
