package game

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/pierrec/lz4/v4"
	"github.com/redis/go-redis/v9"

	"stars-server/internal/planet"
)

// SummaryCache holds the planet summaries of a game year. A miss is
// reported as ok == false with a nil error.
type SummaryCache interface {
	Get(ctx context.Context, key string) ([]planet.Summary, bool, error)
	Set(ctx context.Context, key string, summaries []planet.Summary) error
	Delete(ctx context.Context, keys ...string) error
}

func summaryKey(publicID string, year int) string {
	return fmt.Sprintf("game:%s:planets:%d", publicID, year)
}

// RedisSummaryCache stores summaries as lz4-compressed JSON.
type RedisSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisSummaryCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisSummaryCache {
	return &RedisSummaryCache{
		client: client,
		ttl:    ttl,
		logger: logger.With("component", "summary_cache"),
	}
}

func (c *RedisSummaryCache) Get(ctx context.Context, key string) ([]planet.Summary, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		c.logger.Debug("Cache miss", "key", key)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}

	summaries, err := decodeSummaries(data)
	if err != nil {
		return nil, false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	c.logger.Debug("Cache hit", "key", key, "compressed_bytes", len(data))
	return summaries, true, nil
}

func (c *RedisSummaryCache) Set(ctx context.Context, key string, summaries []planet.Summary) error {
	data, err := encodeSummaries(summaries)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (c *RedisSummaryCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func encodeSummaries(summaries []planet.Summary) ([]byte, error) {
	raw, err := json.Marshal(summaries)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeSummaries(data []byte) ([]planet.Summary, error) {
	raw, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, err
	}

	var summaries []planet.Summary
	if err := json.Unmarshal(raw, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

// NoopSummaryCache is used when redis is disabled.
type NoopSummaryCache struct{}

func (NoopSummaryCache) Get(context.Context, string) ([]planet.Summary, bool, error) {
	return nil, false, nil
}

func (NoopSummaryCache) Set(context.Context, string, []planet.Summary) error { return nil }

func (NoopSummaryCache) Delete(context.Context, ...string) error { return nil }
