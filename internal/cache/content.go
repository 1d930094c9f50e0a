package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pawshield/adtrack/internal/model"
)

// Cache key prefix and TTL for keyword content.
const (
	contentKeyPrefix = "content:"

	// DefaultContentTTL is the TTL for cached landing copy.
	DefaultContentTTL = 24 * time.Hour
)

// ErrCacheMiss indicates the key is not in the cache.
var ErrCacheMiss = errors.New("cache miss")

// GetContent retrieves cached landing copy for a keyword.
// Returns ErrCacheMiss if not found.
func (c *Cache) GetContent(ctx context.Context, keyword string) (*model.ContentRecord, error) {
	key := contentKeyPrefix + keyword

	result, err := c.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall failed: %w", err)
	}

	if len(result) == 0 {
		return nil, ErrCacheMiss
	}

	rec := &model.ContentRecord{
		Keyword:     keyword,
		Headline:    result["headline"],
		Subheadline: result["subheadline"],
		BodyContent: result["body_content"],
		CTAText:     result["cta_text"],
	}
	if raw, ok := result["updated_at"]; ok {
		if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			rec.UpdatedAt = t
		}
	}

	return rec, nil
}

// SetContent stores landing copy for a keyword with the given TTL.
// A zero TTL uses DefaultContentTTL.
func (c *Cache) SetContent(ctx context.Context, rec *model.ContentRecord, ttl time.Duration) error {
	key := contentKeyPrefix + rec.Keyword
	if ttl <= 0 {
		ttl = DefaultContentTTL
	}

	fields := map[string]any{
		"headline":     rec.Headline,
		"subheadline":  rec.Subheadline,
		"body_content": rec.BodyContent,
		"cta_text":     rec.CTAText,
		"updated_at":   rec.UpdatedAt.Format(time.RFC3339Nano),
	}

	pipe := c.client.TxPipeline()
	// Replace the hash wholesale so stale fields never linger.
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis hset failed: %w", err)
	}

	return nil
}
