package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"scheme-finder/internal/common/logger"
	"scheme-finder/internal/models"
)

// CachedSource fronts a slow source with a redis copy. Cache failures are
// logged and fall through to the wrapped source.
type CachedSource struct {
	next   Source
	redis  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedSource(next Source, rdb *redis.Client, ttl time.Duration, log logger.Logger) *CachedSource {
	return &CachedSource{next: next, redis: rdb, ttl: ttl, logger: log}
}

func (c *CachedSource) Name() string { return c.next.Name() }

func (c *CachedSource) key() string { return "catalog:schemes:" + c.next.Name() }

func (c *CachedSource) Load(ctx context.Context) ([]models.Scheme, error) {
	if val, err := c.redis.Get(ctx, c.key()).Bytes(); err == nil {
		var schemes []models.Scheme
		if err := json.Unmarshal(val, &schemes); err == nil && len(schemes) > 0 {
			return schemes, nil
		}
	} else if err != redis.Nil {
		c.logger.Warn("catalog cache read failed", map[string]interface{}{"error": err.Error()})
	}

	schemes, err := c.next.Load(ctx)
	if err != nil {
		return nil, err
	}

	if len(schemes) > 0 {
		data, _ := json.Marshal(schemes)
		if err := c.redis.Set(ctx, c.key(), data, c.ttl).Err(); err != nil {
			c.logger.Warn("catalog cache write failed", map[string]interface{}{"error": err.Error()})
		}
	}
	return schemes, nil
}

// Invalidate drops the cached copy so the next Load hits the source.
func (c *CachedSource) Invalidate(ctx context.Context) error {
	return c.redis.Del(ctx, c.key()).Err()
}
