package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/akukesepian/backend/internal/models"
)

const catalogKey = "catalog:characters"

// CatalogCache is a read-through cache for the persona list, which is
// immutable after seeding. Any redis failure degrades to a cache miss.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

func NewCatalogCache(client *redis.Client, ttl time.Duration, log zerolog.Logger) *CatalogCache {
	return &CatalogCache{client: client, ttl: ttl, log: log}
}

func (c *CatalogCache) Get(ctx context.Context) ([]models.Character, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, catalogKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Msg("catalog cache read failed")
		}
		return nil, false
	}

	var characters []models.Character
	if err := json.Unmarshal(raw, &characters); err != nil {
		c.log.Warn().Err(err).Msg("catalog cache decode failed")
		return nil, false
	}
	return characters, true
}

func (c *CatalogCache) Set(ctx context.Context, characters []models.Character) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(characters)
	if err != nil {
		c.log.Warn().Err(err).Msg("catalog cache encode failed")
		return
	}

	if err := c.client.Set(ctx, catalogKey, raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Msg("catalog cache write failed")
	}
}
