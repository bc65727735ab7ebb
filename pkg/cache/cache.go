package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/arnavshah/study-planner-go/pkg/config"
	"github.com/arnavshah/study-planner-go/pkg/models"
)

const keyPrefix = "plan:"

// PlanCache stores plan results in redis keyed by a digest of the input.
// A nil *PlanCache is valid and never hits.
type PlanCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to redis. It returns nil without error when no address is configured.
func New(ctx context.Context, cfg *config.RedisConfig) (*PlanCache, error) {
	if cfg.Addr == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}
	return NewWithClient(client, cfg.TTL), nil
}

// NewWithClient wraps an existing client
func NewWithClient(client *redis.Client, ttl time.Duration) *PlanCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &PlanCache{client: client, ttl: ttl}
}

// Key returns the cache key for an input. Equal inputs give equal keys.
func Key(input models.PlanInput) (string, error) {
	data, err := json.Marshal(input)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return keyPrefix + hex.EncodeToString(sum[:]), nil
}

// Get returns the cached result for input, if any
func (c *PlanCache) Get(ctx context.Context, input models.PlanInput) (*models.PlanResult, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	key, err := Key(input)
	if err != nil {
		return nil, false, err
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var result models.PlanResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, false, fmt.Errorf("decoding cached plan: %w", err)
	}
	return &result, true, nil
}

// Set stores result for input with the configured TTL
func (c *PlanCache) Set(ctx context.Context, input models.PlanInput, result *models.PlanResult) error {
	if c == nil || result == nil {
		return nil
	}
	key, err := Key(input)
	if err != nil {
		return err
	}
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

// Close releases the redis connection
func (c *PlanCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
