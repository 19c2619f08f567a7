package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ctchen222/rehla/internal/api/models"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("repository.cache")

const keyPrefix = "rehla:destinations:"

// Cache keys for the two catalog reads.
const (
	KeyAllDestinations = "all"
	KeyPreview         = "preview"
)

// DestinationCache holds serialized catalog reads.
type DestinationCache interface {
	// Get returns ok=false on a miss.
	Get(ctx context.Context, key string) (destinations []*models.Destination, ok bool, err error)
	Set(ctx context.Context, key string, destinations []*models.Destination) error
	Invalidate(ctx context.Context) error
	Ping(ctx context.Context) error
	Enabled() bool
}

type redisDestinationCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewDestinationCache creates a Redis-based DestinationCache. With a nil
// client it returns a cache that never hits.
func NewDestinationCache(rdb *redis.Client, ttl time.Duration) DestinationCache {
	if rdb == nil {
		return noopDestinationCache{}
	}
	return &redisDestinationCache{rdb: rdb, ttl: ttl}
}

func (r *redisDestinationCache) Get(ctx context.Context, key string) ([]*models.Destination, bool, error) {
	ctx, span := tracer.Start(ctx, "DestinationCache.Get", trace.WithAttributes(attribute.String("cache.key", key)))
	defer span.End()

	raw, err := r.rdb.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		span.SetAttributes(attribute.Bool("cache.hit", false))
		return nil, false, nil
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "cache read failed")
		return nil, false, fmt.Errorf("failed to read cache key %s: %w", key, err)
	}

	var destinations []*models.Destination
	if err := json.Unmarshal(raw, &destinations); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached destinations: %w", err)
	}
	span.SetAttributes(attribute.Bool("cache.hit", true))
	return destinations, true, nil
}

func (r *redisDestinationCache) Set(ctx context.Context, key string, destinations []*models.Destination) error {
	ctx, span := tracer.Start(ctx, "DestinationCache.Set", trace.WithAttributes(attribute.String("cache.key", key)))
	defer span.End()

	raw, err := json.Marshal(destinations)
	if err != nil {
		return fmt.Errorf("failed to encode destinations: %w", err)
	}
	if err := r.rdb.Set(ctx, keyPrefix+key, raw, r.ttl).Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "cache write failed")
		return fmt.Errorf("failed to write cache key %s: %w", key, err)
	}
	return nil
}

// Invalidate drops both catalog entries.
func (r *redisDestinationCache) Invalidate(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "DestinationCache.Invalidate")
	defer span.End()

	pipe := r.rdb.Pipeline()
	pipe.Del(ctx, keyPrefix+KeyAllDestinations)
	pipe.Del(ctx, keyPrefix+KeyPreview)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *redisDestinationCache) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

func (r *redisDestinationCache) Enabled() bool { return true }

type noopDestinationCache struct{}

func (noopDestinationCache) Get(context.Context, string) ([]*models.Destination, bool, error) {
	return nil, false, nil
}
func (noopDestinationCache) Set(context.Context, string, []*models.Destination) error { return nil }
func (noopDestinationCache) Invalidate(context.Context) error                         { return nil }
func (noopDestinationCache) Ping(context.Context) error                               { return nil }
func (noopDestinationCache) Enabled() bool                                            { return false }
