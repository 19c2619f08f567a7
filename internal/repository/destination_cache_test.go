package repository

import (
	"context"
	"testing"

	"ctchen222/rehla/internal/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopCacheNeverHits(t *testing.T) {
	cache := NewDestinationCache(nil, 0)
	ctx := context.Background()

	assert.False(t, cache.Enabled())
	require.NoError(t, cache.Set(ctx, KeyAllDestinations, []*models.Destination{{ID: "a"}}))

	got, ok, err := cache.Get(ctx, KeyAllDestinations)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
	assert.NoError(t, cache.Invalidate(ctx))
	assert.NoError(t, cache.Ping(ctx))
}
