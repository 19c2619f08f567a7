package repository

import (
	"context"
	"testing"
	"time"

	"ctchen222/rehla/internal/db"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sqlx.DB {
	t.Helper()

	pool, err := db.Connect(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })
	return pool
}

func ptr[T any](v T) *T { return &v }

var baseTime = time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)
