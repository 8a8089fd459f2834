package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/bizlist/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openDB(t *testing.T) *sqlite.DB {
	t.Helper()

	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func TestPageCache(t *testing.T) {
	t.Parallel()

	t.Run("miss for unknown URL", func(t *testing.T) {
		t.Parallel()

		cache := sqlite.NewPageCache(openDB(t), 0)

		_, ok, err := cache.Get(context.Background(), "https://example.com/none")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("stores and replaces markup", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		cache := sqlite.NewPageCache(openDB(t), 0)

		require.NoError(t, cache.Put(ctx, "https://example.com/1", "<h1>first</h1>"))
		require.NoError(t, cache.Put(ctx, "https://example.com/1", "<h1>second</h1>"))

		html, ok, err := cache.Get(ctx, "https://example.com/1")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "<h1>second</h1>", html)
	})

	t.Run("expired entries are misses", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		cache := sqlite.NewPageCache(openDB(t), time.Hour)
		now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
		cache.SetNow(func() time.Time { return now })

		require.NoError(t, cache.Put(ctx, "https://example.com/1", "<h1>x</h1>"))

		now = now.Add(30 * time.Minute)
		_, ok, err := cache.Get(ctx, "https://example.com/1")
		require.NoError(t, err)
		assert.True(t, ok)

		now = now.Add(time.Hour)
		_, ok, err = cache.Get(ctx, "https://example.com/1")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("tampered rows are misses", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		db := openDB(t)
		cache := sqlite.NewPageCache(db, 0)

		require.NoError(t, cache.Put(ctx, "https://example.com/1", "<h1>x</h1>"))
		_, err := db.ExecContext(ctx, `UPDATE pages SET html = 'truncated' WHERE url = ?`, "https://example.com/1")
		require.NoError(t, err)

		_, ok, err := cache.Get(ctx, "https://example.com/1")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
