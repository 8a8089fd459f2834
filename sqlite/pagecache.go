package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/bizlist"
)

// Ensure PageCache implements bizlist.PageCache at compile time.
var _ bizlist.PageCache = (*PageCache)(nil)

// PageCache stores fetched listing markup keyed by URL, so an interrupted
// or repeated run does not refetch pages it already has.
type PageCache struct {
	db  *DB
	ttl time.Duration
	now func() time.Time
}

// NewPageCache returns a cache over db. Entries older than ttl are misses;
// a zero ttl keeps entries forever.
func NewPageCache(db *DB, ttl time.Duration) *PageCache {
	return &PageCache{db: db, ttl: ttl, now: time.Now}
}

// Get returns the cached markup for url.
func (c *PageCache) Get(ctx context.Context, url string) (string, bool, error) {
	var html, hash, fetchedAt string
	err := c.db.QueryRowContext(ctx,
		`SELECT html, content_hash, fetched_at FROM pages WHERE url = ?`, url,
	).Scan(&html, &hash, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	} else if err != nil {
		return "", false, fmt.Errorf("query page: %w", err)
	}

	// A row whose content no longer matches its hash is treated as missing.
	if hash != contentHash(html) {
		return "", false, nil
	}

	if c.ttl > 0 {
		t, err := time.Parse(time.RFC3339, fetchedAt)
		if err != nil {
			return "", false, fmt.Errorf("failed to parse fetched_at: %w", err)
		}
		if c.now().Sub(t) > c.ttl {
			return "", false, nil
		}
	}
	return html, true, nil
}

// Put stores markup for url, replacing any existing entry.
func (c *PageCache) Put(ctx context.Context, url, html string) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO pages (url, html, content_hash, fetched_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			html = excluded.html,
			content_hash = excluded.content_hash,
			fetched_at = excluded.fetched_at
	`, url, html, contentHash(html), c.now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("store page: %w", err)
	}
	return nil
}

func contentHash(html string) string {
	return strconv.FormatUint(xxhash.Sum64String(html), 16)
}
