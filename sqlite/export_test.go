package sqlite

import "time"

// SetNow overrides the cache clock.
func (c *PageCache) SetNow(now func() time.Time) { c.now = now }
