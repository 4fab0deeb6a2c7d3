// Package cache holds the single-slot summary cache that sits in front of
// the dashboard aggregation, trading up to one TTL of staleness for fewer
// cross-collection queries on a frequently polled endpoint.
package cache

import (
	"sync"
	"time"

	"github.com/SakshiBishnoi/eCommerce/internal/domain"
)

// SummaryCache is a process-local slot holding the most recently computed
// dashboard summary. It is never invalidated by writes to the underlying
// collections; staleness up to the TTL is accepted. Last writer wins.
type SummaryCache struct {
	mu         sync.Mutex
	summary    *domain.DashboardSummary
	computedAt time.Time
	ttl        time.Duration
}

func NewSummaryCache(ttl time.Duration) *SummaryCache {
	return &SummaryCache{ttl: ttl}
}

// Get returns the cached summary if one was stored less than the TTL
// before now.
func (c *SummaryCache) Get(now time.Time) (*domain.DashboardSummary, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.summary == nil || now.Sub(c.computedAt) >= c.ttl {
		return nil, false
	}
	return c.summary, true
}

// Put unconditionally overwrites the slot.
func (c *SummaryCache) Put(summary *domain.DashboardSummary, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.summary = summary
	c.computedAt = now
}
