package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SakshiBishnoi/eCommerce/internal/domain"
)

func TestSummaryCacheEmpty(t *testing.T) {
	c := NewSummaryCache(30 * time.Second)

	got, ok := c.Get(time.Now())
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestSummaryCacheHitWithinTTL(t *testing.T) {
	c := NewSummaryCache(30 * time.Second)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	summary := &domain.DashboardSummary{TotalOrders: 7}

	c.Put(summary, now)

	got, ok := c.Get(now.Add(29 * time.Second))
	require.True(t, ok)
	assert.Same(t, summary, got)
}

func TestSummaryCacheExpiry(t *testing.T) {
	c := NewSummaryCache(30 * time.Second)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	c.Put(&domain.DashboardSummary{}, now)

	_, ok := c.Get(now.Add(30 * time.Second))
	assert.False(t, ok, "a value exactly TTL old is stale")

	_, ok = c.Get(now.Add(time.Minute))
	assert.False(t, ok)
}

func TestSummaryCachePutOverwrites(t *testing.T) {
	c := NewSummaryCache(30 * time.Second)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	first := &domain.DashboardSummary{TotalOrders: 1}
	second := &domain.DashboardSummary{TotalOrders: 2}

	c.Put(first, now)
	c.Put(second, now.Add(time.Second))

	got, ok := c.Get(now.Add(2 * time.Second))
	require.True(t, ok)
	assert.Same(t, second, got)
}
