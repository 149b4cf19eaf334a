package cache

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/Adithya-Monish-Kumar-K/termrank/internal/searcher/ranker"
	"github.com/Adithya-Monish-Kumar-K/termrank/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/termrank/pkg/metrics"
	"golang.org/x/sync/singleflight"
)

// RankingCache memoizes rankings by token for the lifetime of one corpus.
type RankingCache struct {
	mu       sync.RWMutex
	rankings map[string]ranker.Ranking
	group    singleflight.Group
	metrics  *metrics.Metrics
	logger   *slog.Logger
	hits     atomic.Int64
	misses   atomic.Int64
}

// New creates an empty cache reporting hits and misses to m.
func New(m *metrics.Metrics) *RankingCache {
	return &RankingCache{
		rankings: make(map[string]ranker.Ranking),
		metrics:  m,
		logger:   logger.WithComponent("ranking-cache"),
	}
}

func (c *RankingCache) Get(token string) (ranker.Ranking, bool) {
	c.mu.RLock()
	ranking, ok := c.rankings[token]
	c.mu.RUnlock()
	if !ok {
		c.misses.Add(1)
		c.metrics.CacheMissesTotal.Inc()
		return nil, false
	}
	c.hits.Add(1)
	c.metrics.CacheHitsTotal.Inc()
	c.logger.Debug("cache hit", "token", token)
	return ranking, true
}

func (c *RankingCache) Set(token string, ranking ranker.Ranking) {
	c.mu.Lock()
	c.rankings[token] = ranking
	c.mu.Unlock()
}

// GetOrCompute returns the memoized ranking for token, computing and storing
// it on first use. Concurrent callers for the same token share one
// computation. The boolean reports whether the ranking came from the cache.
func (c *RankingCache) GetOrCompute(token string, computeFn func() (ranker.Ranking, error)) (ranker.Ranking, bool, error) {
	if ranking, ok := c.Get(token); ok {
		return ranking, true, nil
	}
	val, err, _ := c.group.Do(token, func() (interface{}, error) {
		c.mu.RLock()
		ranking, ok := c.rankings[token]
		c.mu.RUnlock()
		if ok {
			return ranking, nil
		}
		ranking, err := computeFn()
		if err != nil {
			return nil, err
		}
		c.Set(token, ranking)
		return ranking, nil
	})
	if err != nil {
		return nil, false, err
	}
	return val.(ranker.Ranking), false, nil
}

// Len returns the number of memoized tokens.
func (c *RankingCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.rankings)
}

func (c *RankingCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
