package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/Adithya-Monish-Kumar-K/termrank/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/termrank/internal/searcher/ranker"
	"github.com/Adithya-Monish-Kumar-K/termrank/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func sampleRanking() ranker.Ranking {
	doc := index.NewDocument("a.txt", "go")
	return ranker.Ranking{{Doc: doc, Score: 1}}
}

func TestGetOrComputeMemoizes(t *testing.T) {
	m := metrics.New()
	c := New(m)
	calls := 0
	compute := func() (ranker.Ranking, error) {
		calls++
		return sampleRanking(), nil
	}

	first, hit, err := c.GetOrCompute("go", compute)
	if err != nil || hit {
		t.Fatalf("first call: hit=%v err=%v", hit, err)
	}
	second, hit, err := c.GetOrCompute("go", compute)
	if err != nil || !hit {
		t.Fatalf("second call: hit=%v err=%v", hit, err)
	}
	if calls != 1 {
		t.Fatalf("expected one computation got %d", calls)
	}
	if first[0].Doc != second[0].Doc {
		t.Fatalf("memoized ranking differs")
	}
	hits, misses := c.Stats()
	if hits != 1 || misses != 1 {
		t.Fatalf("expected 1 hit 1 miss got %d %d", hits, misses)
	}
	if testutil.ToFloat64(m.CacheHitsTotal) != 1 || testutil.ToFloat64(m.CacheMissesTotal) != 1 {
		t.Fatalf("metrics not updated")
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 cached token got %d", c.Len())
	}
}

func TestGetOrComputeError(t *testing.T) {
	c := New(metrics.New())
	boom := errors.New("boom")
	_, _, err := c.GetOrCompute("go", func() (ranker.Ranking, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom got %v", err)
	}
	if c.Len() != 0 {
		t.Fatalf("failed computations must not be cached")
	}
}

func TestGetOrComputeConcurrentCallers(t *testing.T) {
	c := New(metrics.New())
	var calls atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := c.GetOrCompute("shared", func() (ranker.Ranking, error) {
				calls.Add(1)
				return sampleRanking(), nil
			})
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()
	if calls.Load() != 1 {
		t.Fatalf("expected a single computation got %d", calls.Load())
	}
}

func TestSetAndGet(t *testing.T) {
	c := New(metrics.New())
	if _, ok := c.Get("x"); ok {
		t.Fatalf("unexpected hit on empty cache")
	}
	c.Set("x", sampleRanking())
	if r, ok := c.Get("x"); !ok || len(r) != 1 {
		t.Fatalf("expected stored ranking")
	}
}
