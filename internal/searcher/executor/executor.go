package executor

import (
	"context"
	"log/slog"

	"github.com/Adithya-Monish-Kumar-K/termrank/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/termrank/internal/searcher/cache"
	"github.com/Adithya-Monish-Kumar-K/termrank/internal/searcher/ranker"
	apperrors "github.com/Adithya-Monish-Kumar-K/termrank/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/termrank/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/termrank/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/termrank/pkg/tracing"
)

// Executor answers single-token queries against a built corpus.
type Executor struct {
	corpus  *indexer.Corpus
	cache   *cache.RankingCache
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func New(corpus *indexer.Corpus, rankingCache *cache.RankingCache, m *metrics.Metrics) *Executor {
	return &Executor{
		corpus:  corpus,
		cache:   rankingCache,
		metrics: m,
		logger:  logger.WithComponent("query-executor"),
	}
}

// Search returns the ranking for token. A token that occurs in no document
// yields ErrTokenNotFound rather than an all-zero ranking.
func (e *Executor) Search(ctx context.Context, token string) (ranker.Ranking, error) {
	_, span := tracing.StartChild(ctx, "query")
	defer span.End()
	span.SetAttr("token", token)

	idfValue, ok := e.corpus.IDF.Lookup(token)
	if !ok {
		e.metrics.QueriesTotal.WithLabelValues(metrics.ResultNotFound).Inc()
		e.logger.Info("token not found", "token", token)
		return nil, apperrors.Newf(apperrors.ErrTokenNotFound, "%q", token)
	}
	ranking, cacheHit, err := e.cache.GetOrCompute(token, func() (ranker.Ranking, error) {
		return e.rank(token, idfValue), nil
	})
	if err != nil {
		return nil, err
	}
	e.metrics.QueriesTotal.WithLabelValues(metrics.ResultFound).Inc()
	span.SetAttr("cache_hit", cacheHit)
	e.logger.Info("query executed",
		"token", token,
		"idf", idfValue,
		"documents", len(ranking),
		"cache_hit", cacheHit,
	)
	return ranking, nil
}

// Precompute ranks every token of the corpus vocabulary and returns how many
// rankings were computed.
func (e *Executor) Precompute(ctx context.Context) (int, error) {
	_, span := tracing.StartChild(ctx, "precompute")
	defer span.End()

	computed := 0
	for _, token := range e.corpus.IDF.Tokens() {
		idfValue, _ := e.corpus.IDF.Lookup(token)
		_, cacheHit, err := e.cache.GetOrCompute(token, func() (ranker.Ranking, error) {
			return e.rank(token, idfValue), nil
		})
		if err != nil {
			return computed, err
		}
		if !cacheHit {
			computed++
		}
	}
	span.SetAttr("rankings", computed)
	e.logger.Debug("rankings precomputed", "rankings", computed)
	return computed, nil
}

func (e *Executor) rank(token string, idfValue float64) ranker.Ranking {
	e.metrics.RankingsComputedTotal.Inc()
	return ranker.Rank(token, idfValue, e.corpus.Documents())
}
