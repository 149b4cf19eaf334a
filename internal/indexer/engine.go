package indexer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Adithya-Monish-Kumar-K/termrank/internal/indexer/idf"
	"github.com/Adithya-Monish-Kumar-K/termrank/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/termrank/internal/indexer/source"
	"github.com/Adithya-Monish-Kumar-K/termrank/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/termrank/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/termrank/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/termrank/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/termrank/pkg/tracing"
)

// Corpus is the result of one indexing run: the documents with their
// term-frequency tables and the IDF table computed over them.
type Corpus struct {
	Index *index.CorpusIndex
	IDF   idf.Table
}

// Documents returns the indexed documents in the order they were read.
func (c *Corpus) Documents() []*index.Document {
	return c.Index.Documents()
}

func (c *Corpus) Len() int {
	return c.Index.Len()
}

type Engine struct {
	cfg     config.IndexerConfig
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewEngine(cfg config.IndexerConfig, m *metrics.Metrics) *Engine {
	return &Engine{
		cfg:     cfg,
		metrics: m,
		logger:  logger.WithComponent("indexer"),
	}
}

// Build drains src sequentially and returns the resulting Corpus.
// Directories are skipped. Unreadable documents are skipped with a warning
// unless StrictReads is set, in which case they abort the run. An unreadable
// source directory always aborts.
func (e *Engine) Build(ctx context.Context, src source.Source) (*Corpus, error) {
	start := time.Now()
	ctx, span := tracing.StartChild(ctx, "index")
	defer span.End()

	ci, err := e.scan(ctx, src)
	if err != nil {
		return nil, err
	}

	_, idfSpan := tracing.StartChild(ctx, "idf")
	table := idf.Compute(ci.Documents())
	idfSpan.SetAttr("tokens", table.Len())
	idfSpan.End()

	e.metrics.VocabularySize.Set(float64(table.Len()))
	e.metrics.IndexBuildDuration.Observe(time.Since(start).Seconds())
	span.SetAttr("documents", ci.Len())
	e.logger.Info("corpus built",
		"documents", ci.Len(),
		"tokens", ci.TotalTokens(),
		"vocabulary", table.Len(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &Corpus{Index: ci, IDF: table}, nil
}

func (e *Engine) scan(ctx context.Context, src source.Source) (*index.CorpusIndex, error) {
	_, span := tracing.StartChild(ctx, "scan")
	defer span.End()

	ci := index.NewCorpusIndex()
	skipped := 0
	for entry, err := range src {
		if err != nil {
			if !e.cfg.StrictReads && errors.Is(err, apperrors.ErrDocumentUnreadable) {
				e.logger.Warn("document unreadable, skipping", "path", entry.Path, "error", err)
				e.metrics.DocumentsSkippedTotal.WithLabelValues(metrics.SkipUnreadable).Inc()
				skipped++
				continue
			}
			return nil, fmt.Errorf("indexing %s: %w", entry.Path, err)
		}
		if entry.IsDir {
			e.logger.Info("entry is a directory, skipping", "path", entry.Path)
			e.metrics.DocumentsSkippedTotal.WithLabelValues(metrics.SkipDirectory).Inc()
			skipped++
			continue
		}
		doc := index.NewDocument(entry.Path, entry.Content)
		if err := ci.Add(doc); err != nil {
			return nil, fmt.Errorf("indexing %s: %w", entry.Path, err)
		}
		e.metrics.DocumentsIndexedTotal.Inc()
		e.metrics.TokensTotal.Add(float64(doc.TokenCount))
		e.logger.Debug("document indexed",
			"path", doc.Path,
			"token_count", doc.TokenCount,
			"terms", doc.Terms(),
		)
	}
	span.SetAttr("documents", ci.Len())
	span.SetAttr("skipped", skipped)
	return ci, nil
}
