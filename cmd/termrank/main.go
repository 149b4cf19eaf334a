package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/Adithya-Monish-Kumar-K/termrank/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/termrank/internal/indexer/source"
	"github.com/Adithya-Monish-Kumar-K/termrank/internal/searcher/cache"
	"github.com/Adithya-Monish-Kumar-K/termrank/internal/searcher/executor"
	"github.com/Adithya-Monish-Kumar-K/termrank/internal/searcher/ranker"
	"github.com/Adithya-Monish-Kumar-K/termrank/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/termrank/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/termrank/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/termrank/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/termrank/pkg/tracing"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(apperrors.ExitCode(err))
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("termrank", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to config file")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: termrank [-config file] <token>\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return apperrors.New(apperrors.ErrUsage, err.Error())
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return apperrors.New(apperrors.ErrMissingQuery, "no search token provided")
	}
	token := fs.Arg(0)

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger.SetupWriter(stderr, cfg.Logging.Level, cfg.Logging.Format)

	m := metrics.New()
	traceID := tracing.NewTraceID()
	ctx := logger.WithRunID(context.Background(), traceID)
	ctx, span := tracing.Start(ctx, "run", traceID)
	log := logger.FromContext(ctx)
	log.Info("starting termrank", "dir", cfg.Indexer.Dir, "token", token)

	fmt.Fprintln(stdout, "Indexing...")
	engine := indexer.NewEngine(cfg.Indexer, m)
	corpus, err := engine.Build(ctx, source.Dir(cfg.Indexer.Dir))
	if err != nil {
		return err
	}

	exec := executor.New(corpus, cache.New(m), m)
	if cfg.Search.Precompute {
		if _, err := exec.Precompute(ctx); err != nil {
			return fmt.Errorf("precomputing rankings: %w", err)
		}
	}
	fmt.Fprintln(stdout, "Finished indexing!")

	ranking, err := exec.Search(ctx, token)
	switch {
	case errors.Is(err, apperrors.ErrTokenNotFound):
		fmt.Fprintln(stdout, "Token not found in documents")
	case err != nil:
		return fmt.Errorf("searching %q: %w", token, err)
	default:
		printRanking(stdout, token, ranking.Limit(cfg.Search.Limit))
	}

	span.End()
	if cfg.Tracing.Enabled {
		span.Log(log)
	}
	if cfg.Metrics.Textfile != "" {
		if err := m.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			log.Warn("metrics export failed", "error", err)
		}
	}
	slog.Debug("termrank finished")
	return nil
}

func printRanking(w io.Writer, token string, ranking ranker.Ranking) {
	fmt.Fprintf(w, "Search results for '%s':\n", token)
	for _, sd := range ranking {
		fmt.Fprintf(w, "    Score: %s => Path: %s\n", formatScore(sd.Score), sd.Doc.Path)
	}
}

// formatScore prints the shortest decimal that round-trips, without an
// exponent.
func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}
