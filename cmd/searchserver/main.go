package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/analytics"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/corpus"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/dedup"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/batch"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/paginator"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/metrics"
)

type queryList []string

func (q *queryList) String() string { return strings.Join(*q, ", ") }

func (q *queryList) Set(v string) error {
	*q = append(*q, v)
	return nil
}

type options struct {
	configPath string
	corpusPath string
	mode       string
	status     string
	dedup      bool
	joined     bool
	matchID    int
	queries    queryList
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "path to config file")
	flag.StringVar(&opts.corpusPath, "corpus", "configs/corpus.yaml", "path to YAML corpus")
	flag.StringVar(&opts.mode, "mode", "", "execution mode override: sequential or parallel")
	flag.StringVar(&opts.status, "status", "ACTUAL", "document status to search")
	flag.BoolVar(&opts.dedup, "dedup", true, "remove duplicate documents after loading")
	flag.BoolVar(&opts.joined, "joined", false, "run all queries as one batch and print the joined results")
	flag.IntVar(&opts.matchID, "match", -1, "also match every query against this document id")
	flag.Var(&opts.queries, "q", "query to run (repeatable); defaults to the corpus queries")
	flag.Parse()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)

	if err := run(cfg, opts); err != nil {
		slog.Error("search server failed", "error", err)
		os.Exit(apperrors.ExitCode(err))
	}
}

func run(cfg *config.Config, opts options) error {
	modeName := cfg.Search.Mode
	if opts.mode != "" {
		modeName = opts.mode
	}
	mode, err := index.ParseMode(modeName)
	if err != nil {
		return apperrors.New(apperrors.ErrInvalidArgument, err.Error())
	}
	status, err := index.ParseStatus(opts.status)
	if err != nil {
		return apperrors.New(apperrors.ErrInvalidArgument, err.Error())
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(nil)
		shutdown := metrics.StartServer(cfg.Metrics.Port)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(ctx); err != nil {
				slog.Error("metrics server shutdown failed", "error", err)
			}
		}()
	}

	c, err := corpus.Load(opts.corpusPath)
	if err != nil {
		return err
	}
	indexerCfg := cfg.Indexer
	if c.StopWords != "" {
		indexerCfg.StopWordsText = strings.TrimSpace(indexerCfg.StopWordsText + " " + c.StopWords)
	}
	engine, err := indexer.NewEngine(indexerCfg, indexer.WithMetrics(m))
	if err != nil {
		return fmt.Errorf("creating index: %w", err)
	}
	if err := c.IndexInto(engine); err != nil {
		return err
	}
	slog.Info("corpus indexed", "path", opts.corpusPath, "documents", engine.DocumentCount())

	if opts.dedup {
		removed := dedup.New(engine, dedup.WithMode(mode), dedup.WithMetrics(m)).Run()
		for _, id := range removed {
			fmt.Printf("Found duplicate document id %d\n", id)
		}
	}

	queries := []string(opts.queries)
	if len(queries) == 0 {
		queries = c.Queries
	}

	if opts.joined {
		docs, err := batch.New(engine, batch.WithMode(mode), batch.WithWorkers(indexerCfg.Workers)).ProcessJoined(queries)
		if err != nil {
			return err
		}
		for _, d := range docs {
			fmt.Println(d)
		}
		return nil
	}

	queue := analytics.NewRequestQueue(engine,
		analytics.WithCapacity(cfg.Throttle.Window),
		analytics.WithMode(mode),
		analytics.WithMetrics(m),
	)
	for _, q := range queries {
		results, err := queue.AddFindRequestByStatus(q, status)
		if err != nil {
			return fmt.Errorf("query %q: %w", q, err)
		}
		fmt.Printf("Results for %q:\n", q)
		for _, page := range paginator.Paginate(results, cfg.Search.PageSize) {
			for _, d := range page {
				fmt.Println(d)
			}
			fmt.Println("Page break")
		}
		if opts.matchID >= 0 {
			words, st, err := engine.MatchDocument(mode, q, opts.matchID)
			if err != nil {
				return err
			}
			fmt.Printf("{ document_id = %d, status = %s, words = %s }\n", opts.matchID, st, strings.Join(words, " "))
		}
	}
	fmt.Printf("Requests without results: %d\n", queue.NoResultRequests())
	return nil
}
