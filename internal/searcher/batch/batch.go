// Package batch runs many searches against one index concurrently.
package batch

import (
	"fmt"
	"log/slog"
	"slices"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/ranker"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/parallel"
)

type Searcher interface {
	FindTopDocuments(mode index.ExecutionMode, rawQuery string, pred index.Predicate) ([]ranker.ScoredDoc, error)
}

// Processor evaluates query batches over a bounded number of goroutines.
// Identical queries that are in flight at the same time are evaluated once.
type Processor struct {
	searcher Searcher
	mode     index.ExecutionMode
	workers  int
	group    singleflight.Group
	shared   atomic.Int64
	logger   *slog.Logger
}

type Option func(*Processor)

// WithMode sets the execution mode of each individual search.
func WithMode(mode index.ExecutionMode) Option {
	return func(p *Processor) {
		p.mode = mode
	}
}

// WithWorkers bounds the number of queries evaluated at once.
func WithWorkers(n int) Option {
	return func(p *Processor) {
		p.workers = n
	}
}

func New(searcher Searcher, opts ...Option) *Processor {
	p := &Processor{
		searcher: searcher,
		logger:   slog.Default().With("component", "batch-processor"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process returns the ACTUAL-status results of every query, in query order.
// The first failing query fails the whole batch.
func (p *Processor) Process(queries []string) ([][]ranker.ScoredDoc, error) {
	results, err := parallel.Map(p.workers, queries, p.search)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("batch processed", "queries", len(queries), "shared", p.shared.Load())
	return results, nil
}

// ProcessJoined flattens Process's results, keeping query order.
func (p *Processor) ProcessJoined(queries []string) ([]ranker.ScoredDoc, error) {
	perQuery, err := p.Process(queries)
	if err != nil {
		return nil, err
	}
	n := 0
	for _, docs := range perQuery {
		n += len(docs)
	}
	joined := make([]ranker.ScoredDoc, 0, n)
	for _, docs := range perQuery {
		joined = append(joined, docs...)
	}
	return joined, nil
}

// Shared returns how many searches were answered by an identical search
// already in flight.
func (p *Processor) Shared() int64 {
	return p.shared.Load()
}

func (p *Processor) search(query string) ([]ranker.ScoredDoc, error) {
	v, err, shared := p.group.Do(query, func() (any, error) {
		return p.searcher.FindTopDocuments(p.mode, query, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", query, err)
	}
	if shared {
		p.shared.Add(1)
	}
	return slices.Clone(v.([]ranker.ScoredDoc)), nil
}

// ProcessQueries is Process with default options.
func ProcessQueries(searcher Searcher, queries []string) ([][]ranker.ScoredDoc, error) {
	return New(searcher).Process(queries)
}

// ProcessQueriesJoined is ProcessJoined with default options.
func ProcessQueriesJoined(searcher Searcher, queries []string) ([]ranker.ScoredDoc, error) {
	return New(searcher).ProcessJoined(queries)
}
