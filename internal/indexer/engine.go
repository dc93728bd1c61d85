package indexer

import (
	"log/slog"
	"sync"
	"time"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/tokenizer"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/executor"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/parser"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/ranker"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/metrics"
)

// Engine is the document index. It is safe for concurrent use: AddDocument
// and RemoveDocument exclude every other call, while searches, matches and
// frequency lookups run concurrently with each other.
type Engine struct {
	mu       sync.RWMutex
	memIndex *index.MemoryIndex
	executor *executor.Executor
	cfg      config.IndexerConfig
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

type Option func(*Engine)

// WithMetrics attaches Prometheus collectors to the engine.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// NewEngine builds an empty index whose stop words are cfg.StopWords plus
// the words of cfg.StopWordsText.
func NewEngine(cfg config.IndexerConfig, opts ...Option) (*Engine, error) {
	stopWords := make([]string, 0, len(cfg.StopWords))
	stopWords = append(stopWords, cfg.StopWords...)
	stopWords = append(stopWords, tokenizer.SplitIntoWords(cfg.StopWordsText)...)

	memIndex, err := index.New(stopWords, index.WithWorkers(cfg.Workers))
	if err != nil {
		return nil, err
	}
	e := &Engine{
		memIndex: memIndex,
		executor: executor.New(memIndex, executor.Options{
			Workers:    cfg.Workers,
			ShardCount: cfg.ShardCount,
		}),
		cfg:    cfg,
		logger: slog.Default().With("component", "indexer"),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger.Debug("index created", "stop_words", len(stopWords))
	return e, nil
}

// NewEngineFromStopWords builds an index from an explicit stop-word set.
func NewEngineFromStopWords(stopWords []string, opts ...Option) (*Engine, error) {
	return NewEngine(config.IndexerConfig{StopWords: stopWords}, opts...)
}

// NewEngineFromText builds an index whose stop words are the words of text.
func NewEngineFromText(text string, opts ...Option) (*Engine, error) {
	return NewEngine(config.IndexerConfig{StopWordsText: text}, opts...)
}

func (e *Engine) AddDocument(id int, text string, status index.DocumentStatus, ratings []int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.memIndex.AddDocument(id, text, status, ratings); err != nil {
		e.logger.Debug("document rejected", "doc_id", id, "error", err)
		return err
	}
	e.metrics.DocumentAdded()
	e.metrics.ObserveIndexSize(e.memIndex.DocumentCount(), e.memIndex.TermCount())
	e.logger.Debug("document indexed",
		"doc_id", id,
		"status", status.String(),
		"doc_count", e.memIndex.DocumentCount(),
	)
	return nil
}

// RemoveDocument drops id from the index. Removing an id that is not live
// does nothing.
func (e *Engine) RemoveDocument(mode index.ExecutionMode, id int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.memIndex.RemoveDocument(mode, id) {
		return
	}
	e.metrics.DocumentRemoved()
	e.metrics.ObserveIndexSize(e.memIndex.DocumentCount(), e.memIndex.TermCount())
	e.logger.Debug("document removed", "doc_id", id, "mode", mode.String())
}

// FindTopDocuments returns at most ranker.MaxResultDocumentCount documents
// matching rawQuery and accepted by pred. A nil pred accepts ACTUAL
// documents.
func (e *Engine) FindTopDocuments(mode index.ExecutionMode, rawQuery string, pred index.Predicate) ([]ranker.ScoredDoc, error) {
	start := time.Now()
	e.mu.RLock()
	defer e.mu.RUnlock()
	plan, err := parser.Parse(rawQuery, e.memIndex.IsStopWord)
	if err != nil {
		e.metrics.ObserveSearch(mode.String(), 0, time.Since(start), err)
		return nil, err
	}
	results := e.executor.Search(mode, plan, pred)
	e.metrics.ObserveSearch(mode.String(), len(results), time.Since(start), nil)
	return results, nil
}

func (e *Engine) FindTopDocumentsByStatus(mode index.ExecutionMode, rawQuery string, status index.DocumentStatus) ([]ranker.ScoredDoc, error) {
	return e.FindTopDocuments(mode, rawQuery, index.WithStatus(status))
}

// MatchDocument returns the query's plus words present in document id, or
// an empty slice if any minus word is present in it.
func (e *Engine) MatchDocument(mode index.ExecutionMode, rawQuery string, id int) ([]string, index.DocumentStatus, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	plan, err := parser.Parse(rawQuery, e.memIndex.IsStopWord)
	if err != nil {
		e.metrics.ObserveMatch(mode.String(), err)
		return nil, index.StatusActual, err
	}
	words, status, err := e.executor.Match(mode, plan, id)
	e.metrics.ObserveMatch(mode.String(), err)
	return words, status, err
}

// WordFrequencies returns a copy of the term frequencies of document id.
// The map is empty when id is not live.
func (e *Engine) WordFrequencies(id int) map[string]float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.memIndex.WordFrequencies(id)
}

// DocumentIDs returns the live ids in ascending order. The slice is a
// snapshot and is not affected by later mutations.
func (e *Engine) DocumentIDs() []int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.memIndex.DocumentIDs()
}

func (e *Engine) DocumentCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.memIndex.DocumentCount()
}

// Stats is a point-in-time view of index size.
type Stats struct {
	Documents int `json:"documents"`
	Terms     int `json:"terms"`
}

func (e *Engine) Stats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Stats{
		Documents: e.memIndex.DocumentCount(),
		Terms:     e.memIndex.TermCount(),
	}
}
