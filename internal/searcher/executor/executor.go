package executor

import (
	"log/slog"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/parser"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/ranker"
	apperrors "github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
)

// Index is the read side of the inverted index the executor runs against.
// Implementations must allow concurrent calls while no writer is active.
type Index interface {
	DocumentCount() int
	Postings(word string) (index.PostingList, bool)
	Document(id int) (index.DocumentStatus, int, bool)
	Contains(word string, id int) bool
}

type Options struct {
	// Workers bounds parallel fan-out; 0 means GOMAXPROCS.
	Workers int
	// ShardCount is the shard count of the scratch map used by parallel
	// search; 0 means shardmap.DefaultShardCount.
	ShardCount int
}

type Executor struct {
	idx    Index
	opts   Options
	logger *slog.Logger
}

func New(idx Index, opts Options) *Executor {
	return &Executor{
		idx:    idx,
		opts:   opts,
		logger: slog.Default().With("component", "query-executor"),
	}
}

// Search returns the top documents for plan among those accepted by pred,
// ranked by TF-IDF relevance. A nil pred accepts ACTUAL documents.
func (e *Executor) Search(mode index.ExecutionMode, plan *parser.QueryPlan, pred index.Predicate) []ranker.ScoredDoc {
	if pred == nil {
		pred = index.WithStatus(index.StatusActual)
	}
	var docs []ranker.ScoredDoc
	if mode == index.Parallel {
		docs = e.searchParallel(plan, pred)
	} else {
		docs = e.searchSequential(plan, pred)
	}
	ranked := ranker.Rank(docs)
	e.logger.Debug("query executed",
		"query", plan.RawQuery,
		"mode", mode.String(),
		"plus_words", len(plan.PlusWords),
		"minus_words", len(plan.MinusWords),
		"candidates", len(docs),
		"results", len(ranked),
	)
	return ranked
}

// Match returns the plus words of plan found in document id, or nothing if
// any minus word is found in it.
func (e *Executor) Match(mode index.ExecutionMode, plan *parser.QueryPlan, id int) ([]string, index.DocumentStatus, error) {
	status, _, ok := e.idx.Document(id)
	if !ok {
		return nil, status, apperrors.Newf(apperrors.ErrDocumentNotFound, "document %d", id)
	}
	if mode == index.Parallel {
		return e.matchParallel(plan, id), status, nil
	}
	return e.matchSequential(plan, id), status, nil
}

func (e *Executor) searchSequential(plan *parser.QueryPlan, pred index.Predicate) []ranker.ScoredDoc {
	total := e.idx.DocumentCount()
	relevance := make(map[int]float64)
	for _, word := range plan.PlusWords {
		postings, ok := e.idx.Postings(word)
		if !ok {
			continue
		}
		idf := ranker.IDF(total, len(postings))
		for id, tf := range postings {
			status, rating, _ := e.idx.Document(id)
			if pred(id, status, rating) {
				relevance[id] += tf * idf
			}
		}
	}
	for _, word := range plan.MinusWords {
		postings, ok := e.idx.Postings(word)
		if !ok {
			continue
		}
		for id := range postings {
			delete(relevance, id)
		}
	}

	docs := make([]ranker.ScoredDoc, 0, len(relevance))
	for id, rel := range relevance {
		_, rating, _ := e.idx.Document(id)
		docs = append(docs, ranker.ScoredDoc{
			DocID:     id,
			Relevance: rel,
			Rating:    rating,
		})
	}
	return docs
}

func (e *Executor) matchSequential(plan *parser.QueryPlan, id int) []string {
	for _, word := range plan.MinusWords {
		if e.idx.Contains(word, id) {
			return []string{}
		}
	}
	matched := make([]string, 0, len(plan.PlusWords))
	for _, word := range plan.PlusWords {
		if e.idx.Contains(word, id) {
			matched = append(matched, word)
		}
	}
	return matched
}
