package executor

import (
	"slices"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/parser"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/ranker"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/parallel"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/shardmap"
)

// searchParallel fans plus words out over workers that accumulate into a
// sharded relevance map, then erases minus-word documents and builds the
// result set, each phase joined before the next starts.
func (e *Executor) searchParallel(plan *parser.QueryPlan, pred index.Predicate) []ranker.ScoredDoc {
	total := e.idx.DocumentCount()
	relevance := shardmap.New[int, float64](e.opts.ShardCount)

	parallel.ForEach(e.opts.Workers, plan.PlusWords, func(word string) {
		postings, ok := e.idx.Postings(word)
		if !ok {
			return
		}
		idf := ranker.IDF(total, len(postings))
		for id, tf := range postings {
			status, rating, _ := e.idx.Document(id)
			if !pred(id, status, rating) {
				continue
			}
			relevance.Access(id, func(v *float64) {
				*v += tf * idf
			})
		}
	})

	parallel.ForEach(e.opts.Workers, plan.MinusWords, func(word string) {
		postings, ok := e.idx.Postings(word)
		if !ok {
			return
		}
		for id := range postings {
			relevance.Erase(id)
		}
	})

	entries := relevance.Snapshot()
	docs := make([]ranker.ScoredDoc, len(entries))
	parallel.ForEachIndex(e.opts.Workers, len(entries), func(i int) {
		_, rating, _ := e.idx.Document(entries[i].Key)
		docs[i] = ranker.ScoredDoc{
			DocID:     entries[i].Key,
			Relevance: entries[i].Value,
			Rating:    rating,
		}
	})
	return docs
}

func (e *Executor) matchParallel(plan *parser.QueryPlan, id int) []string {
	excluded := parallel.Any(e.opts.Workers, plan.MinusWords, func(word string) bool {
		return e.idx.Contains(word, id)
	})
	if excluded {
		return []string{}
	}
	matched := parallel.Filter(e.opts.Workers, plan.PlusWords, func(word string) bool {
		return e.idx.Contains(word, id)
	})
	slices.Sort(matched)
	return slices.Compact(matched)
}
