// Package analytics tracks how many of the most recent search requests
// returned no documents.
package analytics

import (
	"log/slog"
	"sync"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/ranker"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/metrics"
)

// MinutesInDay is the default window size, one request per minute of a day.
const MinutesInDay = 1440

// Searcher runs a top-documents query. *indexer.Engine implements it.
type Searcher interface {
	FindTopDocuments(mode index.ExecutionMode, rawQuery string, pred index.Predicate) ([]ranker.ScoredDoc, error)
}

// RequestQueue forwards searches to a Searcher and remembers, for the last
// Capacity requests, whether each returned anything.
type RequestQueue struct {
	mu       sync.Mutex
	searcher Searcher
	mode     index.ExecutionMode
	capacity int

	events    []RequestEvent
	head      int
	size      int
	noResults int

	metrics *metrics.Metrics
	logger  *slog.Logger
}

type QueueOption func(*RequestQueue)

// WithCapacity sets the window size. Non-positive values are ignored.
func WithCapacity(n int) QueueOption {
	return func(q *RequestQueue) {
		if n > 0 {
			q.capacity = n
		}
	}
}

// WithMode selects the execution mode used for forwarded searches.
func WithMode(mode index.ExecutionMode) QueueOption {
	return func(q *RequestQueue) {
		q.mode = mode
	}
}

func WithMetrics(m *metrics.Metrics) QueueOption {
	return func(q *RequestQueue) {
		q.metrics = m
	}
}

func NewRequestQueue(searcher Searcher, opts ...QueueOption) *RequestQueue {
	q := &RequestQueue{
		searcher: searcher,
		capacity: MinutesInDay,
		logger:   slog.Default().With("component", "request-queue"),
	}
	for _, opt := range opts {
		opt(q)
	}
	q.events = make([]RequestEvent, q.capacity)
	return q
}

// AddFindRequest runs the search and records whether it returned any
// document. Failed searches are returned to the caller and not recorded.
func (q *RequestQueue) AddFindRequest(rawQuery string, pred index.Predicate) ([]ranker.ScoredDoc, error) {
	results, err := q.searcher.FindTopDocuments(q.mode, rawQuery, pred)
	if err != nil {
		return nil, err
	}
	q.record(RequestEvent{
		Query:      rawQuery,
		Results:    len(results),
		HadResults: len(results) > 0,
	})
	return results, nil
}

func (q *RequestQueue) AddFindRequestByStatus(rawQuery string, status index.DocumentStatus) ([]ranker.ScoredDoc, error) {
	return q.AddFindRequest(rawQuery, index.WithStatus(status))
}

// AddFindRequestDefault searches ACTUAL documents.
func (q *RequestQueue) AddFindRequestDefault(rawQuery string) ([]ranker.ScoredDoc, error) {
	return q.AddFindRequest(rawQuery, nil)
}

// NoResultRequests returns how many requests in the window returned no
// documents.
func (q *RequestQueue) NoResultRequests() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.noResults
}

// Len returns the number of requests in the window.
func (q *RequestQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.size
}

func (q *RequestQueue) Stats() WindowStats {
	q.mu.Lock()
	defer q.mu.Unlock()
	return WindowStats{
		Requests:         q.size,
		NoResultRequests: q.noResults,
		Capacity:         q.capacity,
	}
}

// Recent returns the requests in the window, oldest first.
func (q *RequestQueue) Recent() []RequestEvent {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]RequestEvent, 0, q.size)
	start := (q.head - q.size + q.capacity) % q.capacity
	for i := 0; i < q.size; i++ {
		out = append(out, q.events[(start+i)%q.capacity])
	}
	return out
}

func (q *RequestQueue) record(ev RequestEvent) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.size == q.capacity {
		if !q.events[q.head].HadResults {
			q.noResults--
		}
	} else {
		q.size++
	}
	q.events[q.head] = ev
	q.head = (q.head + 1) % q.capacity
	if !ev.HadResults {
		q.noResults++
		q.logger.Debug("search returned no documents", "query", ev.Query)
	}
	q.metrics.SetNoResultRequests(q.noResults)
}
