// Package dedup removes documents whose set of distinct words duplicates
// that of a document with a lower id.
package dedup

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/metrics"
)

// Index is the part of *indexer.Engine the deduplicator needs.
type Index interface {
	DocumentIDs() []int
	WordFrequencies(id int) map[string]float64
	RemoveDocument(mode index.ExecutionMode, id int)
}

type Deduplicator struct {
	idx     Index
	mode    index.ExecutionMode
	metrics *metrics.Metrics
	logger  *slog.Logger
}

type Option func(*Deduplicator)

func WithMode(mode index.ExecutionMode) Option {
	return func(d *Deduplicator) {
		d.mode = mode
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Deduplicator) {
		d.metrics = m
	}
}

func New(idx Index, opts ...Option) *Deduplicator {
	d := &Deduplicator{
		idx:    idx,
		logger: slog.Default().With("component", "dedup"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run removes every document whose distinct words equal those of a
// lower-id document and returns the removed ids in ascending order.
// Frequencies and ratings are not compared.
func (d *Deduplicator) Run() []int {
	seen := make(map[string]struct{})
	var removed []int
	for _, id := range d.idx.DocumentIDs() {
		key := wordSetKey(d.idx.WordFrequencies(id))
		if _, dup := seen[key]; dup {
			d.logger.Info("found duplicate document", "doc_id", id)
			removed = append(removed, id)
			continue
		}
		seen[key] = struct{}{}
	}
	for _, id := range removed {
		d.idx.RemoveDocument(d.mode, id)
	}
	d.metrics.DuplicatesRemoved(len(removed))
	return removed
}

// RemoveDuplicates runs a Deduplicator with default options.
func RemoveDuplicates(idx Index) []int {
	return New(idx).Run()
}

// wordSetKey joins the sorted words with NUL, which never occurs inside an
// indexed word.
func wordSetKey(freqs map[string]float64) string {
	words := make([]string, 0, len(freqs))
	for w := range freqs {
		words = append(words, w)
	}
	slices.Sort(words)
	return strings.Join(words, "\x00")
}
