package indexer

import (
	"fmt"
	"testing"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/config"
)

var benchTerms = []string{"distributed", "search", "analytics", "platform", "indexing", "query", "engine", "ranking"}

func newBenchEngine(b *testing.B, docs int) *Engine {
	b.Helper()
	e, err := NewEngine(config.IndexerConfig{StopWordsText: "and in the", ShardCount: 100})
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < docs; i++ {
		text := fmt.Sprintf("document about %s and %s covers %s %s in production w%d",
			benchTerms[i%len(benchTerms)], benchTerms[(i+1)%len(benchTerms)],
			benchTerms[(i+2)%len(benchTerms)], benchTerms[(i+3)%len(benchTerms)], i%500)
		if err := e.AddDocument(i, text, index.DocumentStatus(i%4), []int{i % 7, i % 5}); err != nil {
			b.Fatal(err)
		}
	}
	return e
}

// BenchmarkEngineAdd measures indexing throughput at various preloaded
// corpus sizes.
func BenchmarkEngineAdd(b *testing.B) {
	for _, preload := range []int{100, 1000, 5000} {
		b.Run(fmt.Sprintf("preload_%d", preload), func(b *testing.B) {
			e := newBenchEngine(b, preload)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := e.AddDocument(preload+i, "benchmark document body for measuring indexing throughput", index.StatusActual, []int{1}); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkFindTopDocuments compares the sequential and parallel search
// paths over 10 000 documents.
func BenchmarkFindTopDocuments(b *testing.B) {
	e := newBenchEngine(b, 10000)
	query := "distributed search analytics w1 w2 w3 -ranking"
	for _, mode := range []index.ExecutionMode{index.Sequential, index.Parallel} {
		b.Run(mode.String(), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := e.FindTopDocuments(mode, query, nil); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkFindTopDocumentsConcurrent(b *testing.B) {
	e := newBenchEngine(b, 10000)
	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			if _, err := e.FindTopDocuments(index.Sequential, benchTerms[i%len(benchTerms)], nil); err != nil {
				b.Error(err)
				return
			}
			i++
		}
	})
}

func BenchmarkMatchDocument(b *testing.B) {
	e := newBenchEngine(b, 10000)
	query := "distributed search analytics platform indexing -w499"
	for _, mode := range []index.ExecutionMode{index.Sequential, index.Parallel} {
		b.Run(mode.String(), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, _, err := e.MatchDocument(mode, query, i%10000); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkRemoveDocument(b *testing.B) {
	for _, mode := range []index.ExecutionMode{index.Sequential, index.Parallel} {
		b.Run(mode.String(), func(b *testing.B) {
			b.StopTimer()
			e := newBenchEngine(b, b.N)
			b.ReportAllocs()
			b.StartTimer()
			for i := 0; i < b.N; i++ {
				e.RemoveDocument(mode, i)
			}
		})
	}
}
