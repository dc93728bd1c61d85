package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/logger"
)

type Config struct {
	Documents   int
	WordsPerDoc int
	Vocabulary  int
	QueryWords  int
	Concurrency int
	Rate        float64
	Duration    time.Duration
	Seed        int64
	Indexer     config.IndexerConfig
}

type Stats struct {
	totalRequests atomic.Int64
	zeroResults   atomic.Int64
	errorCount    atomic.Int64
	latencies     []time.Duration
	latenciesMu   sync.Mutex
}

func NewStats() *Stats {
	return &Stats{
		latencies: make([]time.Duration, 0, 100000),
	}
}

func (s *Stats) RecordRequest(duration time.Duration, results int, err error) {
	s.totalRequests.Add(1)
	if err != nil {
		s.errorCount.Add(1)
		return
	}
	if results == 0 {
		s.zeroResults.Add(1)
	}
	s.latenciesMu.Lock()
	s.latencies = append(s.latencies, duration)
	s.latenciesMu.Unlock()
}

func main() {
	var cfg Config
	flag.IntVar(&cfg.Documents, "docs", 20000, "number of synthetic documents")
	flag.IntVar(&cfg.WordsPerDoc, "words", 40, "words per document")
	flag.IntVar(&cfg.Vocabulary, "vocab", 5000, "vocabulary size")
	flag.IntVar(&cfg.QueryWords, "query-words", 8, "plus words per query; one extra minus word is added")
	flag.IntVar(&cfg.Concurrency, "concurrency", 4, "number of concurrent workers")
	flag.Float64Var(&cfg.Rate, "rate", 0, "queries per second across all workers; 0 means unlimited")
	flag.DurationVar(&cfg.Duration, "duration", 10*time.Second, "duration of each mode's run")
	flag.Int64Var(&cfg.Seed, "seed", 1, "random seed")
	flag.IntVar(&cfg.Indexer.Workers, "workers", 0, "parallel fan-out per query; 0 means GOMAXPROCS")
	flag.IntVar(&cfg.Indexer.ShardCount, "shards", 100, "relevance map shards")
	flag.Parse()

	logger.Setup("warn", "text")

	fmt.Println("=== Search Index Load Test ===")
	fmt.Printf("Documents:   %d x %d words\n", cfg.Documents, cfg.WordsPerDoc)
	fmt.Printf("Vocabulary:  %d\n", cfg.Vocabulary)
	fmt.Printf("Concurrency: %d\n", cfg.Concurrency)
	fmt.Printf("Duration:    %s per mode\n", cfg.Duration)
	fmt.Println()

	engine, err := buildIndex(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "building index: %v\n", err)
		os.Exit(1)
	}
	for _, mode := range []index.ExecutionMode{index.Sequential, index.Parallel} {
		stats := runLoadTest(engine, mode, cfg)
		printReport(mode, stats, cfg.Duration)
	}
}

func word(i int) string {
	return fmt.Sprintf("w%d", i)
}

func buildIndex(cfg Config) (*indexer.Engine, error) {
	engine, err := indexer.NewEngine(cfg.Indexer)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	start := time.Now()
	words := make([]string, cfg.WordsPerDoc)
	for id := 0; id < cfg.Documents; id++ {
		for i := range words {
			words[i] = word(rng.Intn(cfg.Vocabulary))
		}
		status := index.DocumentStatus(rng.Intn(4))
		ratings := []int{rng.Intn(11) - 5, rng.Intn(11) - 5}
		if err := engine.AddDocument(id, strings.Join(words, " "), status, ratings); err != nil {
			return nil, err
		}
	}
	fmt.Printf("Indexed %d documents in %s\n\n", cfg.Documents, time.Since(start))
	return engine, nil
}

func runLoadTest(engine *indexer.Engine, mode index.ExecutionMode, cfg Config) *Stats {
	stats := NewStats()
	limit := rate.Inf
	if cfg.Rate > 0 {
		limit = rate.Limit(cfg.Rate)
	}
	limiter := rate.NewLimiter(limit, cfg.Concurrency)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Duration)
	defer cancel()

	var wg sync.WaitGroup
	fmt.Printf("Running %s", mode)
	for w := 0; w < cfg.Concurrency; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(cfg.Seed + int64(workerID) + 1))
			parts := make([]string, 0, cfg.QueryWords+1)
			for {
				if err := limiter.Wait(ctx); err != nil {
					return
				}
				parts = parts[:0]
				for i := 0; i < cfg.QueryWords; i++ {
					parts = append(parts, word(rng.Intn(cfg.Vocabulary)))
				}
				parts = append(parts, "-"+word(rng.Intn(cfg.Vocabulary)))

				start := time.Now()
				results, err := engine.FindTopDocuments(mode, strings.Join(parts, " "), nil)
				stats.RecordRequest(time.Since(start), len(results), err)
			}
		}(w)
	}

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				fmt.Print(".")
			}
		}
	}()

	wg.Wait()
	fmt.Println(" done!")
	return stats
}

func printReport(mode index.ExecutionMode, stats *Stats, duration time.Duration) {
	total := stats.totalRequests.Load()
	zero := stats.zeroResults.Load()
	errors := stats.errorCount.Load()

	fmt.Printf("=== Results (%s) ===\n", mode)
	fmt.Printf("Total Requests:  %d\n", total)
	fmt.Printf("Zero Results:    %d\n", zero)
	fmt.Printf("Errors:          %d\n", errors)
	if total > 0 {
		fmt.Printf("Requests/sec:    %.2f\n", float64(total)/duration.Seconds())
	}

	stats.latenciesMu.Lock()
	latencies := make([]time.Duration, len(stats.latencies))
	copy(latencies, stats.latencies)
	stats.latenciesMu.Unlock()

	if len(latencies) > 0 {
		sort.Slice(latencies, func(i, j int) bool {
			return latencies[i] < latencies[j]
		})
		var sum time.Duration
		for _, l := range latencies {
			sum += l
		}
		avg := sum / time.Duration(len(latencies))

		fmt.Println()
		fmt.Println("=== Latency ===")
		fmt.Printf("Min:    %s\n", latencies[0])
		fmt.Printf("Avg:    %s\n", avg)
		fmt.Printf("P50:    %s\n", percentile(latencies, 50))
		fmt.Printf("P90:    %s\n", percentile(latencies, 90))
		fmt.Printf("P99:    %s\n", percentile(latencies, 99))
		fmt.Printf("Max:    %s\n", latencies[len(latencies)-1])

		var sumSquared float64
		avgFloat := float64(avg)
		for _, l := range latencies {
			diff := float64(l) - avgFloat
			sumSquared += diff * diff
		}
		fmt.Printf("StdDev: %s\n", time.Duration(math.Sqrt(sumSquared/float64(len(latencies)))))
	}
	fmt.Println()
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(math.Ceil(p/100*float64(len(sorted)))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
