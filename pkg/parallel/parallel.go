// Package parallel implements fork-join helpers over a bounded number of
// goroutines. Every helper blocks until all spawned work has finished, so
// code after a call observes the effects of every task.
package parallel

import (
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Workers returns n, or GOMAXPROCS when n <= 0.
func Workers(n int) int {
	if n <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}

// ForEach calls fn for every item using at most workers concurrent tasks.
func ForEach[T any](workers int, items []T, fn func(T)) {
	if len(items) == 0 {
		return
	}
	var g errgroup.Group
	g.SetLimit(Workers(workers))
	for _, item := range items {
		g.Go(func() error {
			fn(item)
			return nil
		})
	}
	_ = g.Wait()
}

// ForEachIndex calls fn(i) for i in [0, n).
func ForEachIndex(workers int, n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	var g errgroup.Group
	g.SetLimit(Workers(workers))
	for i := 0; i < n; i++ {
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	_ = g.Wait()
}

// Any reports whether pred holds for at least one item. Tasks that start
// after a match has been found skip evaluating pred.
func Any[T any](workers int, items []T, pred func(T) bool) bool {
	var found atomic.Bool
	ForEach(workers, items, func(item T) {
		if found.Load() {
			return
		}
		if pred(item) {
			found.Store(true)
		}
	})
	return found.Load()
}

// Filter returns the items for which pred holds, in their original order.
func Filter[T any](workers int, items []T, pred func(T) bool) []T {
	keep := make([]bool, len(items))
	ForEachIndex(workers, len(items), func(i int) {
		keep[i] = pred(items[i])
	})
	result := make([]T, 0, len(items))
	for i, item := range items {
		if keep[i] {
			result = append(result, item)
		}
	}
	return result
}

// Map applies fn to every item and returns the results in input order. The
// first error returned by fn is returned once all tasks have finished.
func Map[T, R any](workers int, items []T, fn func(T) (R, error)) ([]R, error) {
	results := make([]R, len(items))
	var g errgroup.Group
	g.SetLimit(Workers(workers))
	for i, item := range items {
		g.Go(func() error {
			r, err := fn(item)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
