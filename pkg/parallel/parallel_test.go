package parallel

import (
	"errors"
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkers(t *testing.T) {
	assert.Equal(t, runtime.GOMAXPROCS(0), Workers(0))
	assert.Equal(t, runtime.GOMAXPROCS(0), Workers(-1))
	assert.Equal(t, 3, Workers(3))
}

func TestForEachJoinsAllTasks(t *testing.T) {
	items := make([]int, 1000)
	for i := range items {
		items[i] = i
	}
	var sum atomic.Int64
	ForEach(4, items, func(v int) { sum.Add(int64(v)) })
	assert.Equal(t, int64(999*1000/2), sum.Load())

	ForEach(4, []int(nil), func(int) { t.Fatal("called on empty input") })
}

func TestForEachRespectsLimit(t *testing.T) {
	var running, peak atomic.Int32
	ForEachIndex(2, 50, func(int) {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		runtime.Gosched()
		running.Add(-1)
	})
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestAny(t *testing.T) {
	words := []string{"cat", "dog", "pigeon"}
	assert.True(t, Any(2, words, func(w string) bool { return w == "dog" }))
	assert.False(t, Any(2, words, func(w string) bool { return w == "tail" }))
	assert.False(t, Any(2, []string{}, func(string) bool { return true }))
}

func TestFilterPreservesOrder(t *testing.T) {
	got := Filter(3, []int{5, 2, 8, 1, 9, 4}, func(v int) bool { return v > 3 })
	assert.Equal(t, []int{5, 8, 9, 4}, got)
	assert.Empty(t, Filter(3, []int{}, func(int) bool { return true }))
}

func TestMap(t *testing.T) {
	got, err := Map(2, []int{1, 2, 3}, func(v int) (string, error) {
		return string(rune('a' + v - 1)), nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, got)

	boom := errors.New("boom")
	_, err = Map(2, []int{1, 2, 3}, func(v int) (int, error) {
		if v == 2 {
			return 0, boom
		}
		return v, nil
	})
	assert.ErrorIs(t, err, boom)
}
