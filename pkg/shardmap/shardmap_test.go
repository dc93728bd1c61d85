package shardmap

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runConcurrentUpdates(m *Map[int, int], workers int, keyCount int) {
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			updates := make([]int, keyCount)
			for i := range updates {
				updates[i] = i - keyCount/2
			}
			rng := rand.New(rand.NewSource(seed))
			rng.Shuffle(len(updates), func(i, j int) { updates[i], updates[j] = updates[j], updates[i] })
			for pass := 0; pass < 2; pass++ {
				for _, key := range updates {
					m.Access(key, func(v *int) { *v++ })
				}
			}
		}(int64(w))
	}
	wg.Wait()
}

func TestConcurrentUpdate(t *testing.T) {
	const workers = 4
	const keyCount = 50000
	m := New[int, int](100)
	runConcurrentUpdates(m, workers, keyCount)

	snap := m.Snapshot()
	require.Len(t, snap, keyCount)
	for i, e := range snap {
		assert.Equal(t, i-keyCount/2, e.Key)
		assert.Equal(t, workers*2, e.Value, "key %d", e.Key)
	}
}

func TestSnapshotIsSortedByKey(t *testing.T) {
	m := New[int, float64](7)
	for _, k := range []int{42, 3, 17, -5, 100, 0} {
		m.Access(k, func(v *float64) { *v = float64(k) / 2 })
	}
	snap := m.Snapshot()
	keys := make([]int, 0, len(snap))
	for _, e := range snap {
		keys = append(keys, e.Key)
		assert.InDelta(t, float64(e.Key)/2, e.Value, 1e-12)
	}
	assert.Equal(t, []int{-5, 0, 3, 17, 42, 100}, keys)
}

func TestEraseAndLoad(t *testing.T) {
	m := New[int, string](3)
	m.Access(1, func(v *string) { *v = "one" })
	m.Access(2, func(v *string) { *v = "two" })

	v, ok := m.Load(1)
	assert.True(t, ok)
	assert.Equal(t, "one", v)

	m.Erase(1)
	m.Erase(1)
	m.Erase(99)
	_, ok = m.Load(1)
	assert.False(t, ok)
	assert.Equal(t, 1, m.Len())
}

func TestAccessDefaultsToZeroValue(t *testing.T) {
	m := New[uint64, int](4)
	m.Access(9, func(v *int) {
		assert.Equal(t, 0, *v)
	})
	v, ok := m.Load(9)
	assert.True(t, ok)
	assert.Equal(t, 0, v)
}

func TestAccessUnlocksOnPanic(t *testing.T) {
	m := New[int, int](1)
	assert.Panics(t, func() {
		m.Access(1, func(v *int) { panic("caller failure") })
	})
	m.Access(1, func(v *int) { *v = 5 })
	v, _ := m.Load(1)
	assert.Equal(t, 5, v)
}

func TestNonPositiveShardCount(t *testing.T) {
	assert.Equal(t, DefaultShardCount, New[int, int](0).ShardCount())
	assert.Equal(t, DefaultShardCount, New[int, int](-3).ShardCount())
	assert.Equal(t, 8, New[int, int](8).ShardCount())
}

func TestConcurrentAccessAndErase(t *testing.T) {
	m := New[int, int](16)
	for k := 0; k < 1000; k++ {
		m.Access(k, func(v *int) { *v = 1 })
	}
	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			for k := offset; k < 1000; k += 4 {
				m.Erase(k)
			}
		}(w)
	}
	wg.Wait()
	assert.Zero(t, m.Len())
	assert.Empty(t, m.Snapshot())
}

func BenchmarkAccess(b *testing.B) {
	m := New[int, float64](DefaultShardCount)
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			m.Access(i%10000, func(v *float64) { *v += 0.5 })
			i++
		}
	})
}
