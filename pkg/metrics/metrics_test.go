package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveSearch(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveSearch("sequential", 3, time.Millisecond, nil)
	m.ObserveSearch("sequential", 0, time.Millisecond, nil)
	m.ObserveSearch("parallel", 0, 0, errors.New("bad query"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchQueriesTotal.WithLabelValues("sequential", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchQueriesTotal.WithLabelValues("sequential", "zero_result")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchQueriesTotal.WithLabelValues("parallel", "error")))
	// errors are not timed, so only the sequential latency series exists
	assert.Equal(t, 1, testutil.CollectAndCount(m.SearchLatency))
}

func TestCountersAndGauges(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.DocumentAdded()
	m.DocumentAdded()
	m.DocumentRemoved()
	m.DuplicatesRemoved(3)
	m.ObserveIndexSize(4, 11)
	m.SetNoResultRequests(7)
	m.ObserveMatch("parallel", nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.DocsIndexedTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DocsRemovedTotal))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.DuplicatesRemovedTotal))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.LiveDocuments))
	assert.Equal(t, 11.0, testutil.ToFloat64(m.IndexedTerms))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.NoResultRequests))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MatchRequestsTotal.WithLabelValues("parallel", "ok")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.DocumentAdded()
		m.DocumentRemoved()
		m.DuplicatesRemoved(1)
		m.ObserveIndexSize(1, 1)
		m.SetNoResultRequests(1)
		m.ObserveSearch("sequential", 1, time.Second, nil)
		m.ObserveMatch("sequential", nil)
	})
}
