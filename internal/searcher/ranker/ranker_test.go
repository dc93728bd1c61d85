package ranker

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDF(t *testing.T) {
	assert.InDelta(t, math.Log(2), IDF(4, 2), 1e-12)
	assert.Zero(t, IDF(4, 4))
	assert.Zero(t, IDF(0, 0))
}

func TestRankOrdersByRelevanceThenRating(t *testing.T) {
	docs := []ScoredDoc{
		{DocID: 1, Relevance: 0.1, Rating: 9},
		{DocID: 2, Relevance: 0.5, Rating: 1},
		{DocID: 3, Relevance: 0.5 + 1e-8, Rating: 7},
		{DocID: 4, Relevance: 0.3, Rating: 0},
	}
	got := Rank(docs)
	ids := make([]int, len(got))
	for i, d := range got {
		ids[i] = d.DocID
	}
	assert.Equal(t, []int{3, 2, 4, 1}, ids)
}

func TestRankTruncates(t *testing.T) {
	docs := make([]ScoredDoc, 8)
	for i := range docs {
		docs[i] = ScoredDoc{DocID: i, Relevance: float64(i)}
	}
	got := Rank(docs)
	assert.Len(t, got, MaxResultDocumentCount)
	assert.Equal(t, 7, got[0].DocID)
	assert.Equal(t, 3, got[4].DocID)
}

func TestScoredDocString(t *testing.T) {
	d := ScoredDoc{DocID: 2, Relevance: 0.5, Rating: 3}
	assert.Equal(t, "{ document_id = 2, relevance = 0.5, rating = 3 }", d.String())
}
