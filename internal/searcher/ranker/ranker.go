package ranker

import (
	"fmt"
	"math"
	"sort"
)

const (
	// MaxResultDocumentCount bounds the length of every search result.
	MaxResultDocumentCount = 5
	// Epsilon is the relevance difference below which two documents are
	// ordered by rating instead.
	Epsilon = 1e-6
)

type ScoredDoc struct {
	DocID     int     `json:"document_id"`
	Relevance float64 `json:"relevance"`
	Rating    int     `json:"rating"`
}

func (d ScoredDoc) String() string {
	return fmt.Sprintf("{ document_id = %d, relevance = %g, rating = %d }", d.DocID, d.Relevance, d.Rating)
}

// IDF returns ln(totalDocs / docFreq). It is 0 when either count is 0.
func IDF(totalDocs, docFreq int) float64 {
	if totalDocs == 0 || docFreq == 0 {
		return 0
	}
	return math.Log(float64(totalDocs) / float64(docFreq))
}

// Rank orders docs by relevance descending, breaking near-ties by rating
// descending and then by id ascending, and truncates the result to
// MaxResultDocumentCount. docs is sorted in place.
func Rank(docs []ScoredDoc) []ScoredDoc {
	sort.SliceStable(docs, func(i, j int) bool {
		return Less(docs[i], docs[j])
	})
	if len(docs) > MaxResultDocumentCount {
		docs = docs[:MaxResultDocumentCount]
	}
	return docs
}

// Less reports whether a ranks before b.
func Less(a, b ScoredDoc) bool {
	if math.Abs(a.Relevance-b.Relevance) < Epsilon {
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		return a.DocID < b.DocID
	}
	return a.Relevance > b.Relevance
}
