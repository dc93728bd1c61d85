package index

import (
	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/tokenizer"
	apperrors "github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/parallel"
)

// MemoryIndex holds the inverted index (term -> document -> frequency), its
// transpose (document -> term -> frequency), document metadata and the set of
// live document ids.
//
// MemoryIndex does not lock. Reads may run concurrently with each other;
// AddDocument and RemoveDocument must not overlap with any other call.
type MemoryIndex struct {
	stopWords map[string]struct{}
	dict      *Dictionary
	postings  map[TermID]PostingList
	docTerms  map[int]map[TermID]float64
	documents map[int]documentData
	ids       *roaring64.Bitmap
	workers   int
}

// Option configures a MemoryIndex.
type Option func(*MemoryIndex)

// WithWorkers bounds the fan-out of parallel removal; n <= 0 means GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(m *MemoryIndex) {
		m.workers = n
	}
}

// New creates an index with the given stop words. Empty strings are ignored;
// a stop word containing a control character is an error.
func New(stopWords []string, opts ...Option) (*MemoryIndex, error) {
	m := &MemoryIndex{
		stopWords: make(map[string]struct{}),
		dict:      NewDictionary(),
		postings:  make(map[TermID]PostingList),
		docTerms:  make(map[int]map[TermID]float64),
		documents: make(map[int]documentData),
		ids:       roaring64.New(),
	}
	for _, w := range tokenizer.UniqueNonEmpty(stopWords) {
		if !tokenizer.IsValidWord(w) {
			return nil, apperrors.Newf(apperrors.ErrInvalidArgument, "stop word %q is invalid", w)
		}
		m.stopWords[w] = struct{}{}
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// NewFromText creates an index whose stop words are the whitespace-separated
// words of text.
func NewFromText(text string, opts ...Option) (*MemoryIndex, error) {
	return New(tokenizer.SplitIntoWords(text), opts...)
}

// IsStopWord reports whether word is one of the index's stop words.
func (m *MemoryIndex) IsStopWord(word string) bool {
	_, ok := m.stopWords[word]
	return ok
}

// AddDocument indexes text under id. Nothing is modified when an error is
// returned.
func (m *MemoryIndex) AddDocument(id int, text string, status DocumentStatus, ratings []int) error {
	if id < 0 {
		return apperrors.Newf(apperrors.ErrInvalidArgument, "document id %d is negative", id)
	}
	if m.HasDocument(id) {
		return apperrors.Newf(apperrors.ErrInvalidArgument, "document id %d already exists", id)
	}
	words, err := m.splitIntoWordsNoStop(text)
	if err != nil {
		return err
	}

	freqs := make(map[TermID]float64, len(words))
	if len(words) > 0 {
		invWordCount := 1.0 / float64(len(words))
		for _, w := range words {
			freqs[m.dict.Intern(w)] += invWordCount
		}
	}
	for term, tf := range freqs {
		pl, ok := m.postings[term]
		if !ok {
			pl = make(PostingList)
			m.postings[term] = pl
		}
		pl[id] = tf
	}
	m.docTerms[id] = freqs
	m.documents[id] = documentData{
		rating: computeAverageRating(ratings),
		status: status,
	}
	m.ids.Add(uint64(id))
	return nil
}

// RemoveDocument drops id from every structure. It reports whether id was
// live; removing an absent id is a no-op.
//
// In Parallel mode posting erasure is spread across terms and joined before
// emptied posting lists are pruned from the term map.
func (m *MemoryIndex) RemoveDocument(mode ExecutionMode, id int) bool {
	if !m.HasDocument(id) {
		return false
	}
	freqs := m.docTerms[id]
	if mode == Parallel {
		terms := make([]TermID, 0, len(freqs))
		for term := range freqs {
			terms = append(terms, term)
		}
		parallel.ForEach(m.workers, terms, func(term TermID) {
			if pl, ok := m.postings[term]; ok {
				delete(pl, id)
			}
		})
		for _, term := range terms {
			if pl, ok := m.postings[term]; ok && len(pl) == 0 {
				delete(m.postings, term)
			}
		}
	} else {
		for term := range freqs {
			pl, ok := m.postings[term]
			if !ok {
				continue
			}
			delete(pl, id)
			if len(pl) == 0 {
				delete(m.postings, term)
			}
		}
	}
	delete(m.docTerms, id)
	delete(m.documents, id)
	m.ids.Remove(uint64(id))
	return true
}

// WordFrequencies returns a copy of the term frequencies of document id, or
// an empty map when id is not live.
func (m *MemoryIndex) WordFrequencies(id int) map[string]float64 {
	freqs := m.docTerms[id]
	result := make(map[string]float64, len(freqs))
	for term, tf := range freqs {
		result[m.dict.Term(term)] = tf
	}
	return result
}

// DocumentIDs returns the live document ids in ascending order.
func (m *MemoryIndex) DocumentIDs() []int {
	result := make([]int, 0, m.ids.GetCardinality())
	it := m.ids.Iterator()
	for it.HasNext() {
		result = append(result, int(it.Next()))
	}
	return result
}

// DocumentCount returns the number of live documents.
func (m *MemoryIndex) DocumentCount() int {
	return len(m.documents)
}

// TermCount returns the number of terms with a non-empty posting list.
func (m *MemoryIndex) TermCount() int {
	return len(m.postings)
}

// HasDocument reports whether id is live.
func (m *MemoryIndex) HasDocument(id int) bool {
	return id >= 0 && m.ids.Contains(uint64(id))
}

// Document returns the status and rating of a live document.
func (m *MemoryIndex) Document(id int) (DocumentStatus, int, bool) {
	d, ok := m.documents[id]
	return d.status, d.rating, ok
}

// Postings returns the posting list of word, if any document contains it.
func (m *MemoryIndex) Postings(word string) (PostingList, bool) {
	term, ok := m.dict.Lookup(word)
	if !ok {
		return nil, false
	}
	pl, ok := m.postings[term]
	return pl, ok
}

// Contains reports whether document id contains word.
func (m *MemoryIndex) Contains(word string, id int) bool {
	pl, ok := m.Postings(word)
	if !ok {
		return false
	}
	_, ok = pl[id]
	return ok
}

func (m *MemoryIndex) splitIntoWordsNoStop(text string) ([]string, error) {
	words := tokenizer.SplitIntoWords(text)
	result := make([]string, 0, len(words))
	for _, w := range words {
		if !tokenizer.IsValidWord(w) {
			return nil, apperrors.Newf(apperrors.ErrInvalidArgument, "word %q is invalid", w)
		}
		if !m.IsStopWord(w) {
			result = append(result, w)
		}
	}
	return result, nil
}

func computeAverageRating(ratings []int) int {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return sum / len(ratings)
}
