package parser

import (
	"slices"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/tokenizer"
	apperrors "github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
)

// QueryPlan is a parsed query. PlusWords and MinusWords are sorted, distinct
// and contain no stop words.
type QueryPlan struct {
	PlusWords  []string
	MinusWords []string
	RawQuery   string
}

// Parse splits raw into plus and minus words. A leading '-' marks a minus
// word; a bare "-", a word starting with "--" and a word containing a control
// character are rejected with ErrInvalidArgument.
func Parse(raw string, isStopWord func(string) bool) (*QueryPlan, error) {
	plan := &QueryPlan{
		PlusWords:  make([]string, 0),
		MinusWords: make([]string, 0),
		RawQuery:   raw,
	}
	for _, word := range tokenizer.SplitIntoWords(raw) {
		term, minus, err := parseWord(word)
		if err != nil {
			return nil, err
		}
		if isStopWord != nil && isStopWord(term) {
			continue
		}
		if minus {
			plan.MinusWords = append(plan.MinusWords, term)
		} else {
			plan.PlusWords = append(plan.PlusWords, term)
		}
	}
	slices.Sort(plan.PlusWords)
	plan.PlusWords = slices.Compact(plan.PlusWords)
	slices.Sort(plan.MinusWords)
	plan.MinusWords = slices.Compact(plan.MinusWords)
	return plan, nil
}

func parseWord(word string) (string, bool, error) {
	if word == "" {
		return "", false, apperrors.New(apperrors.ErrInvalidArgument, "query word is empty")
	}
	minus := false
	if word[0] == '-' {
		minus = true
		word = word[1:]
	}
	if word == "" || word[0] == '-' {
		return "", false, apperrors.Newf(apperrors.ErrInvalidArgument, "query word %q is malformed", "-"+word)
	}
	if !tokenizer.IsValidWord(word) {
		return "", false, apperrors.Newf(apperrors.ErrInvalidArgument, "query word %q is invalid", word)
	}
	return word, minus, nil
}
