// Package tokenizer provides text tokenisation for the search engine.
// It splits input on whitespace runs and validates individual words; it does
// not lower-case, stem, or drop stop-words (the index owns its stop-word set).
package tokenizer

import (
	"slices"
	"strings"
)

// SplitIntoWords breaks text into words separated by any run of whitespace.
// The result never contains empty strings.
func SplitIntoWords(text string) []string {
	return strings.Fields(text)
}

// IsValidWord reports whether word is free of control characters
// (bytes 0x00 through 0x1F).
func IsValidWord(word string) bool {
	for i := 0; i < len(word); i++ {
		if word[i] < ' ' {
			return false
		}
	}
	return true
}

// UniqueNonEmpty returns the sorted, de-duplicated, non-empty subset of words.
func UniqueNonEmpty(words []string) []string {
	result := make([]string, 0, len(words))
	for _, w := range words {
		if w != "" {
			result = append(result, w)
		}
	}
	slices.Sort(result)
	return slices.Compact(result)
}
