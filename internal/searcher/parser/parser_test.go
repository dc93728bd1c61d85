package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
)

func stopWords(words ...string) func(string) bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return func(w string) bool { return set[w] }
}

func TestParse(t *testing.T) {
	plan, err := Parse("curly -nasty cat curly and -cat", stopWords("and"))
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "curly"}, plan.PlusWords)
	assert.Equal(t, []string{"cat", "nasty"}, plan.MinusWords)
	assert.Equal(t, "curly -nasty cat curly and -cat", plan.RawQuery)
}

func TestParseDropsStopWords(t *testing.T) {
	plan, err := Parse("and -with", stopWords("and", "with"))
	require.NoError(t, err)
	assert.Empty(t, plan.PlusWords)
	assert.Empty(t, plan.MinusWords)
}

func TestParseEmpty(t *testing.T) {
	plan, err := Parse("   ", nil)
	require.NoError(t, err)
	assert.Empty(t, plan.PlusWords)
	assert.Empty(t, plan.MinusWords)
}

func TestParseRejectsMalformedWords(t *testing.T) {
	for _, raw := range []string{
		"cat -",
		"--cat",
		"cat --",
		"sk\x12y",
		"-sk\x12y",
	} {
		t.Run(raw, func(t *testing.T) {
			_, err := Parse(raw, nil)
			require.Error(t, err)
			assert.True(t, apperrors.IsInvalidArgument(err))
		})
	}
}

func TestParseValidatesBeforeStopWordCheck(t *testing.T) {
	_, err := Parse("--and", stopWords("-and"))
	assert.True(t, apperrors.IsInvalidArgument(err))
}
