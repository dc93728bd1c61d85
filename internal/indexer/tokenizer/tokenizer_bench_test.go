package tokenizer

import (
	"fmt"
	"strings"
	"testing"
)

var sampleTexts = map[string]string{
	"short": "white cat and yellow hat",
	"medium": `curly cat curly tail nasty dog with big eyes nasty pigeon john
        funny pet and nasty rat funny pet with curly hair very nasty rat and
        not very funny pet pet with rat and rat and rat`,
	"long": strings.Repeat("big dog sparrow Eugene big dog sparrow Vasiliy curly dog and fancy collar ", 200),
}

func BenchmarkSplitIntoWords(b *testing.B) {
	for name, text := range sampleTexts {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(text)))
			for i := 0; i < b.N; i++ {
				_ = SplitIntoWords(text)
			}
		})
	}
}

func BenchmarkIsValidWord(b *testing.B) {
	for _, size := range []int{4, 64, 1024} {
		word := strings.Repeat("w", size)
		b.Run(fmt.Sprintf("len_%d", size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = IsValidWord(word)
			}
		})
	}
}
