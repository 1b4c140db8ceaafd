package derive

import (
	"strings"

	"readlytics/internal/models"
)

// Tokenizer extracts stopword-filtered term frequencies from article
// titles. Titles are lowercased and split on whitespace only;
// punctuation attached to a word stays part of the token.
type Tokenizer struct {
	stopwords map[string]bool
}

// NewTokenizer creates a tokenizer excluding the given stopwords.
func NewTokenizer(stopwords []string) *Tokenizer {
	set := make(map[string]bool, len(stopwords))
	for _, word := range stopwords {
		set[strings.ToLower(word)] = true
	}
	return &Tokenizer{stopwords: set}
}

// Frequencies counts the remaining tokens across all titles. Nil titles
// are skipped. Entries are returned in first-seen token order so that
// downstream top-N ranking has a deterministic stable tie-break.
func (t *Tokenizer) Frequencies(titles []*string) []models.KeyCount {
	index := make(map[string]int)
	var terms []models.KeyCount

	for _, title := range titles {
		if title == nil {
			continue
		}
		for _, token := range strings.Fields(strings.ToLower(*title)) {
			if t.stopwords[token] {
				continue
			}
			if i, seen := index[token]; seen {
				terms[i].Count++
				continue
			}
			index[token] = len(terms)
			terms = append(terms, models.KeyCount{Key: token, Count: 1})
		}
	}

	return terms
}
