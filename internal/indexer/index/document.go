package index

import (
	"github.com/Adithya-Monish-Kumar-K/termrank/internal/indexer/tokenizer"
)

// TermFreq maps a Text token to the number of times it occurs in a document.
// Counts are always >= 1.
type TermFreq map[string]int

// Document is the per-file result of tokenization. It is built once by
// NewDocument and must not be mutated afterwards.
type Document struct {
	Path     string
	TermFreq TermFreq
	// TokenCount counts every lexer event, Punctuation and Invalid included,
	// so it is never smaller than the sum of TermFreq.
	TokenCount int
}

// NewDocument tokenizes content and accumulates its term frequencies.
func NewDocument(path string, content string) *Document {
	tf := make(TermFreq)
	count := 0
	for tok := range tokenizer.Events(content) {
		count++
		if tok.Kind == tokenizer.Text {
			tf[tok.Value]++
		}
	}
	return &Document{
		Path:       path,
		TermFreq:   tf,
		TokenCount: count,
	}
}

// Count returns how many times term occurs in the document.
func (d *Document) Count(term string) int {
	return d.TermFreq[term]
}

// Contains reports whether term occurs at least once.
func (d *Document) Contains(term string) bool {
	_, ok := d.TermFreq[term]
	return ok
}

// Terms returns the number of distinct Text tokens.
func (d *Document) Terms() int {
	return len(d.TermFreq)
}
