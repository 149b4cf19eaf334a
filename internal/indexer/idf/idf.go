// Package idf computes inverse document frequencies over a corpus:
//
//	idf(token) = log10(N / (1 + df(token)))
//
// where N is the number of documents and df the number of documents whose
// term-frequency table contains the token. The +1 keeps the denominator
// positive, so a token present in every document gets a negative value.
package idf

import (
	"math"
	"sort"

	"github.com/Adithya-Monish-Kumar-K/termrank/internal/indexer/index"
)

// Table maps every token seen in the corpus to its IDF value.
type Table struct {
	values map[string]float64
}

// Compute builds the table for docs. Each distinct token is evaluated once.
func Compute(docs []*index.Document) Table {
	df := make(map[string]int)
	for _, doc := range docs {
		for term := range doc.TermFreq {
			df[term]++
		}
	}
	n := len(docs)
	values := make(map[string]float64, len(df))
	for term, freq := range df {
		values[term] = formula(n, freq)
	}
	return Table{values: values}
}

// Value computes the IDF of a single token by scanning docs.
func Value(token string, docs []*index.Document) float64 {
	freq := 0
	for _, doc := range docs {
		if doc.Contains(token) {
			freq++
		}
	}
	return formula(len(docs), freq)
}

func formula(totalDocs int, docFreq int) float64 {
	return math.Log10(float64(totalDocs) / float64(1+docFreq))
}

// Lookup returns the IDF of token and whether the token occurs in the corpus.
func (t Table) Lookup(token string) (float64, bool) {
	v, ok := t.values[token]
	return v, ok
}

func (t Table) Len() int {
	return len(t.values)
}

// Tokens returns every token of the table in lexical order.
func (t Table) Tokens() []string {
	tokens := make([]string, 0, len(t.values))
	for token := range t.values {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	return tokens
}
