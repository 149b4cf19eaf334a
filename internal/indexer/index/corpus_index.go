package index

import (
	"sort"

	apperrors "github.com/Adithya-Monish-Kumar-K/termrank/pkg/errors"
)

// CorpusIndex maps a document path to its term-frequency table and keeps the
// documents in insertion order.
type CorpusIndex struct {
	tables map[string]TermFreq
	docs   []*Document
}

func NewCorpusIndex() *CorpusIndex {
	return &CorpusIndex{
		tables: make(map[string]TermFreq),
	}
}

// Add inserts doc. A path may only be added once per index.
func (c *CorpusIndex) Add(doc *Document) error {
	if _, exists := c.tables[doc.Path]; exists {
		return apperrors.Newf(apperrors.ErrDocumentExists, "path %s", doc.Path)
	}
	c.tables[doc.Path] = doc.TermFreq
	c.docs = append(c.docs, doc)
	return nil
}

// Get returns the term-frequency table stored for path.
func (c *CorpusIndex) Get(path string) (TermFreq, bool) {
	tf, ok := c.tables[path]
	return tf, ok
}

// Documents returns the indexed documents in insertion order. The slice is
// shared and must not be modified.
func (c *CorpusIndex) Documents() []*Document {
	return c.docs
}

func (c *CorpusIndex) Len() int {
	return len(c.docs)
}

// Paths returns every indexed path in lexical order.
func (c *CorpusIndex) Paths() []string {
	paths := make([]string, 0, len(c.tables))
	for path := range c.tables {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// TotalTokens sums TokenCount over all documents.
func (c *CorpusIndex) TotalTokens() int64 {
	var total int64
	for _, doc := range c.docs {
		total += int64(doc.TokenCount)
	}
	return total
}
