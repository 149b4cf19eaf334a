package ranker

import (
	"sort"

	"github.com/Adithya-Monish-Kumar-K/termrank/internal/indexer/index"
)

// ScoredDoc pairs a corpus document with its relevance score for one token.
// Doc points into the corpus and is never copied.
type ScoredDoc struct {
	Doc   *index.Document
	Score float64
}

// Ranking lists every document of the corpus, highest score first.
type Ranking []ScoredDoc

// Rank scores token against every document in docs. Documents that do not
// contain the token stay in the result with a zero score. Equal scores are
// ordered by path.
func Rank(token string, idfValue float64, docs []*index.Document) Ranking {
	result := make(Ranking, 0, len(docs))
	for _, doc := range docs {
		result = append(result, ScoredDoc{
			Doc:   doc,
			Score: Score(idfValue, TF(token, doc)),
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Score != result[j].Score {
			return result[i].Score > result[j].Score
		}
		return result[i].Doc.Path < result[j].Doc.Path
	})
	return result
}

// TF is the share of doc's tokens that are token.
func TF(token string, doc *index.Document) float64 {
	if doc.TokenCount == 0 {
		return 0
	}
	return float64(doc.Count(token)) / float64(doc.TokenCount)
}

// Score combines idf and tf. A zero idf falls back to the raw tf so that
// documents containing the token still rank above those that do not.
func Score(idfValue float64, tf float64) float64 {
	if idfValue != 0 {
		return idfValue * tf
	}
	return tf
}

// Limit returns at most n entries; n <= 0 keeps the whole ranking.
func (r Ranking) Limit(n int) Ranking {
	if n > 0 && len(r) > n {
		return r[:n]
	}
	return r
}
