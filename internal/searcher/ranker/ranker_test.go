package ranker

import (
	"fmt"
	"math"
	"testing"

	"github.com/Adithya-Monish-Kumar-K/termrank/internal/indexer/idf"
	"github.com/Adithya-Monish-Kumar-K/termrank/internal/indexer/index"
)

func TestTF(t *testing.T) {
	doc := &index.Document{
		Path:       "ten.txt",
		TermFreq:   index.TermFreq{"go": 3, "rust": 1},
		TokenCount: 10,
	}
	if got := TF("go", doc); math.Abs(got-0.3) > 1e-12 {
		t.Fatalf("expected 0.3 got %v", got)
	}
	if got := TF("python", doc); got != 0 {
		t.Fatalf("expected 0 for absent token got %v", got)
	}
	empty := &index.Document{Path: "empty.txt", TermFreq: index.TermFreq{}}
	if got := TF("go", empty); got != 0 {
		t.Fatalf("expected 0 for empty document got %v", got)
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		idf, tf, want float64
	}{
		{0.5, 0.2, 0.1},
		{-0.125, 0.5, -0.0625},
		{0, 0.5, 0.5},
		{0, 0, 0},
		{1.2, 0, 0},
	}
	for _, tc := range tests {
		if got := Score(tc.idf, tc.tf); math.Abs(got-tc.want) > 1e-12 {
			t.Fatalf("Score(%v, %v) = %v want %v", tc.idf, tc.tf, got, tc.want)
		}
	}
}

func TestRankCatDogBird(t *testing.T) {
	docs := []*index.Document{
		index.NewDocument("doc1", "cat dog"),
		index.NewDocument("doc2", "cat cat"),
		index.NewDocument("doc3", "bird"),
	}
	value := idf.Value("cat", docs)
	ranking := Rank("cat", value, docs)
	if len(ranking) != 3 {
		t.Fatalf("expected every document in the ranking got %d", len(ranking))
	}
	order := []string{ranking[0].Doc.Path, ranking[1].Doc.Path, ranking[2].Doc.Path}
	if order[0] != "doc2" || order[1] != "doc1" || order[2] != "doc3" {
		t.Fatalf("unexpected order %v", order)
	}
	if ranking[2].Score != 0 {
		t.Fatalf("doc3 should score 0 got %v", ranking[2].Score)
	}
	if ranking[0].Doc != docs[1] {
		t.Fatalf("ranking must reference corpus documents, not copies")
	}
}

func TestRankNegativeIDF(t *testing.T) {
	docs := []*index.Document{
		index.NewDocument("a", "x x y"),
		index.NewDocument("b", "x y y y"),
	}
	value := idf.Value("x", docs)
	if value >= 0 {
		t.Fatalf("expected negative idf got %v", value)
	}
	ranking := Rank("x", value, docs)
	for i := 1; i < len(ranking); i++ {
		if ranking[i].Score > ranking[i-1].Score {
			t.Fatalf("scores not descending: %v", ranking)
		}
	}
	// With a negative idf the document with the lower tf ranks first.
	if ranking[0].Doc.Path != "b" {
		t.Fatalf("expected b first got %s", ranking[0].Doc.Path)
	}
}

func TestRankTiesOrderedByPath(t *testing.T) {
	docs := []*index.Document{
		index.NewDocument("zeta", "other"),
		index.NewDocument("alpha", "other"),
		index.NewDocument("mid", "word"),
	}
	ranking := Rank("word", idf.Value("word", docs), docs)
	if ranking[0].Doc.Path != "mid" || ranking[1].Doc.Path != "alpha" || ranking[2].Doc.Path != "zeta" {
		t.Fatalf("unexpected order %s %s %s", ranking[0].Doc.Path, ranking[1].Doc.Path, ranking[2].Doc.Path)
	}
}

func TestRankDeterministic(t *testing.T) {
	docs := make([]*index.Document, 0, 20)
	for i := 0; i < 20; i++ {
		docs = append(docs, index.NewDocument(fmt.Sprintf("doc-%02d", i), fmt.Sprintf("term%d shared term%d", i%3, i%5)))
	}
	value := idf.Value("term1", docs)
	first := Rank("term1", value, docs)
	second := Rank("term1", value, docs)
	for i := range first {
		if first[i].Doc != second[i].Doc || first[i].Score != second[i].Score {
			t.Fatalf("position %d differs between runs", i)
		}
		if i > 0 && first[i].Score > first[i-1].Score {
			t.Fatalf("scores not monotonically non-increasing at %d", i)
		}
	}
}

func TestLimit(t *testing.T) {
	docs := []*index.Document{
		index.NewDocument("a", "x"),
		index.NewDocument("b", "y"),
		index.NewDocument("c", "z"),
	}
	ranking := Rank("x", idf.Value("x", docs), docs)
	if len(ranking.Limit(0)) != 3 || len(ranking.Limit(2)) != 2 || len(ranking.Limit(10)) != 3 {
		t.Fatalf("unexpected limit behaviour")
	}
}
