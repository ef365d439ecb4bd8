package vectorindex

import (
	"fmt"
	"sort"
)

// Document is one indexed item. Documents and vectors share positional
// indexing: the document at position i corresponds to vector row i.
type Document struct {
	Text     string                 `json:"text"`
	Metadata map[string]interface{} `json:"metadata"`
}

// Hit is a single search result.
type Hit struct {
	Position int                    `json:"position"`
	Score    float32                `json:"score"`
	Text     string                 `json:"text"`
	Metadata map[string]interface{} `json:"metadata"`
}

// Index is a flat inner-product index over L2-normalized vectors.
// It performs exhaustive search; there is no approximate structure.
type Index struct {
	dim     int
	docs    []Document
	vectors []float32 // row-major, len == len(docs)*dim
}

// New creates an empty index with the given dimension.
func New(dim int) *Index {
	return &Index{dim: dim}
}

func (ix *Index) Len() int { return len(ix.docs) }
func (ix *Index) Dim() int { return ix.dim }

// Doc returns the document at position i.
func (ix *Index) Doc(i int) Document {
	return ix.docs[i]
}

// Docs returns the backing document slice. Callers must not mutate it.
func (ix *Index) Docs() []Document {
	return ix.docs
}

// Add appends a document and its vector. The vector must already be
// L2-normalized if inner-product scores are to be read as cosine
// similarity.
func (ix *Index) Add(doc Document, vec []float32) error {
	if len(vec) != ix.dim {
		return fmt.Errorf("%w: got %d want %d", ErrVectorLengthMismatch, len(vec), ix.dim)
	}
	ix.docs = append(ix.docs, doc)
	ix.vectors = append(ix.vectors, vec...)
	return nil
}

// Search returns at most topK hits sorted by descending score.
// Scores lie in [-1, 1] for normalized vectors.
func (ix *Index) Search(query []float32, topK int) ([]Hit, error) {
	if ix.Len() == 0 {
		return nil, ErrEmptyIndex
	}
	if len(query) != ix.dim {
		return nil, fmt.Errorf("%w: got %d want %d", ErrVectorLengthMismatch, len(query), ix.dim)
	}
	if topK <= 0 {
		topK = 1
	}

	hits := make([]Hit, 0, ix.Len())
	for i := 0; i < ix.Len(); i++ {
		row := ix.vectors[i*ix.dim : (i+1)*ix.dim]
		score, err := Dot(query, row)
		if err != nil {
			return nil, err
		}
		hits = append(hits, Hit{
			Position: i,
			Score:    score,
			Text:     ix.docs[i].Text,
			Metadata: ix.docs[i].Metadata,
		})
	}

	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].Score > hits[b].Score
	})

	if topK > len(hits) {
		topK = len(hits)
	}
	return hits[:topK], nil
}

// validate checks the positional invariant between docs and vectors.
func (ix *Index) validate() error {
	if ix.dim <= 0 {
		return fmt.Errorf("vectorindex: invalid dim %d", ix.dim)
	}
	if len(ix.vectors) != len(ix.docs)*ix.dim {
		return fmt.Errorf("vectorindex: vector length mismatch: got %d want %d",
			len(ix.vectors), len(ix.docs)*ix.dim)
	}
	return nil
}
