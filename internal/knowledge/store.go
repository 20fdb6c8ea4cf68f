package knowledge

import (
	"context"
	"fmt"
)

// Store owns the embedded corpus and answers retrieval queries for the
// stage pipeline.
type Store struct {
	embedder Embedder
	index    *Index
}

// NewStore embeds the full corpus once and indexes it.
func NewStore(ctx context.Context, embedder Embedder) (*Store, error) {
	texts := Corpus()
	vectors, err := embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed corpus: %w", err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("embed corpus: got %d vectors for %d passages", len(vectors), len(texts))
	}
	items := make([]Passage, len(texts))
	for i := range texts {
		items[i] = Passage{Text: texts[i], Vector: vectors[i]}
	}
	idx := NewIndex()
	idx.Replace(items)
	return &Store{embedder: embedder, index: idx}, nil
}

// Retrieve embeds the query and returns the k most similar corpus
// sentences, best first.
func (s *Store) Retrieve(ctx context.Context, query string, k int) ([]string, error) {
	vec, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	hits := s.index.Search(vec, k)
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.Text
	}
	return out, nil
}
