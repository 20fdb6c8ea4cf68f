package knowledge

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// oneHotEmbedder assigns each corpus sentence a distinct axis and maps
// queries onto the axis of the sentence they name.
type oneHotEmbedder struct {
	dims     int
	queryFor map[string]int
	err      error
}

func (e *oneHotEmbedder) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		vec := make([]float32, e.dims)
		vec[i] = 1
		out[i] = vec
	}
	return out, nil
}

func (e *oneHotEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	vec := make([]float32, e.dims)
	vec[e.queryFor[text]] = 1
	return vec, nil
}

func TestCorpusCoversAllStages(t *testing.T) {
	corpus := Corpus()
	if len(corpus) != 21 {
		t.Fatalf("expected 21 corpus sentences, got %d", len(corpus))
	}
	for i, s := range corpus {
		if strings.TrimSpace(s) == "" {
			t.Fatalf("corpus sentence %d is blank", i)
		}
	}
	corpus[0] = "mutated"
	if Corpus()[0] == "mutated" {
		t.Fatal("expected Corpus to return a copy")
	}
}

func TestStoreRetrieve(t *testing.T) {
	corpus := Corpus()
	embedder := &oneHotEmbedder{
		dims:     len(corpus),
		queryFor: map[string]int{"what do rfps need": 3},
	}
	store, err := NewStore(context.Background(), embedder)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	got, err := store.Retrieve(context.Background(), "what do rfps need", 4)
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 passages, got %d", len(got))
	}
	if got[0] != corpus[3] {
		t.Fatalf("expected best match first:\n got: %q\nwant: %q", got[0], corpus[3])
	}
}

func TestStoreRetrieveEmbedFailure(t *testing.T) {
	embedder := &oneHotEmbedder{dims: len(Corpus())}
	store, err := NewStore(context.Background(), embedder)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	embedder.err = errors.New("quota exhausted")
	if _, err := store.Retrieve(context.Background(), "query", 5); err == nil {
		t.Fatal("expected embed failure to surface")
	}
}

func TestNewStoreEmbedFailure(t *testing.T) {
	embedder := &oneHotEmbedder{dims: len(Corpus()), err: errors.New("offline")}
	if _, err := NewStore(context.Background(), embedder); err == nil {
		t.Fatal("expected corpus embedding failure to surface")
	}
}

type miscountEmbedder struct{}

func (miscountEmbedder) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	return make([][]float32, len(texts)-1), nil
}

func (miscountEmbedder) EmbedQuery(context.Context, string) ([]float32, error) {
	return []float32{1}, nil
}

func TestNewStoreRejectsVectorMiscount(t *testing.T) {
	if _, err := NewStore(context.Background(), miscountEmbedder{}); err == nil {
		t.Fatal("expected error when vector count mismatches corpus")
	}
}
