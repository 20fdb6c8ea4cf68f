package knowledge

import (
	"math"
	"sort"
	"sync"
)

// Passage pairs a corpus sentence with its embedding vector.
type Passage struct {
	Text   string
	Vector []float32
}

// Hit is one search result with its similarity score.
type Hit struct {
	Text  string
	Score float32
}

// Index is a brute-force cosine-similarity index. The corpus is small
// enough that a linear scan beats any structure worth maintaining.
type Index struct {
	mu    sync.RWMutex
	items []Passage
}

func NewIndex() *Index { return &Index{} }

// Replace swaps the stored passages atomically.
func (idx *Index) Replace(items []Passage) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.items = make([]Passage, len(items))
	for i, it := range items {
		idx.items[i] = Passage{Text: it.Text, Vector: cloneVector(it.Vector)}
	}
}

// Size returns the number of stored passages.
func (idx *Index) Size() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.items)
}

// Search scores every stored passage against vec and returns the top-k,
// best first. Exact ties have no defined order.
func (idx *Index) Search(vec []float32, k int) []Hit {
	idx.mu.RLock()
	items := idx.items
	idx.mu.RUnlock()
	if len(items) == 0 || len(vec) == 0 || k <= 0 {
		return nil
	}
	hits := make([]Hit, 0, len(items))
	for _, it := range items {
		hits = append(hits, Hit{Text: it.Text, Score: cosineSimilarity(vec, it.Vector)})
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits
}

func cosineSimilarity(a, b []float32) float32 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		fa := float64(a[i])
		fb := float64(b[i])
		dot += fa * fb
		na += fa * fa
		nb += fb * fb
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}

func cloneVector(v []float32) []float32 {
	out := make([]float32, len(v))
	copy(out, v)
	return out
}
