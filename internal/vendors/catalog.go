package vendors

import (
	"context"
	"sync"
)

// Catalog is the vendor rating history a workbench consults when scoring
// vendors for a procurement.
type Catalog interface {
	Ratings(ctx context.Context) ([]Rating, error)
	Add(ctx context.Context, r Rating) error
}

// MemoryCatalog keeps ratings in memory. It backs tests and --db-less runs,
// and serves as the read path inside SQLiteCatalog.
type MemoryCatalog struct {
	mu   sync.RWMutex
	rows []Rating
}

func NewMemoryCatalog(rows []Rating) *MemoryCatalog {
	return &MemoryCatalog{rows: append([]Rating(nil), rows...)}
}

func (c *MemoryCatalog) Ratings(ctx context.Context) ([]Rating, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Rating(nil), c.rows...), nil
}

func (c *MemoryCatalog) Add(ctx context.Context, r Rating) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rows = append(c.rows, r)
	return nil
}

// SeedIfEmpty fills an empty catalog with the deterministic sample history.
// Returns how many rows were added; zero when the catalog already has data.
func SeedIfEmpty(ctx context.Context, c Catalog, seed int64) (int, error) {
	existing, err := c.Ratings(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}
	rows := SampleRatings(seed)
	for _, r := range rows {
		if err := c.Add(ctx, r); err != nil {
			return 0, err
		}
	}
	return len(rows), nil
}

var _ Catalog = (*MemoryCatalog)(nil)
