package vendors

import (
	"context"
	"path/filepath"
	"testing"
)

func TestSQLiteCatalogRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "vendors.db")
	ctx := context.Background()

	// Open, write data, close.
	c1, err := NewSQLiteCatalog(dbPath)
	if err != nil {
		t.Fatalf("new sqlite catalog: %v", err)
	}
	rating := Rating{
		Vendor:                 "Acme",
		InteractionDate:        "2024-06-01",
		DeliveryPunctuality:    8,
		QualityOfGoods:         7,
		ContractTermCompliance: 9,
		Comments:               "Met expectations",
	}
	if err := c1.Add(ctx, rating); err != nil {
		t.Fatalf("add rating: %v", err)
	}
	rows, err := c1.Ratings(ctx)
	if err != nil {
		t.Fatalf("ratings: %v", err)
	}
	if len(rows) != 1 || rows[0] != rating {
		t.Fatalf("unexpected in-memory view: %+v", rows)
	}
	c1.Close()

	// Reopen and verify data survived.
	c2, err := NewSQLiteCatalog(dbPath)
	if err != nil {
		t.Fatalf("reopen sqlite catalog: %v", err)
	}
	defer c2.Close()

	rows, err = c2.Ratings(ctx)
	if err != nil {
		t.Fatalf("ratings after reopen: %v", err)
	}
	if len(rows) != 1 || rows[0] != rating {
		t.Fatalf("expected persisted rating after reopen, got %+v", rows)
	}
}

func TestSQLiteCatalogSeedIfEmpty(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "seed.db")
	ctx := context.Background()

	c1, err := NewSQLiteCatalog(dbPath)
	if err != nil {
		t.Fatalf("new sqlite catalog: %v", err)
	}
	n, err := SeedIfEmpty(ctx, c1, 42)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if n != 50 {
		t.Fatalf("expected 50 seeded rows, got %d", n)
	}
	c1.Close()

	// A reopened catalog is already populated and must not reseed.
	c2, err := NewSQLiteCatalog(dbPath)
	if err != nil {
		t.Fatalf("reopen sqlite catalog: %v", err)
	}
	defer c2.Close()
	n, err = SeedIfEmpty(ctx, c2, 42)
	if err != nil {
		t.Fatalf("seed after reopen: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected no reseed, got %d rows", n)
	}
	rows, err := c2.Ratings(ctx)
	if err != nil {
		t.Fatalf("ratings: %v", err)
	}
	if len(rows) != 50 {
		t.Fatalf("expected 50 persisted rows, got %d", len(rows))
	}
}

func TestMemoryCatalogCopies(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCatalog([]Rating{{Vendor: "Acme", DeliveryPunctuality: 5}})
	rows, err := c.Ratings(ctx)
	if err != nil {
		t.Fatalf("ratings: %v", err)
	}
	rows[0].Vendor = "Mutated"
	again, _ := c.Ratings(ctx)
	if again[0].Vendor != "Acme" {
		t.Fatal("expected Ratings to return a copy")
	}
	if err := c.Add(ctx, Rating{Vendor: "Borealis"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	again, _ = c.Ratings(ctx)
	if len(again) != 2 {
		t.Fatalf("expected 2 rows after add, got %d", len(again))
	}
}
