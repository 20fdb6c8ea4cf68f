package vendors

import (
	"context"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// SQLiteCatalog persists the rating history to SQLite with write-through
// semantics: reads are served from an embedded MemoryCatalog loaded at
// startup, Add updates memory then the database.
type SQLiteCatalog struct {
	inner *MemoryCatalog
	db    *sqlx.DB
	mu    sync.Mutex
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS vendor_ratings (
	id                       INTEGER PRIMARY KEY AUTOINCREMENT,
	vendor                   TEXT NOT NULL,
	interaction_date         TEXT NOT NULL DEFAULT '',
	delivery_punctuality     REAL NOT NULL DEFAULT 0,
	quality_of_goods         REAL NOT NULL DEFAULT 0,
	contract_term_compliance REAL NOT NULL DEFAULT 0,
	comments                 TEXT NOT NULL DEFAULT ''
);
`

func NewSQLiteCatalog(dbPath string) (*SQLiteCatalog, error) {
	db, err := sqlx.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	c := &SQLiteCatalog{inner: NewMemoryCatalog(nil), db: db}
	if err := c.loadAll(); err != nil {
		db.Close()
		return nil, fmt.Errorf("load ratings: %w", err)
	}
	return c, nil
}

func (c *SQLiteCatalog) loadAll() error {
	var rows []Rating
	err := c.db.Select(&rows, `SELECT vendor, interaction_date, delivery_punctuality,
		quality_of_goods, contract_term_compliance, comments
		FROM vendor_ratings ORDER BY id`)
	if err != nil {
		return err
	}
	c.inner.rows = rows
	return nil
}

func (c *SQLiteCatalog) Close() error { return c.db.Close() }

func (c *SQLiteCatalog) Ratings(ctx context.Context) ([]Rating, error) {
	return c.inner.Ratings(ctx)
}

func (c *SQLiteCatalog) Add(ctx context.Context, r Rating) error {
	if err := c.inner.Add(ctx, r); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := c.db.ExecContext(ctx, `INSERT INTO vendor_ratings
		(vendor, interaction_date, delivery_punctuality, quality_of_goods, contract_term_compliance, comments)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.Vendor, r.InteractionDate, r.DeliveryPunctuality, r.QualityOfGoods, r.ContractTermCompliance, r.Comments)
	if err != nil {
		return fmt.Errorf("persist rating: %w", err)
	}
	return nil
}

var _ Catalog = (*SQLiteCatalog)(nil)
