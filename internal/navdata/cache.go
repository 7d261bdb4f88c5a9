package navdata

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Bhuvanesh09/mfsim/types"
)

const cacheSchema = `
CREATE TABLE IF NOT EXISTS nav_fetches (
	scheme_code INTEGER PRIMARY KEY,
	fetched_at  TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS nav_points (
	scheme_code INTEGER NOT NULL,
	nav_date    TEXT NOT NULL,
	nav         REAL NOT NULL,
	PRIMARY KEY (scheme_code, nav_date)
);
`

// NavCache stores fetched NAV histories in a local sqlite file so
// repeated runs skip the network. Entries expire after the TTL.
type NavCache struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

func OpenNavCache(path string, ttl time.Duration) (*NavCache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening nav cache %s: %w", path, err)
	}
	if _, err := db.Exec(cacheSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing nav cache schema: %w", err)
	}
	return &NavCache{db: db, ttl: ttl, now: time.Now}, nil
}

func (c *NavCache) Close() error {
	return c.db.Close()
}

// Get returns the cached series for a scheme if it is still fresh.
func (c *NavCache) Get(schemeCode int) (*types.NavSeries, bool) {
	var fetchedAt string
	err := c.db.QueryRow(
		`SELECT fetched_at FROM nav_fetches WHERE scheme_code = ?`, schemeCode,
	).Scan(&fetchedAt)
	if err != nil {
		return nil, false
	}
	at, err := time.Parse(time.RFC3339, fetchedAt)
	if err != nil || c.now().Sub(at) > c.ttl {
		return nil, false
	}

	rows, err := c.db.Query(
		`SELECT nav_date, nav FROM nav_points WHERE scheme_code = ? ORDER BY nav_date`, schemeCode,
	)
	if err != nil {
		return nil, false
	}
	defer rows.Close()

	var points []types.NavPoint
	for rows.Next() {
		var dateStr string
		var nav float64
		if err := rows.Scan(&dateStr, &nav); err != nil {
			return nil, false
		}
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, false
		}
		points = append(points, types.NavPoint{Date: date, Nav: nav})
	}
	if rows.Err() != nil || len(points) == 0 {
		return nil, false
	}
	return types.NewNavSeries(points), true
}

// Put replaces the cached series for a scheme and stamps it fresh.
func (c *NavCache) Put(schemeCode int, series *types.NavSeries) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM nav_points WHERE scheme_code = ?`, schemeCode); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO nav_points (scheme_code, nav_date, nav) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, p := range series.Points() {
		if _, err := stmt.Exec(schemeCode, p.Date.Format("2006-01-02"), p.Nav); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(
		`INSERT INTO nav_fetches (scheme_code, fetched_at) VALUES (?, ?)
		 ON CONFLICT(scheme_code) DO UPDATE SET fetched_at = excluded.fetched_at`,
		schemeCode, c.now().UTC().Format(time.RFC3339),
	); err != nil {
		return err
	}
	return tx.Commit()
}
