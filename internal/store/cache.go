// Package store provides a SQLite-backed cache for player and leaderboard
// lookups, so repeat queries render instantly and recent results survive a
// flaky service.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Cache stores raw JSON lookup responses keyed by endpoint and query.
type Cache struct {
	db *sql.DB
}

// Open opens or creates the cache database at the given path.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Put stores a response body for an endpoint/key pair, replacing any
// previous entry.
func (c *Cache) Put(endpoint, key string, body []byte) error {
	// Nanosecond timestamps keep lexicographic order in SQL comparisons.
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := c.db.Exec(`INSERT OR REPLACE INTO lookups (endpoint, lookup_key, body, fetched_at)
		VALUES (?, ?, ?, ?)`, endpoint, key, body, now)
	return err
}

// Get returns the cached body for an endpoint/key pair if it is younger
// than maxAge. The second return is false on a miss or an expired entry.
func (c *Cache) Get(endpoint, key string, maxAge time.Duration) ([]byte, bool) {
	var body []byte
	var fetchedAt string
	err := c.db.QueryRow(`SELECT body, fetched_at FROM lookups
		WHERE endpoint = ? AND lookup_key = ?`, endpoint, key).Scan(&body, &fetchedAt)
	if err != nil {
		return nil, false
	}

	t, err := time.Parse(time.RFC3339Nano, fetchedAt)
	if err != nil {
		return nil, false
	}
	if maxAge > 0 && time.Since(t) > maxAge {
		return nil, false
	}
	return body, true
}

// Prune deletes entries older than maxAge.
func (c *Cache) Prune(maxAge time.Duration) error {
	cutoff := time.Now().UTC().Add(-maxAge).Format(time.RFC3339Nano)
	_, err := c.db.Exec("DELETE FROM lookups WHERE fetched_at < ?", cutoff)
	return err
}

// EntryCount returns the number of cached lookups.
func (c *Cache) EntryCount() (int, error) {
	var count int
	err := c.db.QueryRow("SELECT COUNT(*) FROM lookups").Scan(&count)
	return count, err
}
