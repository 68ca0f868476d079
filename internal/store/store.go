// Package store provides a SQLite-backed cache for execution results.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // register sqlite driver
)

// run_cache held entries without a namespace; they cannot be attributed to
// an engine and are dropped.
const schema = `
DROP TABLE IF EXISTS run_cache;

CREATE TABLE IF NOT EXISTS run_results (
	namespace TEXT NOT NULL,
	source    TEXT NOT NULL,
	stack     TEXT NOT NULL,
	created   INTEGER NOT NULL,
	PRIMARY KEY (namespace, source)
);

CREATE INDEX IF NOT EXISTS idx_run_results_created ON run_results(created);
`

// Cache is a SQLite-backed cache of successful runs, keyed by namespace and
// source text. The namespace names the engine that produced the results, so
// one database can be shared by servers running different engines.
type Cache struct {
	mu        sync.Mutex
	db        *sql.DB
	namespace string
	ttl       time.Duration
}

// Open creates or opens a cache database at the given path. Entries are read
// and written under namespace; ttl controls how long they remain fresh.
func Open(dbPath, namespace string, ttl time.Duration) (*Cache, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}

	// SQLite pragmas for performance.
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	c := &Cache{db: db, namespace: namespace, ttl: ttl}
	c.purgeStale()
	return c, nil
}

// Close closes the database.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.db.Close()
}

// Get returns the cached stack for source, or false on a miss or a stale
// entry. Safe to call on a nil receiver (returns miss).
func (c *Cache) Get(source string) ([]string, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := time.Now().Add(-c.ttl).Unix()
	var raw string
	err := c.db.QueryRow(
		"SELECT stack FROM run_results WHERE namespace = ? AND source = ? AND created > ?",
		c.namespace, source, cutoff,
	).Scan(&raw)
	if err != nil {
		return nil, false
	}

	var stack []string
	if err := json.Unmarshal([]byte(raw), &stack); err != nil {
		log.Warn().Err(err).Msg("corrupt run cache entry")
		return nil, false
	}
	return stack, true
}

// Set stores the stack produced by source. No-op on nil receiver.
func (c *Cache) Set(source string, stack []string) {
	if c == nil {
		return
	}
	if stack == nil {
		stack = []string{}
	}
	raw, err := json.Marshal(stack)
	if err != nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	_, err = c.db.Exec(
		"INSERT OR REPLACE INTO run_results (namespace, source, stack, created) VALUES (?, ?, ?, ?)",
		c.namespace, source, string(raw), time.Now().Unix(),
	)
	if err != nil {
		log.Warn().Err(err).Int("bytes", len(source)).Msg("failed to cache run result")
	}
}

// purgeStale removes entries older than the TTL.
func (c *Cache) purgeStale() {
	cutoff := time.Now().Add(-c.ttl).Unix()
	res, err := c.db.Exec("DELETE FROM run_results WHERE created <= ?", cutoff)
	if err != nil {
		log.Warn().Err(err).Msg("failed to purge stale cache")
		return
	}
	if n, _ := res.RowsAffected(); n > 0 {
		log.Info().Int64("deleted", n).Msg("purged stale cache entries")
	}
}
