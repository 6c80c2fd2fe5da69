// Package cache stores completed VIN analyses so repeat lookups skip the
// expensive browser-automation step.
package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"vinscout/internal/models"
)

// TTL is the fixed expiry stamped on every write: 604800 seconds.
const TTL = 7 * 24 * time.Hour

// Store is a VIN-keyed key-value store backed by SQLite. A nil *Store is
// valid and behaves as "always miss": analyses must be able to run
// uncached when the store is unreachable or unconfigured.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS vin_analyses (
	vin        TEXT PRIMARY KEY,
	payload    TEXT NOT NULL,
	expires_at INTEGER NOT NULL
);
`

// Open creates or opens the store at path. Callers that can live without a
// cache should log the error and continue with a nil store.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open cache store: %w", err)
	}

	// SQLite works best with a single connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Get returns the cached analysis for a VIN, or a miss. Expired entries
// read as misses and are removed lazily. Never returns an error to the
// caller: a broken cache degrades to always-miss.
func (s *Store) Get(vin string) (*models.VinAnalysis, bool) {
	if s == nil || s.db == nil {
		return nil, false
	}
	key := strings.ToUpper(vin)

	var payload string
	var expiresAt int64
	err := s.db.QueryRow(
		"SELECT payload, expires_at FROM vin_analyses WHERE vin = ?", key,
	).Scan(&payload, &expiresAt)
	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		log.Printf("[cache] read error for %s: %v", key, err)
		return nil, false
	}

	if time.Now().Unix() >= expiresAt {
		if _, err := s.db.Exec("DELETE FROM vin_analyses WHERE vin = ?", key); err != nil {
			log.Printf("[cache] expiry cleanup error for %s: %v", key, err)
		}
		return nil, false
	}

	var analysis models.VinAnalysis
	if err := json.Unmarshal([]byte(payload), &analysis); err != nil {
		log.Printf("[cache] corrupt entry for %s: %v", key, err)
		return nil, false
	}
	return &analysis, true
}

// Put stores the analysis under the uppercased VIN with a fresh TTL. A
// write always fully replaces the previous entry; there is no
// read-modify-write.
func (s *Store) Put(vin string, analysis *models.VinAnalysis) error {
	if s == nil || s.db == nil {
		return nil
	}
	key := strings.ToUpper(vin)

	payload, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("failed to encode analysis: %w", err)
	}

	_, err = s.db.Exec(
		"INSERT OR REPLACE INTO vin_analyses (vin, payload, expires_at) VALUES (?, ?, ?)",
		key, string(payload), time.Now().Add(TTL).Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
