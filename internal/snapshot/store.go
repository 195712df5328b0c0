// Package snapshot caches the last good payload of backend endpoints so
// the console can render something when the backend is unreachable.
package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	jsoniter "github.com/json-iterator/go"

	"github.com/tinytelemetry/heimdall/internal/snapshot/migrate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Entry is one cached payload.
type Entry struct {
	Key     string
	Payload []byte
	Source  string
	SavedAt time.Time
}

// Store is a DuckDB-backed snapshot cache.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the cache at dbPath. An empty path keeps the cache
// in memory.
func Open(ctx context.Context, dbPath string) (*Store, error) {
	if dbPath != "" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("snapshot: create dir: %w", err)
		}
	}

	db, err := sql.Open("duckdb", dbPath)
	if err != nil {
		return nil, fmt.Errorf("snapshot: open: %w", err)
	}
	if err := migrate.NewRunner(db).Run(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores payload under key, replacing any previous entry.
func (s *Store) Put(ctx context.Context, key, source string, payload []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO snapshots (key, payload, saved_at, source) VALUES (?, ?, ?, ?)`,
		key, string(payload), s.now().UTC(), source)
	if err != nil {
		return fmt.Errorf("snapshot: put %s: %w", key, err)
	}
	return nil
}

// Get returns the entry stored under key. ok is false when there is none.
func (s *Store) Get(ctx context.Context, key string) (Entry, bool, error) {
	var (
		e       Entry
		payload string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT key, payload, saved_at, source FROM snapshots WHERE key = ?`, key,
	).Scan(&e.Key, &payload, &e.SavedAt, &e.Source)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("snapshot: get %s: %w", key, err)
	}
	e.Payload = []byte(payload)
	return e, true, nil
}

// Keys lists cached keys, most recent first.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM snapshots ORDER BY saved_at DESC, key`)
	if err != nil {
		return nil, fmt.Errorf("snapshot: keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// PutJSON encodes v and stores it under key.
func (s *Store) PutJSON(ctx context.Context, key, source string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("snapshot: encode %s: %w", key, err)
	}
	return s.Put(ctx, key, source, data)
}

// GetJSON decodes the entry stored under key into v.
func (s *Store) GetJSON(ctx context.Context, key string, v any) (Entry, bool, error) {
	e, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return e, ok, err
	}
	if err := json.Unmarshal(e.Payload, v); err != nil {
		return e, false, fmt.Errorf("snapshot: decode %s: %w", key, err)
	}
	return e, true, nil
}

// Prune deletes entries saved more than maxAge ago and returns how many
// were removed. A non-positive maxAge keeps everything.
func (s *Store) Prune(ctx context.Context, maxAge time.Duration) (int64, error) {
	if maxAge <= 0 {
		return 0, nil
	}
	cutoff := s.now().UTC().Add(-maxAge)
	res, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE saved_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("snapshot: prune: %w", err)
	}
	return res.RowsAffected()
}
