package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// sqlite3 driver registration
	_ "github.com/mattn/go-sqlite3"
)

const historySchema = `CREATE TABLE IF NOT EXISTS history (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	dedup_key  TEXT NOT NULL UNIQUE,
	search     TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
)`

// HistoryEntry is one song recorded by an earlier run.
type HistoryEntry struct {
	Key    string
	Search string
}

// History persists dedup keys across runs in SQLite.
type History struct {
	db *sql.DB
}

// OpenHistory opens (and if needed creates) the history database at path.
func OpenHistory(ctx context.Context, path string) (*History, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	if _, err := db.ExecContext(ctx, historySchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}

	return &History{db: db}, nil
}

// RecentKeys returns up to limit keys, oldest first, so they can be passed to
// DedupStore.Load.
func (h *History) RecentKeys(ctx context.Context, limit int) ([]string, error) {
	rows, err := h.db.QueryContext(ctx,
		`SELECT dedup_key FROM history ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}

	for i, j := 0, len(keys)-1; i < j; i, j = i+1, j-1 {
		keys[i], keys[j] = keys[j], keys[i]
	}
	return keys, nil
}

// Record stores entries in one transaction. Keys already present are left untouched.
func (h *History) Record(ctx context.Context, entries []HistoryEntry) error {
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin history transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO history (dedup_key, search, created_at) VALUES (?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare history insert: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	now := time.Now().UTC()
	for _, entry := range entries {
		if entry.Key == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx, entry.Key, entry.Search, now); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert history entry %q: %w", entry.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit history: %w", err)
	}
	return nil
}

// Count returns the number of recorded keys.
func (h *History) Count(ctx context.Context) (int, error) {
	var n int
	if err := h.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM history`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count history: %w", err)
	}
	return n, nil
}

// Close closes the database.
func (h *History) Close() error {
	return h.db.Close()
}
