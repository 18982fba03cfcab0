// Package metrics keeps privacy-conscious page-view and reveal counters in sqlite.
//
// Raw IP addresses are never stored: each is hashed with a per-process salt and
// truncated. Visitors sending DNT are not recorded.
package metrics

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS visitors (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	hashed_ip TEXT NOT NULL,
	user_agent TEXT,
	path TEXT,
	view_id TEXT,
	timestamp INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS reveals (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	view_id TEXT NOT NULL,
	block_id TEXT NOT NULL,
	timestamp INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS visitors_timestamp ON visitors (timestamp);
CREATE INDEX IF NOT EXISTS reveals_block ON reveals (block_id);
`

// Recorder is what the web layer needs from a metrics backend.
type Recorder interface {
	RecordVisit(ctx context.Context, v Visit) error
	RecordReveal(ctx context.Context, viewID, blockID string) error
}

// Visit is one rendered page.
type Visit struct {
	IP        string
	UserAgent string
	Path      string
	ViewID    string
}

// BlockCount is how many views revealed a block.
type BlockCount struct {
	Block string `json:"block"`
	Views int64  `json:"views"`
}

// Stats aggregates the stored counters.
type Stats struct {
	TotalVisitors    int64        `json:"total_visitors"`
	UniqueVisitors   int64        `json:"unique_visitors"`
	VisitorsToday    int64        `json:"visitors_today"`
	VisitorsThisWeek int64        `json:"visitors_this_week"`
	TotalReveals     int64        `json:"total_reveals"`
	TopBlocks        []BlockCount `json:"top_blocks"`
}

// Store is a sqlite-backed Recorder.
type Store struct {
	db   *sql.DB
	salt string
	now  func() time.Time
}

// Open opens or creates the metrics database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open metrics db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create metrics schema: %w", err)
	}

	salt, err := generateSalt()
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, salt: salt, now: time.Now}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func generateSalt() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// hashIP is consistent per IP for the lifetime of the process.
func (s *Store) hashIP(ip string) string {
	h := sha256.Sum256([]byte(ip + s.salt))
	return hex.EncodeToString(h[:])[:16]
}

func (s *Store) RecordVisit(ctx context.Context, v Visit) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO visitors (hashed_ip, user_agent, path, view_id, timestamp)
		VALUES (?, ?, ?, ?, ?)`,
		s.hashIP(v.IP), v.UserAgent, v.Path, v.ViewID, s.now().Unix())
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

func (s *Store) RecordReveal(ctx context.Context, viewID, blockID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reveals (view_id, block_id, timestamp) VALUES (?, ?, ?)`,
		viewID, blockID, s.now().Unix())
	if err != nil {
		return fmt.Errorf("record reveal: %w", err)
	}
	return nil
}

// Cleanup deletes rows older than retention and reports how many were removed.
func (s *Store) Cleanup(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := s.now().Add(-retention).Unix()

	var removed int64
	for _, table := range []string{"visitors", "reveals"} {
		res, err := s.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE timestamp < ?", cutoff)
		if err != nil {
			return removed, fmt.Errorf("cleanup %s: %w", table, err)
		}
		n, err := rowsRemoved(res, table)
		if err != nil {
			return removed, err
		}
		removed += n
	}
	return removed, nil
}

func rowsRemoved(res sql.Result, table string) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("cleanup %s rows: %w", table, err)
	}
	return n, nil
}

// Stats computes the aggregate counters.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{TopBlocks: []BlockCount{}}
	now := s.now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	counters := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, "SELECT COUNT(*) FROM visitors", nil},
		{&stats.UniqueVisitors, "SELECT COUNT(DISTINCT hashed_ip) FROM visitors", nil},
		{&stats.VisitorsToday, "SELECT COUNT(*) FROM visitors WHERE timestamp >= ?", []any{startOfDay.Unix()}},
		{&stats.VisitorsThisWeek, "SELECT COUNT(*) FROM visitors WHERE timestamp >= ?", []any{now.Add(-7 * 24 * time.Hour).Unix()}},
		{&stats.TotalReveals, "SELECT COUNT(*) FROM reveals", nil},
	}
	for _, c := range counters {
		if err := s.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("query stats: %w", err)
		}
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT block_id, COUNT(DISTINCT view_id) AS views
		FROM reveals
		GROUP BY block_id
		ORDER BY views DESC, block_id
		LIMIT 10`)
	if err != nil {
		return nil, fmt.Errorf("query top blocks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var bc BlockCount
		if err := rows.Scan(&bc.Block, &bc.Views); err != nil {
			return nil, fmt.Errorf("scan top blocks: %w", err)
		}
		stats.TopBlocks = append(stats.TopBlocks, bc)
	}
	return stats, rows.Err()
}

// Discard is a Recorder that drops everything.
type Discard struct{}

func (Discard) RecordVisit(context.Context, Visit) error           { return nil }
func (Discard) RecordReveal(context.Context, string, string) error { return nil }
