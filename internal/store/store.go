// Package store persists level completions, counters and medals in a local
// SQLite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/tmux-dojo/dojo/internal/logging/events"
)

// Counter names tracked in the stats table.
const (
	StatClocks  = "clocks"
	StatFlashes = "flashes"
	StatWindows = "windows"
)

// Store is a handle on the progress database.
type Store struct {
	db      *sql.DB
	path    string
	profile string
	now     func() time.Time
}

// Open creates or opens the database at path and applies migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("store: empty database path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("store: create directory: %w", err)
	}
	// modernc.org/sqlite registers itself as "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}
	db.SetMaxOpenConns(1)
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("store: %s: %w", p, err)
		}
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	profile, err := ensureMetaUUID(ctx, db, "profile_id")
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: profile: %w", err)
	}
	events.Store.Open(path)
	return &Store{db: db, path: path, profile: profile, now: time.Now}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS progress (
			level_id INTEGER PRIMARY KEY,
			title TEXT NOT NULL,
			count INTEGER NOT NULL,
			last_completed_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS stats (
			name TEXT PRIMARY KEY,
			total INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS medals (
			id TEXT PRIMARY KEY,
			awarded_unixms INTEGER NOT NULL
		);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

func ensureMetaUUID(ctx context.Context, db *sql.DB, key string) (string, error) {
	var v string
	err := db.QueryRowContext(ctx, `SELECT v FROM meta WHERE k = ?`, key).Scan(&v)
	if err == nil && strings.TrimSpace(v) != "" {
		return v, nil
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}
	id := uuid.NewString()
	if _, err := db.ExecContext(ctx, `INSERT OR REPLACE INTO meta(k, v) VALUES(?, ?)`, key, id); err != nil {
		return "", err
	}
	return id, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// ProfileID returns the stable local profile identifier.
func (s *Store) ProfileID() string { return s.profile }

// RecordCompletion increments the completion count of a level and returns
// the new count.
func (s *Store) RecordCompletion(ctx context.Context, levelID int, title string) (int, error) {
	nowMs := s.now().UnixMilli()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO progress(level_id, title, count, last_completed_unixms) VALUES(?, ?, 1, ?)
		ON CONFLICT(level_id) DO UPDATE SET
			count = count + 1,
			title = excluded.title,
			last_completed_unixms = excluded.last_completed_unixms`,
		levelID, title, nowMs)
	if err != nil {
		return 0, fmt.Errorf("store: record completion %d: %w", levelID, err)
	}
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT count FROM progress WHERE level_id = ?`, levelID).Scan(&count); err != nil {
		return 0, fmt.Errorf("store: read completion %d: %w", levelID, err)
	}
	events.Store.Completion(levelID, count)
	return count, nil
}

// BumpStat increments a named counter and returns its new total.
func (s *Store) BumpStat(ctx context.Context, name string) (int, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO stats(name, total) VALUES(?, 1)
		ON CONFLICT(name) DO UPDATE SET total = total + 1`, name)
	if err != nil {
		return 0, fmt.Errorf("store: bump %s: %w", name, err)
	}
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT total FROM stats WHERE name = ?`, name).Scan(&total); err != nil {
		return 0, fmt.Errorf("store: read %s: %w", name, err)
	}
	events.Store.Stat(name, total)
	return total, nil
}

// Award records medals that are not yet held and returns the new ones.
func (s *Store) Award(ctx context.Context, ids []string) ([]string, error) {
	nowMs := s.now().UnixMilli()
	var awarded []string
	for _, id := range ids {
		res, err := s.db.ExecContext(ctx, `INSERT OR IGNORE INTO medals(id, awarded_unixms) VALUES(?, ?)`, id, nowMs)
		if err != nil {
			return awarded, fmt.Errorf("store: award %s: %w", id, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			events.Store.Medal(id)
			awarded = append(awarded, id)
		}
	}
	return awarded, nil
}

// Snapshot reads everything stored.
func (s *Store) Snapshot(ctx context.Context) (Progress, error) {
	p := Progress{
		ProfileID:     s.profile,
		Counts:        make(map[int]int),
		Titles:        make(map[int]string),
		LastCompleted: make(map[int]time.Time),
		Stats:         make(map[string]int),
		Medals:        make(map[string]time.Time),
	}
	rows, err := s.db.QueryContext(ctx, `SELECT level_id, title, count, last_completed_unixms FROM progress`)
	if err != nil {
		return p, fmt.Errorf("store: read progress: %w", err)
	}
	if err := scanProgress(rows, &p); err != nil {
		return p, err
	}

	if err := readPairs(ctx, s.db, `SELECT name, total FROM stats`, func(name string, total int64) {
		p.Stats[name] = int(total)
	}); err != nil {
		return p, fmt.Errorf("store: read stats: %w", err)
	}
	if err := readPairs(ctx, s.db, `SELECT id, awarded_unixms FROM medals`, func(id string, ms int64) {
		p.Medals[id] = time.UnixMilli(ms)
	}); err != nil {
		return p, fmt.Errorf("store: read medals: %w", err)
	}
	return p, nil
}

// rowIter is the part of *sql.Rows the progress scan needs.
type rowIter interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

func scanProgress(rows rowIter, p *Progress) error {
	defer rows.Close()
	for rows.Next() {
		var (
			id, count int
			title     string
			ms        int64
		)
		if err := rows.Scan(&id, &title, &count, &ms); err != nil {
			return fmt.Errorf("store: scan progress: %w", err)
		}
		p.Counts[id] = count
		p.Titles[id] = title
		p.LastCompleted[id] = time.UnixMilli(ms)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("store: read progress: %w", err)
	}
	return nil
}

func readPairs(ctx context.Context, db *sql.DB, query string, fn func(string, int64)) error {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			k string
			v int64
		)
		if err := rows.Scan(&k, &v); err != nil {
			return err
		}
		fn(k, v)
	}
	return rows.Err()
}
