package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"ytdlx/internal/config"
	"ytdlx/internal/services"
)

// Entry is one recorded resolution.
type Entry struct {
	ID              int64     `json:"id"`
	RequestID       string    `json:"request_id"`
	Query           string    `json:"query"`
	URL             string    `json:"url"`
	VideoID         string    `json:"video_id,omitempty"`
	Title           string    `json:"title,omitempty"`
	Channel         string    `json:"channel,omitempty"`
	DurationSeconds float64   `json:"duration_seconds,omitempty"`
	AudioPick       string    `json:"audio_pick,omitempty"`
	VideoPick       string    `json:"video_pick,omitempty"`
	FormatCount     int       `json:"format_count"`
	ResolvedAt      time.Time `json:"resolved_at"`
}

// Store manages lookup history backed by SQLite.
type Store struct {
	db         *sql.DB
	path       string
	maxEntries int
}

// Open initializes or connects to the history database at cfg.History.Path.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "history", "open", "nil config", nil)
	}
	dbPath := strings.TrimSpace(cfg.History.Path)
	if dbPath == "" {
		return nil, services.Wrap(services.ErrConfiguration, "history", "open", "history.path is empty", nil)
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, maxEntries: cfg.History.MaxEntries}
	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts entry and prunes rows beyond the configured maximum.
// A zero ResolvedAt is stamped with the current time.
func (s *Store) Record(ctx context.Context, entry Entry) (Entry, error) {
	if strings.TrimSpace(entry.URL) == "" {
		return Entry{}, services.Wrap(services.ErrValidation, "history", "record", "url is required", nil)
	}
	if entry.ResolvedAt.IsZero() {
		entry.ResolvedAt = time.Now()
	}
	entry.ResolvedAt = entry.ResolvedAt.UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Entry{}, fmt.Errorf("begin record tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO lookups (
            request_id, query, url, video_id, title, channel,
            duration_seconds, audio_pick, video_pick, format_count, resolved_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.RequestID,
		entry.Query,
		entry.URL,
		nullableString(entry.VideoID),
		nullableString(entry.Title),
		nullableString(entry.Channel),
		nullableFloat(entry.DurationSeconds),
		nullableString(entry.AudioPick),
		nullableString(entry.VideoPick),
		entry.FormatCount,
		entry.ResolvedAt.Format(timeLayout),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("insert lookup: %w", err)
	}
	if entry.ID, err = res.LastInsertId(); err != nil {
		return Entry{}, fmt.Errorf("last insert id: %w", err)
	}

	if s.maxEntries > 0 {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM lookups WHERE id NOT IN (
                SELECT id FROM lookups ORDER BY resolved_at DESC, id DESC LIMIT ?
            )`, s.maxEntries); err != nil {
			return Entry{}, fmt.Errorf("prune lookups: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Entry{}, fmt.Errorf("commit record: %w", err)
	}
	return entry, nil
}

// List returns up to limit entries, newest first. limit <= 0 returns all.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM lookups ORDER BY resolved_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list lookups: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lookups: %w", err)
	}
	return entries, nil
}

// Latest returns the most recent entry for videoID.
func (s *Store) Latest(ctx context.Context, videoID string) (Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM lookups WHERE video_id = ? ORDER BY resolved_at DESC, id DESC LIMIT 1`, videoID)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, services.Wrap(services.ErrNotFound, "history", "latest", "no lookup for "+videoID, nil)
	}
	return entry, err
}

// Count returns the number of stored entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM lookups`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count lookups: %w", err)
	}
	return n, nil
}

// Clear deletes every entry and reports how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM lookups`)
	if err != nil {
		return 0, fmt.Errorf("clear lookups: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}
