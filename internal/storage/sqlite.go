// Package storage provides SQLite-based persistence for palette overrides
// and viewing history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-galaxy/internal/config"
	"github.com/vovakirdan/tui-galaxy/internal/galaxy"
)

// DefaultPath is where the CLI keeps its database.
const DefaultPath = "~/.galaxy/galaxy.db"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// SessionEntry is one recorded viewing session.
type SessionEntry struct {
	ID        int64
	Mode      string // "tui", "ssh" or "window"
	User      string // SSH user, empty for local sessions
	Levels    int    // Level changes during the session
	Duration  int    // Duration in seconds
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS palettes (
			level INTEGER PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			main_color TEXT NOT NULL,
			side1 TEXT,
			side2 TEXT,
			side3 TEXT,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode TEXT NOT NULL,
			user_name TEXT NOT NULL DEFAULT '',
			levels INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_created ON sessions(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SavePalette inserts or replaces the override for p.Level.
// Side colours beyond the engine's slot count are dropped.
func (s *Store) SavePalette(p config.LevelPalette) error {
	var side [galaxy.SideColorSlots]sql.NullString
	for i := 0; i < len(side) && i < len(p.Side); i++ {
		side[i] = sql.NullString{String: p.Side[i], Valid: true}
	}

	_, err := s.db.Exec(
		`INSERT INTO palettes (level, name, main_color, side1, side2, side3, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(level) DO UPDATE SET
		   name = excluded.name,
		   main_color = excluded.main_color,
		   side1 = excluded.side1,
		   side2 = excluded.side2,
		   side3 = excluded.side3,
		   updated_at = CURRENT_TIMESTAMP`,
		p.Level, p.Name, p.Main, side[0], side[1], side[2],
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save palette: %w", err)
	}
	return nil
}

// Palette returns the override for level, or nil if there is none.
func (s *Store) Palette(level int) (*config.LevelPalette, error) {
	row := s.db.QueryRow(
		`SELECT level, name, main_color, side1, side2, side3
		 FROM palettes
		 WHERE level = ?`,
		level,
	)

	p, err := scanPalette(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query palette: %w", err)
	}
	return &p, nil
}

// Palettes returns every override ordered by level.
func (s *Store) Palettes() ([]config.LevelPalette, error) {
	rows, err := s.db.Query(
		`SELECT level, name, main_color, side1, side2, side3
		 FROM palettes
		 ORDER BY level`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query palettes: %w", err)
	}
	defer rows.Close()

	var out []config.LevelPalette
	for rows.Next() {
		p, err := scanPalette(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out = append(out, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return out, nil
}

// DeletePalette removes the override for level.
// Reports whether an override existed.
func (s *Store) DeletePalette(level int) (bool, error) {
	res, err := s.db.Exec("DELETE FROM palettes WHERE level = ?", level)
	if err != nil {
		return false, fmt.Errorf("storage: cannot delete palette: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot get affected rows: %w", err)
	}
	return n > 0, nil
}

// ClearPalettes deletes every override.
func (s *Store) ClearPalettes() error {
	if _, err := s.db.Exec("DELETE FROM palettes"); err != nil {
		return fmt.Errorf("storage: cannot clear palettes: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

// scanPalette reads one palettes row; NULL side colours are skipped.
func scanPalette(sc scanner) (config.LevelPalette, error) {
	var p config.LevelPalette
	var side [galaxy.SideColorSlots]sql.NullString
	if err := sc.Scan(&p.Level, &p.Name, &p.Main, &side[0], &side[1], &side[2]); err != nil {
		return p, err
	}
	for _, c := range side {
		if c.Valid {
			p.Side = append(p.Side, c.String)
		}
	}
	return p, nil
}

// SaveSession records a finished viewing session.
// Returns the ID of the inserted record.
func (s *Store) SaveSession(e SessionEntry) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO sessions (mode, user_name, levels, duration_secs) VALUES (?, ?, ?, ?)",
		e.Mode, e.User, e.Levels, e.Duration,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentSessions retrieves the most recent sessions, newest first.
func (s *Store) RecentSessions(limit int) ([]SessionEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, mode, user_name, levels, duration_secs, created_at
		 FROM sessions
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var entries []SessionEntry
	for rows.Next() {
		var e SessionEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Mode, &e.User, &e.Levels, &e.Duration, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		// Parse the datetime - handle both time.Time and string
		switch v := createdAt.(type) {
		case time.Time:
			e.CreatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				e.CreatedAt = parsed
			}
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}
