package export

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Store keeps the capture history in SQLite so past extractions remain
// queryable after the CSV/JSON artifacts rotate away.
type Store struct {
	conn *sql.DB
	path string
}

// OpenStore opens or creates the capture database at the specified path.
func OpenStore(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// SQLite works best with a single connection.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	s := &Store{conn: conn, path: dbPath}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.conn.Exec(`
		CREATE TABLE IF NOT EXISTS captures (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			captured_at TIMESTAMP NOT NULL,
			window_title TEXT NOT NULL,
			strategy TEXT,
			image_path TEXT,
			raw_text TEXT,
			success BOOLEAN NOT NULL DEFAULT 1
		);
		CREATE INDEX IF NOT EXISTS idx_captures_captured_at ON captures(captured_at);
	`)
	if err != nil {
		return fmt.Errorf("failed to migrate captures table: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// Insert appends one capture record.
func (s *Store) Insert(r Record) error {
	_, err := s.conn.Exec(
		`INSERT INTO captures (captured_at, window_title, strategy, image_path, raw_text) VALUES (?, ?, ?, ?, ?)`,
		r.Timestamp, r.WindowTitle, r.Strategy, r.ImagePath, r.Text,
	)
	if err != nil {
		return fmt.Errorf("failed to insert capture: %w", err)
	}
	return nil
}

// Recent returns the most recent captures, newest first.
func (s *Store) Recent(limit int) ([]Record, error) {
	rows, err := s.conn.Query(
		`SELECT captured_at, window_title, strategy, image_path, raw_text FROM captures ORDER BY captured_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.Timestamp, &r.WindowTitle, &r.Strategy, &r.ImagePath, &r.Text); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Count returns the number of stored captures.
func (s *Store) Count() (int64, error) {
	var n int64
	err := s.conn.QueryRow(`SELECT COUNT(*) FROM captures`).Scan(&n)
	return n, err
}
