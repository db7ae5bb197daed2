package storage

import (
	"database/sql"

	_ "modernc.org/sqlite"

	"github.com/shasank123/Fresh-Prints-OS/internal/models"
)

// Storage is the client's local database: the design history gallery and
// small session settings such as the selected role. Remote job state is
// never persisted here; jobs live only in the viewing session.
type Storage struct {
	db *sql.DB
}

func New(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	s := &Storage{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS design_history (
		url TEXT PRIMARY KEY,
		style TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS session (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// AppendDesignHistory inserts a gallery entry. The URL is the uniqueness
// key; re-inserting a known URL is a no-op.
func (s *Storage) AppendDesignHistory(e models.DesignHistoryEntry) error {
	_, err := s.db.Exec(
		`INSERT OR IGNORE INTO design_history (url, style, created_at) VALUES (?, ?, ?)`,
		e.URL, e.Style, e.Timestamp,
	)
	return err
}

// DesignHistory returns the gallery oldest first.
func (s *Storage) DesignHistory() ([]models.DesignHistoryEntry, error) {
	rows, err := s.db.Query(
		`SELECT url, style, created_at FROM design_history ORDER BY created_at ASC, url ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.DesignHistoryEntry
	for rows.Next() {
		var e models.DesignHistoryEntry
		if err := rows.Scan(&e.URL, &e.Style, &e.Timestamp); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

const roleKey = "role"

// SaveRole persists the selected role across sessions.
func (s *Storage) SaveRole(role models.Role) error {
	_, err := s.db.Exec(
		`INSERT INTO session (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		roleKey, string(role),
	)
	return err
}

// LoadRole returns the saved role, or "" when none is saved.
func (s *Storage) LoadRole() (models.Role, error) {
	row := s.db.QueryRow(`SELECT value FROM session WHERE key = ?`, roleKey)

	var value string
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return models.Role(value), nil
}

// ClearRole removes the saved role (logout).
func (s *Storage) ClearRole() error {
	_, err := s.db.Exec(`DELETE FROM session WHERE key = ?`, roleKey)
	return err
}
