// Package session holds the current authenticated identity, persisted to a
// local SQLite database so it survives restarts.
package session

import (
	"database/sql"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// Storage keys.
const (
	keyToken = "token"
	keyUser  = "user"
)

// Store implements a SQLite key-value store for session state.
type Store struct {
	db *sql.DB
}

// NewStore opens the session database, creating it if necessary.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS session (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`)
	if err != nil {
		return nil, errors.Wrap(err, "creating session table")
	}

	return &Store{db: db}, nil
}

func (s *Store) get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, "querying session key")
	}
	return value, true, nil
}

func (s *Store) put(key, value string) error {
	_, err := s.db.Exec(`REPLACE INTO session (key, value) VALUES (?, ?)`, key, value)
	if err != nil {
		return errors.Wrap(err, "writing session key")
	}
	return nil
}

func (s *Store) delete(key string) error {
	_, err := s.db.Exec(`DELETE FROM session WHERE key = ?`, key)
	if err != nil {
		return errors.Wrap(err, "deleting session key")
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
