package session

import (
	"database/sql"
	"time"

	errs "github.com/medcamp/portal/internal/errors"
	"github.com/pkg/errors"

	_ "modernc.org/sqlite"
)

const dateLayout = "2006-01-02T15:04:05.999999999Z07:00"

// OpenDB opens (and creates if needed) the SQLite database backing durable
// client storage.
func OpenDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "[OpenDB] failed to open database")
	}

	// modernc.org/sqlite serializes access through a single connection
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS client_storage (
		namespace TEXT NOT NULL,
		key TEXT NOT NULL,
		value TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (namespace, key)
	)`)
	if err != nil {
		return nil, errors.Wrap(err, "[OpenDB] failed to create schema")
	}
	return db, nil
}

// SQLiteStorage implements Storage on SQLite, namespaced per client session.
// Browsers back localStorage with SQLite; the gateway does the same.
type SQLiteStorage struct {
	db        *sql.DB
	namespace string
}

// NewSQLiteStorage creates durable storage for one client-session namespace
func NewSQLiteStorage(db *sql.DB, namespace string) *SQLiteStorage {
	return &SQLiteStorage{db: db, namespace: namespace}
}

// Get retrieves a value by key
func (s *SQLiteStorage) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(
		`SELECT value FROM client_storage WHERE namespace = ? AND key = ?`,
		s.namespace, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", errs.ErrKeyNotFound
	}
	if err != nil {
		return "", errors.Wrap(err, "[SQLiteStorage Get] query failed")
	}
	return value, nil
}

// Set creates or replaces a key
func (s *SQLiteStorage) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO client_storage (namespace, key, value, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(namespace, key) DO UPDATE SET
		   value=excluded.value,
		   updated_at=excluded.updated_at`,
		s.namespace, key, value, time.Now().UTC().Format(dateLayout))
	if err != nil {
		return errors.Wrap(err, "[SQLiteStorage Set] exec failed")
	}
	return nil
}

// Delete removes a key
func (s *SQLiteStorage) Delete(key string) error {
	_, err := s.db.Exec(
		`DELETE FROM client_storage WHERE namespace = ? AND key = ?`,
		s.namespace, key)
	if err != nil {
		return errors.Wrap(err, "[SQLiteStorage Delete] exec failed")
	}
	return nil
}
