package store

import (
	"database/sql"
	"sync"

	_ "modernc.org/sqlite"
)

// SchemaVersion is the current sessions/program_cache schema.
const SchemaVersion = "1"

// SQLite is a SQLite-backed Store.
type SQLite struct {
	mu sync.Mutex
	db *sql.DB
}

// NewSQLite opens (creating if necessary) a SQLite store at path.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS metadata (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			tokens TEXT NOT NULL,
			compiled TEXT NOT NULL,
			result TEXT NOT NULL,
			created_at TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS program_cache (
			source TEXT PRIMARY KEY,
			compiled TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLite{db: db}
	if err := s.ensureSchemaVersion(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLite) ensureSchemaVersion() error {
	var version string
	err := s.db.QueryRow("SELECT value FROM metadata WHERE key = 'schema_version'").Scan(&version)
	if err == sql.ErrNoRows {
		_, err := s.db.Exec(`INSERT INTO metadata (key, value) VALUES ('schema_version', ?)`, SchemaVersion)
		return err
	}
	return err
}

func (s *SQLite) RecordSession(sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`
		INSERT INTO sessions (id, source, tokens, compiled, result, created_at) VALUES (?, ?, ?, ?, ?, ?)
	`, sess.ID, sess.Source, sess.Tokens, sess.Compiled, sess.Result, sess.CreatedAt)
	return err
}

func (s *SQLite) ListSessions(limit int) ([]Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := "SELECT id, source, tokens, compiled, result, created_at FROM sessions ORDER BY created_at DESC, rowid DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var sess Session
		if err := rows.Scan(&sess.ID, &sess.Source, &sess.Tokens, &sess.Compiled, &sess.Result, &sess.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}

func (s *SQLite) GetSession(id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var sess Session
	err := s.db.QueryRow(
		"SELECT id, source, tokens, compiled, result, created_at FROM sessions WHERE id = ?", id,
	).Scan(&sess.ID, &sess.Source, &sess.Tokens, &sess.Compiled, &sess.Result, &sess.CreatedAt)
	if err == sql.ErrNoRows {
		return Session{}, ErrNotFound
	}
	return sess, err
}

func (s *SQLite) CachedProgram(source string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var compiled string
	err := s.db.QueryRow("SELECT compiled FROM program_cache WHERE source = ?", source).Scan(&compiled)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return compiled, true, nil
}

func (s *SQLite) CacheProgram(source, compiled string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`
		INSERT INTO program_cache (source, compiled) VALUES (?, ?)
		ON CONFLICT(source) DO UPDATE SET compiled = excluded.compiled
	`, source, compiled)
	return err
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}
