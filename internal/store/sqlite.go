package store

import (
	"encoding/json"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	applog "wickandwax/internal/log"
)

// SQLite persists collections in a single kv table.
type SQLite struct {
	db *sqlx.DB
	notifier
}

func Open(dsn string) (*SQLite, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv(
	  key   TEXT PRIMARY KEY,
	  value TEXT NOT NULL,
	  updated_at TEXT DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return nil, err
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error { return s.db.Close() }

func (s *SQLite) Get(key string, out any) bool {
	var raw string
	if err := s.db.Get(&raw, `SELECT value FROM kv WHERE key = ?`, key); err != nil {
		return false
	}
	return decode(key, raw, out)
}

func (s *SQLite) Set(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := s.db.Exec(`
	  INSERT INTO kv(key, value, updated_at) VALUES(?, ?, CURRENT_TIMESTAMP)
	  ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, string(raw)); err != nil {
		return err
	}
	s.fire(key)
	return nil
}

func (s *SQLite) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return err
	}
	s.fire(key)
	return nil
}

func (s *SQLite) Keys(prefix string) []string {
	out := []string{}
	if err := s.db.Select(&out, `SELECT key FROM kv WHERE key LIKE ? || '%' ORDER BY key`, prefix); err != nil {
		applog.Error(nil, "store.keys.fail", err, map[string]any{"prefix": prefix})
		return []string{}
	}
	return out
}
