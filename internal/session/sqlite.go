package session

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps sessions in a single SQLite database, one row per
// user/game pair with last-writer-wins upserts. Suits hosts where many
// users share one data directory.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at path and runs
// migrations.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create session dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			user TEXT NOT NULL,
			game TEXT NOT NULL,
			envelope TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user, game)
		)`,
	}
	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// Save implements Store.
func (s *SQLiteStore) Save(key Key, payload any) error {
	if err := key.validate(); err != nil {
		return err
	}
	data, err := seal(key, payload)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`INSERT INTO sessions (user, game, envelope, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user, game) DO UPDATE SET
			envelope = excluded.envelope,
			updated_at = CURRENT_TIMESTAMP`,
		key.User, key.Game, string(data))
	return err
}

// Load implements Store.
func (s *SQLiteStore) Load(key Key, into any) (bool, error) {
	if err := key.validate(); err != nil {
		return false, err
	}

	var data string
	err := s.db.QueryRow(`SELECT envelope FROM sessions WHERE user = ? AND game = ?`,
		key.User, key.Game).Scan(&data)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read session: %w", err)
	}
	return open(key, []byte(data), into), nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(key Key) error {
	if err := key.validate(); err != nil {
		return err
	}
	_, err := s.db.Exec(`DELETE FROM sessions WHERE user = ? AND game = ?`, key.User, key.Game)
	return err
}

// Close implements Store.
func (s *SQLiteStore) Close() error { return s.db.Close() }
