package state

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

var _ Store = (*SQLiteStore)(nil)

// SQLiteStore keeps per-account watermarks in a local SQLite database.
// Unlike the file backend it can hold state for several accounts in one
// place, which keeps history around when the watched account changes.
type SQLiteStore struct {
	db      *sql.DB
	account string
}

func NewSQLiteStore(path, account string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db, account: account}, nil
}

func (s *SQLiteStore) Load() (string, error) {
	var id string
	err := s.db.QueryRow(`SELECT last_seen_id FROM watermarks WHERE account = ?`, s.account).Scan(&id)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load watermark: %w", err)
	}

	return id, nil
}

func (s *SQLiteStore) Save(id string) error {
	_, err := s.db.Exec(`
		INSERT INTO watermarks (account, last_seen_id, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (account) DO UPDATE SET
			last_seen_id = excluded.last_seen_id,
			updated_at = excluded.updated_at
	`, s.account, id)
	if err != nil {
		return fmt.Errorf("failed to save watermark: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
