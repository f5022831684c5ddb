// Package storage provides the SQLite content library: per-game level
// documents imported by authors and served to players.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/learn-arcade/internal/content"
)

// Store manages the SQLite database connection for the content library.
type Store struct {
	db *sql.DB
}

// DocumentInfo summarizes one stored document.
type DocumentInfo struct {
	GameID    string    `json:"gameId"`
	Title     string    `json:"title"`
	Levels    int       `json:"levels"`
	UpdatedAt time.Time `json:"updatedAt"`
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

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

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

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS documents (
			game_id TEXT PRIMARY KEY,
			title TEXT NOT NULL DEFAULT '',
			levels INTEGER NOT NULL DEFAULT 0,
			body BLOB NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
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

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("storage: ping: %w", err)
	}
	return nil
}

// SaveDocument stores doc for gameID, replacing any previous version.
func (s *Store) SaveDocument(ctx context.Context, gameID string, doc content.Document) error {
	if gameID == "" {
		return errors.New("storage: empty game id")
	}
	body, err := content.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (game_id, title, levels, body, updated_at)
		 VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(game_id) DO UPDATE SET
		   title = excluded.title,
		   levels = excluded.levels,
		   body = excluded.body,
		   updated_at = CURRENT_TIMESTAMP`,
		gameID, doc.GameTitle, len(doc.Scenarios), body,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save document %q: %w", gameID, err)
	}
	return nil
}

// LoadDocument returns the stored document for gameID, or
// content.ErrNotFound when there is none.
func (s *Store) LoadDocument(ctx context.Context, gameID string) (content.Document, error) {
	var body []byte
	err := s.db.QueryRowContext(ctx, "SELECT body FROM documents WHERE game_id = ?", gameID).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return content.Document{}, content.ErrNotFound
	}
	if err != nil {
		return content.Document{}, fmt.Errorf("storage: cannot load document %q: %w", gameID, err)
	}
	doc, err := content.Parse(body)
	if err != nil {
		return content.Document{}, fmt.Errorf("storage: document %q: %w", gameID, err)
	}
	return doc, nil
}

// ListDocuments returns a summary of every stored document, ordered by game.
func (s *Store) ListDocuments(ctx context.Context) ([]DocumentInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT game_id, title, levels, updated_at
		 FROM documents
		 ORDER BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query documents: %w", err)
	}
	defer rows.Close()

	var infos []DocumentInfo
	for rows.Next() {
		var info DocumentInfo
		var updatedAt any
		if err := rows.Scan(&info.GameID, &info.Title, &info.Levels, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		info.UpdatedAt = parseTime(updatedAt)
		infos = append(infos, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return infos, nil
}

// DeleteDocument removes the document for gameID. Deleting a missing
// document returns content.ErrNotFound.
func (s *Store) DeleteDocument(ctx context.Context, gameID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot delete document %q: %w", gameID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot delete document %q: %w", gameID, err)
	}
	if n == 0 {
		return content.ErrNotFound
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

var _ content.Store = (*Store)(nil)
