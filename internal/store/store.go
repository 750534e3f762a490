// Package store persists contact messages in an embedded SQLite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const createMessagesTable = `
CREATE TABLE IF NOT EXISTS messages (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	message TEXT NOT NULL,
	receivedAt DATETIME DEFAULT CURRENT_TIMESTAMP
)`

// ErrNotFound is returned when a requested message does not exist.
var ErrNotFound = errors.New("message not found")

// Message is a row of the messages table.
type Message struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Message    string    `json:"message"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// Store owns the database handle. The handle is opened on first use and
// reused until Close.
type Store struct {
	path string

	mu sync.Mutex
	db *sql.DB
}

// New returns a Store for the database file at path. No I/O happens until
// the first call that needs the handle.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Open returns the live handle, opening the file and creating the messages
// table if this is the first call. A failed open leaves the store closed so
// the next call tries again.
func (s *Store) Open(ctx context.Context) (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return s.db, nil
	}

	db, err := sql.Open("sqlite", dsn(s.path))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	// One connection keeps writes serialized inside SQLite.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, createMessagesTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create messages table: %w", err)
	}

	s.db = db
	return db, nil
}

// Insert appends a message and returns the id assigned by the database.
func (s *Store) Insert(ctx context.Context, name, email, message string) (int64, error) {
	db, err := s.Open(ctx)
	if err != nil {
		return 0, err
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO messages (name, email, message) VALUES (?, ?, ?)`,
		name, email, message,
	)
	if err != nil {
		return 0, fmt.Errorf("insert message: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert message: last id: %w", err)
	}
	return id, nil
}

// Get loads a single message by id.
func (s *Store) Get(ctx context.Context, id int64) (*Message, error) {
	db, err := s.Open(ctx)
	if err != nil {
		return nil, err
	}

	var m Message
	err = db.QueryRowContext(ctx,
		`SELECT id, name, email, message, receivedAt FROM messages WHERE id = ?`, id,
	).Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.ReceivedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get message %d: %w", id, err)
	}
	return &m, nil
}

// Count returns the number of stored messages.
func (s *Store) Count(ctx context.Context) (int64, error) {
	db, err := s.Open(ctx)
	if err != nil {
		return 0, err
	}

	var n int64
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM messages`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count messages: %w", err)
	}
	return n, nil
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	db, err := s.Open(ctx)
	if err != nil {
		return err
	}
	return db.PingContext(ctx)
}

// Close releases the handle. It is safe to call on a store that was never
// opened; a later Open reopens the file.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func dsn(path string) string {
	return "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}
