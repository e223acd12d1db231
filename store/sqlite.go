package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/Goofygiraffe06/authpanel/internal/logging"
	"github.com/Goofygiraffe06/authpanel/internal/models"
	_ "github.com/mattn/go-sqlite3"
)

type SQLiteStore struct {
	db *sql.DB
}

var ErrUserExists = errors.New("user already exists")

const schema = `
CREATE TABLE IF NOT EXISTS users (
	email TEXT PRIMARY KEY NOT NULL CHECK(email <> ''),
	name TEXT NOT NULL CHECK(name <> ''),
	password_hash TEXT NOT NULL CHECK(password_hash <> ''),
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS preferences (
	key TEXT PRIMARY KEY NOT NULL CHECK(key <> ''),
	value TEXT NOT NULL
);`

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) AddUser(ctx context.Context, user models.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (email, name, password_hash)
		VALUES (?, ?, ?)`, user.Email, user.Name, user.PasswordHash)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrUserExists
		}
		return err
	}
	return nil
}

func (s *SQLiteStore) GetUser(ctx context.Context, email string) (models.User, bool, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx, `
		SELECT email, name, password_hash, created_at
		FROM users
		WHERE email = ?`, email).Scan(&user.Email, &user.Name, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, false, nil
		}
		logging.ErrorLog("store.GetUser error: %v", err)
		return models.User{}, false, err
	}
	return user, true, nil
}

// Exists reports whether an account is registered for email.
func (s *SQLiteStore) Exists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)`, email).Scan(&exists)
	if err != nil {
		logging.ErrorLog("store.Exists error: %v", err)
		return false, err
	}
	return exists, nil
}

// GetPreference returns the stored value for key.
func (s *SQLiteStore) GetPreference(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

// SetPreference upserts key.
func (s *SQLiteStore) SetPreference(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO preferences (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
