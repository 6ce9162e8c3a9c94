package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/amishk599/jobboard/internal/model"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS users (
	id         TEXT PRIMARY KEY,
	email      TEXT NOT NULL DEFAULT '',
	name       TEXT NOT NULL DEFAULT '',
	image      TEXT NOT NULL DEFAULT '',
	resume     TEXT NOT NULL DEFAULT '',
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
)`

// userRow is the SQLite representation of a user; timestamps are unix seconds.
type userRow struct {
	ID        string `db:"id"`
	Email     string `db:"email"`
	Name      string `db:"name"`
	Image     string `db:"image"`
	Resume    string `db:"resume"`
	CreatedAt int64  `db:"created_at"`
	UpdatedAt int64  `db:"updated_at"`
}

func (r userRow) toModel() model.User {
	return model.User{
		ID:        r.ID,
		Email:     r.Email,
		Name:      r.Name,
		Image:     r.Image,
		Resume:    r.Resume,
		CreatedAt: time.Unix(r.CreatedAt, 0).UTC(),
		UpdatedAt: time.Unix(r.UpdatedAt, 0).UTC(),
	}
}

// SQLiteStore keeps users in a local SQLite file.
type SQLiteStore struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures the
// users table exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	for _, stmt := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000", sqliteSchema} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("initializing sqlite db: %w", err)
		}
	}

	return &SQLiteStore{db: db, now: time.Now}, nil
}

// UpsertUser inserts the user or updates the provider-owned fields of an
// existing one. The stored resume is never overwritten on update.
func (s *SQLiteStore) UpsertUser(ctx context.Context, u model.User) error {
	now := s.now().Unix()
	row := userRow{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Image:     u.Image,
		Resume:    u.Resume,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := s.db.NamedExecContext(ctx, `INSERT INTO users (id, email, name, image, resume, created_at, updated_at)
		VALUES (:id, :email, :name, :image, :resume, :created_at, :updated_at)
		ON CONFLICT(id) DO UPDATE SET
			email = excluded.email,
			name = excluded.name,
			image = excluded.image,
			updated_at = excluded.updated_at`, row)
	if err != nil {
		return fmt.Errorf("upserting user %s: %w", u.ID, err)
	}
	return nil
}

// DeleteUser removes the user. Deleting an unknown ID is not an error.
func (s *SQLiteStore) DeleteUser(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting user %s: %w", id, err)
	}
	return nil
}

// GetUser returns the user with the given ID or model.ErrUserNotFound.
func (s *SQLiteStore) GetUser(ctx context.Context, id string) (model.User, error) {
	var row userRow
	err := s.db.GetContext(ctx, &row, "SELECT id, email, name, image, resume, created_at, updated_at FROM users WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("loading user %s: %w", id, err)
	}
	return row.toModel(), nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
