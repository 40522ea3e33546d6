// Package sqlstore implements the storage repositories on database/sql, for
// both the embedded SQLite backend and PostgreSQL.
package sqlstore

import (
	"context"
	"database/sql"

	"github.com/isdelr/book-tracker-be/internal/storage"
)

// DBTX is the subset of database/sql used by the repositories.
// Both *sql.DB and *sql.Tx satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store is a storage.Store over a *sql.DB pool.
type Store struct {
	db    *sql.DB
	users *UserRepository
	books *BookRepository
}

// New wraps an already migrated pool.
func New(db *sql.DB, d Dialect) *Store {
	return &Store{
		db:    db,
		users: NewUserRepository(db, d),
		books: NewBookRepository(db, d),
	}
}

func (s *Store) Users() storage.UserRepository { return s.users }
func (s *Store) Books() storage.BookRepository { return s.books }

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close(context.Context) error {
	return s.db.Close()
}
