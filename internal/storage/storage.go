// Package storage declares the repositories the services depend on and the
// errors every backend reports through them.
package storage

import (
	"context"
	"errors"

	"github.com/isdelr/book-tracker-be/internal/models"
)

var (
	// ErrNotFound is returned when a record does not exist, or exists but is
	// not owned by the caller.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when an insert violates a uniqueness constraint.
	ErrDuplicate = errors.New("duplicate record")
)

// UserRepository persists user accounts.
type UserRepository interface {
	// Insert stores u and assigns u.ID.
	Insert(ctx context.Context, u *models.User) error
	// FindByUsernameOrEmail returns any user holding either value.
	FindByUsernameOrEmail(ctx context.Context, username, email string) (models.User, error)
	// FindByEmail returns the user with that email, password hash included.
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id string) (models.User, error)
}

// BookRepository persists books. Every operation that addresses an existing
// record is scoped to its owner: a book owned by someone else is reported as
// ErrNotFound.
type BookRepository interface {
	// ValidID reports whether id is structurally a book id for this store.
	ValidID(id string) bool
	// Insert stores b and assigns b.ID.
	Insert(ctx context.Context, b *models.Book) error
	// ListByOwner returns the owner's books in insertion order.
	ListByOwner(ctx context.Context, ownerID string) ([]models.Book, error)
	// UpdateOwned applies upd and returns the stored record.
	UpdateOwned(ctx context.Context, ownerID, id string, upd models.BookUpdate) (models.Book, error)
	DeleteOwned(ctx context.Context, ownerID, id string) error
}

// Store is an open connection to a durable backend.
type Store interface {
	Users() UserRepository
	Books() BookRepository
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
