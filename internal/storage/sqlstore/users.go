package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/isdelr/book-tracker-be/internal/models"
	"github.com/isdelr/book-tracker-be/internal/storage"
)

const userColumns = "id, username, email, password_hash"

// UserRepository stores accounts in the users table.
type UserRepository struct {
	db      DBTX
	dialect Dialect
}

func NewUserRepository(db DBTX, d Dialect) *UserRepository {
	return &UserRepository{db: db, dialect: d}
}

func (r *UserRepository) Insert(ctx context.Context, u *models.User) error {
	id := uuid.New().String()
	query := r.dialect.rebind(`INSERT INTO users (id, username, email, password_hash) VALUES (?, ?, ?, ?)`)

	if _, err := r.db.ExecContext(ctx, query, id, u.Username, u.Email, u.PasswordHash); err != nil {
		if r.dialect.uniqueViolation(err) {
			return storage.ErrDuplicate
		}
		return fmt.Errorf("db error: %w", err)
	}

	u.ID = id
	return nil
}

func (r *UserRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (models.User, error) {
	query := r.dialect.rebind(`SELECT ` + userColumns + ` FROM users WHERE username = ? OR email = ? LIMIT 1`)
	return r.scanOne(r.db.QueryRowContext(ctx, query, username, email))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	query := r.dialect.rebind(`SELECT ` + userColumns + ` FROM users WHERE email = ?`)
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (models.User, error) {
	if uuid.Validate(id) != nil {
		return models.User{}, storage.ErrNotFound
	}
	query := r.dialect.rebind(`SELECT ` + userColumns + ` FROM users WHERE id = ?`)
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *UserRepository) scanOne(row *sql.Row) (models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}
