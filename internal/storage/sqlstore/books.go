package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/isdelr/book-tracker-be/internal/models"
	"github.com/isdelr/book-tracker-be/internal/storage"
)

const bookColumns = "id, title, author, genre, rating, notes, user_id"

// ownedBy is the filter shared by every statement that addresses a single
// book: the row must carry the id and belong to the caller.
const ownedBy = "id = ? AND user_id = ?"

// BookRepository stores books in the books table.
type BookRepository struct {
	db      DBTX
	dialect Dialect
}

func NewBookRepository(db DBTX, d Dialect) *BookRepository {
	return &BookRepository{db: db, dialect: d}
}

// ValidID accepts UUIDs only, the form Insert assigns.
func (r *BookRepository) ValidID(id string) bool {
	return uuid.Validate(id) == nil
}

func (r *BookRepository) Insert(ctx context.Context, b *models.Book) error {
	id := uuid.New().String()
	query := r.dialect.rebind(`INSERT INTO books (id, title, author, genre, rating, notes, user_id) VALUES (?, ?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query, id, b.Title, b.Author, b.Genre, nullableRating(b.Rating), b.Notes, b.UserID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	b.ID = id
	return nil
}

func (r *BookRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Book, error) {
	query := r.dialect.rebind(`SELECT ` + bookColumns + ` FROM books WHERE user_id = ? ORDER BY ` + r.dialect.insertionOrder)

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	books := []models.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return books, nil
}

func (r *BookRepository) UpdateOwned(ctx context.Context, ownerID, id string, upd models.BookUpdate) (models.Book, error) {
	if upd.Empty() {
		return r.getOwned(ctx, ownerID, id)
	}

	var (
		sets []string
		args []any
	)
	set := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}
	if upd.Title != nil {
		set("title", *upd.Title)
	}
	if upd.Author != nil {
		set("author", *upd.Author)
	}
	if upd.Genre != nil {
		set("genre", *upd.Genre)
	}
	if upd.Rating != nil {
		set("rating", *upd.Rating)
	}
	if upd.Notes != nil {
		set("notes", *upd.Notes)
	}
	args = append(args, id, ownerID)

	query := r.dialect.rebind(`UPDATE books SET ` + strings.Join(sets, ", ") + ` WHERE ` + ownedBy)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return models.Book{}, fmt.Errorf("db error: %w", err)
	}
	if err := expectAffected(res); err != nil {
		return models.Book{}, err
	}

	return r.getOwned(ctx, ownerID, id)
}

func (r *BookRepository) DeleteOwned(ctx context.Context, ownerID, id string) error {
	query := r.dialect.rebind(`DELETE FROM books WHERE ` + ownedBy)
	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectAffected(res)
}

func (r *BookRepository) getOwned(ctx context.Context, ownerID, id string) (models.Book, error) {
	query := r.dialect.rebind(`SELECT ` + bookColumns + ` FROM books WHERE ` + ownedBy)
	b, err := scanBook(r.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Book{}, storage.ErrNotFound
		}
		return models.Book{}, fmt.Errorf("db error: %w", err)
	}
	return b, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBook(s scanner) (models.Book, error) {
	var (
		b      models.Book
		rating sql.NullInt64
	)
	if err := s.Scan(&b.ID, &b.Title, &b.Author, &b.Genre, &rating, &b.Notes, &b.UserID); err != nil {
		return models.Book{}, err
	}
	if rating.Valid {
		v := int(rating.Int64)
		b.Rating = &v
	}
	return b, nil
}

func nullableRating(r *int) sql.NullInt64 {
	if r == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*r), Valid: true}
}

// expectAffected turns a statement that touched no row into ErrNotFound.
func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}
