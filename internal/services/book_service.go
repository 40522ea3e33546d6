package services

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"

	"github.com/isdelr/book-tracker-be/internal/models"
	"github.com/isdelr/book-tracker-be/internal/storage"
)

// BookServiceProvider defines the interface for book services. Every method
// acts on behalf of ownerID and never sees another user's books.
type BookServiceProvider interface {
	ListBooks(ctx context.Context, ownerID string) ([]models.Book, error)
	CreateBook(ctx context.Context, ownerID string, in models.BookInput) (models.Book, error)
	UpdateBook(ctx context.Context, ownerID, id string, patch models.BookPatch) (models.Book, error)
	DeleteBook(ctx context.Context, ownerID, id string) error
}

// BookService provides business logic for a user's shelf.
type BookService struct {
	books storage.BookRepository
}

// NewBookService creates a new BookService.
func NewBookService(books storage.BookRepository) *BookService {
	return &BookService{books: books}
}

// ListBooks returns all books owned by ownerID.
func (s *BookService) ListBooks(ctx context.Context, ownerID string) ([]models.Book, error) {
	return s.books.ListByOwner(ctx, ownerID)
}

// CreateBook adds a book owned by ownerID.
func (s *BookService) CreateBook(ctx context.Context, ownerID string, in models.BookInput) (models.Book, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.Book{}, validationError("title is required")
	}

	book := models.Book{
		Title:  title,
		Author: in.Author,
		Genre:  in.Genre,
		Notes:  in.Notes,
		UserID: ownerID,
	}
	if in.Rating != nil {
		r, err := parseRating(*in.Rating)
		if err != nil {
			return models.Book{}, err
		}
		book.Rating = &r
	}

	if err := s.books.Insert(ctx, &book); err != nil {
		return models.Book{}, err
	}
	return book, nil
}

// UpdateBook changes the fields present in patch and returns the stored book.
func (s *BookService) UpdateBook(ctx context.Context, ownerID, id string, patch models.BookPatch) (models.Book, error) {
	if !s.books.ValidID(id) {
		return models.Book{}, errInvalidID
	}

	upd, err := validatePatch(patch)
	if err != nil {
		return models.Book{}, err
	}

	book, err := s.books.UpdateOwned(ctx, ownerID, id, upd)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Book{}, errNotFound
		}
		return models.Book{}, err
	}
	return book, nil
}

// DeleteBook permanently removes a book.
func (s *BookService) DeleteBook(ctx context.Context, ownerID, id string) error {
	if !s.books.ValidID(id) {
		return errInvalidID
	}

	if err := s.books.DeleteOwned(ctx, ownerID, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return errNotFound
		}
		return err
	}
	return nil
}

// validatePatch turns a request patch into a repository update. A null
// string field clears it to "", a null rating is rejected.
func validatePatch(p models.BookPatch) (models.BookUpdate, error) {
	var upd models.BookUpdate

	if p.Title.Set {
		title := strings.TrimSpace(p.Title.Value)
		if title == "" {
			return upd, validationError("title is required")
		}
		upd.Title = &title
	}
	if p.Rating.Set {
		if p.Rating.Null {
			return upd, validationError("rating must be 1-5")
		}
		r, err := parseRating(p.Rating.Value)
		if err != nil {
			return upd, err
		}
		upd.Rating = &r
	}
	upd.Author = optionalString(p.Author)
	upd.Genre = optionalString(p.Genre)
	upd.Notes = optionalString(p.Notes)

	return upd, nil
}

func optionalString(o models.Optional[string]) *string {
	if !o.Set {
		return nil
	}
	v := o.Value
	return &v
}

// parseRating accepts whole numbers from 1 to 5, written as 5 or 5.0.
func parseRating(n json.Number) (int, error) {
	r, err := n.Float64()
	if err != nil || r != math.Trunc(r) || r < 1 || r > 5 {
		return 0, validationError("rating must be 1-5")
	}
	return int(r), nil
}
