package models

import "encoding/json"

// Book is a single entry on a user's shelf.
type Book struct {
	ID     string `json:"_id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Genre  string `json:"genre"`
	Rating *int   `json:"rating"` // null when the book has not been rated
	Notes  string `json:"notes"`
	UserID string `json:"userId"`
}

// BookInput is the body accepted when adding a book.
type BookInput struct {
	Title  string       `json:"title"`
	Author string       `json:"author"`
	Genre  string       `json:"genre"`
	Rating *json.Number `json:"rating"`
	Notes  string       `json:"notes"`
}

// BookPatch is the body accepted when editing a book. Fields left out of the
// request keep their stored value.
type BookPatch struct {
	Title  Optional[string]      `json:"title"`
	Author Optional[string]      `json:"author"`
	Genre  Optional[string]      `json:"genre"`
	Rating Optional[json.Number] `json:"rating"`
	Notes  Optional[string]      `json:"notes"`
}

// BookUpdate is a validated BookPatch as handed to a repository. A nil field
// is left untouched.
type BookUpdate struct {
	Title  *string
	Author *string
	Genre  *string
	Rating *int
	Notes  *string
}

// Empty reports whether the update changes nothing.
func (u BookUpdate) Empty() bool {
	return u.Title == nil && u.Author == nil && u.Genre == nil && u.Rating == nil && u.Notes == nil
}
