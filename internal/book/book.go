package book

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no book has the requested id.
	ErrNotFound = errors.New("book not found")
	// ErrDuplicateID is returned by a repository when an id is already taken.
	ErrDuplicateID = errors.New("book id already exists")
)

// MissingFieldError reports a required request field that was absent or empty.
// Its message is the exact text sent back to callers.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %s", e.Field)
}

// Book represents a book and its comments in insertion order.
type Book struct {
	ID       string   `json:"_id"`
	Title    string   `json:"title"`
	Comments []string `json:"comments"`
}

// Summary is the list view of a book.
type Summary struct {
	ID           string `json:"_id"`
	Title        string `json:"title"`
	CommentCount int    `json:"commentcount"`
}

// Created is returned from a successful create; comments are left out on purpose
// to match what existing clients expect.
type Created struct {
	ID    string `json:"_id"`
	Title string `json:"title"`
}

// CreateInput carries the fields accepted by POST /api/books.
type CreateInput struct {
	Title string `json:"title" validate:"required"`
}

// CommentInput carries the fields accepted by POST /api/books/{id}.
type CommentInput struct {
	Comment string `json:"comment" validate:"required"`
}

func (b Book) summary() Summary {
	return Summary{ID: b.ID, Title: b.Title, CommentCount: len(b.Comments)}
}

func (b Book) clone() Book {
	comments := make([]string, len(b.Comments))
	copy(comments, b.Comments)
	return Book{ID: b.ID, Title: b.Title, Comments: comments}
}
