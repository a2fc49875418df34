package book

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

const maxIDAttempts = 5

// Service provides book-related business logic.
type Service struct {
	repo     Repository
	ids      IDGenerator
	validate *validator.Validate
}

// NewService creates a new book service. A nil ids falls back to RandomIDs.
func NewService(repo Repository, ids IDGenerator) *Service {
	if ids == nil {
		ids = RandomIDs{}
	}
	return &Service{repo: repo, ids: ids, validate: validator.New()}
}

// List returns a summary of every book in the catalog.
func (s *Service) List(ctx context.Context) ([]Summary, error) {
	books, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	out := make([]Summary, 0, len(books))
	for _, b := range books {
		out = append(out, b.summary())
	}
	return out, nil
}

// Create adds a book with the given title and no comments.
func (s *Service) Create(ctx context.Context, in CreateInput) (Created, error) {
	if err := s.require(in, "title"); err != nil {
		return Created{}, err
	}

	for range maxIDAttempts {
		b := Book{ID: s.ids.NewID(), Title: in.Title, Comments: []string{}}
		err := s.repo.Insert(ctx, b)
		if errors.Is(err, ErrDuplicateID) {
			continue
		}
		if err != nil {
			return Created{}, fmt.Errorf("insert book: %w", err)
		}
		return Created{ID: b.ID, Title: b.Title}, nil
	}
	return Created{}, fmt.Errorf("insert book: %w after %d attempts", ErrDuplicateID, maxIDAttempts)
}

// Get returns a book with all of its comments.
func (s *Service) Get(ctx context.Context, id string) (Book, error) {
	return s.repo.Get(ctx, id)
}

// AddComment appends a comment to a book. The comment is checked before the
// book is looked up, so a missing comment wins over an unknown id.
func (s *Service) AddComment(ctx context.Context, id string, in CommentInput) (Book, error) {
	if err := s.require(in, "comment"); err != nil {
		return Book{}, err
	}
	return s.repo.AppendComment(ctx, id, in.Comment)
}

// Delete removes a single book.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// DeleteAll empties the catalog.
func (s *Service) DeleteAll(ctx context.Context) error {
	return s.repo.DeleteAll(ctx)
}

// Count returns the number of stored books.
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *Service) require(in any, field string) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return &MissingFieldError{Field: field}
	}
	return err
}
