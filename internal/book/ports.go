//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=book

package book

import (
	"context"
)

// Repository defines the contract for book storage.
// Implementations must return copies, never live references.
type Repository interface {
	List(ctx context.Context) ([]Book, error)
	Insert(ctx context.Context, book Book) error
	Get(ctx context.Context, id string) (Book, error)
	AppendComment(ctx context.Context, id, comment string) (Book, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
	Count(ctx context.Context) (int, error)
}

// IDGenerator hands out identifiers for new books.
type IDGenerator interface {
	NewID() string
}
