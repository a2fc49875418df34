package book

import (
	"context"
	"slices"
	"sync"
)

// MemoryRepo keeps books in process memory. Everything is lost on restart.
// List returns books in the order they were inserted.
type MemoryRepo struct {
	mu    sync.RWMutex
	books map[string]*Book
	order []string
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{books: make(map[string]*Book)}
}

func (r *MemoryRepo) List(ctx context.Context) ([]Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Book, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.books[id].clone())
	}
	return out, nil
}

func (r *MemoryRepo) Insert(ctx context.Context, book Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[book.ID]; ok {
		return ErrDuplicateID
	}
	stored := book.clone()
	r.books[book.ID] = &stored
	r.order = append(r.order, book.ID)
	return nil
}

func (r *MemoryRepo) Get(ctx context.Context, id string) (Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.books[id]
	if !ok {
		return Book{}, ErrNotFound
	}
	return b.clone(), nil
}

func (r *MemoryRepo) AppendComment(ctx context.Context, id, comment string) (Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.books[id]
	if !ok {
		return Book{}, ErrNotFound
	}
	b.Comments = append(b.Comments, comment)
	return b.clone(), nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[id]; !ok {
		return ErrNotFound
	}
	delete(r.books, id)
	r.order = slices.DeleteFunc(r.order, func(v string) bool { return v == id })
	return nil
}

func (r *MemoryRepo) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.books = make(map[string]*Book)
	r.order = nil
	return nil
}

func (r *MemoryRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.books), nil
}
