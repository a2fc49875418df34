package book

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() (*Service, *MemoryRepo) {
	repo := NewMemoryRepo()
	return NewService(repo, &SequentialIDs{}), repo
}

func TestService_CreateThenGet(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	created, err := svc.Create(ctx, CreateInput{Title: "Dune"})
	require.NoError(t, err)
	assert.Equal(t, "000000000000000000000001", created.ID)
	assert.Equal(t, "Dune", created.Title)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, Book{ID: created.ID, Title: "Dune", Comments: []string{}}, got)
}

func TestService_CreateMissingTitle(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	_, err := svc.Create(ctx, CreateInput{})

	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "missing required field title", err.Error())

	n, _ := repo.Count(ctx)
	assert.Zero(t, n)
}

func TestService_CreateRetriesTakenID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	ids := NewMockIDGenerator(ctrl)
	gomock.InOrder(
		ids.EXPECT().NewID().Return("taken"),
		ids.EXPECT().NewID().Return("fresh"),
	)
	repo := NewMemoryRepo()
	require.NoError(t, repo.Insert(ctx, Book{ID: "taken", Title: "Existing"}))

	created, err := NewService(repo, ids).Create(ctx, CreateInput{Title: "New"})
	require.NoError(t, err)
	assert.Equal(t, "fresh", created.ID)
}

func TestService_CreateGivesUpAfterRepeatedCollisions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	ids := NewMockIDGenerator(ctrl)
	ids.EXPECT().NewID().Return("taken").Times(maxIDAttempts)
	repo := NewMemoryRepo()
	require.NoError(t, repo.Insert(ctx, Book{ID: "taken", Title: "Existing"}))

	_, err := NewService(repo, ids).Create(ctx, CreateInput{Title: "New"})
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestService_ListCountsComments(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	a, _ := svc.Create(ctx, CreateInput{Title: "A"})
	b, _ := svc.Create(ctx, CreateInput{Title: "B"})
	_, err := svc.AddComment(ctx, b.ID, CommentInput{Comment: "one"})
	require.NoError(t, err)
	_, err = svc.AddComment(ctx, b.ID, CommentInput{Comment: "two"})
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Summary{
		{ID: a.ID, Title: "A", CommentCount: 0},
		{ID: b.ID, Title: "B", CommentCount: 2},
	}, list)
}

func TestService_ListEmpty(t *testing.T) {
	svc, _ := newTestService()

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestService_AddComment(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	created, _ := svc.Create(ctx, CreateInput{Title: "A"})

	t.Run("missing comment wins over unknown id", func(t *testing.T) {
		_, err := svc.AddComment(ctx, "ffffffffffffffffffffffff", CommentInput{})
		assert.EqualError(t, err, "missing required field comment")
	})

	t.Run("missing comment on existing book", func(t *testing.T) {
		_, err := svc.AddComment(ctx, created.ID, CommentInput{Comment: ""})
		assert.EqualError(t, err, "missing required field comment")

		got, _ := svc.Get(ctx, created.ID)
		assert.Empty(t, got.Comments)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.AddComment(ctx, "ffffffffffffffffffffffff", CommentInput{Comment: "hi"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("duplicates are kept in order", func(t *testing.T) {
		_, err := svc.AddComment(ctx, created.ID, CommentInput{Comment: "c1"})
		require.NoError(t, err)
		_, err = svc.AddComment(ctx, created.ID, CommentInput{Comment: "c2"})
		require.NoError(t, err)
		got, err := svc.AddComment(ctx, created.ID, CommentInput{Comment: "c1"})
		require.NoError(t, err)

		assert.Equal(t, []string{"c1", "c2", "c1"}, got.Comments)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	keep, _ := svc.Create(ctx, CreateInput{Title: "Keep"})
	drop, _ := svc.Create(ctx, CreateInput{Title: "Drop"})

	require.NoError(t, svc.Delete(ctx, drop.ID))
	assert.ErrorIs(t, svc.Delete(ctx, drop.ID), ErrNotFound)

	_, err := svc.Get(ctx, drop.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Get(ctx, keep.ID)
	assert.NoError(t, err)
}

func TestService_DeleteAll(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	require.NoError(t, svc.DeleteAll(ctx), "empty catalog")

	for _, title := range []string{"A", "B", "C"} {
		_, err := svc.Create(ctx, CreateInput{Title: title})
		require.NoError(t, err)
	}
	require.NoError(t, svc.DeleteAll(ctx))

	n, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestService_WrapsRepositoryErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepository(ctrl)
	repo.EXPECT().List(gomock.Any()).Return(nil, errors.New("disk on fire"))

	_, err := NewService(repo, nil).List(context.Background())
	assert.ErrorContains(t, err, "list books: disk on fire")
}
