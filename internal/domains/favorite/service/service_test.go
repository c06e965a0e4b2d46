package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookmodel "readgrid-backend/internal/domains/book/model"
	"readgrid-backend/internal/domains/favorite/model"
)

type pair struct {
	user uuid.UUID
	book uuid.UUID
}

type fakeFavoriteRepository struct {
	books     map[uuid.UUID]*bookmodel.Book
	favorites map[pair]time.Time
}

func newFakeFavoriteRepo() *fakeFavoriteRepository {
	return &fakeFavoriteRepository{
		books:     make(map[uuid.UUID]*bookmodel.Book),
		favorites: make(map[pair]time.Time),
	}
}

func (f *fakeFavoriteRepository) Add(_ context.Context, favorite *model.Favorite) error {
	key := pair{favorite.UserID, favorite.BookID}
	if _, ok := f.favorites[key]; ok {
		return model.ErrAlreadyFavorited
	}
	f.favorites[key] = favorite.CreatedAt
	return nil
}

func (f *fakeFavoriteRepository) Remove(_ context.Context, userID, bookID uuid.UUID) error {
	delete(f.favorites, pair{userID, bookID})
	return nil
}

func (f *fakeFavoriteRepository) ListBooks(_ context.Context, userID uuid.UUID) ([]*bookmodel.Book, error) {
	var out []*bookmodel.Book
	for key := range f.favorites {
		if key.user == userID {
			out = append(out, f.books[key.book])
		}
	}
	return out, nil
}

func (f *fakeFavoriteRepository) BookExists(_ context.Context, bookID uuid.UUID) (bool, error) {
	_, ok := f.books[bookID]
	return ok, nil
}

func (f *fakeFavoriteRepository) addBook() uuid.UUID {
	id := uuid.New()
	f.books[id] = &bookmodel.Book{ID: id, Title: "Some Book"}
	return id
}

func assertFavoriteCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var favErr *model.FavoriteError
	require.ErrorAs(t, err, &favErr)
	assert.Equal(t, code, favErr.Code)
}

func TestAdd(t *testing.T) {
	repo := newFakeFavoriteRepo()
	svc := NewFavoriteService(repo)
	bookID := repo.addBook()
	userID := uuid.New()

	require.NoError(t, svc.Add(context.Background(), userID, bookID))

	// Adding the same book again is a conflict.
	err := svc.Add(context.Background(), userID, bookID)
	assertFavoriteCode(t, err, model.ErrCodeAlreadyFavorited)

	// Unknown book.
	err = svc.Add(context.Background(), userID, uuid.New())
	assertFavoriteCode(t, err, model.ErrCodeBookNotFound)
}

func TestRemove_Idempotent(t *testing.T) {
	repo := newFakeFavoriteRepo()
	svc := NewFavoriteService(repo)
	bookID := repo.addBook()
	userID := uuid.New()

	require.NoError(t, svc.Add(context.Background(), userID, bookID))
	require.NoError(t, svc.Remove(context.Background(), userID, bookID))

	// Removing again succeeds and changes nothing.
	require.NoError(t, svc.Remove(context.Background(), userID, bookID))

	books, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestList_ReturnsPopulatedBooks(t *testing.T) {
	repo := newFakeFavoriteRepo()
	svc := NewFavoriteService(repo)
	userID := uuid.New()

	first := repo.addBook()
	second := repo.addBook()
	require.NoError(t, svc.Add(context.Background(), userID, first))
	require.NoError(t, svc.Add(context.Background(), userID, second))

	// Another user's favorites stay separate.
	require.NoError(t, svc.Add(context.Background(), uuid.New(), first))

	books, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "Some Book", books[0].Title)
}
