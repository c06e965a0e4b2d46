package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readgrid-backend/internal/domains/comment/model"
)

// =====================================================
// FAKE REPOSITORY
// =====================================================

type bookAggregate struct {
	avg   float64
	count int
}

// fakeCommentRepository keeps everything in maps and reimplements the
// aggregate recomputation contract of the postgres repository: full
// rescan of the book's ratings, rounded to two decimals.
type fakeCommentRepository struct {
	books      map[uuid.UUID]*bookAggregate
	ratings    map[uuid.UUID]*model.Rating
	comments   map[uuid.UUID]*model.Comment
	usernames  map[uuid.UUID]string
	bookTitles map[uuid.UUID]string
}

func newFakeRepo() *fakeCommentRepository {
	return &fakeCommentRepository{
		books:      make(map[uuid.UUID]*bookAggregate),
		ratings:    make(map[uuid.UUID]*model.Rating),
		comments:   make(map[uuid.UUID]*model.Comment),
		usernames:  make(map[uuid.UUID]string),
		bookTitles: make(map[uuid.UUID]string),
	}
}

func (f *fakeCommentRepository) addBook() uuid.UUID {
	id := uuid.New()
	f.books[id] = &bookAggregate{}
	f.bookTitles[id] = "Some Book"
	return id
}

func (f *fakeCommentRepository) BookExists(_ context.Context, bookID uuid.UUID) (bool, error) {
	_, ok := f.books[bookID]
	return ok, nil
}

func (f *fakeCommentRepository) HasRating(_ context.Context, userID, bookID uuid.UUID) (bool, error) {
	for _, r := range f.ratings {
		if r.UserID == userID && r.BookID == bookID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCommentRepository) CreateComment(_ context.Context, comment *model.Comment) error {
	stored := *comment
	f.comments[comment.ID] = &stored
	return nil
}

func (f *fakeCommentRepository) CreateCommentAndRating(
	ctx context.Context,
	comment *model.Comment,
	rating *model.Rating,
) error {
	for _, r := range f.ratings {
		if r.UserID == rating.UserID && r.BookID == rating.BookID {
			return model.ErrAlreadyRated
		}
	}
	storedRating := *rating
	f.ratings[rating.ID] = &storedRating
	f.recompute(rating.BookID)
	return f.CreateComment(ctx, comment)
}

func (f *fakeCommentRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Comment, error) {
	comment, ok := f.comments[id]
	if !ok {
		return nil, model.ErrCommentNotFound
	}
	copied := *comment
	return &copied, nil
}

func (f *fakeCommentRepository) DeleteComment(_ context.Context, id uuid.UUID) error {
	if _, ok := f.comments[id]; !ok {
		return model.ErrCommentNotFound
	}
	delete(f.comments, id)
	return nil
}

func (f *fakeCommentRepository) DeleteCommentAndRating(
	ctx context.Context,
	commentID, userID, bookID uuid.UUID,
) error {
	if err := f.DeleteComment(ctx, commentID); err != nil {
		return err
	}
	for id, r := range f.ratings {
		if r.UserID == userID && r.BookID == bookID {
			delete(f.ratings, id)
		}
	}
	f.recompute(bookID)
	return nil
}

func (f *fakeCommentRepository) RecomputeBookAggregate(_ context.Context, bookID uuid.UUID) error {
	f.recompute(bookID)
	return nil
}

func (f *fakeCommentRepository) recompute(bookID uuid.UUID) {
	agg, ok := f.books[bookID]
	if !ok {
		return
	}
	sum, count := 0, 0
	for _, r := range f.ratings {
		if r.BookID == bookID {
			sum += r.Value
			count++
		}
	}
	if count == 0 {
		agg.avg, agg.count = 0, 0
		return
	}
	agg.avg = model.Round2(float64(sum) / float64(count))
	agg.count = count
}

func (f *fakeCommentRepository) ListVisibleByBook(
	_ context.Context,
	bookID uuid.UUID,
) ([]*model.CommentWithAuthor, error) {
	var out []*model.CommentWithAuthor
	for _, c := range f.comments {
		if c.BookID != bookID || c.Hidden {
			continue
		}
		name, ok := f.usernames[c.UserID]
		if !ok {
			name = model.DeletedUserLabel
		}
		out = append(out, &model.CommentWithAuthor{Comment: *c, AuthorName: name})
	}
	return out, nil
}

func (f *fakeCommentRepository) ListByUser(
	_ context.Context,
	userID uuid.UUID,
) ([]*model.CommentWithBook, error) {
	var out []*model.CommentWithBook
	for _, c := range f.comments {
		if c.UserID != userID {
			continue
		}
		out = append(out, &model.CommentWithBook{
			Comment:   *c,
			BookTitle: f.bookTitles[c.BookID],
		})
	}
	return out, nil
}

func (f *fakeCommentRepository) SetHidden(
	_ context.Context,
	id uuid.UUID,
	hidden bool,
) (*model.Comment, error) {
	comment, ok := f.comments[id]
	if !ok {
		return nil, model.ErrCommentNotFound
	}
	comment.Hidden = hidden
	copied := *comment
	return &copied, nil
}

// =====================================================
// HELPERS
// =====================================================

func newTestService(t *testing.T) (*fakeCommentRepository, CommentService) {
	t.Helper()
	repo := newFakeRepo()
	return repo, NewCommentService(repo, nil)
}

func intPtr(v int) *int {
	return &v
}

func submit(t *testing.T, svc CommentService, userID uuid.UUID, bookID uuid.UUID, text string, rating *int) *model.CommentResponse {
	t.Helper()
	resp, err := svc.SubmitComment(context.Background(), userID, "reader", &model.SubmitCommentRequest{
		BookID:      bookID,
		CommentText: text,
		Rating:      rating,
	})
	require.NoError(t, err)
	return resp
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var commentErr *model.CommentError
	require.ErrorAs(t, err, &commentErr)
	assert.Equal(t, code, commentErr.Code)
}

// =====================================================
// RATING AGGREGATION
// =====================================================

func TestSubmitComment_FirstRatingUpdatesAggregate(t *testing.T) {
	repo, svc := newTestService(t)
	bookID := repo.addBook()

	resp := submit(t, svc, uuid.New(), bookID, "Great read", intPtr(5))

	require.NotNil(t, resp.Rating)
	assert.Equal(t, 5, *resp.Rating)
	assert.Equal(t, 5.0, repo.books[bookID].avg)
	assert.Equal(t, 1, repo.books[bookID].count)
}

func TestSubmitComment_SecondUserAveragesRatings(t *testing.T) {
	repo, svc := newTestService(t)
	bookID := repo.addBook()

	submit(t, svc, uuid.New(), bookID, "Great read", intPtr(5))
	submit(t, svc, uuid.New(), bookID, "Quite good", intPtr(4))

	assert.Equal(t, 4.5, repo.books[bookID].avg)
	assert.Equal(t, 2, repo.books[bookID].count)
}

func TestSubmitComment_SecondRatingBySameUserIgnored(t *testing.T) {
	repo, svc := newTestService(t)
	bookID := repo.addBook()
	userID := uuid.New()

	submit(t, svc, userID, bookID, "Great read", intPtr(5))
	resp := submit(t, svc, userID, bookID, "Changed my mind", intPtr(1))

	// The comment is saved but the second rating is dropped.
	assert.Nil(t, resp.Rating)
	assert.Equal(t, 5.0, repo.books[bookID].avg)
	assert.Equal(t, 1, repo.books[bookID].count)
	assert.Len(t, repo.comments, 2)
}

func TestSubmitComment_AverageRoundsToTwoDecimals(t *testing.T) {
	repo, svc := newTestService(t)
	bookID := repo.addBook()

	submit(t, svc, uuid.New(), bookID, "Great read", intPtr(5))
	submit(t, svc, uuid.New(), bookID, "Quite good", intPtr(4))
	submit(t, svc, uuid.New(), bookID, "Not for me", intPtr(1))

	// (5+4+1)/3 = 3.3333...
	assert.Equal(t, 3.33, repo.books[bookID].avg)
	assert.Equal(t, 3, repo.books[bookID].count)
}

func TestDeleteComment_WithRatingRecomputesAggregate(t *testing.T) {
	repo, svc := newTestService(t)
	bookID := repo.addBook()
	userID := uuid.New()

	first := submit(t, svc, userID, bookID, "Great read", intPtr(5))
	submit(t, svc, uuid.New(), bookID, "Quite good", intPtr(4))

	err := svc.DeleteComment(context.Background(), userID, false, first.ID)
	require.NoError(t, err)

	assert.Equal(t, 4.0, repo.books[bookID].avg)
	assert.Equal(t, 1, repo.books[bookID].count)
}

func TestDeleteComment_LastRatingResetsAggregate(t *testing.T) {
	repo, svc := newTestService(t)
	bookID := repo.addBook()
	userID := uuid.New()

	resp := submit(t, svc, userID, bookID, "Great read", intPtr(5))

	err := svc.DeleteComment(context.Background(), userID, false, resp.ID)
	require.NoError(t, err)

	assert.Equal(t, 0.0, repo.books[bookID].avg)
	assert.Equal(t, 0, repo.books[bookID].count)
}

func TestDeleteComment_WithoutRatingLeavesAggregate(t *testing.T) {
	repo, svc := newTestService(t)
	bookID := repo.addBook()
	userID := uuid.New()

	submit(t, svc, uuid.New(), bookID, "Great read", intPtr(5))
	unrated := submit(t, svc, userID, bookID, "Just a comment", nil)

	err := svc.DeleteComment(context.Background(), userID, false, unrated.ID)
	require.NoError(t, err)

	assert.Equal(t, 5.0, repo.books[bookID].avg)
	assert.Equal(t, 1, repo.books[bookID].count)
}

// =====================================================
// CONTENT VALIDATION
// =====================================================

func TestSubmitComment_ContentLength(t *testing.T) {
	repo, svc := newTestService(t)
	bookID := repo.addBook()

	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"too short", "ab", true},
		{"minimum length", "abc", false},
		{"maximum length", strings.Repeat("a", 1000), false},
		{"too long", strings.Repeat("a", 1001), true},
		{"whitespace only", "   ", true},
		{"html only", "<p></p>", true},
		// Bounds count characters, not bytes: Cyrillic runs two bytes each.
		{"two cyrillic chars", "аб", true},
		{"three cyrillic chars", "або", false},
		{"cyrillic within limit", strings.Repeat("я", 1000), false},
		{"cyrillic over limit", strings.Repeat("я", 1001), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SubmitComment(context.Background(), uuid.New(), "reader", &model.SubmitCommentRequest{
				BookID:      bookID,
				CommentText: tt.content,
			})
			if tt.wantErr {
				assertCode(t, err, model.ErrCodeInvalidLength)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSubmitComment_StripsHTMLTags(t *testing.T) {
	repo, svc := newTestService(t)
	bookID := repo.addBook()

	resp := submit(t, svc, uuid.New(), bookID, "  <b>Great</b> <i>read</i>  ", nil)

	assert.Equal(t, "Great read", resp.Content)
}

func TestSubmitComment_RejectsBannedWords(t *testing.T) {
	repo, svc := newTestService(t)
	bookID := repo.addBook()

	tests := []string{
		"this book is shit",
		"what the FuCk is this ending",
		"contains badword1 somewhere",
		"wrapped <b>ShIt</b> in tags",
	}

	for _, content := range tests {
		_, err := svc.SubmitComment(context.Background(), uuid.New(), "reader", &model.SubmitCommentRequest{
			BookID:      bookID,
			CommentText: content,
		})
		assertCode(t, err, model.ErrCodeForbiddenContent)
	}
}

func TestSubmitComment_UnknownBook(t *testing.T) {
	_, svc := newTestService(t)

	_, err := svc.SubmitComment(context.Background(), uuid.New(), "reader", &model.SubmitCommentRequest{
		BookID:      uuid.New(),
		CommentText: "Great read",
	})

	assertCode(t, err, model.ErrCodeBookNotFound)
}

func TestSubmitComment_RatingOutOfRange(t *testing.T) {
	repo, svc := newTestService(t)
	bookID := repo.addBook()

	for _, value := range []int{0, 6, -1} {
		_, err := svc.SubmitComment(context.Background(), uuid.New(), "reader", &model.SubmitCommentRequest{
			BookID:      bookID,
			CommentText: "Great read",
			Rating:      intPtr(value),
		})
		assertCode(t, err, model.ErrCodeInvalidRating)
	}
}

func TestSubmitComment_IgnoredRatingIsNotValidated(t *testing.T) {
	repo, svc := newTestService(t)
	bookID := repo.addBook()
	userID := uuid.New()

	submit(t, svc, userID, bookID, "Great read", intPtr(5))

	// The user already holds a rating, so the new value is dropped before
	// any range check and the comment still goes through.
	resp := submit(t, svc, userID, bookID, "Still thinking about it", intPtr(99))

	assert.Nil(t, resp.Rating)
	assert.Equal(t, 5.0, repo.books[bookID].avg)
	assert.Equal(t, 1, repo.books[bookID].count)
	assert.Len(t, repo.comments, 2)
}

// =====================================================
// PERMISSIONS
// =====================================================

func TestDeleteComment_OnlyAuthorOrAdmin(t *testing.T) {
	repo, svc := newTestService(t)
	bookID := repo.addBook()
	author := uuid.New()

	resp := submit(t, svc, author, bookID, "Great read", nil)

	err := svc.DeleteComment(context.Background(), uuid.New(), false, resp.ID)
	assertCode(t, err, model.ErrCodeNoPermission)

	// Admin may delete someone else's comment.
	err = svc.DeleteComment(context.Background(), uuid.New(), true, resp.ID)
	require.NoError(t, err)
	assert.Empty(t, repo.comments)
}

func TestDeleteComment_NotFound(t *testing.T) {
	_, svc := newTestService(t)

	err := svc.DeleteComment(context.Background(), uuid.New(), true, uuid.New())
	assertCode(t, err, model.ErrCodeCommentNotFound)
}

func TestListByUser_OwnerOrAdminOnly(t *testing.T) {
	repo, svc := newTestService(t)
	bookID := repo.addBook()
	owner := uuid.New()

	submit(t, svc, owner, bookID, "Great read", nil)

	_, err := svc.ListByUser(context.Background(), uuid.New(), false, owner)
	assertCode(t, err, model.ErrCodeNoPermission)

	rows, err := svc.ListByUser(context.Background(), owner, false, owner)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	rows, err = svc.ListByUser(context.Background(), uuid.New(), true, owner)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

// =====================================================
// MODERATION
// =====================================================

func TestSetHidden_RemovesFromPublicListing(t *testing.T) {
	repo, svc := newTestService(t)
	bookID := repo.addBook()
	owner := uuid.New()
	repo.usernames[owner] = "reader"

	resp := submit(t, svc, owner, bookID, "Great read", nil)

	hidden, err := svc.SetHidden(context.Background(), resp.ID, true)
	require.NoError(t, err)
	assert.True(t, hidden.Hidden)

	visible, err := svc.ListByBook(context.Background(), bookID)
	require.NoError(t, err)
	assert.Empty(t, visible)

	// Hidden comments still show in the owner's history.
	history, err := svc.ListByUser(context.Background(), owner, false, owner)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.True(t, history[0].Hidden)
}

func TestSetHidden_Unhide(t *testing.T) {
	repo, svc := newTestService(t)
	bookID := repo.addBook()
	owner := uuid.New()
	repo.usernames[owner] = "reader"

	resp := submit(t, svc, owner, bookID, "Great read", nil)

	_, err := svc.SetHidden(context.Background(), resp.ID, true)
	require.NoError(t, err)
	_, err = svc.SetHidden(context.Background(), resp.ID, false)
	require.NoError(t, err)

	visible, err := svc.ListByBook(context.Background(), bookID)
	require.NoError(t, err)
	assert.Len(t, visible, 1)
}

func TestListByBook_DeletedAuthorGetsSentinelName(t *testing.T) {
	repo, svc := newTestService(t)
	bookID := repo.addBook()

	// No username registered for this user, as after account deletion.
	submit(t, svc, uuid.New(), bookID, "Great read", nil)

	visible, err := svc.ListByBook(context.Background(), bookID)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, model.DeletedUserLabel, visible[0].Author.Username)
}
