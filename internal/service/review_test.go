package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/inkwellapp/inkwell-server/internal/errors"
)

func TestCreateReview(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()
	owner := ts.registerTestUser(t, "owner@example.com")
	reviewer := ts.registerTestUser(t, "reviewer@example.com")
	book := ts.createTestBook(t, owner.User.ID, "Reviewed")

	review, err := ts.reviews.Create(ctx, book.ID, reviewer.User.ID, CreateReviewRequest{
		Rating:     4,
		ReviewText: "quite good",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, review.ID)
	assert.Equal(t, 4, review.Rating)
	assert.Equal(t, book.ID, review.BookID)
	assert.Equal(t, reviewer.User.ID, review.UserID)
}

func TestCreateReviewRatingBounds(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()
	owner := ts.registerTestUser(t, "owner@example.com")
	book := ts.createTestBook(t, owner.User.ID, "Strict")

	for _, rating := range []int{0, -1, 6, 100} {
		_, err := ts.reviews.Create(ctx, book.ID, owner.User.ID, CreateReviewRequest{Rating: rating})
		require.Error(t, err, "rating %d", rating)
		assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
		assert.Equal(t, "Rating must be between 1 and 5", err.Error())
	}
}

func TestCreateReviewBookNotFound(t *testing.T) {
	ts := setupTestServices(t)
	reviewer := ts.registerTestUser(t, "reviewer@example.com")

	_, err := ts.reviews.Create(context.Background(), "bok-missing", reviewer.User.ID, CreateReviewRequest{Rating: 3})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
	assert.Equal(t, "Book not found", err.Error())
}

func TestCreateReviewDuplicate(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()
	owner := ts.registerTestUser(t, "owner@example.com")
	reviewer := ts.registerTestUser(t, "reviewer@example.com")
	book := ts.createTestBook(t, owner.User.ID, "Popular")

	_, err := ts.reviews.Create(ctx, book.ID, reviewer.User.ID, CreateReviewRequest{Rating: 5})
	require.NoError(t, err)

	_, err = ts.reviews.Create(ctx, book.ID, reviewer.User.ID, CreateReviewRequest{Rating: 1})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrDuplicateReview))
	assert.Equal(t, "You already reviewed this book", err.Error())
}

func TestListForBookAveragesAndAuthors(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()
	owner := ts.registerTestUser(t, "owner@example.com")
	book := ts.createTestBook(t, owner.User.ID, "Averaged")

	ratings := []int{5, 4, 3}
	for i, rating := range ratings {
		reviewer := ts.registerTestUser(t, fmt.Sprintf("reviewer%d@example.com", i))
		_, err := ts.reviews.Create(ctx, book.ID, reviewer.User.ID, CreateReviewRequest{Rating: rating})
		require.NoError(t, err)
	}

	result, err := ts.reviews.ListForBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalReviews)
	assert.InDelta(t, 4.0, result.AverageRating, 0.001)
	require.Len(t, result.Reviews, 3)

	for _, r := range result.Reviews {
		assert.NotEmpty(t, r.User.ID)
		assert.NotEmpty(t, r.User.Name)
		assert.NotEmpty(t, r.User.Email)
	}
}

func TestListForBookEmpty(t *testing.T) {
	ts := setupTestServices(t)
	owner := ts.registerTestUser(t, "owner@example.com")
	book := ts.createTestBook(t, owner.User.ID, "Lonely")

	result, err := ts.reviews.ListForBook(context.Background(), book.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalReviews)
	assert.Zero(t, result.AverageRating)
	assert.Empty(t, result.Reviews)
}

func TestSummaryRounding(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()
	owner := ts.registerTestUser(t, "owner@example.com")
	book := ts.createTestBook(t, owner.User.ID, "Rounded")

	// 5 and 4 average to 4.5; 5, 4, 4 average to 4.333... which rounds to 4.3.
	for i, rating := range []int{5, 4, 4} {
		reviewer := ts.registerTestUser(t, fmt.Sprintf("reviewer%d@example.com", i))
		_, err := ts.reviews.Create(ctx, book.ID, reviewer.User.ID, CreateReviewRequest{Rating: rating})
		require.NoError(t, err)
	}

	summary, err := ts.reviews.Summary(ctx, book.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.3, summary.AverageRating, 0.001)
	assert.Equal(t, 3, summary.TotalReviews)
}

func TestListForBookUnknownBook(t *testing.T) {
	ts := setupTestServices(t)

	// Reads don't check the catalog; an unknown book just has no reviews.
	result, err := ts.reviews.ListForBook(context.Background(), "bok-missing")
	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalReviews)
	assert.Zero(t, result.AverageRating)
	assert.Empty(t, result.Reviews)
}

func TestSummaryUnknownBook(t *testing.T) {
	ts := setupTestServices(t)

	summary, err := ts.reviews.Summary(context.Background(), "bok-missing")
	require.NoError(t, err)
	assert.Zero(t, summary.AverageRating)
	assert.Zero(t, summary.TotalReviews)
}

func TestSummaryNoReviews(t *testing.T) {
	ts := setupTestServices(t)
	owner := ts.registerTestUser(t, "owner@example.com")
	book := ts.createTestBook(t, owner.User.ID, "Unrated")

	summary, err := ts.reviews.Summary(context.Background(), book.ID)
	require.NoError(t, err)
	assert.Zero(t, summary.AverageRating)
	assert.Zero(t, summary.TotalReviews)
}

func TestUpdateReviewPartial(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()
	owner := ts.registerTestUser(t, "owner@example.com")
	book := ts.createTestBook(t, owner.User.ID, "Edited")

	review, err := ts.reviews.Create(ctx, book.ID, owner.User.ID, CreateReviewRequest{
		Rating:     2,
		ReviewText: "first impression",
	})
	require.NoError(t, err)

	// Rating 0 means "leave the rating alone".
	updated, err := ts.reviews.Update(ctx, review.ID, owner.User.ID, UpdateReviewRequest{
		ReviewText: "grew on me",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Rating)
	assert.Equal(t, "grew on me", updated.ReviewText)

	// Empty text means "leave the text alone".
	updated, err = ts.reviews.Update(ctx, review.ID, owner.User.ID, UpdateReviewRequest{
		Rating: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)
	assert.Equal(t, "grew on me", updated.ReviewText)
}

func TestUpdateReviewInvalidRating(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()
	owner := ts.registerTestUser(t, "owner@example.com")
	book := ts.createTestBook(t, owner.User.ID, "Edited")

	review, err := ts.reviews.Create(ctx, book.ID, owner.User.ID, CreateReviewRequest{Rating: 3})
	require.NoError(t, err)

	_, err = ts.reviews.Update(ctx, review.ID, owner.User.ID, UpdateReviewRequest{Rating: 7})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
}

func TestUpdateReviewByNonOwnerForbidden(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()
	owner := ts.registerTestUser(t, "owner@example.com")
	intruder := ts.registerTestUser(t, "intruder@example.com")
	book := ts.createTestBook(t, owner.User.ID, "Private")

	review, err := ts.reviews.Create(ctx, book.ID, owner.User.ID, CreateReviewRequest{Rating: 3})
	require.NoError(t, err)

	_, err = ts.reviews.Update(ctx, review.ID, intruder.User.ID, UpdateReviewRequest{Rating: 1})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrForbidden))
	assert.Equal(t, "Not authorized to edit this review", err.Error())
}

func TestDeleteReview(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()
	owner := ts.registerTestUser(t, "owner@example.com")
	intruder := ts.registerTestUser(t, "intruder@example.com")
	book := ts.createTestBook(t, owner.User.ID, "Removable")

	review, err := ts.reviews.Create(ctx, book.ID, owner.User.ID, CreateReviewRequest{Rating: 3})
	require.NoError(t, err)

	err = ts.reviews.Delete(ctx, review.ID, intruder.User.ID)
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrForbidden))
	assert.Equal(t, "Not authorized to delete this review", err.Error())

	require.NoError(t, ts.reviews.Delete(ctx, review.ID, owner.User.ID))

	_, err = ts.reviews.Update(ctx, review.ID, owner.User.ID, UpdateReviewRequest{Rating: 4})
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
}
