// Copyright (c) 2026 Undervalued Books. All rights reserved.

package rating

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/undervaluedbooks/api/internal/catalog/book"
	"github.com/undervaluedbooks/api/internal/platform/apperr"
)

type pair struct {
	userID int64
	bookID int64
}

// memRepo is an in-memory Repository with the conditional-upsert semantics
// of the SQL implementation.
type memRepo struct {
	ratings map[pair]*Rating
	catalog []*book.Book
}

func newMemRepo(catalog ...*book.Book) *memRepo {
	return &memRepo{
		ratings: make(map[pair]*Rating),
		catalog: catalog,
	}
}

func (r *memRepo) Upsert(_ context.Context, rating *Rating, requireAbsent bool) (*Rating, error) {
	key := pair{rating.UserID, rating.BookID}
	now := time.Now()

	if existing, ok := r.ratings[key]; ok {
		if requireAbsent {
			return nil, apperr.Conflict("You have already rated this book")
		}
		existing.Rating = rating.Rating
		existing.UpdatedAt = now
		return existing, nil
	}

	stored := &Rating{
		UserID:    rating.UserID,
		BookID:    rating.BookID,
		Rating:    rating.Rating,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.ratings[key] = stored
	return stored, nil
}

func (r *memRepo) Find(_ context.Context, userID, bookID int64) (*Rating, error) {
	return r.ratings[pair{userID, bookID}], nil
}

func (r *memRepo) ListByUser(_ context.Context, userID int64) ([]*Rating, error) {
	out := make([]*Rating, 0)
	for _, rating := range r.ratings {
		if rating.UserID == userID {
			out = append(out, rating)
		}
	}
	return out, nil
}

func (r *memRepo) ListByBook(_ context.Context, bookID int64) ([]*Rating, error) {
	out := make([]*Rating, 0)
	for _, rating := range r.ratings {
		if rating.BookID == bookID {
			out = append(out, rating)
		}
	}
	return out, nil
}

func (r *memRepo) NotRatedBooks(_ context.Context, userID int64) ([]*book.Book, error) {
	out := make([]*book.Book, 0)
	for _, b := range r.catalog {
		if _, ok := r.ratings[pair{userID, b.ID}]; !ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memRepo) CountForBook(_ context.Context, bookID int64) (int64, error) {
	var count int64
	for _, rating := range r.ratings {
		if rating.BookID == bookID {
			count++
		}
	}
	return count, nil
}

func (r *memRepo) SumForBook(_ context.Context, bookID int64) (int64, error) {
	var sum int64
	for _, rating := range r.ratings {
		if rating.BookID == bookID {
			sum += int64(rating.Rating)
		}
	}
	return sum, nil
}

func (r *memRepo) DeleteByUser(_ context.Context, userID int64) (int64, error) {
	var deleted int64
	for key, rating := range r.ratings {
		if rating.UserID == userID {
			delete(r.ratings, key)
			deleted++
		}
	}
	return deleted, nil
}

type stubDirectory struct {
	existing map[int64]bool
}

func (d *stubDirectory) ExistsByID(_ context.Context, id int64) (bool, error) {
	return d.existing[id], nil
}

func allIDs(ids ...int64) *stubDirectory {
	d := &stubDirectory{existing: make(map[int64]bool)}
	for _, id := range ids {
		d.existing[id] = true
	}
	return d
}

func newTestService(repo *memRepo, books, users *stubDirectory) *Service {
	return NewService(repo, books, users, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRate_FirstRating(t *testing.T) {
	repo := newMemRepo()
	service := newTestService(repo, allIDs(10), allIDs(1))

	stored, err := service.Rate(context.Background(), 1, 10, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, stored.Rating)
	assert.Len(t, repo.ratings, 1)
}

func TestRate_SecondRatingConflicts(t *testing.T) {
	repo := newMemRepo()
	service := newTestService(repo, allIDs(10), allIDs(1))

	_, err := service.Rate(context.Background(), 1, 10, 4)
	require.NoError(t, err)

	_, err = service.Rate(context.Background(), 1, 10, 2)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	// The original score survives a refused overwrite.
	existing, err := service.FindRating(context.Background(), 1, 10)
	require.NoError(t, err)
	require.NotNil(t, existing)
	assert.Equal(t, 4, existing.Rating)
}

func TestRerate_OverwritesInPlace(t *testing.T) {
	repo := newMemRepo()
	service := newTestService(repo, allIDs(10), allIDs(1))

	_, err := service.Rate(context.Background(), 1, 10, 4)
	require.NoError(t, err)

	revised, err := service.Rerate(context.Background(), 1, 10, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, revised.Rating)
	assert.Len(t, repo.ratings, 1)
}

func TestRerate_WithoutPriorRatingRecordsScore(t *testing.T) {
	repo := newMemRepo()
	service := newTestService(repo, allIDs(10), allIDs(1))

	stored, err := service.Rerate(context.Background(), 1, 10, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.Rating)
}

func TestRate_ScoreBounds(t *testing.T) {
	service := newTestService(newMemRepo(), allIDs(10), allIDs(1))

	for _, score := range []int{0, 6, -1} {
		_, err := service.Rate(context.Background(), 1, 10, score)
		require.Error(t, err, "score %d", score)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	}

	for score := MinRating; score <= MaxRating; score++ {
		_, err := service.Rerate(context.Background(), 1, 10, score)
		require.NoError(t, err, "score %d", score)
	}
}

func TestRate_UnknownReferences(t *testing.T) {
	repo := newMemRepo()
	service := newTestService(repo, allIDs(10), allIDs(1))

	_, err := service.Rate(context.Background(), 99, 10, 3)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	_, err = service.Rate(context.Background(), 1, 99, 3)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	assert.Empty(t, repo.ratings)
}

func TestFindRating_AbsenceIsNil(t *testing.T) {
	service := newTestService(newMemRepo(), allIDs(10), allIDs(1))

	r, err := service.FindRating(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestAggregates_UnratedBookIsZero(t *testing.T) {
	service := newTestService(newMemRepo(), allIDs(10), allIDs(1))

	count, err := service.RatingCount(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	sum, err := service.RatingSum(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), sum)
}

func TestAggregates_CountAndSum(t *testing.T) {
	repo := newMemRepo()
	service := newTestService(repo, allIDs(10), allIDs(1, 2, 3))

	_, err := service.Rate(context.Background(), 1, 10, 5)
	require.NoError(t, err)
	_, err = service.Rate(context.Background(), 2, 10, 3)
	require.NoError(t, err)
	_, err = service.Rate(context.Background(), 3, 10, 4)
	require.NoError(t, err)

	count, err := service.RatingCount(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	sum, err := service.RatingSum(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(12), sum)
}

func TestNotRatedBooks_AntiJoin(t *testing.T) {
	dune := &book.Book{ID: 1, Title: "Dune"}
	stoner := &book.Book{ID: 2, Title: "Stoner"}
	repo := newMemRepo(dune, stoner)
	service := newTestService(repo, allIDs(1, 2), allIDs(7))

	_, err := service.Rate(context.Background(), 7, 1, 5)
	require.NoError(t, err)

	books, err := service.NotRatedBooks(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Stoner", books[0].Title)
}

func TestDeleteAllForUser(t *testing.T) {
	repo := newMemRepo()
	service := newTestService(repo, allIDs(10, 11), allIDs(1, 2))

	_, err := service.Rate(context.Background(), 1, 10, 5)
	require.NoError(t, err)
	_, err = service.Rate(context.Background(), 1, 11, 3)
	require.NoError(t, err)
	_, err = service.Rate(context.Background(), 2, 10, 4)
	require.NoError(t, err)

	deleted, err := service.DeleteAllForUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	count, err := service.RatingCount(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
