// Copyright (c) 2026 Undervalued Books. All rights reserved.

package mention

import (
	"context"
	"io"
	"log/slog"
	"sort"
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

// memRepo is an in-memory Repository that mirrors the SQL semantics: one row
// per (user, book) pair and anti-joins computed against a catalog snapshot.
type memRepo struct {
	mentions map[pair]*Mention
	rated    map[pair]bool
	catalog  []*book.Book
}

func newMemRepo(catalog ...*book.Book) *memRepo {
	return &memRepo{
		mentions: make(map[pair]*Mention),
		rated:    make(map[pair]bool),
		catalog:  catalog,
	}
}

func (r *memRepo) Upsert(_ context.Context, m *Mention) (*Mention, error) {
	key := pair{m.UserID, m.BookID}
	now := time.Now()

	if existing, ok := r.mentions[key]; ok {
		existing.Mentioned = m.Mentioned
		existing.UpdatedAt = now
		return existing, nil
	}

	stored := &Mention{
		UserID:    m.UserID,
		BookID:    m.BookID,
		Mentioned: m.Mentioned,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.mentions[key] = stored
	return stored, nil
}

func (r *memRepo) Find(_ context.Context, userID, bookID int64) (*Mention, error) {
	return r.mentions[pair{userID, bookID}], nil
}

func (r *memRepo) ListByUser(_ context.Context, userID int64) ([]*Mention, error) {
	out := make([]*Mention, 0)
	for _, m := range r.mentions {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memRepo) NotMentionedBooks(_ context.Context, userID int64) ([]*book.Book, error) {
	out := make([]*book.Book, 0)
	for _, b := range r.catalog {
		if _, ok := r.mentions[pair{userID, b.ID}]; !ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memRepo) NotHeardBeforeBooks(_ context.Context, userID int64) ([]*book.Book, error) {
	out := make([]*book.Book, 0)
	for _, b := range r.catalog {
		if m, ok := r.mentions[pair{userID, b.ID}]; ok && !m.Mentioned {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memRepo) NotHeardBeforeCount(_ context.Context, bookID int64) (int64, error) {
	var count int64
	for _, m := range r.mentions {
		if m.BookID == bookID && !m.Mentioned {
			count++
		}
	}
	return count, nil
}

func (r *memRepo) HeardButNotRatedCount(_ context.Context, bookID int64) (int64, error) {
	var count int64
	for key, m := range r.mentions {
		if m.BookID == bookID && !r.rated[key] {
			count++
		}
	}
	return count, nil
}

func (r *memRepo) DeleteByUser(_ context.Context, userID int64) (int64, error) {
	var deleted int64
	for key, m := range r.mentions {
		if m.UserID == userID {
			delete(r.mentions, key)
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

func TestStanceOf(t *testing.T) {
	assert.Equal(t, StanceNoResponse, StanceOf(nil))
	assert.Equal(t, StanceHeardBefore, StanceOf(&Mention{Mentioned: true}))
	assert.Equal(t, StanceNotHeardBefore, StanceOf(&Mention{Mentioned: false}))
}

func TestRecordMention_UpsertIsIdempotent(t *testing.T) {
	repo := newMemRepo()
	service := newTestService(repo, allIDs(10), allIDs(1))

	first, err := service.RecordMention(context.Background(), 1, 10, true)
	require.NoError(t, err)
	second, err := service.RecordMention(context.Background(), 1, 10, true)
	require.NoError(t, err)

	assert.Len(t, repo.mentions, 1)
	assert.Equal(t, first.UserID, second.UserID)
	assert.True(t, second.Mentioned)
}

func TestRecordMention_FlipsStanceInPlace(t *testing.T) {
	repo := newMemRepo()
	service := newTestService(repo, allIDs(10), allIDs(1))

	_, err := service.RecordMention(context.Background(), 1, 10, true)
	require.NoError(t, err)
	flipped, err := service.RecordMention(context.Background(), 1, 10, false)
	require.NoError(t, err)

	assert.Len(t, repo.mentions, 1)
	assert.False(t, flipped.Mentioned)

	stance, err := service.GetStance(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, StanceNotHeardBefore, stance)
}

func TestRecordMention_UnknownReferences(t *testing.T) {
	repo := newMemRepo()
	service := newTestService(repo, allIDs(10), allIDs(1))

	_, err := service.RecordMention(context.Background(), 99, 10, true)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	_, err = service.RecordMention(context.Background(), 1, 99, true)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	assert.Empty(t, repo.mentions)
}

func TestRecordMention_RejectsNonPositiveIDs(t *testing.T) {
	service := newTestService(newMemRepo(), allIDs(), allIDs())

	_, err := service.RecordMention(context.Background(), 0, 10, true)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestGetStance_NoRowIsNoResponse(t *testing.T) {
	service := newTestService(newMemRepo(), allIDs(10), allIDs(1))

	stance, err := service.GetStance(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, StanceNoResponse, stance)
}

func TestNotMentionedBooks_AntiJoin(t *testing.T) {
	dune := &book.Book{ID: 1, Title: "Dune"}
	stoner := &book.Book{ID: 2, Title: "Stoner"}
	ubik := &book.Book{ID: 3, Title: "Ubik"}
	repo := newMemRepo(dune, stoner, ubik)
	service := newTestService(repo, allIDs(1, 2, 3), allIDs(7))

	// Any stance at all removes a book from the not-mentioned set.
	_, err := service.RecordMention(context.Background(), 7, 1, true)
	require.NoError(t, err)
	_, err = service.RecordMention(context.Background(), 7, 2, false)
	require.NoError(t, err)

	books, err := service.NotMentionedBooks(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Ubik", books[0].Title)
}

func TestNotHeardBeforeBooks_OnlyExplicitNo(t *testing.T) {
	dune := &book.Book{ID: 1, Title: "Dune"}
	stoner := &book.Book{ID: 2, Title: "Stoner"}
	ubik := &book.Book{ID: 3, Title: "Ubik"}
	repo := newMemRepo(dune, stoner, ubik)
	service := newTestService(repo, allIDs(1, 2, 3), allIDs(7))

	_, err := service.RecordMention(context.Background(), 7, 1, true)
	require.NoError(t, err)
	_, err = service.RecordMention(context.Background(), 7, 2, false)
	require.NoError(t, err)
	// Book 3 has no row: excluded from both heard and not-heard sets.

	books, err := service.NotHeardBeforeBooks(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Stoner", books[0].Title)
}

func TestNotHeardBeforeCount_CountsOnlyFalseStances(t *testing.T) {
	repo := newMemRepo()
	service := newTestService(repo, allIDs(10), allIDs(1, 2, 3))

	_, err := service.RecordMention(context.Background(), 1, 10, false)
	require.NoError(t, err)
	_, err = service.RecordMention(context.Background(), 2, 10, false)
	require.NoError(t, err)
	_, err = service.RecordMention(context.Background(), 3, 10, true)
	require.NoError(t, err)

	count, err := service.NotHeardBeforeCount(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestListForUser(t *testing.T) {
	repo := newMemRepo()
	service := newTestService(repo, allIDs(10, 11), allIDs(1, 2))

	_, err := service.RecordMention(context.Background(), 1, 10, true)
	require.NoError(t, err)
	_, err = service.RecordMention(context.Background(), 1, 11, false)
	require.NoError(t, err)
	_, err = service.RecordMention(context.Background(), 2, 10, true)
	require.NoError(t, err)

	mentions, err := service.ListForUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, mentions, 2)

	bookIDs := []int64{mentions[0].BookID, mentions[1].BookID}
	sort.Slice(bookIDs, func(i, j int) bool { return bookIDs[i] < bookIDs[j] })
	assert.Equal(t, []int64{10, 11}, bookIDs)
}

func TestDeleteAllForUser(t *testing.T) {
	repo := newMemRepo()
	service := newTestService(repo, allIDs(10, 11), allIDs(1, 2))

	_, err := service.RecordMention(context.Background(), 1, 10, true)
	require.NoError(t, err)
	_, err = service.RecordMention(context.Background(), 1, 11, false)
	require.NoError(t, err)
	_, err = service.RecordMention(context.Background(), 2, 10, true)
	require.NoError(t, err)

	deleted, err := service.DeleteAllForUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	remaining, err := service.ListForUser(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}
