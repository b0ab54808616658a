// Copyright (c) 2026 Undervalued Books. All rights reserved.

package book

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/undervaluedbooks/api/internal/platform/apperr"
)

type memRepo struct {
	books  map[int64]*Book
	nextID int64
}

func newMemRepo() *memRepo {
	return &memRepo{books: make(map[int64]*Book), nextID: 1}
}

func (r *memRepo) Create(_ context.Context, b *Book) (*Book, error) {
	for _, existing := range r.books {
		if existing.Title == b.Title && existing.Author == b.Author {
			return nil, apperr.Conflict("Resource already exists")
		}
	}
	stored := &Book{
		ID:           r.nextID,
		Title:        b.Title,
		Author:       b.Author,
		Description:  b.Description,
		ReadBookLink: b.ReadBookLink,
		CreatedAt:    time.Now(),
	}
	r.books[stored.ID] = stored
	r.nextID++
	return stored, nil
}

func (r *memRepo) GetAll(_ context.Context) ([]*Book, error) {
	out := make([]*Book, 0, len(r.books))
	for _, b := range r.books {
		out = append(out, b)
	}
	return out, nil
}

func (r *memRepo) GetByID(_ context.Context, id int64) (*Book, error) {
	if b, ok := r.books[id]; ok {
		return b, nil
	}
	return nil, apperr.NotFound("Book")
}

func (r *memRepo) GetByTitle(_ context.Context, title string) (*Book, error) {
	for _, b := range r.books {
		if b.Title == title {
			return b, nil
		}
	}
	return nil, apperr.NotFound("Book")
}

func (r *memRepo) FindByTitleAndAuthor(_ context.Context, title, author string) (*Book, error) {
	for _, b := range r.books {
		if b.Title == title && b.Author == author {
			return b, nil
		}
	}
	return nil, nil
}

func (r *memRepo) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := r.books[id]
	return ok, nil
}

func newTestService(repo *memRepo) *Service {
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCreateBook_TrimsAndPersists(t *testing.T) {
	repo := newMemRepo()
	service := newTestService(repo)

	created, err := service.CreateBook(context.Background(), "  Stoner  ", " John Williams ", "A quiet life", "")
	require.NoError(t, err)

	assert.Equal(t, "Stoner", created.Title)
	assert.Equal(t, "John Williams", created.Author)
	assert.NotZero(t, created.ID)
}

func TestCreateBook_RequiresTitleAndAuthor(t *testing.T) {
	service := newTestService(newMemRepo())

	_, err := service.CreateBook(context.Background(), "", "John Williams", "", "")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	_, err = service.CreateBook(context.Background(), "Stoner", "   ", "", "")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestCreateBook_OverlongTitleRejected(t *testing.T) {
	service := newTestService(newMemRepo())

	_, err := service.CreateBook(context.Background(), strings.Repeat("x", MaxTitleLen+1), "Author", "", "")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestBookExists(t *testing.T) {
	repo := newMemRepo()
	service := newTestService(repo)

	_, err := service.CreateBook(context.Background(), "Stoner", "John Williams", "", "")
	require.NoError(t, err)

	exists, err := service.BookExists(context.Background(), "Stoner", "John Williams")
	require.NoError(t, err)
	assert.True(t, exists)

	// Same title by a different author is a different book.
	exists, err = service.BookExists(context.Background(), "Stoner", "Someone Else")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGetBookByTitle_RequiresTitle(t *testing.T) {
	service := newTestService(newMemRepo())

	_, err := service.GetBookByTitle(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}
