// Copyright (c) 2026 Undervalued Books. All rights reserved.

package book

import (
	"context"
	"log/slog"
	"strings"

	"github.com/undervaluedbooks/api/internal/platform/validate"
)

// Service orchestrates catalog reads and the single write path (approval).
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates the catalog service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// CreateBook validates and persists an approved book.
//
// Only the moderation workflow calls this; there is no open write path into
// the catalog.
func (service *Service) CreateBook(ctx context.Context, title, author, description, readBookLink string) (*Book, error) {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)

	v := &validate.Validator{}
	err := v.
		Required(FieldTitle, title).
		MaxLen(FieldTitle, title, MaxTitleLen).
		Required(FieldAuthor, author).
		MaxLen(FieldAuthor, author, MaxAuthorLen).
		MaxLen(FieldDescription, description, MaxDescriptionLen).
		Err()
	if err != nil {
		return nil, err
	}

	created, err := service.repo.Create(ctx, &Book{
		Title:        title,
		Author:       author,
		Description:  description,
		ReadBookLink: readBookLink,
	})
	if err != nil {
		return nil, err
	}

	service.logger.Info("book_added_to_catalog",
		slog.Int64("book_id", created.ID),
		slog.String("title", created.Title),
	)

	return created, nil
}

// ListBooks returns the full catalog.
func (service *Service) ListBooks(ctx context.Context) ([]*Book, error) {
	return service.repo.GetAll(ctx)
}

// GetBook returns a single book by ID.
func (service *Service) GetBook(ctx context.Context, id int64) (*Book, error) {
	return service.repo.GetByID(ctx, id)
}

// GetBookByTitle returns a single book by its exact title.
func (service *Service) GetBookByTitle(ctx context.Context, title string) (*Book, error) {
	if err := (&validate.Validator{}).Required(FieldTitle, title).Err(); err != nil {
		return nil, err
	}
	return service.repo.GetByTitle(ctx, title)
}

// BookExists reports whether a book with the given title and author is
// already in the catalog. Used by the submission form as a pre-check.
func (service *Service) BookExists(ctx context.Context, title, author string) (bool, error) {
	v := &validate.Validator{}
	if err := v.Required(FieldTitle, title).Required(FieldAuthor, author).Err(); err != nil {
		return false, err
	}

	existing, err := service.repo.FindByTitleAndAuthor(ctx, title, author)
	if err != nil {
		return false, err
	}
	return existing != nil, nil
}
