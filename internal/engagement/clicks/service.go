// Copyright (c) 2026 Undervalued Books. All rights reserved.

package clicks

import (
	"context"
	"log/slog"

	"github.com/undervaluedbooks/api/internal/platform/apperr"
	"github.com/undervaluedbooks/api/internal/platform/validate"
)

// BookDirectory answers existence checks against the catalog.
type BookDirectory interface {
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

// Service orchestrates the click log.
type Service struct {
	repo   Repository
	books  BookDirectory
	logger *slog.Logger
}

// NewService creates the clicks service.
func NewService(repo Repository, books BookDirectory, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		books:  books,
		logger: logger,
	}
}

// RecordClick logs that the user followed a book's read link.
func (service *Service) RecordClick(ctx context.Context, userID, bookID int64) (*Click, error) {
	v := &validate.Validator{}
	if err := v.PositiveID(FieldUserID, userID).PositiveID(FieldBookID, bookID).Err(); err != nil {
		return nil, err
	}

	exists, err := service.books.ExistsByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Book")
	}

	c, err := service.repo.Record(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}

	service.logger.Info("read_book_click",
		slog.Int64("user_id", c.UserID),
		slog.Int64("book_id", c.BookID),
	)

	return c, nil
}

// ClickCount returns how many times a book's read link has been followed.
func (service *Service) ClickCount(ctx context.Context, bookID int64) (int64, error) {
	if err := (&validate.Validator{}).PositiveID(FieldBookID, bookID).Err(); err != nil {
		return 0, err
	}
	return service.repo.CountForBook(ctx, bookID)
}

// DeleteAllForUser removes the user's click history. Called by the
// account-deletion cascade.
func (service *Service) DeleteAllForUser(ctx context.Context, userID int64) (int64, error) {
	return service.repo.DeleteByUser(ctx, userID)
}
