// Copyright (c) 2026 Undervalued Books. All rights reserved.

package mention

import (
	"context"
	"log/slog"

	"github.com/undervaluedbooks/api/internal/catalog/book"
	"github.com/undervaluedbooks/api/internal/platform/apperr"
	"github.com/undervaluedbooks/api/internal/platform/validate"
)

// BookDirectory answers existence checks against the catalog. Satisfied by
// book.PostgresRepository.
type BookDirectory interface {
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

// UserDirectory answers existence checks against the user store.
type UserDirectory interface {
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

// Service orchestrates the Mention Ledger.
type Service struct {
	repo   Repository
	books  BookDirectory
	users  UserDirectory
	logger *slog.Logger
}

// NewService creates the mention service.
func NewService(repo Repository, books BookDirectory, users UserDirectory, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		books:  books,
		users:  users,
		logger: logger,
	}
}

// RecordMention records or replaces the caller's stance on a book.
//
// The write is an atomic insert-or-update; re-submitting the same stance is
// idempotent and flipping the boolean overwrites in place.
func (service *Service) RecordMention(ctx context.Context, userID, bookID int64, mentioned bool) (*Mention, error) {
	v := &validate.Validator{}
	err := v.
		PositiveID(FieldUserID, userID).
		PositiveID(FieldBookID, bookID).
		Err()
	if err != nil {
		return nil, err
	}

	if err := service.checkReferences(ctx, userID, bookID); err != nil {
		return nil, err
	}

	stored, err := service.repo.Upsert(ctx, &Mention{
		UserID:    userID,
		BookID:    bookID,
		Mentioned: mentioned,
	})
	if err != nil {
		return nil, err
	}

	service.logger.Info("mention_recorded",
		slog.Int64("user_id", stored.UserID),
		slog.Int64("book_id", stored.BookID),
		slog.Bool("mentioned", stored.Mentioned),
	)

	return stored, nil
}

// GetStance returns the caller's three-valued stance on a book. An absent
// ledger row maps to StanceNoResponse.
func (service *Service) GetStance(ctx context.Context, userID, bookID int64) (Stance, error) {
	v := &validate.Validator{}
	if err := v.PositiveID(FieldUserID, userID).PositiveID(FieldBookID, bookID).Err(); err != nil {
		return "", err
	}

	m, err := service.repo.Find(ctx, userID, bookID)
	if err != nil {
		return "", err
	}

	return StanceOf(m), nil
}

// ListForUser returns every stance the user has recorded.
func (service *Service) ListForUser(ctx context.Context, userID int64) ([]*Mention, error) {
	return service.repo.ListByUser(ctx, userID)
}

// NotMentionedBooks returns catalog books the user has never responded about.
func (service *Service) NotMentionedBooks(ctx context.Context, userID int64) ([]*book.Book, error) {
	return service.repo.NotMentionedBooks(ctx, userID)
}

// NotHeardBeforeBooks returns catalog books the user explicitly had not
// heard of before.
func (service *Service) NotHeardBeforeBooks(ctx context.Context, userID int64) ([]*book.Book, error) {
	return service.repo.NotHeardBeforeBooks(ctx, userID)
}

// NotHeardBeforeCount returns how many distinct users had not heard of the
// book before finding it here.
func (service *Service) NotHeardBeforeCount(ctx context.Context, bookID int64) (int64, error) {
	if err := (&validate.Validator{}).PositiveID(FieldBookID, bookID).Err(); err != nil {
		return 0, err
	}
	return service.repo.NotHeardBeforeCount(ctx, bookID)
}

// DeleteAllForUser removes the user's entire mention history. Called by the
// account-deletion cascade.
func (service *Service) DeleteAllForUser(ctx context.Context, userID int64) (int64, error) {
	deleted, err := service.repo.DeleteByUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	service.logger.Info("mentions_deleted_for_user",
		slog.Int64("user_id", userID),
		slog.Int64("deleted", deleted),
	)

	return deleted, nil
}

// checkReferences rejects writes against users or books that do not exist,
// so the ledger never accumulates dangling pairs.
func (service *Service) checkReferences(ctx context.Context, userID, bookID int64) error {
	userExists, err := service.users.ExistsByID(ctx, userID)
	if err != nil {
		return err
	}
	if !userExists {
		return apperr.NotFound("User")
	}

	bookExists, err := service.books.ExistsByID(ctx, bookID)
	if err != nil {
		return err
	}
	if !bookExists {
		return apperr.NotFound("Book")
	}

	return nil
}
