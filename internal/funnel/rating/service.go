// Copyright (c) 2026 Undervalued Books. All rights reserved.

package rating

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

// Service orchestrates the Rating Ledger.
type Service struct {
	repo   Repository
	books  BookDirectory
	users  UserDirectory
	logger *slog.Logger
}

// NewService creates the rating service.
func NewService(repo Repository, books BookDirectory, users UserDirectory, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		books:  books,
		users:  users,
		logger: logger,
	}
}

// Rate records a first rating. If the caller has already rated the book the
// existing score is left untouched and a Conflict error is returned; use
// Rerate to revise.
func (service *Service) Rate(ctx context.Context, userID, bookID int64, score int) (*Rating, error) {
	return service.write(ctx, userID, bookID, score, true)
}

// Rerate revises the caller's rating, overwriting any previous score.
// Rerating a book the caller never rated simply records the score.
func (service *Service) Rerate(ctx context.Context, userID, bookID int64, score int) (*Rating, error) {
	return service.write(ctx, userID, bookID, score, false)
}

func (service *Service) write(ctx context.Context, userID, bookID int64, score int, requireAbsent bool) (*Rating, error) {
	v := &validate.Validator{}
	err := v.
		PositiveID(FieldUserID, userID).
		PositiveID(FieldBookID, bookID).
		Range(FieldRating, score, MinRating, MaxRating).
		Err()
	if err != nil {
		return nil, err
	}

	if err := service.checkReferences(ctx, userID, bookID); err != nil {
		return nil, err
	}

	stored, err := service.repo.Upsert(ctx, &Rating{
		UserID: userID,
		BookID: bookID,
		Rating: score,
	}, requireAbsent)
	if err != nil {
		return nil, err
	}

	service.logger.Info("rating_recorded",
		slog.Int64("user_id", stored.UserID),
		slog.Int64("book_id", stored.BookID),
		slog.Int("rating", stored.Rating),
		slog.Bool("revision", !requireAbsent),
	)

	return stored, nil
}

// FindRating returns the caller's rating for a book, or (nil, nil) when the
// book is unrated by them.
func (service *Service) FindRating(ctx context.Context, userID, bookID int64) (*Rating, error) {
	v := &validate.Validator{}
	if err := v.PositiveID(FieldUserID, userID).PositiveID(FieldBookID, bookID).Err(); err != nil {
		return nil, err
	}
	return service.repo.Find(ctx, userID, bookID)
}

// ListForUser returns every rating the user has recorded.
func (service *Service) ListForUser(ctx context.Context, userID int64) ([]*Rating, error) {
	return service.repo.ListByUser(ctx, userID)
}

// RatingsForBook returns every rating recorded for a book.
func (service *Service) RatingsForBook(ctx context.Context, bookID int64) ([]*Rating, error) {
	if err := (&validate.Validator{}).PositiveID(FieldBookID, bookID).Err(); err != nil {
		return nil, err
	}
	return service.repo.ListByBook(ctx, bookID)
}

// NotRatedBooks returns catalog books the user has not yet rated.
func (service *Service) NotRatedBooks(ctx context.Context, userID int64) ([]*book.Book, error) {
	return service.repo.NotRatedBooks(ctx, userID)
}

// RatingCount returns how many ratings a book has received.
func (service *Service) RatingCount(ctx context.Context, bookID int64) (int64, error) {
	if err := (&validate.Validator{}).PositiveID(FieldBookID, bookID).Err(); err != nil {
		return 0, err
	}
	return service.repo.CountForBook(ctx, bookID)
}

// RatingSum returns the sum of all scores for a book, zero when unrated.
func (service *Service) RatingSum(ctx context.Context, bookID int64) (int64, error) {
	if err := (&validate.Validator{}).PositiveID(FieldBookID, bookID).Err(); err != nil {
		return 0, err
	}
	return service.repo.SumForBook(ctx, bookID)
}

// DeleteAllForUser removes the user's entire rating history. Called by the
// account-deletion cascade.
func (service *Service) DeleteAllForUser(ctx context.Context, userID int64) (int64, error) {
	deleted, err := service.repo.DeleteByUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	service.logger.Info("ratings_deleted_for_user",
		slog.Int64("user_id", userID),
		slog.Int64("deleted", deleted),
	)

	return deleted, nil
}

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
