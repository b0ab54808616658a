// Copyright (c) 2026 Undervalued Books. All rights reserved.

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/undervaluedbooks/api/internal/users/auth"
)

// # Cascade Contracts

// MentionLedger is the slice of the mention service the cascade needs.
type MentionLedger interface {
	DeleteAllForUser(ctx context.Context, userID int64) (int64, error)
}

// RatingLedger is the slice of the rating service the cascade needs.
type RatingLedger interface {
	DeleteAllForUser(ctx context.Context, userID int64) (int64, error)
}

// ClickLog is the slice of the clicks service the cascade needs.
type ClickLog interface {
	DeleteAllForUser(ctx context.Context, userID int64) (int64, error)
}

// SessionStore removes a user's sessions. Satisfied by
// auth.PostgresSessionRepository.
type SessionStore interface {
	DeleteByUser(ctx context.Context, userID int64) (int64, error)
}

// UserStore reads and removes account rows. Satisfied by
// auth.PostgresUserRepository.
type UserStore interface {
	FindByID(ctx context.Context, id int64) (*auth.User, error)
	Delete(ctx context.Context, id int64) error
}

// Service implements profile reads and account deletion.
type Service struct {
	users    UserStore
	sessions SessionStore
	mentions MentionLedger
	ratings  RatingLedger
	clicks   ClickLog
	logger   *slog.Logger
}

// NewService constructs the account service.
func NewService(
	users UserStore,
	sessions SessionStore,
	mentions MentionLedger,
	ratings RatingLedger,
	clicks ClickLog,
	logger *slog.Logger,
) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		mentions: mentions,
		ratings:  ratings,
		clicks:   clicks,
		logger:   logger,
	}
}

// Profile returns the caller's account.
func (service *Service) Profile(ctx context.Context, userID int64) (*auth.User, error) {
	return service.users.FindByID(ctx, userID)
}

// DeleteAccount removes the account and all engagement data it produced.
//
// Ledgers go before the account row so an interrupted cascade can be
// re-run; the account row going last keeps referential checks honest
// throughout.
func (service *Service) DeleteAccount(ctx context.Context, userID int64) (*DeletionReport, error) {
	// Confirm the account exists before touching anything.
	if _, err := service.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	report := &DeletionReport{UserID: userID}

	var err error
	if report.MentionsDeleted, err = service.mentions.DeleteAllForUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("account_delete_mentions_failed: %w", err)
	}
	if report.RatingsDeleted, err = service.ratings.DeleteAllForUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("account_delete_ratings_failed: %w", err)
	}
	if report.ClicksDeleted, err = service.clicks.DeleteAllForUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("account_delete_clicks_failed: %w", err)
	}
	if report.SessionsDeleted, err = service.sessions.DeleteByUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("account_delete_sessions_failed: %w", err)
	}

	if err := service.users.Delete(ctx, userID); err != nil {
		return nil, fmt.Errorf("account_delete_user_failed: %w", err)
	}

	service.logger.Info("account_deleted",
		slog.Int64("user_id", userID),
		slog.Int64("mentions", report.MentionsDeleted),
		slog.Int64("ratings", report.RatingsDeleted),
		slog.Int64("clicks", report.ClicksDeleted),
		slog.Int64("sessions", report.SessionsDeleted),
	)

	return report, nil
}
