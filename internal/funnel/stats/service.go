// Copyright (c) 2026 Undervalued Books. All rights reserved.

package stats

import (
	"context"
	"log/slog"

	"github.com/undervaluedbooks/api/internal/platform/validate"
)

// MentionStats is the slice of the mention ledger the aggregator reads.
// Satisfied by mention.PostgresRepository.
type MentionStats interface {
	NotHeardBeforeCount(ctx context.Context, bookID int64) (int64, error)
	HeardButNotRatedCount(ctx context.Context, bookID int64) (int64, error)
}

// RatingStats is the slice of the rating ledger the aggregator reads.
// Satisfied by rating.PostgresRepository.
type RatingStats interface {
	CountForBook(ctx context.Context, bookID int64) (int64, error)
	SumForBook(ctx context.Context, bookID int64) (int64, error)
}

// Service composes the two ledgers into funnel reads.
type Service struct {
	mentions MentionStats
	ratings  RatingStats
	logger   *slog.Logger
}

// NewService creates the funnel aggregation service.
func NewService(mentions MentionStats, ratings RatingStats, logger *slog.Logger) *Service {
	return &Service{
		mentions: mentions,
		ratings:  ratings,
		logger:   logger,
	}
}

// HeardButNotRatedCount returns how many users responded about the book but
// never rated it.
func (service *Service) HeardButNotRatedCount(ctx context.Context, bookID int64) (int64, error) {
	if err := (&validate.Validator{}).PositiveID("book_id", bookID).Err(); err != nil {
		return 0, err
	}
	return service.mentions.HeardButNotRatedCount(ctx, bookID)
}

// FunnelSummary assembles the four funnel counters for a book. A book with
// no ledger activity yields an all-zero summary.
func (service *Service) FunnelSummary(ctx context.Context, bookID int64) (*FunnelSummary, error) {
	if err := (&validate.Validator{}).PositiveID("book_id", bookID).Err(); err != nil {
		return nil, err
	}

	summary := &FunnelSummary{BookID: bookID}

	var err error
	if summary.NotHeardBeforeCount, err = service.mentions.NotHeardBeforeCount(ctx, bookID); err != nil {
		return nil, err
	}
	if summary.HeardButNotRatedCount, err = service.mentions.HeardButNotRatedCount(ctx, bookID); err != nil {
		return nil, err
	}
	if summary.RatingCount, err = service.ratings.CountForBook(ctx, bookID); err != nil {
		return nil, err
	}
	if summary.RatingSum, err = service.ratings.SumForBook(ctx, bookID); err != nil {
		return nil, err
	}

	return summary, nil
}
