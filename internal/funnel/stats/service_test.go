// Copyright (c) 2026 Undervalued Books. All rights reserved.

package stats

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/undervaluedbooks/api/internal/platform/apperr"
)

type pair struct {
	userID int64
	bookID int64
}

// memLedgers holds both ledgers so funnel numbers can be derived the way
// the SQL does: mentions joined against ratings on the (user, book) pair.
type memLedgers struct {
	mentions map[pair]bool // value is the recorded stance
	ratings  map[pair]int
}

func newMemLedgers() *memLedgers {
	return &memLedgers{
		mentions: make(map[pair]bool),
		ratings:  make(map[pair]int),
	}
}

func (l *memLedgers) NotHeardBeforeCount(_ context.Context, bookID int64) (int64, error) {
	var count int64
	for key, mentioned := range l.mentions {
		if key.bookID == bookID && !mentioned {
			count++
		}
	}
	return count, nil
}

func (l *memLedgers) HeardButNotRatedCount(_ context.Context, bookID int64) (int64, error) {
	var count int64
	for key := range l.mentions {
		if key.bookID != bookID {
			continue
		}
		if _, rated := l.ratings[key]; !rated {
			count++
		}
	}
	return count, nil
}

func (l *memLedgers) CountForBook(_ context.Context, bookID int64) (int64, error) {
	var count int64
	for key := range l.ratings {
		if key.bookID == bookID {
			count++
		}
	}
	return count, nil
}

func (l *memLedgers) SumForBook(_ context.Context, bookID int64) (int64, error) {
	var sum int64
	for key, score := range l.ratings {
		if key.bookID == bookID {
			sum += int64(score)
		}
	}
	return sum, nil
}

func newTestService(ledgers *memLedgers) *Service {
	return NewService(ledgers, ledgers, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestFunnelSummary_NoActivityIsAllZero(t *testing.T) {
	service := newTestService(newMemLedgers())

	summary, err := service.FunnelSummary(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, int64(42), summary.BookID)
	assert.Zero(t, summary.NotHeardBeforeCount)
	assert.Zero(t, summary.HeardButNotRatedCount)
	assert.Zero(t, summary.RatingCount)
	assert.Zero(t, summary.RatingSum)
}

func TestFunnelSummary_MixedEngagement(t *testing.T) {
	// Four users respond about book 1. Users 1 and 2 had not heard of it,
	// user 3 had, user 4 had not. Users 1 and 3 go on to rate it; users 2
	// and 4 drop off. User 5 rates without ever responding.
	ledgers := newMemLedgers()
	ledgers.mentions[pair{1, 1}] = false
	ledgers.mentions[pair{2, 1}] = false
	ledgers.mentions[pair{3, 1}] = true
	ledgers.mentions[pair{4, 1}] = false
	ledgers.ratings[pair{1, 1}] = 5
	ledgers.ratings[pair{3, 1}] = 4
	ledgers.ratings[pair{5, 1}] = 3

	service := newTestService(ledgers)
	summary, err := service.FunnelSummary(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, int64(3), summary.NotHeardBeforeCount)
	assert.Equal(t, int64(2), summary.HeardButNotRatedCount)
	assert.Equal(t, int64(3), summary.RatingCount)
	assert.Equal(t, int64(12), summary.RatingSum)
}

func TestFunnelSummary_IsolatedPerBook(t *testing.T) {
	ledgers := newMemLedgers()
	ledgers.mentions[pair{1, 1}] = false
	ledgers.ratings[pair{1, 2}] = 5

	service := newTestService(ledgers)

	first, err := service.FunnelSummary(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.NotHeardBeforeCount)
	assert.Equal(t, int64(1), first.HeardButNotRatedCount)
	assert.Zero(t, first.RatingCount)

	second, err := service.FunnelSummary(context.Background(), 2)
	require.NoError(t, err)
	assert.Zero(t, second.NotHeardBeforeCount)
	assert.Zero(t, second.HeardButNotRatedCount)
	assert.Equal(t, int64(1), second.RatingCount)
	assert.Equal(t, int64(5), second.RatingSum)
}

func TestHeardButNotRatedCount_StanceIrrelevant(t *testing.T) {
	// Both stances count toward the drop-off stage; only a rating row for
	// the same pair removes a user from it.
	ledgers := newMemLedgers()
	ledgers.mentions[pair{1, 1}] = true
	ledgers.mentions[pair{2, 1}] = false

	service := newTestService(ledgers)
	count, err := service.HeardButNotRatedCount(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestFunnelSummary_TracksVisitorThroughFunnel(t *testing.T) {
	// One visitor walks the whole funnel for book 1: they answer "never
	// heard of it", which parks them in the not-yet-rated stage, then they
	// rate it 5. Each summary read reflects the ledgers at that moment.
	ledgers := newMemLedgers()
	service := newTestService(ledgers)
	ctx := context.Background()

	ledgers.mentions[pair{7, 1}] = false

	afterMention, err := service.FunnelSummary(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), afterMention.NotHeardBeforeCount)
	assert.Equal(t, int64(1), afterMention.HeardButNotRatedCount)
	assert.Zero(t, afterMention.RatingCount)
	assert.Zero(t, afterMention.RatingSum)

	ledgers.ratings[pair{7, 1}] = 5

	afterRating, err := service.FunnelSummary(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), afterRating.NotHeardBeforeCount)
	assert.Zero(t, afterRating.HeardButNotRatedCount)
	assert.Equal(t, int64(1), afterRating.RatingCount)
	assert.Equal(t, int64(5), afterRating.RatingSum)
}

func TestFunnelSummary_RejectsNonPositiveID(t *testing.T) {
	service := newTestService(newMemLedgers())

	_, err := service.FunnelSummary(context.Background(), 0)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}
