// Copyright (c) 2026 Undervalued Books. All rights reserved.

package account

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/undervaluedbooks/api/internal/platform/apperr"
	"github.com/undervaluedbooks/api/internal/users/auth"
)

type fakeLedger struct {
	deleted  map[int64]int64
	failWith error
	calls    int
}

func (l *fakeLedger) DeleteAllForUser(_ context.Context, userID int64) (int64, error) {
	l.calls++
	if l.failWith != nil {
		return 0, l.failWith
	}
	return l.deleted[userID], nil
}

type fakeSessionStore struct {
	deleted map[int64]int64
	calls   int
}

func (s *fakeSessionStore) DeleteByUser(_ context.Context, userID int64) (int64, error) {
	s.calls++
	return s.deleted[userID], nil
}

type fakeUserStore struct {
	users       map[int64]*auth.User
	deleteCalls int
}

func (s *fakeUserStore) FindByID(_ context.Context, id int64) (*auth.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, apperr.NotFound("User")
}

func (s *fakeUserStore) Delete(_ context.Context, id int64) error {
	s.deleteCalls++
	if _, ok := s.users[id]; !ok {
		return apperr.NotFound("User")
	}
	delete(s.users, id)
	return nil
}

func TestDeleteAccount_FullCascade(t *testing.T) {
	users := &fakeUserStore{users: map[int64]*auth.User{
		7: {ID: 7, Username: "alice"},
	}}
	mentions := &fakeLedger{deleted: map[int64]int64{7: 3}}
	ratings := &fakeLedger{deleted: map[int64]int64{7: 2}}
	clicks := &fakeLedger{deleted: map[int64]int64{7: 5}}
	sessions := &fakeSessionStore{deleted: map[int64]int64{7: 1}}

	service := NewService(users, sessions, mentions, ratings, clicks, slog.New(slog.NewTextHandler(io.Discard, nil)))

	report, err := service.DeleteAccount(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, int64(3), report.MentionsDeleted)
	assert.Equal(t, int64(2), report.RatingsDeleted)
	assert.Equal(t, int64(5), report.ClicksDeleted)
	assert.Equal(t, int64(1), report.SessionsDeleted)
	assert.Empty(t, users.users)
}

func TestDeleteAccount_UnknownUser(t *testing.T) {
	users := &fakeUserStore{users: map[int64]*auth.User{}}
	mentions := &fakeLedger{}
	ratings := &fakeLedger{}
	clicks := &fakeLedger{}
	sessions := &fakeSessionStore{}

	service := NewService(users, sessions, mentions, ratings, clicks, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := service.DeleteAccount(context.Background(), 99)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	// Nothing was touched.
	assert.Zero(t, mentions.calls)
	assert.Zero(t, ratings.calls)
	assert.Zero(t, clicks.calls)
	assert.Zero(t, sessions.calls)
}

func TestDeleteAccount_LedgerFailureKeepsAccount(t *testing.T) {
	users := &fakeUserStore{users: map[int64]*auth.User{
		7: {ID: 7, Username: "alice"},
	}}
	mentions := &fakeLedger{}
	ratings := &fakeLedger{failWith: errors.New("connection reset")}
	clicks := &fakeLedger{}
	sessions := &fakeSessionStore{}

	service := NewService(users, sessions, mentions, ratings, clicks, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := service.DeleteAccount(context.Background(), 7)
	require.Error(t, err)

	// The account row survives a mid-cascade failure so the deletion can be
	// retried.
	assert.Zero(t, users.deleteCalls)
	assert.Contains(t, users.users, int64(7))
}
