// Copyright (c) 2026 Undervalued Books. All rights reserved.

package auth

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/undervaluedbooks/api/internal/platform/apperr"
	"github.com/undervaluedbooks/api/internal/platform/sec"
)

type memUserRepo struct {
	users  map[int64]*User
	nextID int64
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[int64]*User), nextID: 1}
}

func (r *memUserRepo) FindByID(_ context.Context, id int64) (*User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, apperr.NotFound("User")
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (*User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (r *memUserRepo) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := r.users[id]
	return ok, nil
}

func (r *memUserRepo) Create(_ context.Context, user *User) error {
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) UpdatePassword(_ context.Context, userID int64, newHash string) error {
	u, ok := r.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	u.PasswordHash = newHash
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return apperr.NotFound("User")
	}
	delete(r.users, id)
	return nil
}

type memSessionRepo struct {
	sessions map[string]*Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[string]*Session)}
}

func (r *memSessionRepo) Create(_ context.Context, session *Session) error {
	session.CreatedAt = time.Now()
	r.sessions[session.ID] = session
	return nil
}

func (r *memSessionRepo) FindByTokenHash(_ context.Context, tokenHash string) (*Session, error) {
	for _, s := range r.sessions {
		if s.TokenHash == tokenHash && !s.IsRevoked && s.ExpiresAt.After(time.Now()) {
			return s, nil
		}
	}
	return nil, apperr.NotFound("Session")
}

func (r *memSessionRepo) Revoke(_ context.Context, sessionID string) error {
	if s, ok := r.sessions[sessionID]; ok {
		s.IsRevoked = true
	}
	return nil
}

func (r *memSessionRepo) RevokeAll(_ context.Context, userID int64) error {
	for _, s := range r.sessions {
		if s.UserID == userID {
			s.IsRevoked = true
		}
	}
	return nil
}

func (r *memSessionRepo) DeleteByUser(_ context.Context, userID int64) (int64, error) {
	var deleted int64
	for id, s := range r.sessions {
		if s.UserID == userID {
			delete(r.sessions, id)
			deleted++
		}
	}
	return deleted, nil
}

type memResetTokenRepo struct {
	tokens map[string]int64
}

func newMemResetTokenRepo() *memResetTokenRepo {
	return &memResetTokenRepo{tokens: make(map[string]int64)}
}

func (r *memResetTokenRepo) Set(_ context.Context, token string, userID int64, _ time.Duration) error {
	r.tokens[token] = userID
	return nil
}

func (r *memResetTokenRepo) Get(_ context.Context, token string) (int64, error) {
	if userID, ok := r.tokens[token]; ok {
		return userID, nil
	}
	return 0, apperr.Unauthorized("Reset token is invalid or expired")
}

func (r *memResetTokenRepo) Delete(_ context.Context, token string) error {
	delete(r.tokens, token)
	return nil
}

type stubTokenProvider struct{}

func (stubTokenProvider) GenerateAccessToken(userID int64, username, role string, _ time.Duration) (string, error) {
	return fmt.Sprintf("jwt:%d:%s:%s", userID, username, role), nil
}

type recordingMailer struct {
	sent []sentMail
}

type sentMail struct {
	to      string
	subject string
	body    string
}

func (m *recordingMailer) Send(_ context.Context, to, subject, body string) error {
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

type fixture struct {
	service  *Service
	users    *memUserRepo
	sessions *memSessionRepo
	resets   *memResetTokenRepo
	mail     *recordingMailer
}

func newFixture(masterEmail string) *fixture {
	f := &fixture{
		users:    newMemUserRepo(),
		sessions: newMemSessionRepo(),
		resets:   newMemResetTokenRepo(),
		mail:     &recordingMailer{},
	}
	f.service = NewService(
		f.users, f.sessions, f.resets, stubTokenProvider{}, f.mail,
		masterEmail, "https://www.undervaluedbooks.com",
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return f
}

func registerMember(t *testing.T, f *fixture, username, email, password string) *User {
	t.Helper()
	user, err := f.service.Register(context.Background(), RegisterInput{
		Username: username,
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	return user
}

func TestRegister_AssignsMemberRole(t *testing.T) {
	f := newFixture("admin@undervaluedbooks.com")

	user := registerMember(t, f, "alice", "alice@example.com", "correct horse")

	assert.Equal(t, sec.RoleMember, user.Role)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "correct horse", user.PasswordHash)
}

func TestRegister_MasterEmailBecomesMaster(t *testing.T) {
	f := newFixture("admin@undervaluedbooks.com")

	user := registerMember(t, f, "admin", "Admin@undervaluedbooks.com", "long password")

	assert.Equal(t, sec.RoleMaster, user.Role)
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	f := newFixture("")
	registerMember(t, f, "alice", "alice@example.com", "correct horse")

	_, err := f.service.Register(context.Background(), RegisterInput{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "another pass",
	})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

func TestRegister_ShortPasswordRejected(t *testing.T) {
	f := newFixture("")

	_, err := f.service.Register(context.Background(), RegisterInput{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "short",
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestLogin_ByEmailAndUsername(t *testing.T) {
	f := newFixture("")
	registerMember(t, f, "alice", "alice@example.com", "correct horse")

	byEmail, err := f.service.Login(context.Background(), LoginInput{
		Login: "alice@example.com", Password: "correct horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, byEmail.AccessToken)
	assert.NotEmpty(t, byEmail.RefreshToken)

	byUsername, err := f.service.Login(context.Background(), LoginInput{
		Login: "alice", Password: "correct horse",
	})
	require.NoError(t, err)
	assert.NotEqual(t, byEmail.RefreshToken, byUsername.RefreshToken)
}

func TestLogin_WrongPasswordIsGenericUnauthorized(t *testing.T) {
	f := newFixture("")
	registerMember(t, f, "alice", "alice@example.com", "correct horse")

	_, err := f.service.Login(context.Background(), LoginInput{
		Login: "alice@example.com", Password: "wrong",
	})
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	_, unknownErr := f.service.Login(context.Background(), LoginInput{
		Login: "nobody@example.com", Password: "wrong",
	})
	require.Error(t, unknownErr)
	assert.Equal(t, apperr.As(err).Message, apperr.As(unknownErr).Message)
}

func TestRefreshSession_RotatesToken(t *testing.T) {
	f := newFixture("")
	registerMember(t, f, "alice", "alice@example.com", "correct horse")

	session, err := f.service.Login(context.Background(), LoginInput{
		Login: "alice", Password: "correct horse",
	})
	require.NoError(t, err)

	rotated, err := f.service.RefreshSession(context.Background(), session.RefreshToken, "", "")
	require.NoError(t, err)
	assert.NotEqual(t, session.RefreshToken, rotated.RefreshToken)

	// The old token was revoked by the rotation and cannot be replayed.
	_, err = f.service.RefreshSession(context.Background(), session.RefreshToken, "", "")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}

func TestLogout_IsIdempotent(t *testing.T) {
	f := newFixture("")
	registerMember(t, f, "alice", "alice@example.com", "correct horse")

	session, err := f.service.Login(context.Background(), LoginInput{
		Login: "alice", Password: "correct horse",
	})
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(context.Background(), session.RefreshToken))
	require.NoError(t, f.service.Logout(context.Background(), session.RefreshToken))

	_, err = f.service.RefreshSession(context.Background(), session.RefreshToken, "", "")
	require.Error(t, err)
}

func TestPasswordReset_FullFlow(t *testing.T) {
	f := newFixture("")
	registerMember(t, f, "alice", "alice@example.com", "correct horse")

	session, err := f.service.Login(context.Background(), LoginInput{
		Login: "alice", Password: "correct horse",
	})
	require.NoError(t, err)

	require.NoError(t, f.service.RequestPasswordReset(context.Background(), "alice@example.com"))
	require.Len(t, f.mail.sent, 1)
	assert.Equal(t, "alice@example.com", f.mail.sent[0].to)
	assert.Contains(t, f.mail.sent[0].body, "reset-password?token=")

	require.Len(t, f.resets.tokens, 1)
	var token string
	for stored := range f.resets.tokens {
		token = stored
	}

	require.NoError(t, f.service.ResetPassword(context.Background(), token, "brand new password"))

	// Old password no longer works, new one does, old sessions are dead.
	_, err = f.service.Login(context.Background(), LoginInput{
		Login: "alice", Password: "correct horse",
	})
	require.Error(t, err)

	_, err = f.service.Login(context.Background(), LoginInput{
		Login: "alice", Password: "brand new password",
	})
	require.NoError(t, err)

	_, err = f.service.RefreshSession(context.Background(), session.RefreshToken, "", "")
	require.Error(t, err)

	// The token is single use.
	err = f.service.ResetPassword(context.Background(), token, "yet another password")
	require.Error(t, err)
}

func TestRequestPasswordReset_UnknownEmailIsSilent(t *testing.T) {
	f := newFixture("")

	require.NoError(t, f.service.RequestPasswordReset(context.Background(), "nobody@example.com"))
	assert.Empty(t, f.mail.sent)
	assert.Empty(t, f.resets.tokens)
}
