// Copyright (c) 2026 Undervalued Books. All rights reserved.

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/undervaluedbooks/api/internal/platform/apperr"
	"github.com/undervaluedbooks/api/internal/platform/mailer"
	"github.com/undervaluedbooks/api/internal/platform/sec"
	"github.com/undervaluedbooks/api/internal/platform/validate"
	"github.com/undervaluedbooks/api/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for generating signed access tokens.
type TokenProvider interface {
	GenerateAccessToken(userID int64, username, role string, timeToLive time.Duration) (string, error)
}

// Service implements the authentication use cases.
//
// Changes to hashing, registration, or login logic are security sensitive
// and need a second reviewer.
type Service struct {
	userRepository       UserRepository
	sessionRepository    SessionRepository
	resetTokenRepository ResetTokenRepository
	tokenProvider        TokenProvider
	mail                 mailer.Sender
	masterEmail          string
	siteBaseURL          string
	logger               *slog.Logger
}

// NewService constructs the auth service.
func NewService(
	userRepo UserRepository,
	sessionRepo SessionRepository,
	resetRepo ResetTokenRepository,
	tokenProvider TokenProvider,
	mail mailer.Sender,
	masterEmail string,
	siteBaseURL string,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository:       userRepo,
		sessionRepository:    sessionRepo,
		resetTokenRepository: resetRepo,
		tokenProvider:        tokenProvider,
		mail:                 mail,
		masterEmail:          masterEmail,
		siteBaseURL:          siteBaseURL,
		logger:               logger,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Register validates, hashes, and persists a new user account.
//
// The account registered with the configured master email becomes the
// moderator; everyone else is a member.
func (service *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	v := &validate.Validator{}
	err := v.
		Required(FieldUsername, input.Username).
		MaxLen(FieldUsername, input.Username, MaxUsernameLen).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, MinPasswordLen).
		Err()
	if err != nil {
		return nil, err
	}

	// Uniqueness pre-checks give friendly messages; the UNIQUE constraints
	// on the table remain the real guarantee under concurrency.
	if _, err := service.userRepository.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}
	if _, err := service.userRepository.FindByUsername(ctx, input.Username); err == nil {
		return nil, apperr.Conflict("Username is already taken")
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	role := sec.RoleMember
	if service.masterEmail != "" && input.Email == strings.ToLower(service.masterEmail) {
		role = sec.RoleMaster
	}

	user := &User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Role:         role,
	}
	if err := service.userRepository.Create(ctx, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_registered",
		slog.Int64("user_id", user.ID),
		slog.String("role", string(user.Role)),
	)

	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Login     string // Username or email.
	Password  string
	UserAgent string
	IPAddress string
}

// LoginSession represents a successfully established user session.
type LoginSession struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	User                  *User
}

// Login verifies credentials and issues an access/refresh token pair.
func (service *Service) Login(ctx context.Context, input LoginInput) (*LoginSession, error) {
	v := &validate.Validator{}
	if err := v.Required(FieldLogin, input.Login).Required(FieldPassword, input.Password).Err(); err != nil {
		return nil, err
	}

	// Flexible login: by email first, then username.
	user, err := service.userRepository.FindByEmail(ctx, strings.ToLower(input.Login))
	if err != nil {
		user, err = service.userRepository.FindByUsername(ctx, input.Login)
	}
	// Generic message on any lookup miss to prevent account enumeration.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	return service.establishSession(ctx, user, input.UserAgent, input.IPAddress)
}

// Logout revokes the session behind the given refresh token. Logging out an
// already-dead session succeeds; the operation is idempotent.
func (service *Service) Logout(ctx context.Context, refreshToken string) error {
	session, err := service.sessionRepository.FindByTokenHash(ctx, sec.HashToken(refreshToken))
	if err != nil {
		return nil
	}

	if err := service.sessionRepository.Revoke(ctx, session.ID); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}
	return nil
}

// # Session Management

// RefreshSession rotates a refresh token: the presented token's session is
// revoked and a fresh pair is issued, so a replayed token dies on arrival.
func (service *Service) RefreshSession(ctx context.Context, refreshToken, userAgent, ipAddress string) (*LoginSession, error) {
	session, err := service.sessionRepository.FindByTokenHash(ctx, sec.HashToken(refreshToken))
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	if err := service.sessionRepository.Revoke(ctx, session.ID); err != nil {
		return nil, fmt.Errorf("auth_service_refresh_revoke_failed: %w", err)
	}

	user, err := service.userRepository.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, apperr.Unauthorized("User not found")
	}

	return service.establishSession(ctx, user, userAgent, ipAddress)
}

func (service *Service) establishSession(ctx context.Context, user *User, userAgent, ipAddress string) (*LoginSession, error) {
	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Username, string(user.Role), AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	expiresAt := time.Now().Add(RefreshTokenTTL)
	session := &Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: sec.HashToken(refreshToken),
		UserAgent: userAgent,
		IPAddress: ipAddress,
		ExpiresAt: expiresAt,
	}
	if err := service.sessionRepository.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: expiresAt,
		User:                  user,
	}, nil
}

// # Password Recovery

// RequestPasswordReset initiates the forgot-password flow: a short-lived
// token goes to Redis and a reset link is mailed to the account.
//
// An unknown email returns success without side effects to prevent
// enumeration.
func (service *Service) RequestPasswordReset(ctx context.Context, email string) error {
	v := &validate.Validator{}
	if err := v.Required(FieldEmail, email).Email(FieldEmail, email).Err(); err != nil {
		return err
	}

	user, err := service.userRepository.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil
	}

	token, err := sec.GenerateSecureToken(ResetTokenLength)
	if err != nil {
		return fmt.Errorf("auth_service_generate_reset_token_failed: %w", err)
	}

	if err := service.resetTokenRepository.Set(ctx, token, user.ID, ResetTokenTTL); err != nil {
		return fmt.Errorf("auth_service_save_reset_token_failed: %w", err)
	}

	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nA password reset was requested for your account. "+
			"Open the link below within the next hour to choose a new password:\r\n\r\n"+
			"%s/reset-password?token=%s\r\n\r\n"+
			"If you did not request this, you can safely ignore this email.\r\n",
		user.Username, service.siteBaseURL, token,
	)
	if err := service.mail.Send(ctx, user.Email, "Reset your password", body); err != nil {
		// The token is already stored; a mail hiccup should not leak whether
		// the account exists. Log and report success.
		service.logger.Error("reset_email_send_failed",
			slog.Int64("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	return nil
}

// ResetPassword completes the forgot-password flow: verifies the token,
// stores the new hash, and revokes every active session.
func (service *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	v := &validate.Validator{}
	err := v.
		Required(FieldToken, token).
		Required(FieldNewPassword, newPassword).
		MinLen(FieldNewPassword, newPassword, MinPasswordLen).
		Err()
	if err != nil {
		return err
	}

	userID, err := service.resetTokenRepository.Get(ctx, token)
	if err != nil {
		return err
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_reset_password_hash_failed: %w", err)
	}

	if err := service.userRepository.UpdatePassword(ctx, userID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_reset_password_update_failed: %w", err)
	}

	// Force re-login everywhere with the new credentials.
	_ = service.sessionRepository.RevokeAll(ctx, userID)
	_ = service.resetTokenRepository.Delete(ctx, token)

	service.logger.Info("password_reset_completed", slog.Int64("user_id", userID))

	return nil
}

// GetUser returns the account with the given ID.
func (service *Service) GetUser(ctx context.Context, userID int64) (*User, error) {
	return service.userRepository.FindByID(ctx, userID)
}
