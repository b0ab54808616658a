// Copyright (c) 2026 Undervalued Books. All rights reserved.

package auth

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/undervaluedbooks/api/internal/platform/apperr"
	"github.com/undervaluedbooks/api/internal/platform/database/schema"
	"github.com/undervaluedbooks/api/internal/platform/dberr"
)

// PostgresUserRepository implements [UserRepository] over the users table.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a Postgres-backed user repository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

func (repository *PostgresUserRepository) FindByID(ctx context.Context, id int64) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.User.ID, schema.User.Username, schema.User.Email, schema.User.Password,
		schema.User.Role, schema.User.CreatedAt, schema.User.UpdatedAt,
		schema.User.Table,
		schema.User.ID,
	)
	return repository.scanUser(repository.pool.QueryRow(ctx, query, id), "find_user_by_id")
}

func (repository *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.User.ID, schema.User.Username, schema.User.Email, schema.User.Password,
		schema.User.Role, schema.User.CreatedAt, schema.User.UpdatedAt,
		schema.User.Table,
		schema.User.Email,
	)
	return repository.scanUser(repository.pool.QueryRow(ctx, query, email), "find_user_by_email")
}

func (repository *PostgresUserRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.User.ID, schema.User.Username, schema.User.Email, schema.User.Password,
		schema.User.Role, schema.User.CreatedAt, schema.User.UpdatedAt,
		schema.User.Table,
		schema.User.Username,
	)
	return repository.scanUser(repository.pool.QueryRow(ctx, query, username), "find_user_by_username")
}

func (repository *PostgresUserRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.User.Table, schema.User.ID,
	)

	var exists bool
	if err := repository.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "user_exists_by_id")
	}
	return exists, nil
}

func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s, %s`,
		schema.User.Table,
		schema.User.Username, schema.User.Email, schema.User.Password, schema.User.Role,
		schema.User.ID, schema.User.CreatedAt, schema.User.UpdatedAt,
	)

	err := repository.pool.QueryRow(ctx, query,
		user.Username, user.Email, user.PasswordHash, string(user.Role),
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		// The service prechecks uniqueness, but a concurrent registration
		// can still land on the unique index. Keep the message specific.
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Username or email is already registered")
		}
		return dberr.Wrap(err, "create_user")
	}

	return nil
}

func (repository *PostgresUserRepository) UpdatePassword(ctx context.Context, userID int64, newHash string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $1, %s = now() WHERE %s = $2`,
		schema.User.Table, schema.User.Password, schema.User.UpdatedAt, schema.User.ID,
	)

	tag, err := repository.pool.Exec(ctx, query, newHash, userID)
	if err != nil {
		return dberr.Wrap(err, "update_user_password")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "update_user_password")
	}

	return nil
}

func (repository *PostgresUserRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.User.Table, schema.User.ID,
	)

	tag, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_user")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "delete_user")
	}

	return nil
}

func (repository *PostgresUserRepository) scanUser(row pgx.Row, operation string) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, operation)
	}
	return user, nil
}

// PostgresSessionRepository implements [SessionRepository] over the
// sessions table.
type PostgresSessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a Postgres-backed session repository.
func NewSessionRepository(pool *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{pool: pool}
}

func (repository *PostgresSessionRepository) Create(ctx context.Context, session *Session) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s`,
		schema.Session.Table,
		schema.Session.ID, schema.Session.UserID, schema.Session.TokenHash,
		schema.Session.UserAgent, schema.Session.IPAddress, schema.Session.ExpiresAt,
		schema.Session.IsRevoked,
		schema.Session.CreatedAt,
	)

	err := repository.pool.QueryRow(ctx, query,
		session.ID, session.UserID, session.TokenHash,
		session.UserAgent, session.IPAddress, session.ExpiresAt, session.IsRevoked,
	).Scan(&session.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_session")
	}

	return nil
}

func (repository *PostgresSessionRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*Session, error) {
	// Revoked and expired sessions are invisible to lookups.
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = false AND %s > now()`,
		schema.Session.ID, schema.Session.UserID, schema.Session.TokenHash,
		schema.Session.UserAgent, schema.Session.IPAddress, schema.Session.ExpiresAt,
		schema.Session.IsRevoked, schema.Session.CreatedAt,
		schema.Session.Table,
		schema.Session.TokenHash, schema.Session.IsRevoked, schema.Session.ExpiresAt,
	)

	session := &Session{}
	err := repository.pool.QueryRow(ctx, query, tokenHash).Scan(
		&session.ID, &session.UserID, &session.TokenHash,
		&session.UserAgent, &session.IPAddress, &session.ExpiresAt,
		&session.IsRevoked, &session.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_session_by_token_hash")
	}

	return session, nil
}

func (repository *PostgresSessionRepository) Revoke(ctx context.Context, sessionID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = true WHERE %s = $1`,
		schema.Session.Table, schema.Session.IsRevoked, schema.Session.ID,
	)

	if _, err := repository.pool.Exec(ctx, query, sessionID); err != nil {
		return dberr.Wrap(err, "revoke_session")
	}
	return nil
}

func (repository *PostgresSessionRepository) RevokeAll(ctx context.Context, userID int64) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = true WHERE %s = $1`,
		schema.Session.Table, schema.Session.IsRevoked, schema.Session.UserID,
	)

	if _, err := repository.pool.Exec(ctx, query, userID); err != nil {
		return dberr.Wrap(err, "revoke_all_sessions")
	}
	return nil
}

func (repository *PostgresSessionRepository) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.Session.Table, schema.Session.UserID,
	)

	tag, err := repository.pool.Exec(ctx, query, userID)
	if err != nil {
		return 0, dberr.Wrap(err, "delete_sessions_for_user")
	}

	return tag.RowsAffected(), nil
}
