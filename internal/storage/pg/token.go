package pg

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/kalendo/kalendo/internal/domain"
	internal_errors "github.com/kalendo/kalendo/internal/errors"
)

// SaveToken persists the digest of a freshly issued bearer token and returns
// the stored row.
func (s *Storage) SaveToken(userId domain.UserId, tokenHash string) (domain.AccessToken, error) {
	var token domain.AccessToken
	err := s.db.QueryRow(
		"INSERT INTO access_tokens(user_id, token_hash) VALUES($1, $2) RETURNING id, user_id, token_hash, created_at",
		userId, tokenHash,
	).Scan(&token.Id, &token.UserId, &token.TokenHash, &token.CreatedAt)
	if err != nil {
		return domain.AccessToken{}, fmt.Errorf("failed to insert access token: %w", err)
	}
	return token, nil
}

// UserByTokenHash resolves a presented bearer token to its owner.
func (s *Storage) UserByTokenHash(tokenHash string) (domain.User, error) {
	var user domain.User
	err := s.db.QueryRow(`
        SELECT u.id, u.email, u.password_hash, u.failed_login_attempts, u.blocked_until, u.created_at, u.updated_at
        FROM access_tokens t
        JOIN users u ON u.id = t.user_id
        WHERE t.token_hash = $1`,
		tokenHash,
	).Scan(&user.Id, &user.Email, &user.PassHash, &user.FailedLoginAttempts, &user.BlockedUntil, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, internal_errors.NotFound("Token")
		}
		return domain.User{}, fmt.Errorf("failed to resolve token: %w", err)
	}
	return user, nil
}

// DeleteUserTokens revokes every token of the user. Idempotent: deleting zero
// rows is not an error.
func (s *Storage) DeleteUserTokens(userId domain.UserId) error {
	return s.deleteUserTokens(s.db, userId)
}

func (s *Storage) deleteUserTokens(q Querier, userId domain.UserId) error {
	if _, err := q.Exec("DELETE FROM access_tokens WHERE user_id = $1", userId); err != nil {
		return fmt.Errorf("failed to delete tokens: %w", err)
	}
	return nil
}
