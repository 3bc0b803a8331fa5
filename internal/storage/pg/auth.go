package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/kalendo/kalendo/internal/domain"
	internal_errors "github.com/kalendo/kalendo/internal/errors"
)

const pqUniqueViolation = "23505"

const userColumns = "id, email, password_hash, failed_login_attempts, blocked_until, created_at, updated_at"

// =========================================================================
// Public methods (satisfy the service.AuthStorage interface)
// =========================================================================

// SaveUser inserts a new user record. A duplicate email comes back as a
// field-level validation error.
func (s *Storage) SaveUser(email domain.Email, passHash string) (domain.User, error) {
	var user domain.User
	err := s.db.QueryRow(
		"INSERT INTO users(email, password_hash) VALUES($1, $2) RETURNING "+userColumns,
		email, passHash,
	).Scan(&user.Id, &user.Email, &user.PassHash, &user.FailedLoginAttempts, &user.BlockedUntil, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return domain.User{}, internal_errors.NewFieldValidation("email", "The email has already been taken.")
		}
		return domain.User{}, fmt.Errorf("failed to insert user: %w", err)
	}
	return user, nil
}

func (s *Storage) UserByEmail(email domain.Email) (domain.User, error) {
	return s.userByEmail(s.db, email)
}

// RecordFailedLogin increments the failure counter atomically and arms the
// lockout in the same statement once the new count reaches limit. Returns the
// new count. Expiry of a previous block never resets the counter; only a
// successful login does.
func (s *Storage) RecordFailedLogin(userId domain.UserId, limit int, blockedUntil time.Time) (int, error) {
	var attempts int
	err := s.db.QueryRow(`
        UPDATE users
        SET failed_login_attempts = failed_login_attempts + 1,
            blocked_until = CASE WHEN failed_login_attempts + 1 >= $2 THEN $3 ELSE blocked_until END,
            updated_at = now()
        WHERE id = $1
        RETURNING failed_login_attempts`,
		userId, limit, blockedUntil,
	).Scan(&attempts)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, internal_errors.NotFound("User")
		}
		return 0, fmt.Errorf("failed to record failed login: %w", err)
	}
	return attempts, nil
}

// ResetLoginState zeroes the failure counter and clears any block.
func (s *Storage) ResetLoginState(userId domain.UserId) error {
	_, err := s.db.Exec(
		"UPDATE users SET failed_login_attempts = 0, blocked_until = NULL, updated_at = now() WHERE id = $1",
		userId,
	)
	if err != nil {
		return fmt.Errorf("failed to reset login state: %w", err)
	}
	return nil
}

// UpdatePassword sets a new password hash and revokes every token of the user
// in the same transaction, so a concurrent password change cannot leave stale
// tokens alive.
func (s *Storage) UpdatePassword(userId domain.UserId, newHash string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.deleteUserTokens(tx, userId); err != nil {
			return err
		}
		result, err := tx.Exec("UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2", newHash, userId)
		if err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check affected rows for password update: %w", err)
		}
		if rowsAffected == 0 {
			return internal_errors.NotFound("User")
		}
		return nil
	})
}

// =========================================================================
// Internal methods (core database logic)
// =========================================================================

func (s *Storage) userByEmail(q Querier, email domain.Email) (domain.User, error) {
	var user domain.User
	err := q.QueryRow("SELECT "+userColumns+" FROM users WHERE email = $1", email).
		Scan(&user.Id, &user.Email, &user.PassHash, &user.FailedLoginAttempts, &user.BlockedUntil, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, internal_errors.NotFound("User")
		}
		return domain.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}
