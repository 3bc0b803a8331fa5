package service

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/kalendo/kalendo/internal/config"
	"github.com/kalendo/kalendo/internal/domain"
	"github.com/kalendo/kalendo/internal/errors"
	"github.com/kalendo/kalendo/internal/logger"
	"github.com/kalendo/kalendo/internal/utils"
)

const (
	msgInvalidCredentials = "The provided credentials are incorrect."
	msgAccountBlocked     = "Your account is temporarily blocked. Please try again later."
)

// to mock service in tests
type AuthService interface {
	Register(email, password, passwordConfirmation string) (domain.User, string, error)
	Login(email, password string) (domain.User, string, error)
	Logout(user domain.User) error
	UpdatePassword(user domain.User, currentPassword, newPassword, newPasswordConfirmation string) error
}

type Auth struct {
	storage AuthStorage
	cfg     *config.Config
}

type AuthStorage interface {
	SaveUser(email domain.Email, passHash string) (domain.User, error)
	UserByEmail(email domain.Email) (domain.User, error)
	RecordFailedLogin(userId domain.UserId, limit int, blockedUntil time.Time) (int, error)
	ResetLoginState(userId domain.UserId) error
	UpdatePassword(userId domain.UserId, newHash string) error

	SaveToken(userId domain.UserId, tokenHash string) (domain.AccessToken, error)
	DeleteUserTokens(userId domain.UserId) error
}

func NewAuth(storage AuthStorage, cfg *config.Config) *Auth {
	return &Auth{storage, cfg}
}

// Register creates the account and issues the first bearer token.
func (a *Auth) Register(email, password, passwordConfirmation string) (domain.User, string, error) {
	email = strings.ToLower(email)

	if err := validatePassword("password", password, passwordConfirmation); err != nil {
		return domain.User{}, "", err
	}

	passHash, err := bcrypt.GenerateFromPassword(bcryptInput(password), a.bcryptCost())
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return domain.User{}, "", err
	}

	user, err := a.storage.SaveUser(email, string(passHash))
	if err != nil {
		return domain.User{}, "", err
	}

	token, err := a.issueToken(user.Id)
	if err != nil {
		return domain.User{}, "", err
	}
	return user, token, nil
}

// Login drives the lockout state machine. A blocked account rejects every
// attempt without touching the password or the counter. A wrong password for
// an existing account increments the counter atomically and arms the block at
// the limit. Success resets counter and block; earlier tokens stay valid.
func (a *Auth) Login(email, password string) (domain.User, string, error) {
	email = strings.ToLower(email)

	user, err := a.storage.UserByEmail(email)
	if err != nil {
		if errors.IsNotFound(err) {
			// same message as wrong password, to not leak existing accounts
			return domain.User{}, "", &errors.ErrorWithStatusCode{Message: msgInvalidCredentials, StatusCode: http.StatusUnauthorized}
		}
		return domain.User{}, "", err
	}

	now := time.Now()
	if user.Blocked(now) {
		return domain.User{}, "", &errors.ErrorWithStatusCode{Message: msgAccountBlocked, StatusCode: http.StatusUnauthorized}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), bcryptInput(password)); err != nil {
		attempts, recErr := a.storage.RecordFailedLogin(user.Id, a.cfg.Public.FailedLoginLimit, now.Add(a.cfg.BlockDuration()))
		if recErr != nil {
			logger.Log.Error("failed to record login failure", "user_id", user.Id, "error", recErr)
			return domain.User{}, "", recErr
		}
		if attempts >= a.cfg.Public.FailedLoginLimit {
			logger.Log.Warn("account blocked after repeated login failures", "user_id", user.Id, "attempts", attempts)
		}
		return domain.User{}, "", &errors.ErrorWithStatusCode{Message: msgInvalidCredentials, StatusCode: http.StatusUnauthorized}
	}

	if err := a.storage.ResetLoginState(user.Id); err != nil {
		return domain.User{}, "", err
	}
	user.FailedLoginAttempts = 0
	user.BlockedUntil = nil

	token, err := a.issueToken(user.Id)
	if err != nil {
		return domain.User{}, "", err
	}
	return user, token, nil
}

// Logout revokes every token of the caller, not just the presented one.
func (a *Auth) Logout(user domain.User) error {
	return a.storage.DeleteUserTokens(user.Id)
}

// UpdatePassword verifies the current password, then sets the new hash and
// revokes all tokens in one storage transaction. The caller's own token dies
// with the rest; the response does not depend on it being rechecked.
func (a *Auth) UpdatePassword(user domain.User, currentPassword, newPassword, newPasswordConfirmation string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), bcryptInput(currentPassword)); err != nil {
		return errors.NewFieldValidation("current_password", "The current password is incorrect.")
	}

	if err := validatePassword("new_password", newPassword, newPasswordConfirmation); err != nil {
		return err
	}

	newHash, err := bcrypt.GenerateFromPassword(bcryptInput(newPassword), a.bcryptCost())
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return err
	}

	return a.storage.UpdatePassword(user.Id, string(newHash))
}

func (a *Auth) issueToken(userId domain.UserId) (string, error) {
	plain := utils.NewPlainToken()
	token, err := a.storage.SaveToken(userId, utils.HashToken(plain))
	if err != nil {
		return "", err
	}
	logger.Log.Debug("access token issued", "token_id", token.Id, "user_id", token.UserId)
	return plain, nil
}

// bcrypt keys from at most 72 password bytes. The policy allows up to 255
// characters, so both hashing and comparison truncate to the same prefix;
// otherwise a policy-valid long password would fail to hash at all.
const bcryptMaxPasswordBytes = 72

func bcryptInput(password string) []byte {
	if len(password) > bcryptMaxPasswordBytes {
		password = password[:bcryptMaxPasswordBytes]
	}
	return []byte(password)
}

func (a *Auth) bcryptCost() int {
	if a.cfg.Public.BcryptCost > 0 {
		return a.cfg.Public.BcryptCost
	}
	return bcrypt.DefaultCost
}

const passwordSpecials = "@$!%*?&"

// validatePassword enforces the composite policy: length 8-255, at least one
// lowercase, uppercase, digit and special character, and an exact confirmation
// match. field names the payload field the messages hang off.
func validatePassword(field, password, confirmation string) error {
	fields := map[string][]string{}

	if len(password) < 8 {
		fields[field] = append(fields[field], "The "+field+" must be at least 8 characters.")
	}
	if len(password) > 255 {
		fields[field] = append(fields[field], "The "+field+" may not be greater than 255 characters.")
	}

	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	if !lower || !upper || !digit || !special {
		fields[field] = append(fields[field], "The "+field+" must contain at least one lowercase letter, one uppercase letter, one number, and one special character.")
	}

	if password != confirmation {
		fields[field+"_confirmation"] = append(fields[field+"_confirmation"], "The "+field+" confirmation does not match.")
	}

	if len(fields) > 0 {
		return errors.NewValidation(fields)
	}
	return nil
}
