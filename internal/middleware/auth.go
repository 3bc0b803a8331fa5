package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/kalendo/kalendo/internal/domain"
	"github.com/kalendo/kalendo/internal/errors"
	"github.com/kalendo/kalendo/internal/utils"
)

// Key to store the user in the request context
type key int

const UserKey key = 0

// TokenResolver maps a presented token digest to its owning user.
type TokenResolver interface {
	UserByTokenHash(tokenHash string) (domain.User, error)
}

// Auth is the access guard: every guarded request resolves the bearer token
// to a user and rejects blocked accounts, not just at login time.
type Auth struct {
	tokens TokenResolver
}

func NewAuth(tokens TokenResolver) *Auth {
	return &Auth{tokens}
}

// NeedAuth returns middleware that requires a valid bearer token.
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := a.resolveUser(r)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (a *Auth) resolveUser(r *http.Request) (*domain.User, error) {
	token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !found || token == "" {
		return nil, errors.Unauthenticated()
	}

	user, err := a.tokens.UserByTokenHash(utils.HashToken(token))
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.Unauthenticated()
		}
		return nil, err
	}

	if user.Blocked(time.Now()) {
		return nil, &errors.ErrorWithStatusCode{
			Message:    "Your account is temporarily blocked. Please try again later.",
			StatusCode: http.StatusUnauthorized,
		}
	}

	return &user, nil
}

// GetUserFromContext retrieves the authenticated user stashed by NeedAuth.
func GetUserFromContext(r *http.Request) *domain.User {
	user, ok := r.Context().Value(UserKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}
