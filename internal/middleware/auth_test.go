package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalendo/kalendo/internal/domain"
	internal_errors "github.com/kalendo/kalendo/internal/errors"
	"github.com/kalendo/kalendo/internal/utils"
)

type MockTokenResolver struct {
	UserByTokenHashFunc func(tokenHash string) (domain.User, error)
}

func (m *MockTokenResolver) UserByTokenHash(tokenHash string) (domain.User, error) {
	if m.UserByTokenHashFunc != nil {
		return m.UserByTokenHashFunc(tokenHash)
	}
	return domain.User{}, internal_errors.NotFound("User")
}

func runGuarded(t *testing.T, resolver TokenResolver, authorization string) (*httptest.ResponseRecorder, *domain.User) {
	t.Helper()

	var seen *domain.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetUserFromContext(r)
		w.WriteHeader(http.StatusOK)
	})

	r := httptest.NewRequest(http.MethodGet, "/v1/calendars", nil)
	if authorization != "" {
		r.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()

	NewAuth(resolver).NeedAuth()(next).ServeHTTP(w, r)
	return w, seen
}

func TestNeedAuth(t *testing.T) {
	t.Run("missing header", func(t *testing.T) {
		w, seen := runGuarded(t, &MockTokenResolver{}, "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Nil(t, seen)
		assert.Contains(t, w.Body.String(), "Unauthenticated.")
	})

	t.Run("wrong scheme", func(t *testing.T) {
		w, seen := runGuarded(t, &MockTokenResolver{}, "Basic dXNlcjpwYXNz")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Nil(t, seen)
	})

	t.Run("unknown token maps to the same unauthenticated reply", func(t *testing.T) {
		resolver := &MockTokenResolver{
			UserByTokenHashFunc: func(tokenHash string) (domain.User, error) {
				return domain.User{}, internal_errors.NotFound("User")
			},
		}

		w, seen := runGuarded(t, resolver, "Bearer deadbeef")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Nil(t, seen)
		assert.Contains(t, w.Body.String(), "Unauthenticated.")
	})

	t.Run("valid token resolves by digest and stashes the user", func(t *testing.T) {
		plain := utils.NewPlainToken()
		resolver := &MockTokenResolver{
			UserByTokenHashFunc: func(tokenHash string) (domain.User, error) {
				// the middleware must never send the plaintext to storage
				assert.Equal(t, utils.HashToken(plain), tokenHash)
				assert.NotEqual(t, plain, tokenHash)
				return domain.User{Id: 42, Email: "owner@x.com"}, nil
			},
		}

		w, seen := runGuarded(t, resolver, "Bearer "+plain)

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, seen)
		assert.Equal(t, domain.UserId(42), seen.Id)
	})

	t.Run("blocked account is rejected on every guarded request", func(t *testing.T) {
		until := time.Now().Add(time.Hour)
		resolver := &MockTokenResolver{
			UserByTokenHashFunc: func(tokenHash string) (domain.User, error) {
				return domain.User{Id: 42, BlockedUntil: &until}, nil
			},
		}

		w, seen := runGuarded(t, resolver, "Bearer sometoken")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Nil(t, seen)
		assert.Contains(t, w.Body.String(), "temporarily blocked")
	})

	t.Run("expired block passes through", func(t *testing.T) {
		until := time.Now().Add(-time.Minute)
		resolver := &MockTokenResolver{
			UserByTokenHashFunc: func(tokenHash string) (domain.User, error) {
				return domain.User{Id: 42, BlockedUntil: &until}, nil
			},
		}

		w, seen := runGuarded(t, resolver, "Bearer sometoken")

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, seen)
	})
}
