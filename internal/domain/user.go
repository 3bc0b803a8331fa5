package domain

import "time"

type User struct {
	Id                  UserId     `json:"id"`
	Email               Email      `json:"email"`
	PassHash            string     `json:"-"`
	FailedLoginAttempts int        `json:"-"`
	BlockedUntil        *time.Time `json:"-"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// Blocked reports whether the account lockout window is still active.
func (u *User) Blocked(now time.Time) bool {
	return u.BlockedUntil != nil && u.BlockedUntil.After(now)
}

// AccessToken is an opaque bearer credential. Only the SHA-256 digest of the
// plaintext is ever persisted; the plaintext is returned to the client once,
// at issue time.
type AccessToken struct {
	Id        TokenId
	UserId    UserId
	TokenHash string
	CreatedAt time.Time
}
