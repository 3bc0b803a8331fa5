package domain

import "time"

type Calendar struct {
	Id          CalendarId `json:"id"`
	OwnerUserId UserId     `json:"owner_user_id"`
	Name        string     `json:"name"`
	Color       *string    `json:"color"`
	// Role is a display-only annotation ("owner"); roles are never enforced.
	Role string `json:"role,omitempty"`
	// IsDefault marks the earliest-created calendar in list responses.
	// Not persisted.
	IsDefault bool      `json:"is_default,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OwnedBy is the single capability check for calendar-scoped operations.
// Event access resolves through its parent calendar's owner.
func (c *Calendar) OwnedBy(userId UserId) bool {
	return c.OwnerUserId == userId
}
