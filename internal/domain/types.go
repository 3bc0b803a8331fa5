package domain

type (
	Email    = string
	Password = string
	UserId   = int64

	TokenId    = int64
	CalendarId = int64
	EventId    = int64
)

// Event status values. The enum is closed: writes reject anything else.
const (
	EventStatusConfirmed = "confirmed"
	EventStatusCancelled = "cancelled"
)
