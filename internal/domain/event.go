package domain

import "time"

type Event struct {
	Id          EventId    `json:"id"`
	CalendarId  CalendarId `json:"calendar_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
	StartsAt    time.Time  `json:"starts_at"`
	EndsAt      time.Time  `json:"ends_at"`
	AllDay      bool       `json:"all_day"`
	Timezone    string     `json:"timezone"`
	// RecurrenceRule is stored verbatim and never expanded.
	RecurrenceRule *string   `json:"recurrence_rule"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Overlaps reports whether the event intersects the half-open window [from, to).
// Boundary-touching intervals do not overlap.
func (e *Event) Overlaps(from, to time.Time) bool {
	return e.StartsAt.Before(to) && e.EndsAt.After(from)
}
