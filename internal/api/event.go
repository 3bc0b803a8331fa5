package api

import "github.com/kalendo/kalendo/internal/domain"

// Event timestamps travel as strings so malformed values surface as field
// validation errors instead of json decode failures. Accepted layouts are
// RFC 3339, "2006-01-02T15:04" and "2006-01-02".

type CreateEventRequest struct {
	Title          string  `json:"title" validate:"required,max=200"`
	Description    *string `json:"description,omitempty"`
	Location       *string `json:"location,omitempty"`
	StartsAt       string  `json:"starts_at" validate:"required"`
	EndsAt         string  `json:"ends_at" validate:"required"`
	AllDay         *bool   `json:"all_day,omitempty"`
	Timezone       *string `json:"timezone,omitempty" validate:"omitempty,max=64"`
	RecurrenceRule *string `json:"recurrence_rule,omitempty"`
}

// UpdateEventRequest carries a partial field set; nil means "leave as is".
type UpdateEventRequest struct {
	Title          *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description    *string `json:"description,omitempty"`
	Location       *string `json:"location,omitempty"`
	StartsAt       *string `json:"starts_at,omitempty"`
	EndsAt         *string `json:"ends_at,omitempty"`
	AllDay         *bool   `json:"all_day,omitempty"`
	Timezone       *string `json:"timezone,omitempty" validate:"omitempty,max=64"`
	RecurrenceRule *string `json:"recurrence_rule,omitempty"`
	Status         *string `json:"status,omitempty" validate:"omitempty,oneof=confirmed cancelled"`
}

type EventResponse struct {
	Event domain.Event `json:"event"`
}

type EventListResponse struct {
	Items []domain.Event `json:"items"`
}
