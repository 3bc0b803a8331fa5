package api

import "github.com/kalendo/kalendo/internal/domain"

type CreateCalendarRequest struct {
	Name  string  `json:"name" validate:"required,max=120"`
	Color *string `json:"color,omitempty" validate:"omitempty,max=20"`
}

// UpdateCalendarRequest carries a partial field set; nil means "leave as is".
type UpdateCalendarRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Color *string `json:"color,omitempty" validate:"omitempty,max=20"`
}

type CalendarResponse struct {
	Calendar domain.Calendar `json:"calendar"`
}

type CalendarListResponse struct {
	Items []domain.Calendar `json:"items"`
}
