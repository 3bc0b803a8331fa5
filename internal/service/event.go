package service

import (
	"time"

	"github.com/kalendo/kalendo/internal/api"
	"github.com/kalendo/kalendo/internal/domain"
	"github.com/kalendo/kalendo/internal/errors"
	"github.com/kalendo/kalendo/internal/utils"
)

const defaultTimezone = "Europe/Warsaw"

// to mock service in tests
type EventService interface {
	List(user domain.User, calendarId domain.CalendarId, from, to string) ([]domain.Event, error)
	Create(user domain.User, calendarId domain.CalendarId, req api.CreateEventRequest) (domain.Event, error)
	Get(user domain.User, id domain.EventId) (domain.Event, error)
	Update(user domain.User, id domain.EventId, req api.UpdateEventRequest) (domain.Event, error)
	Delete(user domain.User, id domain.EventId) error
}

type Event struct {
	storage EventStorage
}

type EventStorage interface {
	Calendar(id domain.CalendarId) (domain.Calendar, error)
	EventsByCalendar(calendarId domain.CalendarId, from, to *time.Time) ([]domain.Event, error)
	SaveEvent(e domain.Event) (domain.Event, error)
	Event(id domain.EventId) (domain.Event, domain.UserId, error)
	UpdateEvent(e domain.Event) (domain.Event, error)
	DeleteEvent(id domain.EventId) error
}

func NewEvent(storage EventStorage) *Event {
	return &Event{storage}
}

// List returns the calendar's events ascending by start. When both bounds are
// given they form a half-open window [from, to) and only overlapping events
// are kept; a single bound is ignored.
func (e *Event) List(user domain.User, calendarId domain.CalendarId, from, to string) ([]domain.Event, error) {
	if err := e.ensureCalendarOwner(user, calendarId); err != nil {
		return nil, err
	}

	var fromT, toT *time.Time
	if from != "" && to != "" {
		parsedFrom, err := utils.ParseTime("from", from)
		if err != nil {
			return nil, err
		}
		parsedTo, err := utils.ParseTime("to", to)
		if err != nil {
			return nil, err
		}
		if !parsedTo.After(parsedFrom) {
			return nil, errors.NewFieldValidation("to", "The to must be a date after from.")
		}
		fromT, toT = &parsedFrom, &parsedTo
	}

	return e.storage.EventsByCalendar(calendarId, fromT, toT)
}

func (e *Event) Create(user domain.User, calendarId domain.CalendarId, req api.CreateEventRequest) (domain.Event, error) {
	if err := e.ensureCalendarOwner(user, calendarId); err != nil {
		return domain.Event{}, err
	}

	startsAt, err := utils.ParseTime("starts_at", req.StartsAt)
	if err != nil {
		return domain.Event{}, err
	}
	endsAt, err := utils.ParseTime("ends_at", req.EndsAt)
	if err != nil {
		return domain.Event{}, err
	}
	if err := validateEventWindow(startsAt, endsAt); err != nil {
		return domain.Event{}, err
	}

	event := domain.Event{
		CalendarId:     calendarId,
		Title:          sanitizeText(req.Title),
		Description:    sanitizeTextPtr(req.Description),
		Location:       sanitizeTextPtr(req.Location),
		StartsAt:       startsAt,
		EndsAt:         endsAt,
		Timezone:       defaultTimezone,
		RecurrenceRule: req.RecurrenceRule,
		Status:         domain.EventStatusConfirmed,
	}
	if req.AllDay != nil {
		event.AllDay = *req.AllDay
	}
	if req.Timezone != nil && *req.Timezone != "" {
		event.Timezone = *req.Timezone
	}

	return e.storage.SaveEvent(event)
}

func (e *Event) Get(user domain.User, id domain.EventId) (domain.Event, error) {
	event, _, err := e.ownedEvent(user, id)
	return event, err
}

// Update merges the partial payload onto the stored event. Whenever either
// timestamp is present, the effective pair (payload value, else stored value)
// is re-validated against the strict ends-after-starts rule.
func (e *Event) Update(user domain.User, id domain.EventId, req api.UpdateEventRequest) (domain.Event, error) {
	event, _, err := e.ownedEvent(user, id)
	if err != nil {
		return domain.Event{}, err
	}

	if req.StartsAt != nil || req.EndsAt != nil {
		startsAt, endsAt := event.StartsAt, event.EndsAt
		if req.StartsAt != nil {
			if startsAt, err = utils.ParseTime("starts_at", *req.StartsAt); err != nil {
				return domain.Event{}, err
			}
		}
		if req.EndsAt != nil {
			if endsAt, err = utils.ParseTime("ends_at", *req.EndsAt); err != nil {
				return domain.Event{}, err
			}
		}
		if err := validateEventWindow(startsAt, endsAt); err != nil {
			return domain.Event{}, err
		}
		event.StartsAt, event.EndsAt = startsAt, endsAt
	}

	if req.Title != nil {
		event.Title = sanitizeText(*req.Title)
	}
	if req.Description != nil {
		event.Description = sanitizeTextPtr(req.Description)
	}
	if req.Location != nil {
		event.Location = sanitizeTextPtr(req.Location)
	}
	if req.AllDay != nil {
		event.AllDay = *req.AllDay
	}
	if req.Timezone != nil && *req.Timezone != "" {
		event.Timezone = *req.Timezone
	}
	if req.RecurrenceRule != nil {
		event.RecurrenceRule = req.RecurrenceRule
	}
	if req.Status != nil {
		if *req.Status != domain.EventStatusConfirmed && *req.Status != domain.EventStatusCancelled {
			return domain.Event{}, errors.NewFieldValidation("status", "The selected status is invalid.")
		}
		event.Status = *req.Status
	}

	return e.storage.UpdateEvent(event)
}

func (e *Event) Delete(user domain.User, id domain.EventId) error {
	if _, _, err := e.ownedEvent(user, id); err != nil {
		return err
	}
	return e.storage.DeleteEvent(id)
}

// ownedEvent resolves ownership transitively through the parent calendar:
// unknown id is 404, an event in someone else's calendar is 403.
func (e *Event) ownedEvent(user domain.User, id domain.EventId) (domain.Event, domain.UserId, error) {
	event, ownerId, err := e.storage.Event(id)
	if err != nil {
		return domain.Event{}, 0, err
	}
	if err := ensureOwner(user, ownerId); err != nil {
		return domain.Event{}, 0, err
	}
	return event, ownerId, nil
}

func (e *Event) ensureCalendarOwner(user domain.User, calendarId domain.CalendarId) error {
	cal, err := e.storage.Calendar(calendarId)
	if err != nil {
		return err
	}
	if !cal.OwnedBy(user.Id) {
		return errors.Forbidden()
	}
	return nil
}

// validateEventWindow rejects ends_at <= starts_at; equality is not allowed.
func validateEventWindow(startsAt, endsAt time.Time) error {
	if !endsAt.After(startsAt) {
		return errors.NewFieldValidation("ends_at", "The ends_at must be a date after starts_at.")
	}
	return nil
}
