package service

import (
	"github.com/kalendo/kalendo/internal/config"
	"github.com/kalendo/kalendo/internal/domain"
	"github.com/kalendo/kalendo/internal/errors"
)

const roleOwner = "owner"

// to mock service in tests
type CalendarService interface {
	List(user domain.User) ([]domain.Calendar, error)
	Create(user domain.User, name string, color *string) (domain.Calendar, error)
	Get(user domain.User, id domain.CalendarId) (domain.Calendar, error)
	Update(user domain.User, id domain.CalendarId, name, color *string) (domain.Calendar, error)
	Delete(user domain.User, id domain.CalendarId) error
}

type Calendar struct {
	storage CalendarStorage
	cfg     *config.Config
}

type CalendarStorage interface {
	EnsureDefaultCalendar(ownerId domain.UserId, name, color string) error
	CalendarsByOwner(ownerId domain.UserId) ([]domain.Calendar, error)
	SaveCalendar(ownerId domain.UserId, name string, color *string) (domain.Calendar, error)
	Calendar(id domain.CalendarId) (domain.Calendar, error)
	UpdateCalendar(cal domain.Calendar) (domain.Calendar, error)
	DeleteCalendar(id domain.CalendarId) error
}

func NewCalendar(storage CalendarStorage, cfg *config.Config) *Calendar {
	return &Calendar{storage, cfg}
}

// List returns the caller's calendars oldest first. The idempotent
// ensure-default step runs up front, so a brand-new user always leaves with
// exactly one calendar; the earliest one is flagged as default for display.
func (c *Calendar) List(user domain.User) ([]domain.Calendar, error) {
	if err := c.storage.EnsureDefaultCalendar(user.Id, c.cfg.Public.DefaultCalendarName, c.cfg.Public.DefaultCalendarColor); err != nil {
		return nil, err
	}

	calendars, err := c.storage.CalendarsByOwner(user.Id)
	if err != nil {
		return nil, err
	}
	for i := range calendars {
		calendars[i].Role = roleOwner
	}
	if len(calendars) > 0 {
		calendars[0].IsDefault = true
	}
	return calendars, nil
}

func (c *Calendar) Create(user domain.User, name string, color *string) (domain.Calendar, error) {
	cal, err := c.storage.SaveCalendar(user.Id, sanitizeText(name), color)
	if err != nil {
		return domain.Calendar{}, err
	}
	cal.Role = roleOwner
	return cal, nil
}

func (c *Calendar) Get(user domain.User, id domain.CalendarId) (domain.Calendar, error) {
	cal, err := c.ownedCalendar(user, id)
	if err != nil {
		return domain.Calendar{}, err
	}
	cal.Role = roleOwner
	return cal, nil
}

func (c *Calendar) Update(user domain.User, id domain.CalendarId, name, color *string) (domain.Calendar, error) {
	cal, err := c.ownedCalendar(user, id)
	if err != nil {
		return domain.Calendar{}, err
	}

	if name != nil {
		cal.Name = sanitizeText(*name)
	}
	if color != nil {
		cal.Color = color
	}

	updated, err := c.storage.UpdateCalendar(cal)
	if err != nil {
		return domain.Calendar{}, err
	}
	updated.Role = roleOwner
	return updated, nil
}

// Delete removes the calendar and, through the storage cascade, every event
// in it.
func (c *Calendar) Delete(user domain.User, id domain.CalendarId) error {
	if _, err := c.ownedCalendar(user, id); err != nil {
		return err
	}
	return c.storage.DeleteCalendar(id)
}

// ownedCalendar fetches the calendar and gates on ownership: unknown id is
// 404, someone else's calendar is 403.
func (c *Calendar) ownedCalendar(user domain.User, id domain.CalendarId) (domain.Calendar, error) {
	cal, err := c.storage.Calendar(id)
	if err != nil {
		return domain.Calendar{}, err
	}
	if !cal.OwnedBy(user.Id) {
		return domain.Calendar{}, errors.Forbidden()
	}
	return cal, nil
}
