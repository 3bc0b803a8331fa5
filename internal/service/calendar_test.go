package service

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalendo/kalendo/internal/domain"
	internal_errors "github.com/kalendo/kalendo/internal/errors"
)

type MockCalendarStorage struct {
	EnsureDefaultCalendarFunc func(ownerId domain.UserId, name, color string) error
	CalendarsByOwnerFunc      func(ownerId domain.UserId) ([]domain.Calendar, error)
	SaveCalendarFunc          func(ownerId domain.UserId, name string, color *string) (domain.Calendar, error)
	CalendarFunc              func(id domain.CalendarId) (domain.Calendar, error)
	UpdateCalendarFunc        func(cal domain.Calendar) (domain.Calendar, error)
	DeleteCalendarFunc        func(id domain.CalendarId) error
}

func (m *MockCalendarStorage) EnsureDefaultCalendar(ownerId domain.UserId, name, color string) error {
	if m.EnsureDefaultCalendarFunc != nil {
		return m.EnsureDefaultCalendarFunc(ownerId, name, color)
	}
	return nil
}

func (m *MockCalendarStorage) CalendarsByOwner(ownerId domain.UserId) ([]domain.Calendar, error) {
	if m.CalendarsByOwnerFunc != nil {
		return m.CalendarsByOwnerFunc(ownerId)
	}
	return nil, nil
}

func (m *MockCalendarStorage) SaveCalendar(ownerId domain.UserId, name string, color *string) (domain.Calendar, error) {
	if m.SaveCalendarFunc != nil {
		return m.SaveCalendarFunc(ownerId, name, color)
	}
	return domain.Calendar{Id: 1, OwnerUserId: ownerId, Name: name, Color: color}, nil
}

func (m *MockCalendarStorage) Calendar(id domain.CalendarId) (domain.Calendar, error) {
	if m.CalendarFunc != nil {
		return m.CalendarFunc(id)
	}
	return domain.Calendar{}, internal_errors.NotFound("Calendar")
}

func (m *MockCalendarStorage) UpdateCalendar(cal domain.Calendar) (domain.Calendar, error) {
	if m.UpdateCalendarFunc != nil {
		return m.UpdateCalendarFunc(cal)
	}
	return cal, nil
}

func (m *MockCalendarStorage) DeleteCalendar(id domain.CalendarId) error {
	if m.DeleteCalendarFunc != nil {
		return m.DeleteCalendarFunc(id)
	}
	return nil
}

var testUser = domain.User{Id: 42, Email: "owner@x.com"}

func TestCalendarList(t *testing.T) {
	t.Run("provisions the default calendar before listing", func(t *testing.T) {
		order := []string{}
		storage := &MockCalendarStorage{
			EnsureDefaultCalendarFunc: func(ownerId domain.UserId, name, color string) error {
				order = append(order, "ensure")
				assert.Equal(t, testUser.Id, ownerId)
				assert.Equal(t, "My calendar", name)
				assert.Equal(t, "#2563eb", color)
				return nil
			},
			CalendarsByOwnerFunc: func(ownerId domain.UserId) ([]domain.Calendar, error) {
				order = append(order, "list")
				return []domain.Calendar{{Id: 1, OwnerUserId: ownerId, Name: "My calendar"}}, nil
			},
		}
		service := NewCalendar(storage, testConfig())

		calendars, err := service.List(testUser)

		require.NoError(t, err)
		assert.Equal(t, []string{"ensure", "list"}, order)
		require.Len(t, calendars, 1)
		assert.True(t, calendars[0].IsDefault)
		assert.Equal(t, "owner", calendars[0].Role)
	})

	t.Run("only the earliest calendar is flagged default", func(t *testing.T) {
		storage := &MockCalendarStorage{
			CalendarsByOwnerFunc: func(ownerId domain.UserId) ([]domain.Calendar, error) {
				return []domain.Calendar{
					{Id: 1, OwnerUserId: ownerId, Name: "My calendar"},
					{Id: 2, OwnerUserId: ownerId, Name: "Work"},
				}, nil
			},
		}
		service := NewCalendar(storage, testConfig())

		calendars, err := service.List(testUser)

		require.NoError(t, err)
		require.Len(t, calendars, 2)
		assert.True(t, calendars[0].IsDefault)
		assert.False(t, calendars[1].IsDefault)
		assert.Equal(t, "owner", calendars[1].Role)
	})
}

func TestCalendarCreate(t *testing.T) {
	t.Run("strips markup from the name", func(t *testing.T) {
		storage := &MockCalendarStorage{
			SaveCalendarFunc: func(ownerId domain.UserId, name string, color *string) (domain.Calendar, error) {
				assert.Equal(t, "Family", name)
				return domain.Calendar{Id: 3, OwnerUserId: ownerId, Name: name, Color: color}, nil
			},
		}
		service := NewCalendar(storage, testConfig())

		cal, err := service.Create(testUser, "<b>Family</b>", nil)

		require.NoError(t, err)
		assert.Equal(t, "owner", cal.Role)
	})
}

func TestCalendarOwnership(t *testing.T) {
	foreign := domain.Calendar{Id: 10, OwnerUserId: 999, Name: "Theirs"}
	mine := domain.Calendar{Id: 11, OwnerUserId: testUser.Id, Name: "Mine"}
	storage := &MockCalendarStorage{
		CalendarFunc: func(id domain.CalendarId) (domain.Calendar, error) {
			switch id {
			case foreign.Id:
				return foreign, nil
			case mine.Id:
				return mine, nil
			}
			return domain.Calendar{}, internal_errors.NotFound("Calendar")
		},
	}
	service := NewCalendar(storage, testConfig())

	t.Run("unknown id is 404 before any ownership check", func(t *testing.T) {
		_, err := service.Get(testUser, 777)
		assertStatusCode(t, err, http.StatusNotFound)
	})

	t.Run("someone else's calendar is 403", func(t *testing.T) {
		_, err := service.Get(testUser, foreign.Id)
		assertStatusCode(t, err, http.StatusForbidden)
		assert.Equal(t, "This action is unauthorized.", err.Error())
	})

	t.Run("update and delete gate the same way", func(t *testing.T) {
		name := "New"
		_, err := service.Update(testUser, foreign.Id, &name, nil)
		assertStatusCode(t, err, http.StatusForbidden)

		err = service.Delete(testUser, foreign.Id)
		assertStatusCode(t, err, http.StatusForbidden)
	})

	t.Run("owner reads their calendar", func(t *testing.T) {
		cal, err := service.Get(testUser, mine.Id)
		require.NoError(t, err)
		assert.Equal(t, "Mine", cal.Name)
		assert.Equal(t, "owner", cal.Role)
	})
}

func TestCalendarUpdate(t *testing.T) {
	t.Run("merges only the provided fields", func(t *testing.T) {
		color := "#ff0000"
		stored := domain.Calendar{Id: 11, OwnerUserId: testUser.Id, Name: "Mine", Color: &color}
		storage := &MockCalendarStorage{
			CalendarFunc: func(id domain.CalendarId) (domain.Calendar, error) { return stored, nil },
			UpdateCalendarFunc: func(cal domain.Calendar) (domain.Calendar, error) {
				assert.Equal(t, "Renamed", cal.Name)
				require.NotNil(t, cal.Color)
				assert.Equal(t, "#ff0000", *cal.Color) // untouched
				return cal, nil
			},
		}
		service := NewCalendar(storage, testConfig())

		name := "Renamed"
		updated, err := service.Update(testUser, stored.Id, &name, nil)

		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Name)
	})
}

func TestCalendarDelete(t *testing.T) {
	t.Run("owner deletes and storage is asked once", func(t *testing.T) {
		deletes := 0
		storage := &MockCalendarStorage{
			CalendarFunc: func(id domain.CalendarId) (domain.Calendar, error) {
				return domain.Calendar{Id: id, OwnerUserId: testUser.Id}, nil
			},
			DeleteCalendarFunc: func(id domain.CalendarId) error {
				deletes++
				assert.Equal(t, domain.CalendarId(11), id)
				return nil
			},
		}
		service := NewCalendar(storage, testConfig())

		require.NoError(t, service.Delete(testUser, 11))
		assert.Equal(t, 1, deletes)
	})
}
