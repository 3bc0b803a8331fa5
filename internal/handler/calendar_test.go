package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalendo/kalendo/internal/domain"
	internal_errors "github.com/kalendo/kalendo/internal/errors"
)

func TestGetCalendars(t *testing.T) {
	t.Run("requires an authenticated user", func(t *testing.T) {
		h, _, _, _ := newTestHandler()

		w := do(h.GetCalendars, newRequest(http.MethodGet, "/v1/calendars", "", nil, nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("lists with the default flag and role annotation", func(t *testing.T) {
		h, _, calendar, _ := newTestHandler()
		calendar.ListFunc = func(user domain.User) ([]domain.Calendar, error) {
			return []domain.Calendar{
				{Id: 1, OwnerUserId: user.Id, Name: "My calendar", Role: "owner", IsDefault: true},
				{Id: 2, OwnerUserId: user.Id, Name: "Work", Role: "owner"},
			}, nil
		}

		w := do(h.GetCalendars, newRequest(http.MethodGet, "/v1/calendars", "", &testUser, nil))

		assert.Equal(t, http.StatusOK, w.Code)
		items := decodeBody(t, w.Body.Bytes())["items"].([]any)
		require.Len(t, items, 2)
		first := items[0].(map[string]any)
		assert.Equal(t, true, first["is_default"])
		assert.Equal(t, "owner", first["role"])
	})
}

func TestCreateCalendar(t *testing.T) {
	t.Run("201 with the created calendar", func(t *testing.T) {
		h, _, calendar, _ := newTestHandler()
		calendar.CreateFunc = func(user domain.User, name string, color *string) (domain.Calendar, error) {
			require.NotNil(t, color)
			assert.Equal(t, "#00ff00", *color)
			return domain.Calendar{Id: 5, OwnerUserId: user.Id, Name: name, Color: color, Role: "owner"}, nil
		}

		payload := `{"name":"Work","color":"#00ff00"}`
		w := do(h.CreateCalendar, newRequest(http.MethodPost, "/v1/calendars", payload, &testUser, nil))

		assert.Equal(t, http.StatusCreated, w.Code)
		cal := decodeBody(t, w.Body.Bytes())["calendar"].(map[string]any)
		assert.Equal(t, "Work", cal["name"])
	})

	t.Run("missing name is 422", func(t *testing.T) {
		h, _, _, _ := newTestHandler()

		w := do(h.CreateCalendar, newRequest(http.MethodPost, "/v1/calendars", `{}`, &testUser, nil))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		fields := decodeBody(t, w.Body.Bytes())["errors"].(map[string]any)
		assert.Contains(t, fields, "name")
	})
}

func TestGetCalendar(t *testing.T) {
	t.Run("non-numeric id behaves like an unknown resource", func(t *testing.T) {
		h, _, _, _ := newTestHandler()

		r := newRequest(http.MethodGet, "/v1/calendars/abc", "", &testUser, map[string]string{"calendar": "abc"})
		w := do(h.GetCalendar, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("forbidden calendars stay forbidden end to end", func(t *testing.T) {
		h, _, calendar, _ := newTestHandler()
		calendar.GetFunc = func(user domain.User, id domain.CalendarId) (domain.Calendar, error) {
			return domain.Calendar{}, internal_errors.Forbidden()
		}

		r := newRequest(http.MethodGet, "/v1/calendars/10", "", &testUser, map[string]string{"calendar": "10"})
		w := do(h.GetCalendar, r)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "This action is unauthorized.", decodeBody(t, w.Body.Bytes())["message"])
	})
}

func TestUpdateCalendarHandler(t *testing.T) {
	t.Run("partial payload reaches the service as pointers", func(t *testing.T) {
		h, _, calendar, _ := newTestHandler()
		calendar.UpdateFunc = func(user domain.User, id domain.CalendarId, name, color *string) (domain.Calendar, error) {
			require.NotNil(t, name)
			assert.Equal(t, "Renamed", *name)
			assert.Nil(t, color)
			return domain.Calendar{Id: id, OwnerUserId: user.Id, Name: *name, Role: "owner"}, nil
		}

		r := newRequest(http.MethodPatch, "/v1/calendars/5", `{"name":"Renamed"}`, &testUser, map[string]string{"calendar": "5"})
		w := do(h.UpdateCalendar, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestDeleteCalendarHandler(t *testing.T) {
	t.Run("204 with no body", func(t *testing.T) {
		h, _, calendar, _ := newTestHandler()
		var deleted domain.CalendarId
		calendar.DeleteFunc = func(user domain.User, id domain.CalendarId) error {
			deleted = id
			return nil
		}

		r := newRequest(http.MethodDelete, "/v1/calendars/5", "", &testUser, map[string]string{"calendar": "5"})
		w := do(h.DeleteCalendar, r)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
		assert.Equal(t, domain.CalendarId(5), deleted)
	})

	t.Run("unknown id is 404", func(t *testing.T) {
		h, _, calendar, _ := newTestHandler()
		calendar.DeleteFunc = func(user domain.User, id domain.CalendarId) error {
			return internal_errors.NotFound("Calendar")
		}

		r := newRequest(http.MethodDelete, "/v1/calendars/404", "", &testUser, map[string]string{"calendar": "404"})
		w := do(h.DeleteCalendar, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
