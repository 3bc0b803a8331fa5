package handler

import (
	"net/http"

	"github.com/kalendo/kalendo/internal/api"
	mw "github.com/kalendo/kalendo/internal/middleware"
	"github.com/kalendo/kalendo/internal/utils"
)

func (h *Handler) GetCalendars(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	calendars, err := h.calendar.List(*user)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.CalendarListResponse{Items: calendars})
}

func (h *Handler) CreateCalendar(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	var body api.CreateCalendarRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	calendar, err := h.calendar.Create(*user, body.Name, body.Color)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, api.CalendarResponse{Calendar: calendar})
}

func (h *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	id, err := idParam(r, "calendar")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	calendar, err := h.calendar.Get(*user, id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.CalendarResponse{Calendar: calendar})
}

func (h *Handler) UpdateCalendar(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	id, err := idParam(r, "calendar")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	var body api.UpdateCalendarRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	calendar, err := h.calendar.Update(*user, id, body.Name, body.Color)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.CalendarResponse{Calendar: calendar})
}

func (h *Handler) DeleteCalendar(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	id, err := idParam(r, "calendar")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.calendar.Delete(*user, id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
