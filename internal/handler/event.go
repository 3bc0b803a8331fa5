package handler

import (
	"net/http"

	"github.com/kalendo/kalendo/internal/api"
	mw "github.com/kalendo/kalendo/internal/middleware"
	"github.com/kalendo/kalendo/internal/utils"
)

func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	calendarId, err := idParam(r, "calendar")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	query := r.URL.Query()
	events, err := h.event.List(*user, calendarId, query.Get("from"), query.Get("to"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.EventListResponse{Items: events})
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	calendarId, err := idParam(r, "calendar")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	var body api.CreateEventRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	event, err := h.event.Create(*user, calendarId, body)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, api.EventResponse{Event: event})
}

func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	id, err := idParam(r, "event")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	event, err := h.event.Get(*user, id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.EventResponse{Event: event})
}

func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	id, err := idParam(r, "event")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	var body api.UpdateEventRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	event, err := h.event.Update(*user, id, body)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.EventResponse{Event: event})
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	id, err := idParam(r, "event")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.event.Delete(*user, id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
