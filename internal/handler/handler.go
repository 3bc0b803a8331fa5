package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/kalendo/kalendo/internal/logger"
	"github.com/kalendo/kalendo/internal/service"
)

// HealthChecker is the dependency probed by the readiness endpoint.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	auth     service.AuthService
	calendar service.CalendarService
	event    service.EventService
	health   HealthChecker
}

func New(auth service.AuthService, calendar service.CalendarService, event service.EventService, health HealthChecker) *Handler {
	return &Handler{auth, calendar, event, health}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}
