package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/kalendo/kalendo/internal/errors"
)

// idParam parses a numeric URL parameter. A non-numeric id behaves like an
// unknown resource.
func idParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, &errors.ErrorWithStatusCode{Message: "Not found", StatusCode: http.StatusNotFound}
	}
	return id, nil
}
