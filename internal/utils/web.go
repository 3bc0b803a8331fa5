package utils

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kalendo/kalendo/internal/errors"
	"github.com/kalendo/kalendo/internal/logger"
)

type errorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// WriteErrorAndStatusCode renders err as a JSON error body.
// ValidationError -> 422 {message, errors}; ErrorWithStatusCode -> its code;
// anything else -> 500.
func WriteErrorAndStatusCode(w http.ResponseWriter, err error) {
	switch e := err.(type) {
	case *errors.ValidationError:
		writeJSONError(w, http.StatusUnprocessableEntity, errorResponse{Message: e.Message, Errors: e.Fields})
	case *errors.ErrorWithStatusCode:
		writeJSONError(w, e.StatusCode, errorResponse{Message: e.Message})
	default:
		logger.Log.Error("unhandled error", "error", err)
		writeJSONError(w, http.StatusInternalServerError, errorResponse{Message: "Server error"})
	}
}

func writeJSONError(w http.ResponseWriter, status int, body errorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// DecodeValidate decodes a JSON body and checks validator tags. Tag failures
// come back as field-keyed validation errors.
func DecodeValidate(r io.ReadCloser, body any) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		return &errors.ErrorWithStatusCode{Message: "Body is invalid json", StatusCode: http.StatusBadRequest}
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(body); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return &errors.ErrorWithStatusCode{Message: "Invalid request body", StatusCode: http.StatusBadRequest}
		}
		fields := make(map[string][]string, len(verrs))
		for _, fe := range verrs {
			field := snakeCase(fe.Field())
			fields[field] = append(fields[field], fieldMessage(field, fe))
		}
		return errors.NewValidation(fields)
	}
	return nil
}

func fieldMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "The " + field + " field is required."
	case "email":
		return "The " + field + " must be a valid email address."
	case "max":
		return "The " + field + " may not be greater than " + fe.Param() + " characters."
	case "min":
		return "The " + field + " must be at least " + fe.Param() + " characters."
	case "oneof":
		return "The selected " + field + " is invalid."
	default:
		return "The " + field + " field is invalid."
	}
}

func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
