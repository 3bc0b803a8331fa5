package utils

import (
	"time"

	"github.com/kalendo/kalendo/internal/errors"
)

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime parses a timestamp in any accepted layout. Layouts without an
// offset are taken as UTC.
func ParseTime(field, value string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.NewFieldValidation(field, "The "+field+" is not a valid date.")
}
