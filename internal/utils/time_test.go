package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internal_errors "github.com/kalendo/kalendo/internal/errors"
)

func TestParseTime(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  time.Time
	}{
		{"rfc3339 with offset", "2026-03-01T10:00:00+02:00", time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)},
		{"rfc3339 utc", "2026-03-01T10:00:00Z", time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)},
		{"no offset", "2026-03-01T10:00:00", time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)},
		{"minute precision", "2026-03-01T10:00", time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)},
		{"space separator", "2026-03-01 10:00:00", time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)},
		{"date only", "2026-03-01", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseTime("starts_at", tc.value)

			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got), "want %v, got %v", tc.want, got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}

	t.Run("unparseable value names the field", func(t *testing.T) {
		_, err := ParseTime("ends_at", "next tuesday")

		require.Error(t, err)
		verr, ok := err.(*internal_errors.ValidationError)
		require.True(t, ok)
		assert.Contains(t, verr.Fields, "ends_at")
		assert.Equal(t, []string{"The ends_at is not a valid date."}, verr.Fields["ends_at"])
	})
}
