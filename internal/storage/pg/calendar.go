package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kalendo/kalendo/internal/domain"
	internal_errors "github.com/kalendo/kalendo/internal/errors"
)

const calendarColumns = "id, owner_user_id, name, color, created_at, updated_at"

// EnsureDefaultCalendar provisions the default calendar if the user owns none.
// The per-owner advisory lock serializes concurrent first-list calls; under
// READ COMMITTED the NOT EXISTS probe alone would let two of them both insert.
// The lock releases with the transaction.
func (s *Storage) EnsureDefaultCalendar(ownerId domain.UserId, name, color string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.Exec("SELECT pg_advisory_xact_lock($1)", ownerId); err != nil {
			return fmt.Errorf("failed to take default calendar lock: %w", err)
		}
		_, err := tx.Exec(`
            INSERT INTO calendars(owner_user_id, name, color)
            SELECT $1, $2, $3
            WHERE NOT EXISTS (SELECT 1 FROM calendars WHERE owner_user_id = $1)`,
			ownerId, name, color,
		)
		if err != nil {
			return fmt.Errorf("failed to ensure default calendar: %w", err)
		}
		return nil
	})
}

// CalendarsByOwner returns the user's calendars ordered by creation, earliest
// first. Id breaks creation-time ties deterministically.
func (s *Storage) CalendarsByOwner(ownerId domain.UserId) ([]domain.Calendar, error) {
	rows, err := s.db.Query(
		"SELECT "+calendarColumns+" FROM calendars WHERE owner_user_id = $1 ORDER BY created_at ASC, id ASC",
		ownerId,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query calendars: %w", err)
	}
	defer rows.Close()

	var calendars []domain.Calendar
	for rows.Next() {
		var c domain.Calendar
		if err := rows.Scan(&c.Id, &c.OwnerUserId, &c.Name, &c.Color, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan calendar: %w", err)
		}
		calendars = append(calendars, c)
	}
	return calendars, rows.Err()
}

func (s *Storage) SaveCalendar(ownerId domain.UserId, name string, color *string) (domain.Calendar, error) {
	var c domain.Calendar
	err := s.db.QueryRow(
		"INSERT INTO calendars(owner_user_id, name, color) VALUES($1, $2, $3) RETURNING "+calendarColumns,
		ownerId, name, color,
	).Scan(&c.Id, &c.OwnerUserId, &c.Name, &c.Color, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.Calendar{}, fmt.Errorf("failed to insert calendar: %w", err)
	}
	return c, nil
}

func (s *Storage) Calendar(id domain.CalendarId) (domain.Calendar, error) {
	var c domain.Calendar
	err := s.db.QueryRow("SELECT "+calendarColumns+" FROM calendars WHERE id = $1", id).
		Scan(&c.Id, &c.OwnerUserId, &c.Name, &c.Color, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Calendar{}, internal_errors.NotFound("Calendar")
		}
		return domain.Calendar{}, fmt.Errorf("failed to query calendar: %w", err)
	}
	return c, nil
}

// UpdateCalendar writes the merged record back; the service resolves which
// fields of the partial payload apply.
func (s *Storage) UpdateCalendar(cal domain.Calendar) (domain.Calendar, error) {
	var c domain.Calendar
	err := s.db.QueryRow(
		"UPDATE calendars SET name = $1, color = $2, updated_at = now() WHERE id = $3 RETURNING "+calendarColumns,
		cal.Name, cal.Color, cal.Id,
	).Scan(&c.Id, &c.OwnerUserId, &c.Name, &c.Color, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Calendar{}, internal_errors.NotFound("Calendar")
		}
		return domain.Calendar{}, fmt.Errorf("failed to update calendar: %w", err)
	}
	return c, nil
}

// DeleteCalendar removes the calendar; its events go with it via FK cascade.
func (s *Storage) DeleteCalendar(id domain.CalendarId) error {
	result, err := s.db.Exec("DELETE FROM calendars WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete calendar: %w", err)
	}
	rowsDeleted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for calendar deletion: %w", err)
	}
	if rowsDeleted == 0 {
		return internal_errors.NotFound("Calendar")
	}
	return nil
}
