package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kalendo/kalendo/internal/domain"
	internal_errors "github.com/kalendo/kalendo/internal/errors"
)

const eventColumns = "id, calendar_id, title, description, location, starts_at, ends_at, all_day, timezone, recurrence_rule, status, created_at, updated_at"

func scanEvent(row interface{ Scan(...interface{}) error }, e *domain.Event) error {
	return row.Scan(&e.Id, &e.CalendarId, &e.Title, &e.Description, &e.Location,
		&e.StartsAt, &e.EndsAt, &e.AllDay, &e.Timezone, &e.RecurrenceRule, &e.Status,
		&e.CreatedAt, &e.UpdatedAt)
}

// EventsByCalendar lists a calendar's events ascending by start time. A
// non-nil window keeps only events overlapping [from, to): strict inequalities
// drop boundary-touching intervals.
func (s *Storage) EventsByCalendar(calendarId domain.CalendarId, from, to *time.Time) ([]domain.Event, error) {
	query := "SELECT " + eventColumns + " FROM events WHERE calendar_id = $1"
	args := []interface{}{calendarId}
	if from != nil && to != nil {
		query += " AND starts_at < $2 AND ends_at > $3"
		args = append(args, *to, *from)
	}
	query += " ORDER BY starts_at ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		if err := scanEvent(rows, &e); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (s *Storage) SaveEvent(e domain.Event) (domain.Event, error) {
	var saved domain.Event
	err := scanEvent(s.db.QueryRow(`
        INSERT INTO events(calendar_id, title, description, location, starts_at, ends_at, all_day, timezone, recurrence_rule, status)
        VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING `+eventColumns,
		e.CalendarId, e.Title, e.Description, e.Location, e.StartsAt, e.EndsAt,
		e.AllDay, e.Timezone, e.RecurrenceRule, e.Status,
	), &saved)
	if err != nil {
		return domain.Event{}, fmt.Errorf("failed to insert event: %w", err)
	}
	return saved, nil
}

// Event fetches an event together with the owner of its parent calendar.
// Ownership lives on the calendar only, so the join is the capability source.
func (s *Storage) Event(id domain.EventId) (domain.Event, domain.UserId, error) {
	var e domain.Event
	var ownerId domain.UserId
	err := s.db.QueryRow(`
        SELECT e.id, e.calendar_id, e.title, e.description, e.location, e.starts_at, e.ends_at,
               e.all_day, e.timezone, e.recurrence_rule, e.status, e.created_at, e.updated_at,
               c.owner_user_id
        FROM events e
        JOIN calendars c ON c.id = e.calendar_id
        WHERE e.id = $1`,
		id,
	).Scan(&e.Id, &e.CalendarId, &e.Title, &e.Description, &e.Location,
		&e.StartsAt, &e.EndsAt, &e.AllDay, &e.Timezone, &e.RecurrenceRule, &e.Status,
		&e.CreatedAt, &e.UpdatedAt, &ownerId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Event{}, 0, internal_errors.NotFound("Event")
		}
		return domain.Event{}, 0, fmt.Errorf("failed to query event: %w", err)
	}
	return e, ownerId, nil
}

// UpdateEvent writes the merged record back; the service resolves which fields
// of the partial payload apply.
func (s *Storage) UpdateEvent(e domain.Event) (domain.Event, error) {
	var saved domain.Event
	err := scanEvent(s.db.QueryRow(`
        UPDATE events
        SET title = $1, description = $2, location = $3, starts_at = $4, ends_at = $5,
            all_day = $6, timezone = $7, recurrence_rule = $8, status = $9, updated_at = now()
        WHERE id = $10
        RETURNING `+eventColumns,
		e.Title, e.Description, e.Location, e.StartsAt, e.EndsAt,
		e.AllDay, e.Timezone, e.RecurrenceRule, e.Status, e.Id,
	), &saved)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Event{}, internal_errors.NotFound("Event")
		}
		return domain.Event{}, fmt.Errorf("failed to update event: %w", err)
	}
	return saved, nil
}

func (s *Storage) DeleteEvent(id domain.EventId) error {
	result, err := s.db.Exec("DELETE FROM events WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	rowsDeleted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for event deletion: %w", err)
	}
	if rowsDeleted == 0 {
		return internal_errors.NotFound("Event")
	}
	return nil
}
