package store

import (
	"database/sql"
	"time"
)

// GestureEvent is one dispatched gesture as recorded in the event log.
type GestureEvent struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	Route      string    `json:"route"`
	X          float64   `json:"x"`
	Y          float64   `json:"y"`
	DetectedAt time.Time `json:"detectedAt"`
}

// EventRepository provides access to the gesture event log.
type EventRepository struct {
	db *sql.DB
}

// Events returns the event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// Create inserts a new gesture event. A zero DetectedAt is filled with
// the current time.
func (r *EventRepository) Create(e *GestureEvent) error {
	if e.DetectedAt.IsZero() {
		e.DetectedAt = time.Now()
	}

	_, err := r.db.Exec(
		`INSERT INTO gesture_events (id, kind, route, x, y, detected_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Kind, e.Route, e.X, e.Y, e.DetectedAt,
	)
	return err
}

// Recent retrieves the newest events, most recent first. A limit of 0
// or below defaults to 50.
func (r *EventRepository) Recent(limit int) ([]*GestureEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(
		`SELECT id, kind, route, x, y, detected_at
		 FROM gesture_events ORDER BY detected_at DESC, id LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*GestureEvent
	for rows.Next() {
		e := &GestureEvent{}
		if err := rows.Scan(&e.ID, &e.Kind, &e.Route, &e.X, &e.Y, &e.DetectedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// Prune deletes events older than the cutoff and returns how many
// were removed.
func (r *EventRepository) Prune(before time.Time) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM gesture_events WHERE detected_at < ?`, before)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Count returns the total number of recorded events.
func (r *EventRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM gesture_events`).Scan(&count)
	return count, err
}
