package sqlite

import (
	"context"
	"time"

	"github.com/eventlane/eventlane/internal/domain"
)

type eventsRepo struct {
	q querier
}

const eventJoin = `
	SELECT e.id, e.title, e.description, e.date, e.created_by, e.category,
		e.created_at, e.updated_at,
		a.id, a.name, a.email
	FROM events e
	JOIN accounts a ON a.id = e.created_by`

func (r *eventsRepo) GetEventByID(ctx context.Context, id string) (domain.EventWithCreator, error) {
	row := r.q.QueryRowContext(ctx, eventJoin+` WHERE e.id = ?`, id)

	var ev domain.EventWithCreator
	err := row.Scan(
		&ev.ID, &ev.Title, &ev.Description, &ev.Date, &ev.CreatedBy,
		&ev.Category, &ev.CreatedAt, &ev.UpdatedAt,
		&ev.Creator.ID, &ev.Creator.Name, &ev.Creator.Email,
	)
	if err != nil {
		return domain.EventWithCreator{}, mapNotFound(err)
	}
	return ev, nil
}

func (r *eventsRepo) ListEvents(ctx context.Context, category string) ([]domain.EventWithCreator, error) {
	query := eventJoin
	var args []any
	if category != "" {
		query += ` WHERE e.category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY e.date DESC`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.EventWithCreator
	for rows.Next() {
		var ev domain.EventWithCreator
		if err := rows.Scan(
			&ev.ID, &ev.Title, &ev.Description, &ev.Date, &ev.CreatedBy,
			&ev.Category, &ev.CreatedAt, &ev.UpdatedAt,
			&ev.Creator.ID, &ev.Creator.Name, &ev.Creator.Email,
		); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

func (r *eventsRepo) CreateEvent(ctx context.Context, e domain.Event) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO events (
			id, title, description, date, created_by, category,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Title, e.Description, e.Date, e.CreatedBy, e.Category,
		e.CreatedAt, e.UpdatedAt,
	)
	return mapConflict(err)
}

func (r *eventsRepo) UpdateEvent(ctx context.Context, e domain.Event) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE events
		SET title = ?, description = ?, date = ?, category = ?, updated_at = ?
		WHERE id = ?`,
		e.Title, e.Description, e.Date, e.Category, time.Now().UTC(), e.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *eventsRepo) DeleteEvent(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
