package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"eventhorizon/internal/domain/events"
)

type EventsRepo struct {
	db *sql.DB
}

func NewEventsRepo(db *sql.DB) *EventsRepo {
	return &EventsRepo{db: db}
}

const eventColumns = `
	id, title, description, organizer,
	event_date, start_time, end_time, timezone,
	location_type, city, country, venue,
	tags, category,
	price, price_amount,
	views, status, submitted_by,
	created_at, updated_at
`

func (r *EventsRepo) Create(ctx context.Context, e events.Event) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO events (`+eventColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
	`,
		e.ID, e.Title, e.Description, e.Organizer,
		e.Date, e.StartTime, e.EndTime, e.Timezone,
		string(e.LocationType), e.City, e.Country, e.Venue,
		joinTags(e.Tags), e.Category,
		string(e.Price), e.PriceAmount,
		e.Views, string(e.Status), e.SubmittedBy,
		e.CreatedAt, e.UpdatedAt,
	)
	return err
}

func (r *EventsRepo) GetByID(ctx context.Context, id string) (events.Event, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return events.Event{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+eventColumns+`
		FROM events
		WHERE id = $1
	`, id)

	e, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return events.Event{}, ErrNotFound
	}
	return e, err
}

func (r *EventsRepo) ListByStatus(ctx context.Context, status events.EventStatus) ([]events.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, string(status))
	}
	query += ` ORDER BY event_date, start_time`

	return r.list(ctx, query, args...)
}

func (r *EventsRepo) ListBySubmitter(ctx context.Context, userID string) ([]events.Event, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, nil
	}

	return r.list(ctx, `
		SELECT `+eventColumns+`
		FROM events
		WHERE submitted_by = $1
		ORDER BY event_date, start_time
	`, userID)
}

func (r *EventsRepo) UpdateStatus(ctx context.Context, id string, status events.EventStatus, at time.Time) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE events
		SET status = $2, updated_at = $3
		WHERE id = $1
	`, id, string(status), at)
	if err != nil {
		return err
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *EventsRepo) IncrementViews(ctx context.Context, id string) (int64, error) {
	var views int64
	err := r.db.QueryRowContext(ctx, `
		UPDATE events
		SET views = views + 1
		WHERE id = $1
		RETURNING views
	`, id).Scan(&views)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	return views, err
}

func (r *EventsRepo) list(ctx context.Context, query string, args ...any) ([]events.Event, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]events.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (events.Event, error) {
	var e events.Event
	var locType, price, status, tags string

	if err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.Organizer,
		&e.Date, &e.StartTime, &e.EndTime, &e.Timezone,
		&locType, &e.City, &e.Country, &e.Venue,
		&tags, &e.Category,
		&price, &e.PriceAmount,
		&e.Views, &status, &e.SubmittedBy,
		&e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return events.Event{}, err
	}

	e.LocationType = events.LocationType(locType)
	e.Price = events.PriceTier(price)
	e.Status = events.EventStatus(status)
	e.Tags = splitTags(tags)

	return e, nil
}

// Tags como texto separado por coma; alcanza para strings libres cortos y
// evita pelear con arrays de Postgres desde database/sql.
func joinTags(tags []string) string {
	return strings.Join(tags, ",")
}

func splitTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
