package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/zatekoja/venuediscovery/internal/domain/entities"
	"github.com/zatekoja/venuediscovery/internal/domain/repositories"
	"github.com/zatekoja/venuediscovery/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/venuediscovery/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/venuediscovery/pkg/errors"
)

var eventColumns = []interface{}{
	goqu.I("e.id"), goqu.I("e.venue_id"), goqu.I("e.date"), goqu.I("e.category"),
	goqu.I("e.description"), goqu.I("e.tags"), goqu.I("e.status"),
	goqu.I("e.created_at"), goqu.I("e.updated_at"),
}

// EventAdapter implements EventRepository
type EventAdapter struct {
	client *postgres.Client
}

// NewEventAdapter creates a new event adapter
func NewEventAdapter(client *postgres.Client) repositories.EventRepository {
	return &EventAdapter{client: client}
}

func eventsFrom() *goqu.SelectDataset {
	return dialect.From(goqu.T("events").As("e"))
}

// GetByID retrieves an event by ID
func (a *EventAdapter) GetByID(ctx context.Context, id string) (*entities.Event, error) {
	query, args, err := eventsFrom().
		Select(eventColumns...).
		Where(goqu.I("e.id").Eq(id)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	event, err := scanEvent(a.client.DB().QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("event with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get event", err)
	}
	return event, nil
}

// GetPairingReference resolves an event together with its venue's city
func (a *EventAdapter) GetPairingReference(ctx context.Context, eventID string) (*entities.PairingReference, error) {
	columns := append(append([]interface{}{}, eventColumns...), goqu.I("v.city"))

	query, args, err := eventsFrom().
		InnerJoin(goqu.T("venues").As("v"), goqu.On(goqu.I("v.id").Eq(goqu.I("e.venue_id")))).
		Select(columns...).
		Where(goqu.I("e.id").Eq(eventID)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	ref := &entities.PairingReference{}
	ref.Event, err = scanEvent(a.client.DB().QueryRowContext(ctx, query, args...), &ref.City)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("event with id %s not found", eventID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get event", err)
	}
	return ref, nil
}

// FindPairings lists active events in the same city on the same date whose
// category is one of criteria.Categories
func (a *EventAdapter) FindPairings(ctx context.Context, criteria repositories.PairingCriteria) ([]*entities.Event, error) {
	if len(criteria.Categories) == 0 {
		return []*entities.Event{}, nil
	}

	categories := make([]string, len(criteria.Categories))
	for i, c := range criteria.Categories {
		categories[i] = string(c)
	}

	ds := eventsFrom().
		InnerJoin(goqu.T("venues").As("v"), goqu.On(goqu.I("v.id").Eq(goqu.I("e.venue_id")))).
		Select(eventColumns...).
		Where(
			goqu.I("e.status").Eq(string(entities.EventStatusActive)),
			goqu.L("LOWER(v.city) = LOWER(?)", criteria.City),
			goqu.I("e.date").Eq(criteria.Date.Format(dateLayout)),
			goqu.I("e.category").In(categories),
			goqu.I("e.id").Neq(criteria.ExcludeEventID),
		).
		Order(goqu.I("e.id").Asc())
	if criteria.Limit > 0 {
		ds = ds.Limit(uint(criteria.Limit))
	}

	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	return a.queryEvents(ctx, "events_pairings", query, args)
}

func (a *EventAdapter) queryEvents(ctx context.Context, operation, query string, args []interface{}) ([]*entities.Event, error) {
	start := time.Now()
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list events", err)
	}
	defer rows.Close()

	events := []*entities.Event{}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan event", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate events", err)
	}
	observability.RecordDBQuery(operation, time.Since(start))

	return events, nil
}

// scanEvent reads the eventColumns, followed by any extra destinations.
func scanEvent(row rowScanner, extra ...interface{}) (*entities.Event, error) {
	event := &entities.Event{}
	var description sql.NullString

	dest := []interface{}{
		&event.ID,
		&event.VenueID,
		&event.Date,
		&event.Category,
		&description,
		pq.Array(&event.Tags),
		&event.Status,
		&event.CreatedAt,
		&event.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	event.Description = description.String
	if event.Tags == nil {
		event.Tags = []string{}
	}
	return event, nil
}
