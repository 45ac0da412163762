package database

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/zatekoja/venuediscovery/internal/domain/entities"
	"github.com/zatekoja/venuediscovery/internal/domain/repositories"
	"github.com/zatekoja/venuediscovery/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/venuediscovery/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/venuediscovery/pkg/errors"
)

// TrendingAdapter ranks upcoming events by their bookmarks in event_saves
type TrendingAdapter struct {
	client *postgres.Client
}

// NewTrendingAdapter creates a new trending adapter
func NewTrendingAdapter(client *postgres.Client) repositories.TrendingRepository {
	return &TrendingAdapter{client: client}
}

// ListTrending ranks in SQL and returns only the top criteria.Limit rows,
// so the cost does not grow with the number of upcoming events.
func (a *TrendingAdapter) ListTrending(ctx context.Context, criteria repositories.TrendingCriteria) ([]*entities.TrendingEvent, error) {
	trending := []*entities.TrendingEvent{}
	if criteria.Limit <= 0 {
		return trending, nil
	}

	query, args, err := buildTrendingQuery(criteria)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	start := time.Now()
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list trending events", err)
	}
	defer rows.Close()

	for rows.Next() {
		var saves int
		event, err := scanEvent(rows, &saves)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan trending event", err)
		}
		trending = append(trending, &entities.TrendingEvent{
			Event:           event,
			SaveCount:       saves,
			InWeekendWindow: criteria.Window.Contains(event.Date),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate trending events", err)
	}
	observability.RecordDBQuery("events_trending", time.Since(start))

	return trending, nil
}

// buildTrendingQuery mirrors TrendingLess: weekend window, saves desc,
// date, id.
func buildTrendingQuery(criteria repositories.TrendingCriteria) (string, []interface{}, error) {
	saves := dialect.From("event_saves").
		Select(goqu.C("event_id"), goqu.COUNT(goqu.Star()).As("saves")).
		GroupBy(goqu.C("event_id"))

	saveCount := goqu.L("COALESCE(s.saves, 0)")
	inWindow := goqu.L("e.date BETWEEN ? AND ?",
		criteria.Window.Start.Format(dateLayout),
		criteria.Window.End.Format(dateLayout),
	)
	columns := append(append([]interface{}{}, eventColumns...), saveCount.As("saves"))

	return eventsFrom().
		LeftJoin(saves.As("s"), goqu.On(goqu.I("s.event_id").Eq(goqu.I("e.id")))).
		Select(columns...).
		Where(
			goqu.I("e.status").Eq(string(entities.EventStatusActive)),
			goqu.I("e.date").Gte(criteria.From.Format(dateLayout)),
		).
		Order(inWindow.Desc(), saveCount.Desc(), goqu.I("e.date").Asc(), goqu.I("e.id").Asc()).
		Limit(uint(criteria.Limit)).
		Prepared(true).
		ToSQL()
}
