package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/lib/pq"
	"go.opentelemetry.io/otel/attribute"

	"github.com/zatekoja/venuediscovery/internal/domain/entities"
	"github.com/zatekoja/venuediscovery/internal/domain/repositories"
	"github.com/zatekoja/venuediscovery/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/venuediscovery/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/venuediscovery/pkg/errors"
)

var dialect = goqu.Dialect("postgres")

// candidateColumns is the column order of the per-venue candidate rows.
var candidateColumns = []string{
	"event_id", "venue_id", "venue_name", "city", "state", "zip",
	"latitude", "longitude", "image_url", "website",
	"subscription_tier", "verification_status",
	"event_date", "category", "description", "tags", "distance",
}

// SearchAdapter executes ranked venue searches against PostgreSQL
type SearchAdapter struct {
	client *postgres.Client
}

// NewSearchAdapter creates a new search adapter
func NewSearchAdapter(client *postgres.Client) repositories.VenueSearcher {
	return &SearchAdapter{client: client}
}

// Search counts the distinct matching venues, then fetches one page of
// them, each represented by its soonest qualifying event. Both statements
// run in one read-only snapshot.
func (a *SearchAdapter) Search(ctx context.Context, query entities.SearchQuery, location entities.LocationFilter) (*entities.SearchResult, error) {
	ctx, span := observability.StartSpan(ctx, "SearchAdapter.Search")
	defer span.End()

	predicates := BuildSearchPredicates(query, location)

	countSQL, countArgs, err := buildCountQuery(predicates)
	if err != nil {
		return nil, apperrors.NewQueryExecutionError("failed to build search count query", err)
	}
	fetchSQL, fetchArgs, err := buildFetchQuery(predicates, query.Limit, query.Offset)
	if err != nil {
		return nil, apperrors.NewQueryExecutionError("failed to build search query", err)
	}

	result := entities.EmptySearchResult(query.Limit, query.Offset)

	// count and page share one snapshot so offset+len(rows) never exceeds the total
	err = a.client.WithReadSnapshot(ctx, func(tx *sql.Tx) error {
		start := time.Now()
		if err := tx.QueryRowContext(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
			return err
		}
		observability.RecordDBQuery("search_count", time.Since(start))

		if result.TotalCount == 0 || query.Offset >= result.TotalCount {
			return nil
		}

		start = time.Now()
		rows, err := tx.QueryContext(ctx, fetchSQL, fetchArgs...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			row, err := scanCompositeRow(rows)
			if err != nil {
				return err
			}
			result.Rows = append(result.Rows, *row)
		}
		if err := rows.Err(); err != nil {
			return err
		}
		observability.RecordDBQuery("search_fetch", time.Since(start))
		return nil
	})
	if err != nil {
		observability.RecordError(span, err)
		return nil, apperrors.NewQueryExecutionError("search query failed", err)
	}

	observability.SetSpanAttributes(span,
		attribute.Int("search.total_count", result.TotalCount),
		attribute.Int("search.rows", len(result.Rows)),
	)
	return result, nil
}

func searchFrom(predicates []exp.Expression) *goqu.SelectDataset {
	return dialect.From(goqu.T("events").As("e")).
		InnerJoin(goqu.T("venues").As("v"), goqu.On(goqu.I("v.id").Eq(goqu.I("e.venue_id")))).
		Where(predicates...)
}

func buildCountQuery(b *PredicateBuilder) (string, []interface{}, error) {
	predicates, err := b.Expressions()
	if err != nil {
		return "", nil, err
	}
	return searchFrom(predicates).
		Select(goqu.L("COUNT(DISTINCT e.venue_id)")).
		Prepared(true).
		ToSQL()
}

// buildFetchQuery picks each venue's soonest qualifying event with
// DISTINCT ON, then ranks the candidates the way SearchRowLess does:
// pro tier, distance (with coordinates), event date, event id.
func buildFetchQuery(b *PredicateBuilder, limit, offset int) (string, []interface{}, error) {
	predicates, err := b.Expressions()
	if err != nil {
		return "", nil, err
	}

	var distance interface{} = goqu.L("NULL::double precision").As("distance")
	if d := b.Distance(); d != nil {
		distance = d.As("distance")
	}

	candidates := searchFrom(predicates).
		Select(
			goqu.I("e.id").As("event_id"),
			goqu.I("e.venue_id").As("venue_id"),
			goqu.I("v.name").As("venue_name"),
			goqu.I("v.city").As("city"),
			goqu.I("v.state").As("state"),
			goqu.I("v.zip").As("zip"),
			goqu.I("v.latitude").As("latitude"),
			goqu.I("v.longitude").As("longitude"),
			goqu.I("v.image_url").As("image_url"),
			goqu.I("v.website").As("website"),
			goqu.I("v.subscription_tier").As("subscription_tier"),
			goqu.I("v.verification_status").As("verification_status"),
			goqu.I("e.date").As("event_date"),
			goqu.I("e.category").As("category"),
			goqu.I("e.description").As("description"),
			goqu.I("e.tags").As("tags"),
			distance,
		).
		Distinct(goqu.I("e.venue_id")).
		Order(
			goqu.I("e.venue_id").Asc(),
			goqu.I("e.date").Asc(),
			goqu.I("e.id").Asc(),
		).
		Prepared(true)

	order := []exp.OrderedExpression{
		goqu.L("CASE WHEN subscription_tier = ? THEN 0 ELSE 1 END", string(entities.TierPro)).Asc(),
	}
	if b.Distance() != nil {
		order = append(order, goqu.C("distance").Asc().NullsLast())
	}
	order = append(order, goqu.C("event_date").Asc(), goqu.C("event_id").Asc())

	columns := make([]interface{}, len(candidateColumns))
	for i, c := range candidateColumns {
		columns[i] = goqu.C(c)
	}

	return dialect.From(candidates.As("candidates")).
		Select(columns...).
		Order(order...).
		Limit(uint(limit)).
		Offset(uint(offset)).
		Prepared(true).
		ToSQL()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCompositeRow(rows rowScanner) (*entities.CompositeResultRow, error) {
	row := &entities.CompositeResultRow{}
	var lat, lng, distance sql.NullFloat64
	var imageURL, website sql.NullString

	err := rows.Scan(
		&row.EventID,
		&row.VenueID,
		&row.VenueName,
		&row.City,
		&row.State,
		&row.Zip,
		&lat,
		&lng,
		&imageURL,
		&website,
		&row.SubscriptionTier,
		&row.VerificationStatus,
		&row.EventDate,
		&row.Category,
		&row.Description,
		pq.Array(&row.Tags),
		&distance,
	)
	if err != nil {
		return nil, err
	}

	row.Latitude = nullFloat(lat)
	row.Longitude = nullFloat(lng)
	row.Distance = nullFloat(distance)
	row.ImageURL = imageURL.String
	row.Website = website.String
	if row.Tags == nil {
		row.Tags = []string{}
	}
	return row, nil
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
