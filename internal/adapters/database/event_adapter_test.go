package database

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/venuediscovery/internal/domain/entities"
	"github.com/zatekoja/venuediscovery/internal/domain/repositories"
	apperrors "github.com/zatekoja/venuediscovery/pkg/errors"
)

var eventRowColumns = []string{
	"id", "venue_id", "date", "category", "description", "tags", "status", "created_at", "updated_at",
}

func TestEventAdapter_GetByID(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := NewEventAdapter(client)
	date := time.Date(2026, 5, 9, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM "events" AS "e" WHERE \("e"."id" = \$1\)`).
		WithArgs("evt-1").
		WillReturnRows(sqlmock.NewRows(eventRowColumns).
			AddRow("evt-1", "ven-1", date, "music", "Late set", []byte("{Jazz,Blues}"), "active", date, date))

	event, err := adapter.GetByID(context.Background(), "evt-1")
	require.NoError(t, err)
	assert.Equal(t, entities.CategoryMusic, event.Category)
	assert.Equal(t, []string{"Jazz", "Blues"}, event.Tags)
	assert.Equal(t, entities.EventStatusActive, event.Status)
	assert.True(t, event.Date.Equal(date))

	mock.ExpectQuery(`FROM "events"`).WithArgs("nope").WillReturnError(sql.ErrNoRows)
	_, err = adapter.GetByID(context.Background(), "nope")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventAdapter_GetPairingReference(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := NewEventAdapter(client)
	date := time.Date(2026, 5, 9, 0, 0, 0, 0, time.UTC)

	columns := append(append([]string{}, eventRowColumns...), "city")
	mock.ExpectQuery(`INNER JOIN "venues" AS "v" ON \("v"."id" = "e"."venue_id"\)`).
		WithArgs("evt-1").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("evt-1", "ven-1", date, "meals", nil, []byte("{}"), "active", date, date, "Austin"))

	ref, err := adapter.GetPairingReference(context.Background(), "evt-1")
	require.NoError(t, err)
	assert.Equal(t, "Austin", ref.City)
	assert.Equal(t, entities.CategoryMeals, ref.Event.Category)
	assert.Equal(t, []string{}, ref.Event.Tags)
	assert.Empty(t, ref.Event.Description)

	mock.ExpectQuery(`INNER JOIN "venues"`).WithArgs("gone").WillReturnError(sql.ErrNoRows)
	_, err = adapter.GetPairingReference(context.Background(), "gone")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventAdapter_FindPairings(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := NewEventAdapter(client)
	date := time.Date(2026, 5, 9, 0, 0, 0, 0, time.UTC)

	t.Run("no categories", func(t *testing.T) {
		events, err := adapter.FindPairings(context.Background(), repositories.PairingCriteria{City: "Austin"})
		require.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("same city and date", func(t *testing.T) {
		mock.ExpectQuery(`LOWER\(v.city\) = LOWER\(\$2\).*"e"."date" = \$3.*"e"."category" IN \(\$4, \$5\).*"e"."id" != \$6.*LIMIT`).
			WillReturnRows(sqlmock.NewRows(eventRowColumns).
				AddRow("evt-7", "ven-3", date, "meals", "Taco night", []byte("{}"), "active", date, date))

		events, err := adapter.FindPairings(context.Background(), repositories.PairingCriteria{
			City:           "Austin",
			Date:           date,
			Categories:     []entities.EventCategory{entities.CategoryMeals, entities.CategoryBoth},
			ExcludeEventID: "evt-1",
			Limit:          3,
		})
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "evt-7", events[0].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
