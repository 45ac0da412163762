package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/venuediscovery/internal/domain/entities"
	"github.com/zatekoja/venuediscovery/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/venuediscovery/pkg/errors"
)

func newMockClient(t *testing.T) (*postgres.Client, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return postgres.NewClientFromDB(db), mock
}

var venueRowColumns = []string{
	"id", "name", "city", "state", "zip", "latitude", "longitude",
	"image_url", "website", "phone", "description", "owner_id",
	"subscription_tier", "verification_status",
	"positive_confirmations", "negative_confirmations",
	"created_at", "updated_at",
}

func TestVenueAdapter_GetByID(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := NewVenueAdapter(client)
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT .* FROM "venues" WHERE \("id" = \$1\)`).
		WithArgs("ven-1").
		WillReturnRows(sqlmock.NewRows(venueRowColumns).AddRow(
			"ven-1", "Elephant Room", "Austin", "TX", "78701", 30.2669, -97.7428,
			nil, "https://elephantroom.example", nil, "Basement jazz club", "usr-9",
			"pro", "verified", 12, 1, now, now,
		))

	venue, err := adapter.GetByID(context.Background(), "ven-1")
	require.NoError(t, err)
	assert.Equal(t, "Elephant Room", venue.Name)
	assert.Equal(t, entities.TierPro, venue.SubscriptionTier)
	assert.Equal(t, entities.VerificationVerified, venue.VerificationStatus)
	require.True(t, venue.HasCoordinates())
	assert.InDelta(t, 30.2669, *venue.Latitude, 1e-9)
	assert.Empty(t, venue.ImageURL)
	assert.Empty(t, venue.Phone)
	assert.Equal(t, "usr-9", venue.OwnerID)
	assert.Equal(t, 12, venue.PositiveConfirmations)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVenueAdapter_GetByIDNotFound(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := NewVenueAdapter(client)

	mock.ExpectQuery(`FROM "venues"`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := adapter.GetByID(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestVenueAdapter_GetByIDs(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := NewVenueAdapter(client)
	now := time.Now().UTC()

	t.Run("empty input skips the query", func(t *testing.T) {
		venues, err := adapter.GetByIDs(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, venues)
	})

	t.Run("batch lookup", func(t *testing.T) {
		mock.ExpectQuery(`FROM "venues" WHERE \("id" IN \(\$1, \$2\)\)`).
			WithArgs("ven-1", "ven-2").
			WillReturnRows(sqlmock.NewRows(venueRowColumns).
				AddRow("ven-1", "A", "Austin", "TX", "78701", nil, nil, nil, nil, nil, nil, nil, "free", "unverified", 0, 0, now, now).
				AddRow("ven-2", "B", "Austin", "TX", "78702", nil, nil, nil, nil, nil, nil, nil, "enterprise", "pending", 0, 0, now, now))

		venues, err := adapter.GetByIDs(context.Background(), []string{"ven-1", "ven-2"})
		require.NoError(t, err)
		require.Len(t, venues, 2)
		assert.False(t, venues[0].HasCoordinates())
		assert.Equal(t, entities.TierEnterprise, venues[1].SubscriptionTier)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestVenueAdapter_GetOwnership(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := NewVenueAdapter(client)

	mock.ExpectQuery(`SELECT "id", "owner_id", "subscription_tier" FROM "venues"`).
		WithArgs("ven-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "subscription_tier"}).
			AddRow("ven-1", "usr-9", "pro"))

	ownership, err := adapter.GetOwnership(context.Background(), "ven-1")
	require.NoError(t, err)
	assert.Equal(t, &entities.VenueOwnership{
		VenueID:          "ven-1",
		OwnerID:          "usr-9",
		SubscriptionTier: entities.TierPro,
	}, ownership)

	mock.ExpectQuery(`FROM "venues"`).
		WithArgs("ven-2").
		WillReturnError(errors.New("connection reset"))

	_, err = adapter.GetOwnership(context.Background(), "ven-2")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInternal))
	assert.NoError(t, mock.ExpectationsWereMet())
}
