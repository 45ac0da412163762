package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/zatekoja/venuediscovery/internal/domain/entities"
	"github.com/zatekoja/venuediscovery/internal/domain/repositories"
	"github.com/zatekoja/venuediscovery/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/venuediscovery/pkg/errors"
)

var venueColumns = []interface{}{
	"id", "name", "city", "state", "zip", "latitude", "longitude",
	"image_url", "website", "phone", "description", "owner_id",
	"subscription_tier", "verification_status",
	"positive_confirmations", "negative_confirmations",
	"created_at", "updated_at",
}

// VenueAdapter implements VenueRepository
type VenueAdapter struct {
	client *postgres.Client
}

// NewVenueAdapter creates a new venue adapter
func NewVenueAdapter(client *postgres.Client) repositories.VenueRepository {
	return &VenueAdapter{client: client}
}

// GetByID retrieves a venue by ID
func (a *VenueAdapter) GetByID(ctx context.Context, id string) (*entities.Venue, error) {
	query, args, err := dialect.Select(venueColumns...).
		From("venues").
		Where(goqu.Ex{"id": id}).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	venue, err := scanVenue(a.client.DB().QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("venue with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get venue", err)
	}
	return venue, nil
}

// GetByIDs retrieves venues by IDs. Unknown IDs are skipped.
func (a *VenueAdapter) GetByIDs(ctx context.Context, ids []string) ([]*entities.Venue, error) {
	if len(ids) == 0 {
		return []*entities.Venue{}, nil
	}

	query, args, err := dialect.Select(venueColumns...).
		From("venues").
		Where(goqu.C("id").In(ids)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get venues", err)
	}
	defer rows.Close()

	venues := make([]*entities.Venue, 0, len(ids))
	for rows.Next() {
		venue, err := scanVenue(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan venue", err)
		}
		venues = append(venues, venue)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate venues", err)
	}

	return venues, nil
}

// GetOwnership resolves a venue's owner and subscription tier
func (a *VenueAdapter) GetOwnership(ctx context.Context, venueID string) (*entities.VenueOwnership, error) {
	query, args, err := dialect.Select("id", "owner_id", "subscription_tier").
		From("venues").
		Where(goqu.Ex{"id": venueID}).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	ownership := &entities.VenueOwnership{}
	var ownerID sql.NullString
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&ownership.VenueID,
		&ownerID,
		&ownership.SubscriptionTier,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("venue with id %s not found", venueID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get venue ownership", err)
	}
	ownership.OwnerID = ownerID.String

	return ownership, nil
}

func scanVenue(row rowScanner) (*entities.Venue, error) {
	venue := &entities.Venue{}
	var lat, lng sql.NullFloat64
	var imageURL, website, phone, description, ownerID sql.NullString

	err := row.Scan(
		&venue.ID,
		&venue.Name,
		&venue.City,
		&venue.State,
		&venue.Zip,
		&lat,
		&lng,
		&imageURL,
		&website,
		&phone,
		&description,
		&ownerID,
		&venue.SubscriptionTier,
		&venue.VerificationStatus,
		&venue.PositiveConfirmations,
		&venue.NegativeConfirmations,
		&venue.CreatedAt,
		&venue.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	venue.Latitude = nullFloat(lat)
	venue.Longitude = nullFloat(lng)
	venue.ImageURL = imageURL.String
	venue.Website = website.String
	venue.Phone = phone.String
	venue.Description = description.String
	venue.OwnerID = ownerID.String

	return venue, nil
}
