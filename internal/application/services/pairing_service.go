package services

import (
	"context"

	"github.com/zatekoja/venuediscovery/internal/domain/entities"
	"github.com/zatekoja/venuediscovery/internal/domain/repositories"
)

// PairingLimit caps the number of pairings returned for one event.
const PairingLimit = 3

// PairingService finds complementary events in the same city on the same day
type PairingService struct {
	events repositories.EventRepository
}

// NewPairingService creates a new pairing service
func NewPairingService(events repositories.EventRepository) *PairingService {
	return &PairingService{events: events}
}

// ComplementOf returns the category that pairs with c. Events offering both
// pair with music; ambiguous reports that this mapping is a default rather
// than a true complement.
func ComplementOf(c entities.EventCategory) (complement entities.EventCategory, ambiguous bool) {
	switch c {
	case entities.CategoryMusic:
		return entities.CategoryMeals, false
	case entities.CategoryMeals:
		return entities.CategoryMusic, false
	case entities.CategoryBoth:
		return entities.CategoryMusic, true
	}
	return "", false
}

// Pairings returns up to PairingLimit events that complement eventID.
func (s *PairingService) Pairings(ctx context.Context, eventID string) (*entities.PairingResult, error) {
	ref, err := s.events.GetPairingReference(ctx, eventID)
	if err != nil {
		return nil, err
	}

	complement, ambiguous := ComplementOf(ref.Event.Category)
	result := &entities.PairingResult{
		ReferenceEventID:    ref.Event.ID,
		ComplementCategory:  complement,
		ComplementAmbiguous: ambiguous,
		Pairings:            []*entities.Event{},
	}
	if complement == "" {
		return result, nil
	}

	pairings, err := s.events.FindPairings(ctx, repositories.PairingCriteria{
		City:           ref.City,
		Date:           ref.Event.Date,
		Categories:     []entities.EventCategory{complement, entities.CategoryBoth},
		ExcludeEventID: ref.Event.ID,
		Limit:          PairingLimit,
	})
	if err != nil {
		return nil, err
	}

	if len(pairings) > PairingLimit {
		pairings = pairings[:PairingLimit]
	}
	result.Pairings = pairings
	return result, nil
}
