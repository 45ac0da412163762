package entities

import "time"

// SubscriptionTier is a venue's paid plan.
type SubscriptionTier string

const (
	TierFree       SubscriptionTier = "free"
	TierPro        SubscriptionTier = "pro"
	TierEnterprise SubscriptionTier = "enterprise"
)

// IsPriority reports whether the tier ranks ahead of all others in search.
func (t SubscriptionTier) IsPriority() bool {
	return t == TierPro
}

// VerificationStatus tracks whether a venue's listing has been confirmed.
type VerificationStatus string

const (
	VerificationUnverified VerificationStatus = "unverified"
	VerificationPending    VerificationStatus = "pending"
	VerificationVerified   VerificationStatus = "verified"
)

// Venue represents a physical location that hosts events
type Venue struct {
	ID                    string             `json:"id"`
	Name                  string             `json:"name"`
	City                  string             `json:"city"`
	State                 string             `json:"state"`
	Zip                   string             `json:"zip"`
	Latitude              *float64           `json:"latitude,omitempty"`
	Longitude             *float64           `json:"longitude,omitempty"`
	ImageURL              string             `json:"image_url,omitempty"`
	Website               string             `json:"website,omitempty"`
	Phone                 string             `json:"phone,omitempty"`
	Description           string             `json:"description,omitempty"`
	OwnerID               string             `json:"owner_id,omitempty"`
	SubscriptionTier      SubscriptionTier   `json:"subscription_tier"`
	VerificationStatus    VerificationStatus `json:"verification_status"`
	PositiveConfirmations int                `json:"positive_confirmations"`
	NegativeConfirmations int                `json:"negative_confirmations"`
	CreatedAt             time.Time          `json:"created_at"`
	UpdatedAt             time.Time          `json:"updated_at"`
}

// HasCoordinates reports whether both latitude and longitude are known.
func (v *Venue) HasCoordinates() bool {
	return v.Latitude != nil && v.Longitude != nil
}

// VenueOwnership is the narrow view billing and admin collaborators read.
type VenueOwnership struct {
	VenueID          string           `json:"venue_id"`
	OwnerID          string           `json:"owner_id"`
	SubscriptionTier SubscriptionTier `json:"subscription_tier"`
}
