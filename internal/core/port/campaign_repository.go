package port

import (
	"context"

	"campaignboard/internal/core/domain"
)

// CampaignRepository is the storage port of the stub backend. It is the
// server's view of the same resource the SDK consumes. Implementations must
// be safe for concurrent use. Lookups return (nil, nil) when the campaign
// does not exist; the HTTP layer turns that into a 404.
type CampaignRepository interface {
	// List returns a page of campaigns after applying the status filter,
	// the case-insensitive name search and pagination.
	List(ctx context.Context, params ListParams) (*ListResult, error)

	// Get returns a campaign by id.
	Get(ctx context.Context, id string) (*domain.Campaign, error)

	// Create stores a fully-populated campaign.
	Create(ctx context.Context, c domain.Campaign) (*domain.Campaign, error)

	// Update applies a partial patch to an existing campaign.
	Update(ctx context.Context, id string, patch CampaignPatch) (*domain.Campaign, error)

	// Delete removes a campaign and reports whether it existed.
	Delete(ctx context.Context, id string) (bool, error)

	// SetStatus updates only the status field.
	SetStatus(ctx context.Context, id, status string) (*domain.Campaign, error)

	// Stats aggregates counters across all stored campaigns.
	Stats(ctx context.Context) (*domain.Stats, error)
}

// CampaignPatch is a partial update; nil fields are left unchanged.
type CampaignPatch struct {
	Name           *string
	Status         *string
	Budget         *float64
	StartDate      *string
	EndDate        *string
	Description    *string
	TargetAudience *string
}
