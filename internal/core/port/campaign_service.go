package port

import (
	"context"

	"campaignboard/internal/core/domain"
)

// CampaignService defines the client-side operations against the campaigns
// API. This is the primary outbound port of the SDK; the REST adapter
// implements it and the store consumes it. Implementations normalise every
// failure into *domain.APIError before returning, except context
// cancellation which passes through untouched.
type CampaignService interface {
	// List retrieves a page of campaigns. Zero-valued params are omitted
	// from the query string.
	List(ctx context.Context, params ListParams) (*ListResult, error)

	// Get retrieves one campaign by id. An empty id fails locally with a
	// VALIDATION_ERROR before any network call.
	Get(ctx context.Context, id string) (*domain.Campaign, error)

	// Create submits a new campaign built from raw form values. Required
	// fields are checked locally, strings trimmed and budget coerced to a
	// number before the request is sent.
	Create(ctx context.Context, input CreateCampaignInput) (*domain.Campaign, error)

	// Update submits a partial campaign update. Only present fields are
	// sent; the same trimming and coercion as Create applies to them.
	Update(ctx context.Context, id string, input UpdateCampaignInput) (*domain.Campaign, error)

	// Delete removes a campaign by id.
	Delete(ctx context.Context, id string) error

	// SetStatus performs the dedicated single-field status update.
	SetStatus(ctx context.Context, id, status string) error

	// Search lists campaigns matching query. A blank query behaves exactly
	// like List(params).
	Search(ctx context.Context, query string, params ListParams) (*ListResult, error)

	// Stats retrieves the aggregate counters object.
	Stats(ctx context.Context) (*domain.Stats, error)
}

// ListParams are the query parameters of the list endpoint. Zero values are
// treated as unset.
type ListParams struct {
	Page   int
	Limit  int
	Status string
	Search string
}

// ListResult is the paginated list envelope.
type ListResult struct {
	Data       []domain.Campaign `json:"data"`
	Pagination domain.Pagination `json:"pagination"`
}

// CreateCampaignInput carries raw form values for campaign creation. Budget
// stays a string here because it arrives from a form; the service coerces it
// to a number on the wire.
type CreateCampaignInput struct {
	Name           string
	Status         string
	Budget         string
	StartDate      string
	EndDate        string
	Description    string
	TargetAudience string
}

// UpdateCampaignInput is the partial counterpart of CreateCampaignInput.
// Nil fields are left out of the request entirely.
type UpdateCampaignInput struct {
	Name           *string
	Status         *string
	Budget         *string
	StartDate      *string
	EndDate        *string
	Description    *string
	TargetAudience *string
}
