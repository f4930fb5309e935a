package restadapter

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"campaignboard/internal/core/domain"
	"campaignboard/internal/core/port"
)

// CampaignService implements port.CampaignService against the REST API. It
// owns query-string construction and payload normalisation: string fields
// are trimmed, the budget is coerced to a number and empty optional fields
// are omitted. Required-field checks fail locally with a VALIDATION_ERROR
// before any network call.
type CampaignService struct {
	client *Client
}

// NewCampaignService returns a service using the given low-level client.
func NewCampaignService(client *Client) *CampaignService {
	return &CampaignService{client: client}
}

type campaignEnvelope struct {
	Data domain.Campaign `json:"data"`
}

type statsEnvelope struct {
	Data domain.Stats `json:"data"`
}

type createPayload struct {
	Name           string  `json:"name"`
	Status         string  `json:"status"`
	Budget         float64 `json:"budget"`
	StartDate      string  `json:"startDate"`
	EndDate        string  `json:"endDate"`
	Description    string  `json:"description,omitempty"`
	TargetAudience string  `json:"targetAudience,omitempty"`
}

type updatePayload struct {
	Name           *string  `json:"name,omitempty"`
	Status         *string  `json:"status,omitempty"`
	Budget         *float64 `json:"budget,omitempty"`
	StartDate      *string  `json:"startDate,omitempty"`
	EndDate        *string  `json:"endDate,omitempty"`
	Description    *string  `json:"description,omitempty"`
	TargetAudience *string  `json:"targetAudience,omitempty"`
}

// List retrieves a page of campaigns, omitting unset query parameters.
func (s *CampaignService) List(ctx context.Context, params port.ListParams) (*port.ListResult, error) {
	query := url.Values{}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Status != "" {
		query.Set("status", params.Status)
	}
	if params.Search != "" {
		query.Set("search", params.Search)
	}

	var result port.ListResult
	if err := s.client.Send(ctx, http.MethodGet, "/campaigns", nil, query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Get retrieves a single campaign by id.
func (s *CampaignService) Get(ctx context.Context, id string) (*domain.Campaign, error) {
	if id == "" {
		return nil, domain.NewAPIError(domain.CodeValidationError, "Campaign ID is required")
	}
	var envelope campaignEnvelope
	if err := s.client.Send(ctx, http.MethodGet, "/campaigns/"+url.PathEscape(id), nil, nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// Create submits a new campaign after normalising the form input.
func (s *CampaignService) Create(ctx context.Context, input port.CreateCampaignInput) (*domain.Campaign, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.NewAPIError(domain.CodeValidationError, "Campaign name is required")
	}
	if strings.TrimSpace(input.Status) == "" {
		return nil, domain.NewAPIError(domain.CodeValidationError, "Campaign status is required")
	}
	if strings.TrimSpace(input.Budget) == "" {
		return nil, domain.NewAPIError(domain.CodeValidationError, "Campaign budget is required")
	}
	if strings.TrimSpace(input.StartDate) == "" {
		return nil, domain.NewAPIError(domain.CodeValidationError, "Start date is required")
	}
	if strings.TrimSpace(input.EndDate) == "" {
		return nil, domain.NewAPIError(domain.CodeValidationError, "End date is required")
	}
	budget, err := strconv.ParseFloat(strings.TrimSpace(input.Budget), 64)
	if err != nil {
		return nil, domain.NewAPIError(domain.CodeValidationError, "Budget must be a number")
	}

	payload := createPayload{
		Name:           name,
		Status:         strings.TrimSpace(input.Status),
		Budget:         budget,
		StartDate:      strings.TrimSpace(input.StartDate),
		EndDate:        strings.TrimSpace(input.EndDate),
		Description:    strings.TrimSpace(input.Description),
		TargetAudience: strings.TrimSpace(input.TargetAudience),
	}

	var envelope campaignEnvelope
	if err = s.client.Send(ctx, http.MethodPost, "/campaigns", payload, nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// Update submits a partial update; only present fields are normalised and
// sent.
func (s *CampaignService) Update(ctx context.Context, id string, input port.UpdateCampaignInput) (*domain.Campaign, error) {
	if id == "" {
		return nil, domain.NewAPIError(domain.CodeValidationError, "Campaign ID is required")
	}

	var payload updatePayload
	if input.Name != nil {
		v := strings.TrimSpace(*input.Name)
		payload.Name = &v
	}
	if input.Status != nil {
		v := strings.TrimSpace(*input.Status)
		payload.Status = &v
	}
	if input.Budget != nil {
		budget, err := strconv.ParseFloat(strings.TrimSpace(*input.Budget), 64)
		if err != nil {
			return nil, domain.NewAPIError(domain.CodeValidationError, "Budget must be a number")
		}
		payload.Budget = &budget
	}
	if input.StartDate != nil {
		v := strings.TrimSpace(*input.StartDate)
		payload.StartDate = &v
	}
	if input.EndDate != nil {
		v := strings.TrimSpace(*input.EndDate)
		payload.EndDate = &v
	}
	if input.Description != nil {
		v := strings.TrimSpace(*input.Description)
		payload.Description = &v
	}
	if input.TargetAudience != nil {
		v := strings.TrimSpace(*input.TargetAudience)
		payload.TargetAudience = &v
	}

	var envelope campaignEnvelope
	if err := s.client.Send(ctx, http.MethodPut, "/campaigns/"+url.PathEscape(id), payload, nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// Delete removes a campaign by id.
func (s *CampaignService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.NewAPIError(domain.CodeValidationError, "Campaign ID is required")
	}
	return s.client.Send(ctx, http.MethodDelete, "/campaigns/"+url.PathEscape(id), nil, nil, nil)
}

// SetStatus performs the dedicated status-only update.
func (s *CampaignService) SetStatus(ctx context.Context, id, status string) error {
	if id == "" {
		return domain.NewAPIError(domain.CodeValidationError, "Campaign ID is required")
	}
	body := map[string]string{"status": status}
	return s.client.Send(ctx, http.MethodPatch, "/campaigns/"+url.PathEscape(id)+"/status", body, nil, nil)
}

// Search delegates to List with the search parameter populated. A blank
// query behaves exactly like List(params).
func (s *CampaignService) Search(ctx context.Context, query string, params port.ListParams) (*port.ListResult, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return s.List(ctx, params)
	}
	params.Search = trimmed
	return s.List(ctx, params)
}

// Stats retrieves the aggregate counters object.
func (s *CampaignService) Stats(ctx context.Context) (*domain.Stats, error) {
	var envelope statsEnvelope
	if err := s.client.Send(ctx, http.MethodGet, "/stats", nil, nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}
