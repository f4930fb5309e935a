// Package memory provides the in-memory campaign repository behind the stub
// backend. It keeps the whole collection in a slice ordered newest first,
// which is the order the list endpoint serves.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"campaignboard/internal/core/domain"
	"campaignboard/internal/core/port"
)

// CampaignRepository implements port.CampaignRepository over a slice guarded
// by a mutex. It is safe for concurrent use.
type CampaignRepository struct {
	mu        sync.RWMutex
	campaigns []domain.Campaign
}

// NewCampaignRepository returns an empty repository.
func NewCampaignRepository() *CampaignRepository {
	return &CampaignRepository{}
}

// List applies the status filter and the case-insensitive name search, then
// paginates. The pagination block reports at least one page even when the
// result is empty.
func (r *CampaignRepository) List(_ context.Context, params port.ListParams) (*port.ListResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(params.Search))
	matched := make([]domain.Campaign, 0, len(r.campaigns))
	for _, c := range r.campaigns {
		if params.Status != "" && c.Status != params.Status {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(c.Name), search) {
			continue
		}
		matched = append(matched, c)
	}

	page, limit := params.Page, params.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	total := len(matched)
	totalPages := (total + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return &port.ListResult{
		Data: matched[start:end],
		Pagination: domain.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// Get returns a copy of the campaign with the given id, or nil when absent.
func (r *CampaignRepository) Get(_ context.Context, id string) (*domain.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.indexOf(id); i >= 0 {
		c := r.campaigns[i]
		return &c, nil
	}
	return nil, nil
}

// Create stores the campaign at the head of the collection.
func (r *CampaignRepository) Create(_ context.Context, c domain.Campaign) (*domain.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.campaigns = append([]domain.Campaign{c}, r.campaigns...)
	stored := c
	return &stored, nil
}

// Update applies the patch to an existing campaign and bumps UpdatedAt.
// Returns nil when the campaign does not exist.
func (r *CampaignRepository) Update(_ context.Context, id string, patch port.CampaignPatch) (*domain.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return nil, nil
	}
	c := &r.campaigns[i]
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Status != nil {
		c.Status = *patch.Status
	}
	if patch.Budget != nil {
		c.Budget = *patch.Budget
	}
	if patch.StartDate != nil {
		c.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		c.EndDate = *patch.EndDate
	}
	if patch.Description != nil {
		c.Description = *patch.Description
	}
	if patch.TargetAudience != nil {
		c.TargetAudience = *patch.TargetAudience
	}
	c.UpdatedAt = time.Now().UTC()
	out := *c
	return &out, nil
}

// Delete removes the campaign and reports whether it existed.
func (r *CampaignRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return false, nil
	}
	r.campaigns = append(r.campaigns[:i], r.campaigns[i+1:]...)
	return true, nil
}

// SetStatus updates only the status field. Returns nil when the campaign
// does not exist.
func (r *CampaignRepository) SetStatus(_ context.Context, id, status string) (*domain.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return nil, nil
	}
	r.campaigns[i].Status = status
	r.campaigns[i].UpdatedAt = time.Now().UTC()
	out := r.campaigns[i]
	return &out, nil
}

// Stats aggregates counters across the whole collection.
func (r *CampaignRepository) Stats(_ context.Context) (*domain.Stats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stats := &domain.Stats{TotalCampaigns: len(r.campaigns)}
	for _, c := range r.campaigns {
		switch c.Status {
		case domain.StatusActive:
			stats.ActiveCampaigns++
		case domain.StatusPaused:
			stats.PausedCampaigns++
		case domain.StatusCompleted:
			stats.CompletedCampaigns++
		case domain.StatusDraft:
			stats.DraftCampaigns++
		}
		stats.TotalBudget += c.Budget
		stats.TotalSpent += c.Spent
		stats.TotalClicks += c.Clicks
	}
	return stats, nil
}

// indexOf returns the position of id, -1 when absent. Caller holds a lock.
func (r *CampaignRepository) indexOf(id string) int {
	for i := range r.campaigns {
		if r.campaigns[i].ID == id {
			return i
		}
	}
	return -1
}
