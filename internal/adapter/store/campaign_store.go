// Package store holds the client-side cache of the campaign collection and
// the actions that keep it in sync with the API.
package store

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"campaignboard/internal/core/domain"
	"campaignboard/internal/core/port"
)

// toastDuration is how long a transient notification stays visible before
// the store clears it.
const toastDuration = 3 * time.Second

// Toast is a single-slot transient notification. Type is "success" or
// "error".
type Toast struct {
	Message string
	Type    string
}

// Filters is the client-side filter state sent with list requests.
type Filters struct {
	Status string
	Page   int
	Limit  int
}

func defaultFilters() Filters {
	return Filters{Page: 1, Limit: 10}
}

func defaultPagination() domain.Pagination {
	return domain.Pagination{Page: 1, Limit: 10, Total: 0, TotalPages: 1}
}

// CampaignStore owns the one authoritative client-side copy of the campaign
// collection, a current-campaign slot, filter and pagination state, and the
// aggregate stats. It is constructed once per application root and passed
// to whatever needs it; all methods are safe for concurrent use and readers
// observe mutations synchronously.
//
// Overlapping calls to the same action are not serialised: two concurrent
// FetchCampaigns race and the last response to arrive wins, and Reset does
// not cancel in-flight requests. Both gaps are deliberate, documented
// behavior.
type CampaignStore struct {
	svc    port.CampaignService
	logger *slog.Logger

	mu             sync.Mutex
	campaigns      []domain.Campaign
	current        *domain.Campaign
	stats          *domain.Stats
	loading        bool
	updatingStatus bool
	errMsg         string
	notFound       bool
	searchQuery    string
	filters        Filters
	pagination     domain.Pagination
	toast          *Toast
	toastSeq       uint64
	toastTimer     *time.Timer
	toastDur       time.Duration
}

// Option configures a CampaignStore.
type Option func(*CampaignStore)

// WithToastDuration overrides how long toasts stay visible. Used by tests.
func WithToastDuration(d time.Duration) Option {
	return func(s *CampaignStore) { s.toastDur = d }
}

// New builds a store over the given service. A nil logger falls back to the
// default slog logger.
func New(svc port.CampaignService, logger *slog.Logger, opts ...Option) *CampaignStore {
	if logger == nil {
		logger = slog.Default()
	}
	s := &CampaignStore{
		svc:        svc,
		logger:     logger,
		filters:    defaultFilters(),
		pagination: defaultPagination(),
		toastDur:   toastDuration,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ---------------------------------------------------------------------------
// State accessors
// ---------------------------------------------------------------------------

// Campaigns returns a copy of the cached collection in server order.
func (s *CampaignStore) Campaigns() []domain.Campaign {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.campaigns)
}

// Current returns a copy of the current campaign, or nil.
func (s *CampaignStore) Current() *domain.Campaign {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	c := *s.current
	return &c
}

// Stats returns the last fetched aggregate stats, or nil.
func (s *CampaignStore) Stats() *domain.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stats == nil {
		return nil
	}
	st := *s.stats
	return &st
}

// Loading reports whether a store action is in flight.
func (s *CampaignStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// UpdatingStatus reports whether an optimistic status update is in flight.
func (s *CampaignStore) UpdatingStatus() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatingStatus
}

// ErrorMessage returns the persistent error message, empty when none.
func (s *CampaignStore) ErrorMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// NotFound reports whether the last detail fetch hit a missing campaign.
func (s *CampaignStore) NotFound() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notFound
}

// SearchQuery returns the current search query.
func (s *CampaignStore) SearchQuery() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchQuery
}

// Filters returns the current filter state.
func (s *CampaignStore) Filters() Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// Pagination returns the server-reported pagination block.
func (s *CampaignStore) Pagination() domain.Pagination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pagination
}

// Toast returns the visible transient notification, or nil.
func (s *CampaignStore) Toast() *Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.toast == nil {
		return nil
	}
	t := *s.toast
	return &t
}

// ---------------------------------------------------------------------------
// Derived views (recomputed on read)
// ---------------------------------------------------------------------------

// FilteredCampaigns returns the campaigns whose name contains the search
// query, case-insensitively. An empty query returns the full collection.
func (s *CampaignStore) FilteredCampaigns() []domain.Campaign {
	s.mu.Lock()
	defer s.mu.Unlock()
	query := strings.TrimSpace(s.searchQuery)
	if query == "" {
		return slices.Clone(s.campaigns)
	}
	lower := strings.ToLower(query)
	var out []domain.Campaign
	for _, c := range s.campaigns {
		if strings.Contains(strings.ToLower(c.Name), lower) {
			out = append(out, c)
		}
	}
	return out
}

// CampaignCount returns the number of cached campaigns.
func (s *CampaignStore) CampaignCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.campaigns)
}

// ActiveCampaigns returns the cached campaigns with status active.
func (s *CampaignStore) ActiveCampaigns() []domain.Campaign {
	return s.CampaignsByStatus(domain.StatusActive)
}

// CampaignsByStatus returns the cached campaigns with the given status.
func (s *CampaignStore) CampaignsByStatus(status string) []domain.Campaign {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Campaign
	for _, c := range s.campaigns {
		if c.Status == status {
			out = append(out, c)
		}
	}
	return out
}

// HasCampaigns reports whether the cache holds any campaigns.
func (s *CampaignStore) HasCampaigns() bool {
	return s.CampaignCount() > 0
}

// CampaignByID scans the cache for a campaign with the given id and returns
// a copy, or nil when absent.
func (s *CampaignStore) CampaignByID(id string) *domain.Campaign {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		c := s.campaigns[i]
		return &c
	}
	return nil
}

// BudgetUtilization returns spent as a rounded percentage of total budget
// from the last fetched stats, 0 when stats are absent or budget is zero.
func (s *CampaignStore) BudgetUtilization() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stats == nil {
		return 0
	}
	return s.stats.BudgetUtilization()
}

// AverageCPC returns the average cost per click as a two-decimal string,
// "0.00" when stats are absent or there are no clicks.
func (s *CampaignStore) AverageCPC() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stats == nil {
		return "0.00"
	}
	return s.stats.AverageCPC()
}

// StatusBreakdown returns per-status counts from the last fetched stats,
// nil when stats have not been loaded.
func (s *CampaignStore) StatusBreakdown() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stats == nil {
		return nil
	}
	return s.stats.StatusBreakdown()
}

// indexOf returns the position of id in the cache, -1 when absent. Caller
// holds the lock.
func (s *CampaignStore) indexOf(id string) int {
	for i := range s.campaigns {
		if s.campaigns[i].ID == id {
			return i
		}
	}
	return -1
}

// ---------------------------------------------------------------------------
// Actions
// ---------------------------------------------------------------------------

// FetchCampaigns loads a page of campaigns. Non-zero fields of extra
// override the stored filters for this call only, and a non-empty search
// query is injected as the search parameter. On success the collection and
// pagination are replaced wholesale; on failure the error message is set
// and the collection emptied.
func (s *CampaignStore) FetchCampaigns(ctx context.Context, extra port.ListParams) error {
	s.mu.Lock()
	params := port.ListParams{
		Page:   s.filters.Page,
		Limit:  s.filters.Limit,
		Status: s.filters.Status,
	}
	if extra.Page > 0 {
		params.Page = extra.Page
	}
	if extra.Limit > 0 {
		params.Limit = extra.Limit
	}
	if extra.Status != "" {
		params.Status = extra.Status
	}
	if extra.Search != "" {
		params.Search = extra.Search
	} else if q := strings.TrimSpace(s.searchQuery); q != "" {
		params.Search = q
	}
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()

	result, err := s.svc.List(ctx, params)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.errMsg = domain.ErrorMessage(err, "Failed to load campaigns. Please try again.")
		s.campaigns = nil
		s.logger.Error("fetch campaigns failed", slog.Any("error", err))
		return err
	}
	s.campaigns = result.Data
	s.pagination = result.Pagination
	s.errMsg = ""
	return nil
}

// FetchCampaignByID loads one campaign into the current slot. With useCache
// true a cache hit short-circuits without any network call; the cache is
// never invalidated by staleness, so callers wanting a fresh copy pass
// false. On a cache miss the fetched campaign also overwrites any matching
// cache entry in place, keeping list and detail views consistent. A missing
// campaign sets notFound instead of the error message.
func (s *CampaignStore) FetchCampaignByID(ctx context.Context, id string, useCache bool) error {
	if useCache {
		s.mu.Lock()
		if i := s.indexOf(id); i >= 0 {
			c := s.campaigns[i]
			s.current = &c
			s.mu.Unlock()
			return nil
		}
		s.mu.Unlock()
	}

	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	s.notFound = false
	s.mu.Unlock()

	campaign, err := s.svc.Get(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.current = nil
		if domain.IsNotFound(err) {
			s.notFound = true
			s.errMsg = ""
		} else {
			s.notFound = false
			s.errMsg = domain.ErrorMessage(err, "Failed to load campaign. Please try again.")
		}
		s.logger.Error("fetch campaign failed", slog.String("id", id), slog.Any("error", err))
		return err
	}
	s.current = campaign
	if i := s.indexOf(campaign.ID); i >= 0 {
		s.campaigns[i] = *campaign
	}
	s.errMsg = ""
	return nil
}

// CreateCampaign submits a new campaign and, on success, prepends the
// server's record to the cache for immediate visibility.
func (s *CampaignStore) CreateCampaign(ctx context.Context, input port.CreateCampaignInput) (*domain.Campaign, error) {
	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()

	created, err := s.svc.Create(ctx, input)

	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.errMsg = domain.ErrorMessage(err, "Failed to create campaign. Please try again.")
		s.mu.Unlock()
		s.logger.Error("create campaign failed", slog.Any("error", err))
		s.ShowToast("Failed to create campaign", "error")
		return nil, err
	}
	s.campaigns = append([]domain.Campaign{*created}, s.campaigns...)
	s.errMsg = ""
	s.mu.Unlock()
	s.ShowToast("Campaign created successfully!", "success")
	return created, nil
}

// UpdateCampaign submits a partial update and, on success, replaces the
// matching cache entry and the current campaign if it is the one updated.
func (s *CampaignStore) UpdateCampaign(ctx context.Context, id string, input port.UpdateCampaignInput) (*domain.Campaign, error) {
	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()

	updated, err := s.svc.Update(ctx, id, input)

	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.errMsg = domain.ErrorMessage(err, "Failed to update campaign. Please try again.")
		s.mu.Unlock()
		s.logger.Error("update campaign failed", slog.String("id", id), slog.Any("error", err))
		s.ShowToast("Failed to update campaign", "error")
		return nil, err
	}
	if i := s.indexOf(id); i >= 0 {
		s.campaigns[i] = *updated
	}
	if s.current != nil && s.current.ID == id {
		c := *updated
		s.current = &c
	}
	s.errMsg = ""
	s.mu.Unlock()
	s.ShowToast("Campaign updated successfully!", "success")
	return updated, nil
}

// DeleteCampaign removes a campaign. The cache entry is only removed after
// the server confirms; there is no optimistic removal.
func (s *CampaignStore) DeleteCampaign(ctx context.Context, id string) error {
	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()

	err := s.svc.Delete(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.errMsg = domain.ErrorMessage(err, "Failed to delete campaign. Please try again.")
		s.logger.Error("delete campaign failed", slog.String("id", id), slog.Any("error", err))
		return err
	}
	if i := s.indexOf(id); i >= 0 {
		s.campaigns = append(s.campaigns[:i], s.campaigns[i+1:]...)
	}
	if s.current != nil && s.current.ID == id {
		s.current = nil
	}
	s.errMsg = ""
	return nil
}

// UpdateStatus optimistically writes newStatus onto the cache and the
// current campaign, then asks the server to confirm. On failure the
// previous status is restored and a toast raised; the persistent error
// field is never touched. This is the one action where client state may
// diverge from confirmed server state for the duration of the round trip.
func (s *CampaignStore) UpdateStatus(ctx context.Context, id, newStatus string) error {
	s.mu.Lock()
	prev := ""
	if s.current != nil && s.current.ID == id {
		prev = s.current.Status
	} else if i := s.indexOf(id); i >= 0 {
		prev = s.campaigns[i].Status
	}
	s.setLocalStatus(id, newStatus)
	s.updatingStatus = true
	s.mu.Unlock()

	err := s.svc.SetStatus(ctx, id, newStatus)

	s.mu.Lock()
	s.updatingStatus = false
	if err != nil {
		s.setLocalStatus(id, prev)
		s.mu.Unlock()
		s.logger.Error("status update failed", slog.String("id", id), slog.Any("error", err))
		s.ShowToast("Failed to update status. Reverting change.", "error")
		return err
	}
	s.mu.Unlock()
	s.ShowToast("Status updated successfully!", "success")
	return nil
}

// setLocalStatus writes status onto both the current campaign and the
// matching cache entry. Caller holds the lock.
func (s *CampaignStore) setLocalStatus(id, status string) {
	if s.current != nil && s.current.ID == id {
		s.current.Status = status
	}
	if i := s.indexOf(id); i >= 0 {
		s.campaigns[i].Status = status
	}
}

// FetchStats loads the aggregate counters object.
func (s *CampaignStore) FetchStats(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()

	stats, err := s.svc.Stats(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.errMsg = domain.ErrorMessage(err, "Failed to load dashboard statistics.")
		s.logger.Error("fetch stats failed", slog.Any("error", err))
		return err
	}
	s.stats = stats
	s.errMsg = ""
	return nil
}

// ---------------------------------------------------------------------------
// Filter mutators. These mutate state only; callers re-invoke FetchCampaigns
// to see the effect.
// ---------------------------------------------------------------------------

// SetSearchQuery stores the search query.
func (s *CampaignStore) SetSearchQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchQuery = query
}

// SetStatusFilter stores the status filter.
func (s *CampaignStore) SetStatusFilter(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.Status = status
}

// SetPage stores the requested page.
func (s *CampaignStore) SetPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.Page = page
}

// SetLimit stores the requested page size.
func (s *CampaignStore) SetLimit(limit int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.Limit = limit
}

// SetFilters merges non-zero fields of f into the stored filters.
func (s *CampaignStore) SetFilters(f Filters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f.Status != "" {
		s.filters.Status = f.Status
	}
	if f.Page > 0 {
		s.filters.Page = f.Page
	}
	if f.Limit > 0 {
		s.filters.Limit = f.Limit
	}
}

// ClearFilters restores the default filter state.
func (s *CampaignStore) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = defaultFilters()
}

// ClearError clears the persistent error message and the notFound flag.
func (s *CampaignStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = ""
	s.notFound = false
}

// ClearCurrent clears the current campaign slot.
func (s *CampaignStore) ClearCurrent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	s.notFound = false
}

// ShowToast publishes a transient notification. Each new toast supersedes
// the display timer of the previous one; the store clears the slot after
// the display duration.
func (s *CampaignStore) ShowToast(message, kind string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toastSeq++
	seq := s.toastSeq
	s.toast = &Toast{Message: message, Type: kind}
	if s.toastTimer != nil {
		s.toastTimer.Stop()
	}
	s.toastTimer = time.AfterFunc(s.toastDur, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.toastSeq == seq {
			s.toast = nil
		}
	})
}

// Reset restores the store to its initial state. In-flight requests are not
// cancelled; a stale response arriving afterwards will still overwrite
// fields.
func (s *CampaignStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.campaigns = nil
	s.current = nil
	s.stats = nil
	s.loading = false
	s.updatingStatus = false
	s.errMsg = ""
	s.notFound = false
	s.searchQuery = ""
	s.filters = defaultFilters()
	s.pagination = defaultPagination()
	if s.toastTimer != nil {
		s.toastTimer.Stop()
		s.toastTimer = nil
	}
	s.toast = nil
}
