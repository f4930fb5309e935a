package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaignboard/internal/core/domain"
	"campaignboard/internal/core/port"
)

func seededRepo(t *testing.T, n int) *CampaignRepository {
	t.Helper()
	repo := NewCampaignRepository()
	for i := 1; i <= n; i++ {
		status := domain.StatusDraft
		if i%2 == 0 {
			status = domain.StatusActive
		}
		_, err := repo.Create(context.Background(), domain.Campaign{
			ID:     fmt.Sprintf("c%d", i),
			Name:   fmt.Sprintf("Campaign %d", i),
			Status: status,
			Budget: float64(i * 1000),
			Spent:  float64(i * 100),
			Clicks: int64(i * 10),
		})
		require.NoError(t, err)
	}
	return repo
}

func TestListPagination(t *testing.T) {
	repo := seededRepo(t, 7)
	ctx := context.Background()

	page1, err := repo.List(ctx, port.ListParams{Page: 1, Limit: 3})
	require.NoError(t, err)
	assert.Len(t, page1.Data, 3)
	assert.Equal(t, domain.Pagination{Page: 1, Limit: 3, Total: 7, TotalPages: 3}, page1.Pagination)
	assert.Equal(t, "c7", page1.Data[0].ID, "newest first")

	page3, err := repo.List(ctx, port.ListParams{Page: 3, Limit: 3})
	require.NoError(t, err)
	assert.Len(t, page3.Data, 1)
	assert.Equal(t, "c1", page3.Data[0].ID)

	beyond, err := repo.List(ctx, port.ListParams{Page: 9, Limit: 3})
	require.NoError(t, err)
	assert.Empty(t, beyond.Data)
	assert.Equal(t, 3, beyond.Pagination.TotalPages)
}

func TestListDefaultsAndEmpty(t *testing.T) {
	repo := NewCampaignRepository()

	result, err := repo.List(context.Background(), port.ListParams{})
	require.NoError(t, err)
	assert.NotNil(t, result.Data, "empty result serialises as [], not null")
	assert.Equal(t, domain.Pagination{Page: 1, Limit: 10, Total: 0, TotalPages: 1}, result.Pagination)
}

func TestListFilters(t *testing.T) {
	repo := seededRepo(t, 6)
	ctx := context.Background()

	active, err := repo.List(ctx, port.ListParams{Status: domain.StatusActive})
	require.NoError(t, err)
	assert.Len(t, active.Data, 3)
	for _, c := range active.Data {
		assert.Equal(t, domain.StatusActive, c.Status)
	}

	// Search is case-insensitive and trims the query.
	found, err := repo.List(ctx, port.ListParams{Search: "  CAMPAIGN 3  "})
	require.NoError(t, err)
	require.Len(t, found.Data, 1)
	assert.Equal(t, "c3", found.Data[0].ID)

	both, err := repo.List(ctx, port.ListParams{Status: domain.StatusDraft, Search: "campaign 5"})
	require.NoError(t, err)
	assert.Len(t, both.Data, 1)
}

func TestGetReturnsCopyOrNil(t *testing.T) {
	repo := seededRepo(t, 2)
	ctx := context.Background()

	got, err := repo.Get(ctx, "c1")
	require.NoError(t, err)
	require.NotNil(t, got)
	got.Name = "mutated"

	again, err := repo.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Campaign 1", again.Name, "caller mutations do not leak into the store")

	missing, err := repo.Get(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUpdateAppliesPatch(t *testing.T) {
	repo := seededRepo(t, 1)
	ctx := context.Background()

	name := "Renamed"
	budget := 9999.0
	updated, err := repo.Update(ctx, "c1", port.CampaignPatch{Name: &name, Budget: &budget})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, 9999.0, updated.Budget)
	assert.Equal(t, domain.StatusDraft, updated.Status, "unpatched fields unchanged")
	assert.False(t, updated.UpdatedAt.IsZero())

	missing, err := repo.Update(ctx, "ghost", port.CampaignPatch{Name: &name})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDeleteReportsExistence(t *testing.T) {
	repo := seededRepo(t, 2)
	ctx := context.Background()

	ok, err := repo.Delete(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Delete(ctx, "c1")
	require.NoError(t, err)
	assert.False(t, ok)

	result, err := repo.List(ctx, port.ListParams{})
	require.NoError(t, err)
	assert.Len(t, result.Data, 1)
}

func TestSetStatus(t *testing.T) {
	repo := seededRepo(t, 1)
	ctx := context.Background()

	updated, err := repo.SetStatus(ctx, "c1", domain.StatusPaused)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaused, updated.Status)

	got, err := repo.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaused, got.Status)

	missing, err := repo.SetStatus(ctx, "ghost", domain.StatusPaused)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStatsAggregatesCounters(t *testing.T) {
	repo := seededRepo(t, 4)

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, stats.TotalCampaigns)
	assert.Equal(t, 2, stats.ActiveCampaigns)
	assert.Equal(t, 2, stats.DraftCampaigns)
	assert.Equal(t, float64(1000+2000+3000+4000), stats.TotalBudget)
	assert.Equal(t, float64(100+200+300+400), stats.TotalSpent)
	assert.Equal(t, int64(10+20+30+40), stats.TotalClicks)
}

func TestSeedPopulatesEveryStatus(t *testing.T) {
	repo := NewCampaignRepository()
	require.NoError(t, Seed(context.Background(), repo))

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, stats.TotalCampaigns)
	for status, count := range stats.StatusBreakdown() {
		assert.Greater(t, count, 0, status)
	}
}
