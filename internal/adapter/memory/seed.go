package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"campaignboard/internal/core/domain"
)

// Seed inserts demo campaigns into the repository. The sample spans every
// status and carries nonzero spent and click counters so the stats endpoint
// returns meaningful ratios.
func Seed(ctx context.Context, repo *CampaignRepository) error {
	now := time.Now().UTC()
	samples := []domain.Campaign{
		{
			Name:           "Spring Sale",
			Status:         domain.StatusActive,
			Budget:         5000,
			Spent:          1250.50,
			Clicks:         830,
			StartDate:      "2025-03-01",
			EndDate:        "2025-04-15",
			Description:    "Seasonal discount push across all channels",
			TargetAudience: "Returning customers",
		},
		{
			Name:           "Summer Launch",
			Status:         domain.StatusActive,
			Budget:         12000,
			Spent:          7600,
			Clicks:         4100,
			StartDate:      "2025-06-01",
			EndDate:        "2025-08-31",
			Description:    "New product line announcement",
			TargetAudience: "18-34 urban",
		},
		{
			Name:      "Black Friday Teaser",
			Status:    domain.StatusPaused,
			Budget:    8000,
			Spent:     900,
			Clicks:    450,
			StartDate: "2025-10-15",
			EndDate:   "2025-11-28",
		},
		{
			Name:           "Holiday Push",
			Status:         domain.StatusDraft,
			Budget:         15000,
			StartDate:      "2025-12-01",
			EndDate:        "2025-12-31",
			TargetAudience: "Gift shoppers",
		},
		{
			Name:      "Brand Awareness Q1",
			Status:    domain.StatusCompleted,
			Budget:    6000,
			Spent:     6000,
			Clicks:    2750,
			StartDate: "2025-01-01",
			EndDate:   "2025-03-31",
		},
	}
	for _, c := range samples {
		c.ID = uuid.NewString()
		c.CreatedAt = now
		c.UpdatedAt = now
		if _, err := repo.Create(ctx, c); err != nil {
			return err
		}
	}
	return nil
}
