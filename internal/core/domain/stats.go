package domain

import (
	"fmt"
	"math"
)

// Stats is the aggregate counters object returned by GET /stats.
type Stats struct {
	TotalCampaigns     int     `json:"totalCampaigns"`
	ActiveCampaigns    int     `json:"activeCampaigns"`
	PausedCampaigns    int     `json:"pausedCampaigns"`
	CompletedCampaigns int     `json:"completedCampaigns"`
	DraftCampaigns     int     `json:"draftCampaigns"`
	TotalBudget        float64 `json:"totalBudget"`
	TotalSpent         float64 `json:"totalSpent"`
	TotalClicks        int64   `json:"totalClicks"`
}

// BudgetUtilization returns spent as a rounded percentage of budget, or 0
// when there is no budget.
func (s Stats) BudgetUtilization() int {
	if s.TotalBudget == 0 {
		return 0
	}
	return int(math.Round(s.TotalSpent / s.TotalBudget * 100))
}

// AverageCPC returns the average cost per click formatted with two decimals,
// or "0.00" when there are no clicks.
func (s Stats) AverageCPC() string {
	if s.TotalClicks == 0 || s.TotalSpent == 0 {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", s.TotalSpent/float64(s.TotalClicks))
}

// StatusBreakdown maps each campaign status to its count.
func (s Stats) StatusBreakdown() map[string]int {
	return map[string]int{
		StatusActive:    s.ActiveCampaigns,
		StatusPaused:    s.PausedCampaigns,
		StatusCompleted: s.CompletedCampaigns,
		StatusDraft:     s.DraftCampaigns,
	}
}
