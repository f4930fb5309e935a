package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"valid", "Spring Sale", ""},
		{"valid with underscore and hyphen", "q1_brand-push 2025", ""},
		{"empty", "", "Campaign name is required"},
		{"whitespace only", "   ", "Campaign name is required"},
		{"too short", "ab", "Campaign name must be at least 3 characters"},
		{"minimum length passes", "abc", ""},
		{"too long", strings.Repeat("a", 256), "Campaign name must not exceed 255 characters"},
		{"maximum length passes", strings.Repeat("a", 255), ""},
		{"bad characters", "Sale!", "Campaign name format is invalid"},
		{"trimmed before checks", "  ab  ", "Campaign name must be at least 3 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateName(tt.value))
		})
	}
}

func TestValidateBudget(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"valid integer", "500", ""},
		{"valid decimal", "1.50", ""},
		{"minimum passes", "1", ""},
		{"below minimum", "0", "Budget must be at least 1"},
		{"fraction below minimum", "0.99", "Budget must be at least 1"},
		{"negative", "-5", "Budget must be at least 1"},
		{"empty", "", "Budget is required"},
		{"not a number", "lots", "Budget must be a positive number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateBudget(tt.value))
		})
	}
}

func TestValidateDates(t *testing.T) {
	assert.Empty(t, ValidateStartDate("2025-03-01"))
	assert.Equal(t, "Start date is required", ValidateStartDate(""))
	assert.Equal(t, "Start date must be a valid date", ValidateStartDate("03/01/2025"))

	assert.Empty(t, ValidateEndDate("2025-04-15", "2025-03-01"))
	assert.Empty(t, ValidateEndDate("2025-03-01", "2025-03-01"), "equal dates are valid")
	assert.Equal(t, "End date must be after Start date", ValidateEndDate("2025-02-28", "2025-03-01"))
	assert.Equal(t, "End date is required", ValidateEndDate("", "2025-03-01"))
	assert.Equal(t, "End date must be a valid date", ValidateEndDate("soon", "2025-03-01"))
	assert.Empty(t, ValidateEndDate("2025-04-15", ""), "missing start date skips the ordering check")
	assert.Empty(t, ValidateEndDate("2025-04-15", "not-a-date"), "unparsable start date skips the ordering check")
}

func TestParseDateAcceptsTimestampFallback(t *testing.T) {
	_, ok := ParseDate("2025-03-01")
	assert.True(t, ok)
	_, ok = ParseDate("2025-03-01T12:30:00Z")
	assert.True(t, ok)
	_, ok = ParseDate("March 1st")
	assert.False(t, ok)
}

func TestValidateStatus(t *testing.T) {
	for _, status := range []string{"draft", "active", "paused", "completed"} {
		assert.Empty(t, ValidateStatus(status), status)
	}
	assert.Equal(t, "Status is required", ValidateStatus(""))
	assert.Equal(t, "Invalid status value", ValidateStatus("archived"))
}

func TestValidateCampaignFormCollectsEveryField(t *testing.T) {
	errs := ValidateCampaignForm(CampaignForm{})
	assert.Equal(t, map[string]string{
		"name":      "Campaign name is required",
		"budget":    "Budget is required",
		"startDate": "Start date is required",
		"endDate":   "End date is required",
		"status":    "Status is required",
	}, errs)

	// Repeated validation of the same form yields the same fresh map.
	assert.Equal(t, errs, ValidateCampaignForm(CampaignForm{}))

	valid := CampaignForm{
		Name:      "Spring Sale",
		Status:    "active",
		Budget:    "5000",
		StartDate: "2025-03-01",
		EndDate:   "2025-04-15",
	}
	assert.Empty(t, ValidateCampaignForm(valid))

	partial := valid
	partial.Budget = "0"
	partial.EndDate = "2025-02-01"
	assert.Equal(t, map[string]string{
		"budget":  "Budget must be at least 1",
		"endDate": "End date must be after Start date",
	}, ValidateCampaignForm(partial))
}
