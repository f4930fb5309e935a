// Package validation holds the pure, client-side form validation rules for
// campaigns. Each field validator returns an empty string when the value is
// valid and a human-readable message otherwise; the whole-form validator
// collects every failing field into a fresh map.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Bounds shared with the server-side request validation.
const (
	NameMinLen           = 3
	NameMaxLen           = 255
	BudgetMin            = 1
	DescriptionMaxLen    = 1000
	TargetAudienceMaxLen = 255
)

// DateFormat is the ISO date layout used on the wire.
const DateFormat = "2006-01-02"

var namePattern = regexp.MustCompile(`^[a-zA-Z0-9\s_-]+$`)

// Display names used in validation messages.
const (
	fieldName      = "Campaign name"
	fieldBudget    = "Budget"
	fieldStartDate = "Start date"
	fieldEndDate   = "End date"
	fieldStatus    = "Status"
)

func requiredMsg(field string) string {
	return fmt.Sprintf("%s is required", field)
}

// ParseDate parses an ISO date string, accepting a full RFC 3339 timestamp
// as a fallback.
func ParseDate(value string) (time.Time, bool) {
	if t, err := time.Parse(DateFormat, value); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// ValidateName checks the campaign name: required, trimmed length within
// [3,255], alphanumeric/space/hyphen/underscore only.
func ValidateName(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return requiredMsg(fieldName)
	}
	if len(trimmed) < NameMinLen {
		return fmt.Sprintf("%s must be at least %d characters", fieldName, NameMinLen)
	}
	if len(trimmed) > NameMaxLen {
		return fmt.Sprintf("%s must not exceed %d characters", fieldName, NameMaxLen)
	}
	if !namePattern.MatchString(trimmed) {
		return fmt.Sprintf("%s format is invalid", fieldName)
	}
	return ""
}

// ValidateBudget checks the raw budget form value: required, numeric and at
// least 1.
func ValidateBudget(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return requiredMsg(fieldBudget)
	}
	budget, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return fmt.Sprintf("%s must be a positive number", fieldBudget)
	}
	if budget < BudgetMin {
		return fmt.Sprintf("%s must be at least %d", fieldBudget, BudgetMin)
	}
	return ""
}

// ValidateStartDate checks that the start date is present and parses as a
// calendar date.
func ValidateStartDate(value string) string {
	if value == "" {
		return requiredMsg(fieldStartDate)
	}
	if _, ok := ParseDate(value); !ok {
		return fmt.Sprintf("%s must be a valid date", fieldStartDate)
	}
	return ""
}

// ValidateEndDate checks that the end date is present, parses, and is not
// before the start date when both are present. Equal dates are valid.
func ValidateEndDate(endDate, startDate string) string {
	if endDate == "" {
		return requiredMsg(fieldEndDate)
	}
	end, ok := ParseDate(endDate)
	if !ok {
		return fmt.Sprintf("%s must be a valid date", fieldEndDate)
	}
	if startDate != "" {
		if start, ok := ParseDate(startDate); ok && end.Before(start) {
			return fmt.Sprintf("%s must be after %s", fieldEndDate, fieldStartDate)
		}
	}
	return ""
}

// ValidateStatus checks that the status is one of the enumerated values.
func ValidateStatus(value string) string {
	if value == "" {
		return requiredMsg(fieldStatus)
	}
	switch value {
	case "draft", "active", "paused", "completed":
		return ""
	}
	return "Invalid status value"
}

// CampaignForm carries the raw form values of a campaign create/edit form.
type CampaignForm struct {
	Name      string
	Status    string
	Budget    string
	StartDate string
	EndDate   string
}

// ValidateCampaignForm runs every field validator unconditionally and
// returns a fresh field→message map. An empty map means the form is valid.
func ValidateCampaignForm(form CampaignForm) map[string]string {
	errs := make(map[string]string)
	if msg := ValidateName(form.Name); msg != "" {
		errs["name"] = msg
	}
	if msg := ValidateBudget(form.Budget); msg != "" {
		errs["budget"] = msg
	}
	if msg := ValidateStartDate(form.StartDate); msg != "" {
		errs["startDate"] = msg
	}
	if msg := ValidateEndDate(form.EndDate, form.StartDate); msg != "" {
		errs["endDate"] = msg
	}
	if msg := ValidateStatus(form.Status); msg != "" {
		errs["status"] = msg
	}
	return errs
}
