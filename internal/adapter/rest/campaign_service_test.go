package restadapter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaignboard/internal/core/domain"
	"campaignboard/internal/core/port"
)

// recorder captures the last request the service sent and replies with a
// fixed body.
type recorder struct {
	calls    atomic.Int64
	method   string
	path     string
	rawQuery string
	body     []byte
	reply    string
}

func (rec *recorder) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.calls.Add(1)
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.rawQuery = r.URL.RawQuery
		rec.body, _ = io.ReadAll(r.Body)
		reply := rec.reply
		if reply == "" {
			reply = `{"data":null}`
		}
		_, _ = w.Write([]byte(reply))
	})
}

func newTestService(t *testing.T, rec *recorder) *CampaignService {
	t.Helper()
	srv := httptest.NewServer(rec.handler())
	t.Cleanup(srv.Close)
	return NewCampaignService(testClient(t, srv.URL, time.Second))
}

func TestListOmitsUnsetParams(t *testing.T) {
	rec := &recorder{reply: `{"data":[],"pagination":{"page":1,"limit":10,"total":0,"totalPages":1}}`}
	svc := newTestService(t, rec)

	_, err := svc.List(context.Background(), port.ListParams{})
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/campaigns", rec.path)
	assert.Empty(t, rec.rawQuery)

	_, err = svc.List(context.Background(), port.ListParams{Page: 2, Limit: 5, Status: "active", Search: "sale"})
	require.NoError(t, err)
	assert.Equal(t, "limit=5&page=2&search=sale&status=active", rec.rawQuery)
}

func TestGetEmptyIDFailsWithoutNetwork(t *testing.T) {
	rec := &recorder{}
	svc := newTestService(t, rec)

	_, err := svc.Get(context.Background(), "")

	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, domain.CodeValidationError, apiErr.Code)
	assert.Equal(t, "Campaign ID is required", apiErr.Message)
	assert.Zero(t, rec.calls.Load())
}

func TestCreateRequiredFieldsFailWithoutNetwork(t *testing.T) {
	valid := port.CreateCampaignInput{
		Name:      "Spring Sale",
		Status:    "draft",
		Budget:    "500",
		StartDate: "2025-03-01",
		EndDate:   "2025-04-15",
	}
	tests := []struct {
		name    string
		mutate  func(*port.CreateCampaignInput)
		message string
	}{
		{"name", func(in *port.CreateCampaignInput) { in.Name = "  " }, "Campaign name is required"},
		{"status", func(in *port.CreateCampaignInput) { in.Status = "" }, "Campaign status is required"},
		{"budget", func(in *port.CreateCampaignInput) { in.Budget = "" }, "Campaign budget is required"},
		{"startDate", func(in *port.CreateCampaignInput) { in.StartDate = "" }, "Start date is required"},
		{"endDate", func(in *port.CreateCampaignInput) { in.EndDate = "" }, "End date is required"},
		{"budget not numeric", func(in *port.CreateCampaignInput) { in.Budget = "lots" }, "Budget must be a number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			svc := newTestService(t, rec)

			input := valid
			tt.mutate(&input)
			_, err := svc.Create(context.Background(), input)

			var apiErr *domain.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, domain.CodeValidationError, apiErr.Code)
			assert.Equal(t, tt.message, apiErr.Message)
			assert.Zero(t, rec.calls.Load())
		})
	}
}

func TestCreateNormalisesPayload(t *testing.T) {
	rec := &recorder{reply: `{"data":{"id":"c1"}}`}
	svc := newTestService(t, rec)

	created, err := svc.Create(context.Background(), port.CreateCampaignInput{
		Name:      "  Spring Sale  ",
		Status:    "draft",
		Budget:    " 500 ",
		StartDate: "2025-03-01",
		EndDate:   "2025-04-15",
	})
	require.NoError(t, err)
	assert.Equal(t, "c1", created.ID)
	assert.Equal(t, http.MethodPost, rec.method)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.body, &body))
	assert.Equal(t, "Spring Sale", body["name"])
	assert.Equal(t, float64(500), body["budget"])
	assert.NotContains(t, body, "description")
	assert.NotContains(t, body, "targetAudience")
}

func TestUpdateSendsOnlyPresentFields(t *testing.T) {
	rec := &recorder{reply: `{"data":{"id":"c1"}}`}
	svc := newTestService(t, rec)

	name := " Renamed "
	budget := "750"
	_, err := svc.Update(context.Background(), "c1", port.UpdateCampaignInput{
		Name:   &name,
		Budget: &budget,
	})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, rec.method)
	assert.Equal(t, "/campaigns/c1", rec.path)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.body, &body))
	assert.Equal(t, map[string]any{"name": "Renamed", "budget": float64(750)}, body)
}

func TestDeleteRequest(t *testing.T) {
	rec := &recorder{reply: `{"message":"Campaign deleted successfully"}`}
	svc := newTestService(t, rec)

	require.NoError(t, svc.Delete(context.Background(), "c1"))
	assert.Equal(t, http.MethodDelete, rec.method)
	assert.Equal(t, "/campaigns/c1", rec.path)
}

func TestSetStatusRequest(t *testing.T) {
	rec := &recorder{reply: `{"data":{"id":"c1","status":"paused"}}`}
	svc := newTestService(t, rec)

	require.NoError(t, svc.SetStatus(context.Background(), "c1", "paused"))
	assert.Equal(t, http.MethodPatch, rec.method)
	assert.Equal(t, "/campaigns/c1/status", rec.path)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.body, &body))
	assert.Equal(t, map[string]string{"status": "paused"}, body)
}

func TestSearchBlankQueryDelegatesToList(t *testing.T) {
	rec := &recorder{reply: `{"data":[],"pagination":{"page":1,"limit":10,"total":0,"totalPages":1}}`}
	svc := newTestService(t, rec)

	_, err := svc.Search(context.Background(), "   ", port.ListParams{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, "page=1", rec.rawQuery)

	_, err = svc.Search(context.Background(), "  sale  ", port.ListParams{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, "page=1&search=sale", rec.rawQuery)
}

func TestStatsDecodesEnvelope(t *testing.T) {
	rec := &recorder{reply: `{"data":{"totalCampaigns":3,"activeCampaigns":2,"totalBudget":1000,"totalSpent":250,"totalClicks":100}}`}
	svc := newTestService(t, rec)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/stats", rec.path)
	assert.Equal(t, 3, stats.TotalCampaigns)
	assert.Equal(t, 2, stats.ActiveCampaigns)
	assert.Equal(t, 25, stats.BudgetUtilization())
	assert.Equal(t, "2.50", stats.AverageCPC())
}
