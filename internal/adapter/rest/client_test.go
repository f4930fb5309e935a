package restadapter

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaignboard/internal/config/configs"
	"campaignboard/internal/core/domain"
)

func testClient(t *testing.T, baseURL string, timeout time.Duration) *Client {
	t.Helper()
	u, err := url.Parse(baseURL)
	require.NoError(t, err)
	return NewClient(configs.API{BaseURL: *u, Timeout: timeout, UserID: "test-user"})
}

func TestStatusClassification(t *testing.T) {
	tests := []struct {
		status int
		code   domain.ErrorCode
	}{
		{404, domain.CodeNotFound},
		{401, domain.CodeUnauthorized},
		{403, domain.CodeForbidden},
		{422, domain.CodeValidationError},
		{500, domain.CodeServerError},
		{503, domain.CodeServerError},
		{418, domain.CodeUnknownError},
	}
	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))
		client := testClient(t, srv.URL, time.Second)

		err := client.Send(context.Background(), http.MethodGet, "/x", nil, nil, nil)
		srv.Close()

		var apiErr *domain.APIError
		require.ErrorAs(t, err, &apiErr, "status %d", tt.status)
		assert.Equal(t, tt.code, apiErr.Code, "status %d", tt.status)
		assert.Equal(t, tt.status, apiErr.Status)
	}
}

func TestServerErrorBodyPreserved(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":{"code":"VALIDATION_ERROR","message":"Validation failed","errors":{"name":"Campaign name is required"}},"status":422}`))
	}))
	defer srv.Close()
	client := testClient(t, srv.URL, time.Second)

	err := client.Send(context.Background(), http.MethodPost, "/campaigns", map[string]string{}, nil, nil)

	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, domain.CodeValidationError, apiErr.Code)
	assert.Equal(t, "Validation failed", apiErr.Message)
	assert.Equal(t, "Campaign name is required", apiErr.Fields["name"])
}

func TestTimeoutClassified(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	client := testClient(t, srv.URL, 30*time.Millisecond)

	err := client.Send(context.Background(), http.MethodGet, "/slow", nil, nil, nil)

	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, domain.CodeTimeoutError, apiErr.Code)
}

func TestConnectionRefusedIsNetworkError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())
	client := testClient(t, "http://"+addr, time.Second)

	err = client.Send(context.Background(), http.MethodGet, "/x", nil, nil, nil)

	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, domain.CodeNetworkError, apiErr.Code)
}

func TestCancellationPassesThroughUnclassified(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()
	client := testClient(t, srv.URL, 5*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	err := client.Send(ctx, http.MethodGet, "/blocked", nil, nil, nil)

	require.ErrorIs(t, err, context.Canceled)
	var apiErr *domain.APIError
	assert.False(t, errors.As(err, &apiErr), "cancellation must not be classified")
}

func TestRequestCarriesIdentityAndContentType(t *testing.T) {
	var gotUser, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = r.Header.Get("X-User-Id")
		gotContentType = r.Header.Get("Content-Type")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()
	client := testClient(t, srv.URL, time.Second)

	require.NoError(t, client.Send(context.Background(), http.MethodGet, "/x", nil, nil, nil))
	assert.Equal(t, "test-user", gotUser)
	assert.Equal(t, "application/json", gotContentType)
}

func TestSuccessDecodesWholeBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"id":"c1","name":"Spring Sale","status":"draft","budget":500}}`))
	}))
	defer srv.Close()
	client := testClient(t, srv.URL, time.Second)

	var out struct {
		Data domain.Campaign `json:"data"`
	}
	require.NoError(t, client.Send(context.Background(), http.MethodGet, "/campaigns/c1", nil, nil, &out))
	assert.Equal(t, "c1", out.Data.ID)
	assert.Equal(t, "Spring Sale", out.Data.Name)
	assert.Equal(t, float64(500), out.Data.Budget)
}
