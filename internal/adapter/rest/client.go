package restadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	"campaignboard/internal/config/configs"
	"campaignboard/internal/core/domain"
)

// defaultTimeout bounds every request when the configuration does not say
// otherwise.
const defaultTimeout = 10 * time.Second

// identityHeader names the static header identifying the caller.
const identityHeader = "X-User-Id"

// Client is the low-level HTTP adapter for the campaigns API. It injects the
// base URL, the request timeout and the identity header, and normalises
// every failure mode into *domain.APIError before anything upstream sees it.
// Context cancellation is the one exception: it passes through unclassified
// so callers can tell a superseded request from a real failure.
type Client struct {
	baseURL string
	userID  string
	http    *http.Client
}

// NewClient builds a Client from the API configuration section.
func NewClient(cfg configs.API) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL.String(), "/"),
		userID:  cfg.UserID,
		http:    &http.Client{Timeout: timeout},
	}
}

// Send performs one request and decodes the whole response body into out
// when out is non-nil. Failures are classified in order: a server response
// with a non-2xx status maps to the code taxonomy (preserving any
// server-supplied error body), a timeout becomes TIMEOUT_ERROR, an
// unreachable peer becomes NETWORK_ERROR, any other transport failure
// becomes CONNECTION_ERROR, and a request that was never sent becomes
// UNKNOWN_ERROR.
func (c *Client) Send(ctx context.Context, method, path string, body any, query url.Values, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return domain.NewAPIError(domain.CodeUnknownError, err.Error())
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return domain.NewAPIError(domain.CodeUnknownError, err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(identityHeader, c.userID)

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return classifyTransport(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return classifyTransport(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return classifyResponse(resp.StatusCode, raw)
	}

	if out != nil && len(raw) > 0 && resp.StatusCode != http.StatusNoContent {
		if err = json.Unmarshal(raw, out); err != nil {
			return domain.NewAPIError(domain.CodeUnknownError, err.Error())
		}
	}
	return nil
}

// classifyResponse maps a non-2xx response to an APIError, keeping any
// server-supplied code, message and field errors and falling back to the
// status table for the code.
func classifyResponse(status int, raw []byte) *domain.APIError {
	var envelope domain.ErrorEnvelope
	_ = json.Unmarshal(raw, &envelope)

	code := envelope.Error.Code
	if code == "" {
		code = domain.CodeForStatus(status)
	}
	return &domain.APIError{
		Code:    code,
		Message: envelope.Error.Message,
		Status:  status,
		Fields:  envelope.Error.Errors,
	}
}

// classifyTransport maps a failure with no server response. Timeouts are
// detected first, then connectivity problems; everything else is a generic
// connection error.
func classifyTransport(err error) *domain.APIError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return domain.NewAPIError(domain.CodeTimeoutError,
			"The request took too long to complete. Please try again.")
	}
	if isConnectivity(err) {
		return domain.NewAPIError(domain.CodeNetworkError,
			"Unable to connect to the server. Please check your internet connection and try again.")
	}
	return domain.NewAPIError(domain.CodeConnectionError,
		"Connection failed. Please check your internet connection and try again.")
}

func isConnectivity(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EHOSTUNREACH) ||
		errors.Is(err, syscall.ENETUNREACH)
}
