package configs

import (
	"net/url"
	"time"
)

// API holds configuration for the campaigns API client. BaseURL is the root
// of the REST API including any path prefix. Timeout is the per-request
// deadline enforced by the HTTP adapter. UserID is sent on every request as
// the X-User-Id identity header.
type API struct {
	BaseURL url.URL       `env:"BASE_URL" envDefault:"http://localhost:8080/api"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
	UserID  string        `env:"USER_ID" envDefault:"assessment-user"`
}
