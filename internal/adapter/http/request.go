package httpadapter

import (
	"encoding/json"
	"net/http"

	"campaignboard/internal/core/domain"
)

// envelope wraps a successful single-resource response body.
type envelope struct {
	Data any `json:"data"`
}

// respondJSON writes v as the JSON response body with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respondError writes the shared error envelope. fields carries the
// field→message validation map when present.
func respondError(w http.ResponseWriter, status int, code domain.ErrorCode, message string, fields map[string]string) {
	respondJSON(w, status, domain.ErrorEnvelope{
		Error: domain.ErrorBody{
			Code:    code,
			Message: message,
			Errors:  fields,
		},
		Status: status,
	})
}

// decodeJSON decodes the request body into v, rejecting unknown payloads
// loosely (extra fields are ignored, malformed JSON is not).
func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
