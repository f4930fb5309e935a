package httpadapter

import (
	"log/slog"
	"net/http"

	"campaignboard/internal/core/domain"
)

// handleStats returns aggregated counters across all campaigns: per-status
// counts plus budget, spent and click totals. Internal errors produce HTTP
// 500. On success it writes the stats wrapped in the data envelope.
func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.repo.Stats(r.Context())
	if err != nil {
		h.logger.Error("stats error", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, domain.CodeServerError, "internal error", nil)
		return
	}
	respondJSON(w, http.StatusOK, envelope{Data: stats})
}
