package httpadapter

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"campaignboard/internal/core/domain"
	"campaignboard/internal/core/port"
	"campaignboard/internal/validation"
)

// maxPageLimit caps the page size a client may request.
const maxPageLimit = 100

type createCampaignRequest struct {
	Name           string  `json:"name" validate:"required,campaign_name"`
	Status         string  `json:"status" validate:"omitempty,oneof=draft active paused completed"`
	Budget         float64 `json:"budget" validate:"required,gte=1"`
	StartDate      string  `json:"startDate" validate:"required,iso_date"`
	EndDate        string  `json:"endDate" validate:"required,iso_date"`
	Description    string  `json:"description" validate:"omitempty,max=1000"`
	TargetAudience string  `json:"targetAudience" validate:"omitempty,max=255"`
}

type updateCampaignRequest struct {
	Name           *string  `json:"name" validate:"omitempty,campaign_name"`
	Status         *string  `json:"status" validate:"omitempty,oneof=draft active paused completed"`
	Budget         *float64 `json:"budget" validate:"omitempty,gte=1"`
	StartDate      *string  `json:"startDate" validate:"omitempty,iso_date"`
	EndDate        *string  `json:"endDate" validate:"omitempty,iso_date"`
	Description    *string  `json:"description" validate:"omitempty,max=1000"`
	TargetAudience *string  `json:"targetAudience" validate:"omitempty,max=255"`
}

type setStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft active paused completed"`
}

// handleListCampaigns returns a page of campaigns. It accepts optional
// `page`, `limit`, `status` and `search` query parameters; invalid numbers
// produce HTTP 400. Limits above the cap are clamped.
func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := port.ListParams{Page: 1, Limit: 10}

	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			respondError(w, http.StatusBadRequest, domain.CodeValidationError, "invalid page", nil)
			return
		}
		params.Page = page
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			respondError(w, http.StatusBadRequest, domain.CodeValidationError, "invalid limit", nil)
			return
		}
		if limit > maxPageLimit {
			limit = maxPageLimit
		}
		params.Limit = limit
	}
	if status := q.Get("status"); status != "" {
		if !domain.ValidStatus(status) {
			respondError(w, http.StatusBadRequest, domain.CodeValidationError, "Invalid status value", nil)
			return
		}
		params.Status = status
	}
	params.Search = q.Get("search")

	result, err := h.repo.List(r.Context(), params)
	if err != nil {
		h.logger.Error("list campaigns error", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, domain.CodeServerError, "internal error", nil)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// handleGetCampaign returns one campaign by id, or 404 when unknown.
func (h *Handler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	campaign, err := h.repo.Get(r.Context(), id)
	if err != nil {
		h.logger.Error("get campaign error", slog.String("id", id), slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, domain.CodeServerError, "internal error", nil)
		return
	}
	if campaign == nil {
		respondError(w, http.StatusNotFound, domain.CodeNotFound, "Campaign not found", nil)
		return
	}
	respondJSON(w, http.StatusOK, envelope{Data: campaign})
}

// handleCreateCampaign validates the payload and stores a new campaign.
// The server assigns the id, defaults status to draft when omitted, zeroes
// the computed counters and sets the timestamps. Invalid payloads produce
// HTTP 422 with a field→message map.
func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req createCampaignRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "", "invalid JSON", nil)
		return
	}
	if errs := h.validateCreate(req); len(errs) > 0 {
		respondError(w, http.StatusUnprocessableEntity, domain.CodeValidationError, "Validation failed", errs)
		return
	}
	if req.Status == "" {
		req.Status = domain.StatusDraft
	}

	now := time.Now().UTC()
	campaign := domain.Campaign{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Status:         req.Status,
		Budget:         req.Budget,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Description:    req.Description,
		TargetAudience: req.TargetAudience,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	created, err := h.repo.Create(r.Context(), campaign)
	if err != nil {
		h.logger.Error("create campaign error", slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, domain.CodeServerError, "internal error", nil)
		return
	}
	respondJSON(w, http.StatusCreated, envelope{Data: created})
}

func (h *Handler) validateCreate(req createCampaignRequest) map[string]string {
	var errs map[string]string
	if err := h.validate.Struct(req); err != nil {
		errs = fieldErrors(err)
	}
	if errs == nil {
		errs = make(map[string]string)
	}
	if _, ok := errs["endDate"]; !ok {
		if msg := validation.ValidateEndDate(req.EndDate, req.StartDate); msg != "" && req.EndDate != "" {
			errs["endDate"] = msg
		}
	}
	return errs
}

// handleUpdateCampaign applies a partial update. Fields absent from the
// payload are left unchanged; the date ordering rule is checked against the
// effective values after the patch.
func (h *Handler) handleUpdateCampaign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	existing, err := h.repo.Get(r.Context(), id)
	if err != nil {
		h.logger.Error("update campaign error", slog.String("id", id), slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, domain.CodeServerError, "internal error", nil)
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, domain.CodeNotFound, "Campaign not found", nil)
		return
	}

	var req updateCampaignRequest
	if err = decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "", "invalid JSON", nil)
		return
	}
	errs := make(map[string]string)
	if err = h.validate.Struct(req); err != nil {
		errs = fieldErrors(err)
	}
	start, end := existing.StartDate, existing.EndDate
	if req.StartDate != nil {
		start = *req.StartDate
	}
	if req.EndDate != nil {
		end = *req.EndDate
	}
	if _, ok := errs["endDate"]; !ok && end != "" {
		if msg := validation.ValidateEndDate(end, start); msg != "" {
			errs["endDate"] = msg
		}
	}
	if len(errs) > 0 {
		respondError(w, http.StatusUnprocessableEntity, domain.CodeValidationError, "Validation failed", errs)
		return
	}

	patch := port.CampaignPatch{
		Name:           req.Name,
		Status:         req.Status,
		Budget:         req.Budget,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Description:    req.Description,
		TargetAudience: req.TargetAudience,
	}
	updated, err := h.repo.Update(r.Context(), id, patch)
	if err != nil {
		h.logger.Error("update campaign error", slog.String("id", id), slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, domain.CodeServerError, "internal error", nil)
		return
	}
	respondJSON(w, http.StatusOK, envelope{Data: updated})
}

// handleDeleteCampaign removes a campaign and returns a confirmation body.
func (h *Handler) handleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ok, err := h.repo.Delete(r.Context(), id)
	if err != nil {
		h.logger.Error("delete campaign error", slog.String("id", id), slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, domain.CodeServerError, "internal error", nil)
		return
	}
	if !ok {
		respondError(w, http.StatusNotFound, domain.CodeNotFound, "Campaign not found", nil)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Campaign deleted successfully"})
}

// handleSetStatus performs the dedicated status-only update.
func (h *Handler) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req setStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "", "invalid JSON", nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, domain.CodeValidationError, "Validation failed", fieldErrors(err))
		return
	}
	updated, err := h.repo.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		h.logger.Error("set status error", slog.String("id", id), slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, domain.CodeServerError, "internal error", nil)
		return
	}
	if updated == nil {
		respondError(w, http.StatusNotFound, domain.CodeNotFound, "Campaign not found", nil)
		return
	}
	respondJSON(w, http.StatusOK, envelope{Data: updated})
}
