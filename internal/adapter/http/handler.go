package httpadapter

import (
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"campaignboard/internal/core/domain"
	"campaignboard/internal/core/port"
	"campaignboard/internal/validation"
)

// identityHeader is the static header identifying the caller. Requests
// without it are rejected with 401.
const identityHeader = "X-User-Id"

// Handler contains dependencies and routes of the stub backend. It is an
// inbound adapter for HTTP: it holds the campaign repository, a logger for
// structured logging and a request validator. Routes are registered on a
// chi.Router for convenient method handling.
type Handler struct {
	repo     port.CampaignRepository
	logger   *slog.Logger
	validate *validator.Validate
	router   chi.Router
}

// NewHandler creates a handler with all routes configured. The returned
// Handler registers handlers for each endpoint of the campaigns API on a
// new chi.Router under the /api prefix.
func NewHandler(repo port.CampaignRepository, logger *slog.Logger) *Handler {
	h := &Handler{repo: repo, logger: logger, validate: newValidator()}
	r := chi.NewRouter()

	r.Route("/api", func(r chi.Router) {
		r.Use(h.requireIdentity)
		r.Get("/campaigns", h.handleListCampaigns)
		r.Post("/campaigns", h.handleCreateCampaign)
		r.Get("/campaigns/{id}", h.handleGetCampaign)
		r.Put("/campaigns/{id}", h.handleUpdateCampaign)
		r.Delete("/campaigns/{id}", h.handleDeleteCampaign)
		r.Patch("/campaigns/{id}/status", h.handleSetStatus)
		r.Get("/stats", h.handleStats)
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

// requireIdentity rejects requests missing the caller identity header.
func (h *Handler) requireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(identityHeader) == "" {
			respondError(w, http.StatusUnauthorized, domain.CodeUnauthorized,
				"Missing "+identityHeader+" header", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// newValidator builds the request validator with the campaign-specific
// rules registered and json tag names reported in field errors.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("campaign_name", func(fl validator.FieldLevel) bool {
		return validation.ValidateName(fl.Field().String()) == ""
	})
	_ = v.RegisterValidation("iso_date", func(fl validator.FieldLevel) bool {
		_, ok := validation.ParseDate(fl.Field().String())
		return ok
	})
	return v
}

// fieldErrors converts validator failures into the field→message map of the
// 422 error envelope.
func fieldErrors(err error) map[string]string {
	errs := make(map[string]string)
	var verrs validator.ValidationErrors
	if !asValidationErrors(err, &verrs) {
		return errs
	}
	for _, fe := range verrs {
		errs[fe.Field()] = fieldErrorMessage(fe)
	}
	return errs
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	verrs, ok := err.(validator.ValidationErrors)
	if ok {
		*target = verrs
	}
	return ok
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "gte", "min":
		return fe.Field() + " must be at least " + fe.Param()
	case "max":
		return fe.Field() + " must not exceed " + fe.Param() + " characters"
	case "oneof":
		return "Invalid status value"
	case "iso_date":
		return fe.Field() + " must be a valid date"
	case "campaign_name":
		return fe.Field() + " is invalid"
	default:
		return fe.Field() + " is invalid"
	}
}
