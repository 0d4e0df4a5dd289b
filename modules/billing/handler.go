package billing

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/ferosa45/listlab-backend-sub000/pkg/binder"
	"github.com/ferosa45/listlab-backend-sub000/pkg/logger"
	"github.com/ferosa45/listlab-backend-sub000/pkg/subscription"
)

// maxWebhookBody bounds provider webhook payloads. Stripe events are a few
// kilobytes; anything near this limit is not a legitimate delivery.
const maxWebhookBody = 1 << 20

// BillingService is the subset of the subscription service the HTTP layer
// depends on. Tests substitute a mock.
type BillingService interface {
	CreateCheckoutSession(ctx context.Context, actor subscription.Actor, req subscription.CheckoutRequest) (string, error)
	CreatePortalSession(ctx context.Context, actor subscription.Actor) (string, error)
	UpdateSeatLimit(ctx context.Context, actor subscription.Actor, newLimit int64) error
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
	Entitlement(ctx context.Context, owner subscription.Owner) (subscription.Entitlement, error)
}

// Handler exposes the billing operations over HTTP. Authentication happens
// upstream; handlers read the actor from the request context.
type Handler struct {
	svc      BillingService
	catalog  *subscription.Catalog
	log      *slog.Logger
	bindJSON func(r *http.Request, v any) error
}

// NewHandler creates the billing HTTP handler. Panics when svc or catalog is
// nil.
func NewHandler(svc BillingService, catalog *subscription.Catalog, log *slog.Logger) *Handler {
	if svc == nil {
		panic("billing: service is required")
	}
	if catalog == nil {
		panic("billing: catalog is required")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		svc:      svc,
		catalog:  catalog,
		log:      log,
		bindJSON: binder.JSON(),
	}
}

type checkoutRequest struct {
	PlanCode      string `json:"plan_code"`
	BillingPeriod string `json:"billing_period"`
	Quantity      int64  `json:"quantity"`
	Email         string `json:"email"`
	Name          string `json:"name"`
}

type sessionResponse struct {
	URL string `json:"url"`
}

func (h *Handler) createCheckout(w http.ResponseWriter, r *http.Request) {
	actor, ok := subscription.ActorFromContext(r.Context())
	if !ok {
		h.respondError(w, r, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	var req checkoutRequest
	if err := h.bindJSON(r, &req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}

	url, err := h.svc.CreateCheckoutSession(r.Context(), actor, subscription.CheckoutRequest{
		PlanCode: req.PlanCode,
		Period:   subscription.BillingPeriod(req.BillingPeriod),
		Quantity: req.Quantity,
		Profile:  subscription.CustomerProfile{Email: req.Email, Name: req.Name},
	})
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, sessionResponse{URL: url})
}

func (h *Handler) createPortal(w http.ResponseWriter, r *http.Request) {
	actor, ok := subscription.ActorFromContext(r.Context())
	if !ok {
		h.respondError(w, r, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	url, err := h.svc.CreatePortalSession(r.Context(), actor)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, sessionResponse{URL: url})
}

type seatUpdateRequest struct {
	Seats int64 `json:"seats"`
}

func (h *Handler) updateSeats(w http.ResponseWriter, r *http.Request) {
	actor, ok := subscription.ActorFromContext(r.Context())
	if !ok {
		h.respondError(w, r, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	var req seatUpdateRequest
	if err := h.bindJSON(r, &req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.svc.UpdateSeatLimit(r.Context(), actor, req.Seats); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type planResponse struct {
	Code               string   `json:"code"`
	Name               string   `json:"name"`
	Description        string   `json:"description,omitempty"`
	OrganizationScoped bool     `json:"organization_scoped"`
	Free               bool     `json:"free"`
	BillingPeriods     []string `json:"billing_periods,omitempty"`
}

func (h *Handler) listPlans(w http.ResponseWriter, _ *http.Request) {
	plans := h.catalog.Public()
	out := make([]planResponse, 0, len(plans))
	for _, p := range plans {
		resp := planResponse{
			Code:               p.Code,
			Name:               p.Name,
			Description:        p.Description,
			OrganizationScoped: p.OrganizationScoped,
			Free:               p.Free(),
		}
		for _, period := range []subscription.BillingPeriod{subscription.BillingPeriodMonthly, subscription.BillingPeriodYearly} {
			if _, ok := p.PriceID(period); ok {
				resp.BillingPeriods = append(resp.BillingPeriods, string(period))
			}
		}
		out = append(out, resp)
	}
	h.respondJSON(w, http.StatusOK, out)
}

type entitlementResponse struct {
	PlanCode  string `json:"plan_code"`
	Status    string `json:"status,omitempty"`
	Active    bool   `json:"active"`
	SeatLimit *int64 `json:"seat_limit,omitempty"`
	PeriodEnd string `json:"period_end,omitempty"`
}

func (h *Handler) getEntitlement(w http.ResponseWriter, r *http.Request) {
	actor, ok := subscription.ActorFromContext(r.Context())
	if !ok {
		h.respondError(w, r, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	owner := subscription.UserOwner(actor.UserID)
	if actor.IsSchoolAdmin() {
		owner = subscription.SchoolOwner(*actor.SchoolID)
	}

	ent, err := h.svc.Entitlement(r.Context(), owner)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	resp := entitlementResponse{
		PlanCode:  ent.PlanCode,
		Status:    string(ent.Status),
		Active:    ent.Active,
		SeatLimit: ent.SeatLimit,
	}
	if !ent.PeriodEnd.IsZero() {
		resp.PeriodEnd = ent.PeriodEnd.UTC().Format("2006-01-02T15:04:05Z07:00")
	}
	h.respondJSON(w, http.StatusOK, resp)
}

// handleWebhook receives provider event deliveries. It responds non-2xx only
// for unauthenticated or undecodable payloads so the provider retries those
// and nothing else.
func (h *Handler) handleWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, "failed to read payload", err)
		return
	}

	err = h.svc.HandleWebhook(r.Context(), payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, subscription.ErrAuthenticationFailed) {
			status = http.StatusUnauthorized
		}
		h.respondError(w, r, status, "event rejected", err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

type errorResponse struct {
	Error     string `json:"error"`
	Occupancy *int64 `json:"occupancy,omitempty"`
}

func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var conflict *subscription.SeatBelowOccupancyError
	if errors.As(err, &conflict) {
		h.respondJSON(w, http.StatusConflict, errorResponse{
			Error:     conflict.Error(),
			Occupancy: &conflict.Occupancy,
		})
		return
	}

	switch {
	case errors.Is(err, subscription.ErrPlanNotFound),
		errors.Is(err, subscription.ErrNoBillingAccount),
		errors.Is(err, subscription.ErrNoActiveSubscription):
		h.respondError(w, r, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, subscription.ErrPlanNotBillable),
		errors.Is(err, subscription.ErrInvalidBillingPeriod),
		errors.Is(err, subscription.ErrInvalidQuantity):
		h.respondError(w, r, http.StatusUnprocessableEntity, err.Error(), nil)
	case errors.Is(err, subscription.ErrPermissionDenied):
		h.respondError(w, r, http.StatusForbidden, err.Error(), nil)
	case errors.Is(err, subscription.ErrProvider):
		h.respondError(w, r, http.StatusBadGateway, "payment provider unavailable", err)
	default:
		h.respondError(w, r, http.StatusInternalServerError, "internal error", err)
	}
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	if err != nil {
		h.log.ErrorContext(r.Context(), "billing request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			logger.Error(err),
		)
	}
	h.respondJSON(w, status, errorResponse{Error: message})
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("failed to encode response", logger.Error(err))
	}
}
