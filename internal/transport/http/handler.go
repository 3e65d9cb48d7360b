// Package http exposes the provisioning pipeline over a JSON API.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"subguard/internal/provisioning"
	dErrors "subguard/pkg/domain-errors"
	id "subguard/pkg/domain"
	"subguard/pkg/platform/httputil"
	"subguard/pkg/requestcontext"
	"subguard/pkg/validation"
)

// Handler serves the subdomain provisioning API.
type Handler struct {
	service *provisioning.Service
	logger  *slog.Logger
}

// NewHandler creates the API handler.
func NewHandler(service *provisioning.Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Provision handles POST /subdomains.
func (h *Handler) Provision(w http.ResponseWriter, r *http.Request) {
	var req provisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "request body must be valid json"))
		return
	}
	if err := validation.Validate(req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	projectID, err := id.ParseProjectID(req.ProjectID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	ctx := r.Context()
	result, err := h.service.Provision(ctx, provisioning.ProvisionRequest{
		ProjectID: projectID,
		Name:      req.Name,
		Client:    id.ClientIdentity(requestcontext.ClientIP(ctx)),
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, provisionStatus(result), result)
}

// provisionStatus maps a pipeline outcome to an HTTP status. Rejections are
// structured results, not errors, so the translation happens here.
func provisionStatus(result *provisioning.ProvisionResult) int {
	if result.Success {
		return http.StatusCreated
	}
	return httputil.DomainCodeToHTTPStatus(result.RejectionCode)
}

// Status handles GET /subdomains/{name}.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.Status(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if !status.Exists {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "subdomain not found"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, status)
}

// Revoke handles DELETE /subdomains/{name}. The isolation token issued at
// provisioning time must arrive in the X-Isolation-Token header.
func (h *Handler) Revoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	result, err := h.service.Revoke(ctx, chi.URLParam(r, "name"),
		r.Header.Get("X-Isolation-Token"),
		id.ClientIdentity(requestcontext.ClientIP(ctx)))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

// Report handles GET /security/report.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Report(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, report)
}

// RecentEvents handles GET /audit/recent.
func (h *Handler) RecentEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.service.RecentEvents(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"events": events})
}

// Healthz reports liveness.
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
