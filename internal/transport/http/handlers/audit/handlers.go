package audithandler

import (
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"emprof/internal/domain/audit"
	"emprof/internal/domain/auth"
	"emprof/internal/transport/http/api"
	"emprof/internal/transport/http/middleware"
)

type Handler struct {
	Service *audit.Service
	Checker auth.Checker
}

func NewHandler(service *audit.Service, checker auth.Checker) *Handler {
	return &Handler{Service: service, Checker: checker}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermProfileRead, h.Checker)).
		Get("/employees/{employeeID}/audit-trail", h.handleTrail)
}

func (h *Handler) handleTrail(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	events, err := h.Service.ListByEmployee(r.Context(), employeeID, limit)
	if err != nil {
		log.Printf("audit trail list failed: %v", err)
		api.Fail(w, http.StatusInternalServerError, "audit_list_failed", "failed to list change trail", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, events, middleware.GetRequestID(r.Context()))
}
