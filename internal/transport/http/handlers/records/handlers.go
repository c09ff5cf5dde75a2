package recordshandler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"emprof/internal/domain/audit"
	"emprof/internal/domain/auth"
	"emprof/internal/domain/records"
	"emprof/internal/platform/storage"
	"emprof/internal/transport/http/api"
	"emprof/internal/transport/http/middleware"
)

type Handler struct {
	Service *records.Service
	Checker auth.Checker
	Audit   *audit.Service
}

func NewHandler(service *records.Service, checker auth.Checker, auditSvc *audit.Service) *Handler {
	return &Handler{Service: service, Checker: checker, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees/{employeeID}/records", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermRecordsRead, h.Checker)).Get("/", h.handleList)
		r.Route("/{recordType}", func(r chi.Router) {
			r.With(middleware.RequirePermission(auth.PermRecordsRead, h.Checker)).Get("/", h.handleGet)
			r.With(middleware.RequirePermission(auth.PermRecordsWrite, h.Checker)).Get("/renewal", h.handleRenewal)
			r.With(middleware.RequirePermission(auth.PermRecordsWrite, h.Checker)).Patch("/", h.handleSave)
		})
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	views, err := h.Service.List(r.Context(), employeeID, time.Now())
	if err != nil {
		log.Printf("record list failed: %v", err)
		api.Fail(w, http.StatusInternalServerError, "record_list_failed", "failed to list records", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, views, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	typ, err := records.ParseType(chi.URLParam(r, "recordType"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_record_type", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	view, err := h.Service.Get(r.Context(), employeeID, typ, time.Now())
	if err != nil {
		log.Printf("record get failed: %v", err)
		api.Fail(w, http.StatusInternalServerError, "record_get_failed", "failed to load record", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, view, middleware.GetRequestID(r.Context()))
}

// handleRenewal hands back the cleared draft for renewing an expired record.
// The stored record is untouched until the draft is saved.
func (h *Handler) handleRenewal(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	typ, err := records.ParseType(chi.URLParam(r, "recordType"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_record_type", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	draft, err := h.Service.Renewal(r.Context(), employeeID, typ)
	if errors.Is(err, records.ErrRecordNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "no record to renew", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		log.Printf("record renewal failed: %v", err)
		api.Fail(w, http.StatusInternalServerError, "record_renewal_failed", "failed to prepare renewal", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, draft, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	typ, err := records.ParseType(chi.URLParam(r, "recordType"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_record_type", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}

	var draft records.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	rec, fieldErrs, err := h.Service.Save(r.Context(), employeeID, typ, draft, time.Now())
	if err != nil {
		log.Printf("record save failed: type=%s err=%v", typ, err)
		switch {
		case errors.Is(err, storage.ErrUploadFailed):
			// No partial save: the record was not written without its document.
			api.Fail(w, http.StatusBadGateway, "upload_failed", "document upload failed, record not saved", middleware.GetRequestID(r.Context()))
		case errors.Is(err, records.ErrSaveFailed):
			api.Fail(w, http.StatusInternalServerError, "save_failed", err.Error(), middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "save_failed", "failed to save record", middleware.GetRequestID(r.Context()))
		}
		return
	}
	if !fieldErrs.Empty() {
		api.FailValidation(w, fieldErrs, middleware.GetRequestID(r.Context()))
		return
	}

	if h.Audit != nil {
		var actorID string
		if user, ok := middleware.GetUser(r.Context()); ok {
			actorID = user.UserID
		}
		if err := h.Audit.Record(r.Context(), audit.Event{
			ActorID:    actorID,
			Action:     audit.ActionRecordSave,
			EmployeeID: employeeID,
			Entity:     string(typ),
			RequestID:  middleware.GetRequestID(r.Context()),
		}); err != nil {
			log.Printf("audit record failed: %v", err)
		}
	}

	// The updated sub-object is returned under "<type>Details" so clients can
	// patch local state without a refetch.
	api.Success(w, map[string]any{string(typ) + "Details": rec}, middleware.GetRequestID(r.Context()))
}
