package profilehandler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"emprof/internal/domain/audit"
	"emprof/internal/domain/auth"
	"emprof/internal/domain/docs"
	"emprof/internal/domain/employee"
	"emprof/internal/domain/profile"
	"emprof/internal/domain/validate"
	"emprof/internal/platform/storage"
	"emprof/internal/transport/http/api"
	"emprof/internal/transport/http/middleware"
)

type Handler struct {
	Employees *employee.Store
	Uploader  storage.Uploader
	Checker   auth.Checker
	Audit     *audit.Service
	Snapshots *profile.Cache
}

func NewHandler(employees *employee.Store, uploader storage.Uploader, checker auth.Checker, auditSvc *audit.Service, snapshots *profile.Cache) *Handler {
	if snapshots == nil {
		snapshots = profile.NewCache(nil)
	}
	return &Handler{Employees: employees, Uploader: uploader, Checker: checker, Audit: auditSvc, Snapshots: snapshots}
}

func (h *Handler) recordAudit(r *http.Request, action, employeeID string) {
	if h.Audit == nil {
		return
	}
	var actorID string
	if user, ok := middleware.GetUser(r.Context()); ok {
		actorID = user.UserID
	}
	if err := h.Audit.Record(r.Context(), audit.Event{
		ActorID:    actorID,
		Action:     action,
		EmployeeID: employeeID,
		RequestID:  middleware.GetRequestID(r.Context()),
	}); err != nil {
		log.Printf("audit record failed: %v", err)
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermProfileRead, h.Checker)).Get("/employees", h.handleList)
	r.Route("/employees/{employeeID}", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermProfileRead, h.Checker)).Get("/", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermProfileWrite, h.Checker)).Put("/basic", h.handleUpdateBasic)
		r.With(middleware.RequirePermission(auth.PermProfileWrite, h.Checker)).Put("/bank", h.handleUpdateBank)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.Employees.List(r.Context())
	if err != nil {
		log.Printf("employee list failed: %v", err)
		api.Fail(w, http.StatusInternalServerError, "employee_list_failed", "failed to list employees", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, profiles, middleware.GetRequestID(r.Context()))
}

// handleGet serves the sectioned profile view the edit surface works on. The
// snapshot cache answers repeat reads; save handlers keep it current by
// merging the sub-object they return.
func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	snap, err := h.Snapshots.Get(r.Context(), employeeID, h.snapshotLoader(employeeID))
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
			return
		}
		log.Printf("employee get failed: %v", err)
		api.Fail(w, http.StatusInternalServerError, "employee_get_failed", "failed to load employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, snap, middleware.GetRequestID(r.Context()))
}

func (h *Handler) snapshotLoader(employeeID string) profile.RefetchFunc {
	return func(ctx context.Context) (profile.Snapshot, error) {
		p, err := h.Employees.Get(ctx, employeeID)
		if err != nil {
			return nil, err
		}
		return profile.Snapshot{
			"basicDetails": rawJSON(p.BasicDetails()),
			"bankDetails":  rawJSON(p.BankDetails()),
		}, nil
	}
}

func (h *Handler) handleUpdateBasic(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	existing, err := h.Employees.Get(r.Context(), employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
			return
		}
		log.Printf("employee get failed: %v", err)
		api.Fail(w, http.StatusInternalServerError, "employee_get_failed", "failed to load employee", middleware.GetRequestID(r.Context()))
		return
	}

	var draft employee.BasicDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	fieldErrs := validate.Form(
		map[string]*string{
			"firstName":   draft.FirstName,
			"lastName":    draft.LastName,
			"email":       draft.Email,
			"nationality": draft.Nationality,
		},
		map[string]string{
			"firstName":   existing.FirstName,
			"lastName":    existing.LastName,
			"email":       existing.Email,
			"nationality": existing.Nationality,
		},
		[]validate.Field{
			{Name: "firstName", Label: "First name"},
			{Name: "lastName", Label: "Last name"},
			{Name: "email", Label: "Email"},
			{Name: "nationality", Label: "Nationality", Kind: validate.KindCountry},
		},
	)

	updated := *existing
	applyIfSet(&updated.FirstName, draft.FirstName)
	applyIfSet(&updated.LastName, draft.LastName)
	applyIfSet(&updated.Email, draft.Email)
	applyIfSet(&updated.Phone, draft.Phone)
	applyIfSet(&updated.Nationality, draft.Nationality)
	applyIfSet(&updated.Designation, draft.Designation)

	if draft.DateOfBirth != nil {
		if *draft.DateOfBirth == "" {
			updated.DateOfBirth = nil
		} else if parsed, err := validate.ParseDate(*draft.DateOfBirth); err != nil {
			fieldErrs = validate.Merge(fieldErrs, validate.ErrorMap{"dateOfBirth": "must be a valid date in YYYY-MM-DD format"})
		} else {
			updated.DateOfBirth = &parsed
		}
	}
	if draft.DateOfJoining != nil {
		if *draft.DateOfJoining == "" {
			updated.DateOfJoining = nil
		} else if parsed, err := validate.ParseDate(*draft.DateOfJoining); err != nil {
			fieldErrs = validate.Merge(fieldErrs, validate.ErrorMap{"dateOfJoining": "must be a valid date in YYYY-MM-DD format"})
		} else {
			updated.DateOfJoining = &parsed
		}
	}

	if !fieldErrs.Empty() {
		api.FailValidation(w, fieldErrs, middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Employees.UpdateBasic(r.Context(), employeeID, updated); err != nil {
		log.Printf("basic details update failed: %v", err)
		api.Fail(w, http.StatusInternalServerError, "save_failed", "failed to save basic details", middleware.GetRequestID(r.Context()))
		return
	}
	h.recordAudit(r, audit.ActionBasicUpdate, employeeID)

	sub := updated.BasicDetails()
	h.Snapshots.ApplySave(r.Context(), employeeID,
		profile.Snapshot{"basicDetails": rawJSON(sub)}, "basicDetails", h.snapshotLoader(employeeID))
	api.Success(w, map[string]any{"basicDetails": sub}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateBank(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	existing, err := h.Employees.Get(r.Context(), employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
			return
		}
		log.Printf("employee get failed: %v", err)
		api.Fail(w, http.StatusInternalServerError, "employee_get_failed", "failed to load employee", middleware.GetRequestID(r.Context()))
		return
	}

	var draft employee.BankDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	fieldErrs := validate.Form(
		map[string]*string{"bankName": draft.BankName, "bankAccount": draft.BankAccount, "iban": draft.IBAN},
		map[string]string{"bankName": existing.BankName, "bankAccount": existing.BankAccount, "iban": existing.IBAN},
		[]validate.Field{
			{Name: "bankName", Label: "Bank name"},
			{Name: "bankAccount", Label: "Account number", Kind: validate.KindIdentifier},
			{Name: "iban", Label: "IBAN", Kind: validate.KindIdentifier},
		},
	)
	if !fieldErrs.Empty() {
		api.FailValidation(w, fieldErrs, middleware.GetRequestID(r.Context()))
		return
	}

	updated := *existing
	applyIfSet(&updated.BankName, draft.BankName)
	applyIfSet(&updated.BankAccount, draft.BankAccount)
	applyIfSet(&updated.IBAN, draft.IBAN)

	if draft.Attachment.InlineData != "" && !docs.IsAbsoluteURL(draft.Attachment.InlineData) {
		url, err := h.Uploader.Upload(r.Context(), storage.UploadRequest{
			DataURL:      draft.Attachment.InlineData,
			Folder:       string(docs.TagBankAttachment),
			FileName:     draft.Attachment.FileName,
			ResourceType: "auto",
		})
		if err != nil {
			log.Printf("bank attachment upload failed: %v", err)
			api.Fail(w, http.StatusBadGateway, "upload_failed", "attachment upload failed, bank details not saved", middleware.GetRequestID(r.Context()))
			return
		}
		updated.BankAttachment = docs.Reference{RemoteURL: url, FileName: draft.Attachment.FileName, MimeType: draft.Attachment.Mime()}
	} else if draft.Attachment.Present() {
		updated.BankAttachment = draft.Attachment
	}

	if err := h.Employees.UpdateBank(r.Context(), employeeID, updated); err != nil {
		log.Printf("bank details update failed: %v", err)
		api.Fail(w, http.StatusInternalServerError, "save_failed", "failed to save bank details", middleware.GetRequestID(r.Context()))
		return
	}
	h.recordAudit(r, audit.ActionBankUpdate, employeeID)

	sub := updated.BankDetails()
	h.Snapshots.ApplySave(r.Context(), employeeID,
		profile.Snapshot{"bankDetails": rawJSON(sub)}, "bankDetails", h.snapshotLoader(employeeID))
	api.Success(w, map[string]any{"bankDetails": sub}, middleware.GetRequestID(r.Context()))
}

func applyIfSet(dst *string, value *string) {
	if value != nil {
		*dst = *value
	}
}

func rawJSON(v any) json.RawMessage {
	raw, _ := json.Marshal(v)
	return raw
}
