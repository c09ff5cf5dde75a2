package salaryhandler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"emprof/internal/domain/audit"
	"emprof/internal/domain/auth"
	"emprof/internal/domain/docs"
	"emprof/internal/domain/employee"
	"emprof/internal/domain/salary"
	"emprof/internal/domain/validate"
	"emprof/internal/platform/storage"
	"emprof/internal/transport/http/api"
	"emprof/internal/transport/http/middleware"
)

type Handler struct {
	Salaries  *salary.Store
	Employees *employee.Store
	Uploader  storage.Uploader
	Checker   auth.Checker
	Audit     *audit.Service
	LetterDir string
}

func NewHandler(salaries *salary.Store, employees *employee.Store, uploader storage.Uploader, checker auth.Checker, auditSvc *audit.Service, letterDir string) *Handler {
	return &Handler{Salaries: salaries, Employees: employees, Uploader: uploader, Checker: checker, Audit: auditSvc, LetterDir: letterDir}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees/{employeeID}", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermSalaryRead, h.Checker)).Get("/salary-history", h.handleHistory)
		r.With(middleware.RequirePermission(auth.PermSalaryWrite, h.Checker)).Post("/salary-history", h.handleAppend)
		r.With(middleware.RequirePermission(auth.PermSalaryRead, h.Checker)).Get("/salary-letter", h.handleLetter)
	})
}

// handleHistory serves the display ledger: stored rows with totals recomputed,
// or the synthetic initial entry derived from current compensation when no
// history exists.
func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	entries, err := h.Salaries.List(r.Context(), employeeID)
	if err != nil {
		log.Printf("salary history list failed: %v", err)
		api.Fail(w, http.StatusInternalServerError, "salary_history_failed", "failed to load salary history", middleware.GetRequestID(r.Context()))
		return
	}
	comp, err := h.Employees.Compensation(r.Context(), employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
			return
		}
		log.Printf("compensation lookup failed: %v", err)
		api.Fail(w, http.StatusInternalServerError, "salary_history_failed", "failed to load salary history", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, salary.Ledger(entries, comp), middleware.GetRequestID(r.Context()))
}

type appendRequest struct {
	Month              string         `json:"month"`
	FromDate           string         `json:"fromDate"`
	ToDate             string         `json:"toDate"`
	Basic              string         `json:"basic"`
	HouseRentAllowance string         `json:"houseRentAllowance"`
	VehicleAllowance   string         `json:"vehicleAllowance"`
	FuelAllowance      string         `json:"fuelAllowance"`
	OtherAllowance     string         `json:"otherAllowance"`
	// Extras carries the free-text additional-allowances list; legacy imports
	// file fuel allowance here instead of the dedicated column.
	Extras      []salary.LabelledAmount `json:"extras"`
	OfferLetter docs.Reference          `json:"offerLetter"`
}

func (h *Handler) handleAppend(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	var req appendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	entry, fieldErrs := parseAppend(req)
	if !fieldErrs.Empty() {
		api.FailValidation(w, fieldErrs, middleware.GetRequestID(r.Context()))
		return
	}

	if req.OfferLetter.InlineData != "" && !docs.IsAbsoluteURL(req.OfferLetter.InlineData) {
		url, err := h.Uploader.Upload(r.Context(), storage.UploadRequest{
			DataURL:      req.OfferLetter.InlineData,
			Folder:       string(docs.TagSalaryOffer),
			FileName:     req.OfferLetter.FileName,
			ResourceType: "auto",
		})
		if err != nil {
			log.Printf("offer letter upload failed: %v", err)
			api.Fail(w, http.StatusBadGateway, "upload_failed", "offer letter upload failed, entry not saved", middleware.GetRequestID(r.Context()))
			return
		}
		entry.OfferLetter = docs.Reference{RemoteURL: url, FileName: req.OfferLetter.FileName, MimeType: req.OfferLetter.Mime()}
	} else {
		entry.OfferLetter = req.OfferLetter
	}

	id, err := h.Salaries.Append(r.Context(), employeeID, entry)
	if err != nil {
		log.Printf("salary append failed: %v", err)
		api.Fail(w, http.StatusInternalServerError, "save_failed", "failed to save salary history entry", middleware.GetRequestID(r.Context()))
		return
	}
	entry.ID = id
	entry.TotalSalary = entry.Total()

	if h.Audit != nil {
		var actorID string
		if user, ok := middleware.GetUser(r.Context()); ok {
			actorID = user.UserID
		}
		if err := h.Audit.Record(r.Context(), audit.Event{
			ActorID:    actorID,
			Action:     audit.ActionSalaryAppend,
			EmployeeID: employeeID,
			Entity:     id,
			RequestID:  middleware.GetRequestID(r.Context()),
		}); err != nil {
			log.Printf("audit record failed: %v", err)
		}
	}

	api.Created(w, map[string]any{"salaryHistoryEntry": entry}, middleware.GetRequestID(r.Context()))
}

func parseAppend(req appendRequest) (salary.HistoryEntry, validate.ErrorMap) {
	errs := validate.ErrorMap{}
	entry := salary.HistoryEntry{Month: req.Month}

	if req.Month == "" {
		errs["month"] = "Month is required"
	}
	if req.FromDate == "" {
		errs["fromDate"] = "From date is required"
	} else if parsed, err := validate.ParseDate(req.FromDate); err != nil {
		errs["fromDate"] = "must be a valid date in YYYY-MM-DD format"
	} else {
		entry.FromDate = parsed
	}
	if req.ToDate != "" {
		if parsed, err := validate.ParseDate(req.ToDate); err != nil {
			errs["toDate"] = "must be a valid date in YYYY-MM-DD format"
		} else {
			entry.ToDate = &parsed
		}
	}

	amounts := []struct {
		field string
		label string
		raw   string
		dst   *float64
	}{
		{"basic", "Basic salary", req.Basic, &entry.Basic},
		{"houseRentAllowance", "House rent allowance", req.HouseRentAllowance, &entry.HouseRentAllowance},
		{"vehicleAllowance", "Vehicle allowance", req.VehicleAllowance, &entry.VehicleAllowance},
		{"fuelAllowance", "Fuel allowance", req.FuelAllowance, &entry.FuelAllowance},
		{"otherAllowance", "Other allowances", req.OtherAllowance, &entry.OtherAllowance},
	}
	for _, amount := range amounts {
		if amount.raw == "" {
			if amount.field == "basic" {
				errs[amount.field] = amount.label + " is required"
			}
			continue
		}
		parsed, ok := validate.ParseAmount(amount.raw)
		if !ok {
			errs[amount.field] = amount.label + " must be a non-negative number"
			continue
		}
		*amount.dst = parsed
	}

	for _, extra := range req.Extras {
		if strings.TrimSpace(extra.Label) == "" || extra.Amount < 0 {
			errs["extras"] = "Extras must carry a label and a non-negative amount"
			break
		}
	}
	entry.Extras = req.Extras

	return entry, errs
}

// handleLetter renders a salary certificate PDF from the ledger head, or from
// the synthetic initial entry when no history exists.
func (h *Handler) handleLetter(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	profile, err := h.Employees.Get(r.Context(), employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
			return
		}
		log.Printf("employee lookup failed: %v", err)
		api.Fail(w, http.StatusInternalServerError, "letter_failed", "failed to generate salary letter", middleware.GetRequestID(r.Context()))
		return
	}

	entries, err := h.Salaries.List(r.Context(), employeeID)
	if err != nil {
		log.Printf("salary history list failed: %v", err)
		api.Fail(w, http.StatusInternalServerError, "letter_failed", "failed to generate salary letter", middleware.GetRequestID(r.Context()))
		return
	}
	ledger := salary.Ledger(entries, salary.Compensation{
		Basic:              profile.Basic,
		HouseRentAllowance: profile.HouseRentAllowance,
		VehicleAllowance:   profile.VehicleAllowance,
		FuelAllowance:      profile.FuelAllowance,
		OtherAllowance:     profile.OtherAllowance,
		DateOfJoining:      profile.DateOfJoining,
	})
	if len(ledger) == 0 {
		api.Fail(w, http.StatusNotFound, "no_salary_data", "no salary data on file", middleware.GetRequestID(r.Context()))
		return
	}

	filePath, err := salary.Letter(h.LetterDir, salary.LetterData{
		EmployeeName:   profile.FullName(),
		EmployeeNumber: profile.EmployeeNumber,
		Nationality:    profile.Nationality,
		DateOfJoining:  profile.DateOfJoining,
		Entry:          ledger[0],
	})
	if err != nil {
		log.Printf("salary letter render failed: %v", err)
		api.Fail(w, http.StatusInternalServerError, "letter_failed", "failed to generate salary letter", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	http.ServeFile(w, r, filePath)
}
