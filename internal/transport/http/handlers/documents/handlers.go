package documentshandler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"emprof/internal/domain/auth"
	"emprof/internal/domain/catalog"
	"emprof/internal/domain/docs"
	"emprof/internal/domain/validate"
	"emprof/internal/platform/storage"
	"emprof/internal/transport/http/api"
	"emprof/internal/transport/http/middleware"
)

type Handler struct {
	Resolver *docs.Resolver
	Catalog  *catalog.Service
	Uploader storage.Uploader
	Checker  auth.Checker
}

func NewHandler(resolver *docs.Resolver, catalogSvc *catalog.Service, uploader storage.Uploader, checker auth.Checker) *Handler {
	return &Handler{Resolver: resolver, Catalog: catalogSvc, Uploader: uploader, Checker: checker}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees/{employeeID}", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermDocumentsRead, h.Checker)).Get("/document", h.handleResolve)
		r.With(middleware.RequirePermission(auth.PermDocumentsRead, h.Checker)).Get("/document-catalog", h.handleCatalog)
		r.With(middleware.RequirePermission(auth.PermDocumentsWrite, h.Checker)).Post("/documents", h.handleUpload)
	})
}

func (h *Handler) handleResolve(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	tag := docs.Tag(r.URL.Query().Get("type"))
	docID := r.URL.Query().Get("docId")
	if !docs.ValidTag(tag) {
		api.Fail(w, http.StatusBadRequest, "invalid_document_type", "unknown document type", middleware.GetRequestID(r.Context()))
		return
	}

	ref, err := h.Catalog.Reference(r.Context(), employeeID, tag, docID)
	if err != nil && !errors.Is(err, docs.ErrNotFound) {
		log.Printf("document lookup failed: tag=%s err=%v", tag, err)
		api.Fail(w, http.StatusBadGateway, "document_fetch_failed", "failed to load document", middleware.GetRequestID(r.Context()))
		return
	}

	resolved, err := h.Resolver.Resolve(r.Context(), employeeID, tag, docID, ref)
	if err != nil {
		switch {
		case errors.Is(err, docs.ErrNotFound):
			api.Fail(w, http.StatusNotFound, "document_not_found", "no document on file", middleware.GetRequestID(r.Context()))
		case errors.Is(err, docs.ErrFetchFailed):
			log.Printf("document fetch failed: tag=%s err=%v", tag, err)
			api.Fail(w, http.StatusBadGateway, "document_fetch_failed", "failed to fetch document", middleware.GetRequestID(r.Context()))
		default:
			log.Printf("document resolve failed: tag=%s err=%v", tag, err)
			api.Fail(w, http.StatusInternalServerError, "document_resolve_failed", "failed to resolve document", middleware.GetRequestID(r.Context()))
		}
		return
	}

	api.Success(w, map[string]any{
		"data":        resolved.Data,
		"url":         resolved.URL,
		"name":        resolved.FileName,
		"mimeType":    resolved.MimeType,
		"isRemoteUrl": resolved.URL != "",
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCatalog(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	entries, err := h.Catalog.Catalog(r.Context(), employeeID)
	if err != nil {
		log.Printf("document catalog failed: %v", err)
		api.Fail(w, http.StatusInternalServerError, "catalog_failed", "failed to build document catalog", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, entries, middleware.GetRequestID(r.Context()))
}

type uploadRequest struct {
	Document     string `json:"document"`
	Folder       string `json:"folder"`
	FileName     string `json:"fileName"`
	ResourceType string `json:"resourceType"`
}

// handleUpload is the pre-save push to remote storage. File type and size are
// checked before any network call; a failed or timed-out upload is reported
// and nothing is retried automatically.
func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	var req uploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if req.Document == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "document content is required", middleware.GetRequestID(r.Context()))
		return
	}

	if errs := validate.Upload(req.FileName, mimeFromDataURL(req.Document), approxSize(req.Document)); !errs.Empty() {
		api.FailValidation(w, errs, middleware.GetRequestID(r.Context()))
		return
	}

	url, err := h.Uploader.Upload(r.Context(), storage.UploadRequest{
		DataURL:      req.Document,
		Folder:       req.Folder,
		FileName:     req.FileName,
		ResourceType: req.ResourceType,
	})
	if err != nil {
		log.Printf("document upload failed: %v", err)
		api.Fail(w, http.StatusBadGateway, "upload_failed", "document upload failed", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"url": url}, middleware.GetRequestID(r.Context()))
}

func mimeFromDataURL(value string) string {
	if !strings.HasPrefix(value, "data:") {
		return ""
	}
	comma := strings.Index(value, ",")
	if comma < 0 {
		return ""
	}
	return strings.TrimSuffix(value[len("data:"):comma], ";base64")
}

func approxSize(dataURL string) int64 {
	if comma := strings.Index(dataURL, ","); comma >= 0 && strings.HasPrefix(dataURL, "data:") {
		dataURL = dataURL[comma+1:]
	}
	return int64(len(dataURL)) * 3 / 4
}
