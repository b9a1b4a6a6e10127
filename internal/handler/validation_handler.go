package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"pdf-validator/internal/domain"
	apperrors "pdf-validator/pkg/errors"
)

const multipartOverhead = 1 << 20

// ValidationHandler handles HTTP requests for document validation
type ValidationHandler struct {
	service       domain.ValidationService
	maxUploadSize int64
	logger        domain.Logger
}

// NewValidationHandler creates a new validation handler instance
func NewValidationHandler(service domain.ValidationService, maxUploadSize int64, logger domain.Logger) *ValidationHandler {
	return &ValidationHandler{
		service:       service,
		maxUploadSize: maxUploadSize,
		logger:        logger,
	}
}

type storageValidateRequest struct {
	Bucket   string `json:"bucket"`
	Path     string `json:"path"`
	MaxPages int    `json:"max_pages"`
}

// ValidateUpload validates a PDF sent as the multipart field "file"
func (h *ValidationHandler) ValidateUpload(w http.ResponseWriter, r *http.Request) {
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+multipartOverhead)
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeAppError(w, h.logger, apperrors.NewTooLargeError("File too large"))
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	if h.maxUploadSize > 0 && header.Size > h.maxUploadSize {
		writeAppError(w, h.logger, apperrors.NewTooLargeError("File too large"))
		return
	}

	maxPages, err := parseMaxPages(r.FormValue("max_pages"))
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}

	// Sanitize filename (strip any path components)
	filename := strings.TrimSpace(filepath.Base(header.Filename))
	if filename == "" || filename == "." || filename == string(filepath.Separator) {
		filename = "document.pdf"
	}

	// qpdf classifies the content; a non-PDF upload is a corrupt_or_invalid report.
	report, err := h.service.ValidateUpload(r.Context(), file, filename, maxPages)
	if err != nil {
		writeAppError(w, h.logger, h.toAppError(err))
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// ValidateStored validates a PDF kept in Supabase Storage
func (h *ValidationHandler) ValidateStored(w http.ResponseWriter, r *http.Request) {
	var req storageValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.MaxPages < 0 {
		writeAppError(w, h.logger, apperrors.NewValidationError("max_pages must be a positive integer"))
		return
	}

	report, err := h.service.ValidateStored(r.Context(), req.Bucket, req.Path, req.MaxPages)
	if err != nil {
		writeAppError(w, h.logger, h.toAppError(err))
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func parseMaxPages(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, apperrors.NewValidationError("max_pages must be a positive integer", raw)
	}
	return n, nil
}

func (h *ValidationHandler) toAppError(err error) error {
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return apperrors.NewValidationError(validationErr.Message, validationErr.Field)
	case errors.Is(err, domain.ErrEmptyUpload):
		return apperrors.NewValidationError("File is empty")
	case errors.Is(err, domain.ErrUploadTooLarge):
		return apperrors.NewTooLargeError("File too large")
	case errors.Is(err, domain.ErrStorageUnavailable), errors.Is(err, domain.ErrSupabaseNotInitialized):
		return apperrors.NewUnavailableError("Document storage is not configured", err)
	case errors.Is(err, domain.ErrDocumentNotFound):
		return apperrors.NewNotFoundError("Document not found")
	case errors.Is(err, domain.ErrStorageRequestFailed):
		return apperrors.NewNetworkError("Document storage request failed", err)
	default:
		return apperrors.NewInternalError("Validation failed", err)
	}
}
