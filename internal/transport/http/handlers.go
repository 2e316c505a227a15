package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/0Rorschach1/midterm-exam/internal/domain"
	"github.com/0Rorschach1/midterm-exam/internal/repository"
	"github.com/0Rorschach1/midterm-exam/internal/service"
	"github.com/0Rorschach1/midterm-exam/internal/shortener"
)

// Handler holds the HTTP handlers for the URL shortener
type Handler struct {
	shortener service.URLShortener
	serverURL string
	logger    *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(svc service.URLShortener, serverURL string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		shortener: svc,
		serverURL: serverURL,
		logger:    logger,
	}
}

// CreateURL handles POST /api/urls
func (h *Handler) CreateURL(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.CreateURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid JSON in create URL request", zap.Error(err))
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if req.URL == "" {
		http.Error(w, "URL is required", http.StatusBadRequest)
		return
	}

	entry, err := h.shortener.CreateShortURL(r.Context(), req.URL)
	if err != nil {
		h.logger.Error("failed to create short URL",
			zap.String("url", req.URL),
			zap.Error(err))
		if errors.Is(err, shortener.ErrGenerationExhausted) {
			// Systemic failure, not bad input
			http.Error(w, "Failed to allocate a short code", http.StatusInternalServerError)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	response := domain.CreateURLResponse{
		ShortCode:   entry.ShortCode,
		ShortURL:    h.serverURL + "/" + entry.ShortCode,
		OriginalURL: entry.OriginalURL,
		CreatedAt:   entry.CreatedAt,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("failed to encode create response", zap.Error(err))
	}
}

// GetURL handles GET /api/urls/{shortCode}
func (h *Handler) GetURL(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	shortCode := strings.TrimPrefix(r.URL.Path, "/api/urls/")
	if shortCode == "" {
		http.Error(w, "Short code is required", http.StatusBadRequest)
		return
	}

	entry, err := h.shortener.GetURLInfo(r.Context(), shortCode)
	if err != nil {
		h.logger.Warn("failed to get URL info",
			zap.String("short_code", shortCode),
			zap.Error(err))
		h.writeLookupError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(entry); err != nil {
		h.logger.Error("failed to encode URL info", zap.Error(err))
	}
}

// DeleteURL handles DELETE /api/urls/{shortCode}
func (h *Handler) DeleteURL(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	shortCode := strings.TrimPrefix(r.URL.Path, "/api/urls/")
	if shortCode == "" {
		http.Error(w, "Short code is required", http.StatusBadRequest)
		return
	}

	if err := h.shortener.DeleteShortURL(r.Context(), shortCode); err != nil {
		h.logger.Warn("failed to delete URL",
			zap.String("short_code", shortCode),
			zap.Error(err))
		h.writeLookupError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListURLs handles GET /api/urls
func (h *Handler) ListURLs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	entries, err := h.shortener.GetAllURLs(r.Context())
	if err != nil {
		h.logger.Error("failed to list URLs", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(entries); err != nil {
		h.logger.Error("failed to encode URL list", zap.Error(err))
	}
}

// Redirect handles GET /{shortCode} - redirects to original URL
func (h *Handler) Redirect(w http.ResponseWriter, r *http.Request) {
	shortCode := strings.TrimPrefix(r.URL.Path, "/")
	if shortCode == "" || strings.HasPrefix(shortCode, "api/") || shortCode == "metrics" {
		http.NotFound(w, r)
		return
	}

	originalURL, err := h.shortener.GetOriginalURL(r.Context(), shortCode)
	if err != nil {
		h.logger.Debug("failed to resolve short code",
			zap.String("short_code", shortCode),
			zap.Error(err))
		http.NotFound(w, r)
		return
	}

	http.Redirect(w, r, originalURL, http.StatusFound)
}

// URLsHandler handles both POST /api/urls and GET /api/urls
func (h *Handler) URLsHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.CreateURL(w, r)
	case http.MethodGet:
		h.ListURLs(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// URLsDetailHandler handles GET /api/urls/{shortCode} and DELETE /api/urls/{shortCode}
func (h *Handler) URLsDetailHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.GetURL(w, r)
	case http.MethodDelete:
		h.DeleteURL(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// writeLookupError maps a lookup failure to 404 for missing/expired codes
// and 500 for anything else
func (h *Handler) writeLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		http.Error(w, "Short code not found", http.StatusNotFound)
		return
	}
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}
