package handler

import (
	"net/http"

	"car-leasing/internal/model"
	"car-leasing/internal/service"

	"github.com/rs/zerolog"
)

// ContactHandler handles contact form submissions.
type ContactHandler struct {
	service service.ContactService
	logger  zerolog.Logger
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(service service.ContactService, logger zerolog.Logger) *ContactHandler {
	return &ContactHandler{
		service: service,
		logger:  logger.With().Str("handler", "contact").Logger(),
	}
}

// Submit handles POST /api/contact requests.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed.", h.logger)
		return
	}

	var req model.ContactRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrInvalidJSON.Message, h.logger)
		return
	}

	if err := h.service.Submit(r.Context(), &req); err != nil {
		writeServiceError(w, err, "Failed to save contact.", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
