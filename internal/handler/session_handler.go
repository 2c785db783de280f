package handler

import (
	"net/http"

	"car-leasing/internal/model"
	"car-leasing/internal/session"

	"github.com/rs/zerolog"
)

// LastOrderResponse is the body of GET /api/last-order.
type LastOrderResponse struct {
	LastOrder *model.LastOrder `json:"lastOrder"`
}

// SessionHandler exposes the session's last order.
type SessionHandler struct {
	sessions session.Store
	logger   zerolog.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(sessions session.Store, logger zerolog.Logger) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		logger:   logger.With().Str("handler", "session").Logger(),
	}
}

// LastOrder handles GET /api/last-order requests. A session without a live
// snapshot, or an unreadable store, yields {"lastOrder": null}.
func (h *SessionHandler) LastOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed.", h.logger)
		return
	}

	var resp LastOrderResponse

	if sid, ok := session.IDFromContext(r.Context()); ok {
		last, err := h.sessions.Get(r.Context(), sid)
		if err != nil {
			h.logger.Warn().Err(err).Msg("failed to read last order")
		} else {
			resp.LastOrder = last
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
