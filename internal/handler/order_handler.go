package handler

import (
	"net/http"
	"time"

	"car-leasing/internal/model"
	"car-leasing/internal/service"
	"car-leasing/internal/session"

	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service  service.OrderService
	sessions session.Store
	logger   zerolog.Logger
	now      func() time.Time
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, sessions session.Store, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service:  service,
		sessions: sessions,
		logger:   logger.With().Str("handler", "order").Logger(),
		now:      time.Now,
	}
}

// Create handles POST /api/order requests.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed.", h.logger)
		return
	}

	var req model.OrderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrInvalidJSON.Message, h.logger)
		return
	}

	resp, err := h.service.CreateOrder(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, "Failed to create order.", h.logger)
		return
	}

	h.rememberOrder(r, resp)

	writeJSON(w, http.StatusOK, resp)
}

// Quote handles POST /api/quote requests.
func (h *OrderHandler) Quote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed.", h.logger)
		return
	}

	var req model.OrderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrInvalidJSON.Message, h.logger)
		return
	}

	resp, err := h.service.Quote(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, "Failed to price order.", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// rememberOrder stores the order as the session's last order. The order is
// already committed, so a failure here is only logged.
func (h *OrderHandler) rememberOrder(r *http.Request, resp *model.OrderResponse) {
	if h.sessions == nil {
		return
	}

	sid, ok := session.IDFromContext(r.Context())
	if !ok {
		return
	}

	snapshot := model.LastOrder{
		OrderID: resp.OrderID,
		Total:   resp.Total,
		When:    h.now().UnixMilli(),
	}
	if err := h.sessions.Put(r.Context(), sid, snapshot); err != nil {
		h.logger.Warn().Err(err).Int64("order_id", resp.OrderID).Msg("failed to store last order")
	}
}
