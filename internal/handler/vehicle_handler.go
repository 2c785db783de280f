package handler

import (
	"net/http"

	"car-leasing/internal/service"

	"github.com/rs/zerolog"
)

// VehicleHandler handles catalog HTTP requests.
type VehicleHandler struct {
	service service.CatalogService
	logger  zerolog.Logger
}

// NewVehicleHandler creates a new vehicle handler.
func NewVehicleHandler(service service.CatalogService, logger zerolog.Logger) *VehicleHandler {
	return &VehicleHandler{
		service: service,
		logger:  logger.With().Str("handler", "vehicle").Logger(),
	}
}

// List handles GET /api/vehicles requests.
func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed.", h.logger)
		return
	}

	vehicles, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list vehicles")
		writeError(w, http.StatusInternalServerError, "Failed to fetch vehicles.", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, vehicles)
}
