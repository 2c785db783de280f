package service

import (
	"context"
	"fmt"

	"car-leasing/internal/model"
	"car-leasing/internal/repository"

	"github.com/rs/zerolog"
)

// catalogService implements CatalogService.
type catalogService struct {
	vehicleRepo repository.VehicleRepository
	logger      zerolog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(vehicleRepo repository.VehicleRepository, logger zerolog.Logger) CatalogService {
	return &catalogService{
		vehicleRepo: vehicleRepo,
		logger:      logger.With().Str("service", "catalog").Logger(),
	}
}

func (s *catalogService) List(ctx context.Context) ([]model.Vehicle, error) {
	vehicles, err := s.vehicleRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list vehicles")
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}

	s.logger.Debug().Int("count", len(vehicles)).Msg("retrieved vehicles")

	return vehicles, nil
}
