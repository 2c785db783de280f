package catalog

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Seeder writes seed documents into the vehicle store.
type Seeder struct {
	loader Loader
	store  Store
	logger zerolog.Logger
}

// NewSeeder creates a seeder. loader may be nil when only the built-in seed is used.
func NewSeeder(loader Loader, store Store, logger zerolog.Logger) *Seeder {
	return &Seeder{
		loader: loader,
		store:  store,
		logger: logger.With().Str("component", "catalog-seeder").Logger(),
	}
}

// Apply upserts the vehicles of the seed identified by key, matching
// existing rows by name. An empty key selects the built-in seed.
func (s *Seeder) Apply(ctx context.Context, key string) (int, error) {
	seed, err := s.load(ctx, key)
	if err != nil {
		return 0, err
	}

	n, err := s.store.Upsert(ctx, seed.Vehicles)
	if err != nil {
		return 0, fmt.Errorf("failed to apply seed: %w", err)
	}

	s.logger.Info().Str("seed", seedName(key)).Int("vehicles", n).Msg("seed applied")
	return n, nil
}

// Replace deletes every order and vehicle and inserts the seed with fresh ids.
func (s *Seeder) Replace(ctx context.Context, key string) (int, error) {
	seed, err := s.load(ctx, key)
	if err != nil {
		return 0, err
	}

	if err := s.store.ReplaceAll(ctx, seed.Vehicles); err != nil {
		return 0, fmt.Errorf("failed to replace inventory: %w", err)
	}

	s.logger.Warn().Str("seed", seedName(key)).Int("vehicles", len(seed.Vehicles)).Msg("inventory replaced, existing orders removed")
	return len(seed.Vehicles), nil
}

func (s *Seeder) load(ctx context.Context, key string) (*Seed, error) {
	if key == "" {
		return Default()
	}
	if s.loader == nil {
		return nil, fmt.Errorf("no loader configured for seed %s", key)
	}
	return s.loader.Load(ctx, key)
}

func seedName(key string) string {
	if key == "" {
		return "built-in"
	}
	return key
}
