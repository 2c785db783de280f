// Package catalog loads vehicle seed documents and applies them to the
// vehicle store.
package catalog

import (
	"context"

	"car-leasing/internal/model"
)

// Seed is a parsed and validated vehicle seed document.
type Seed struct {
	Vehicles []model.Vehicle
}

// Loader defines the interface for loading seed documents.
type Loader interface {
	// Load reads the seed document identified by key. Keys ending in .gz are
	// gzip-compressed.
	Load(ctx context.Context, key string) (*Seed, error)
}

// Store is the subset of the vehicle repository the seeder writes to.
type Store interface {
	Upsert(ctx context.Context, vehicles []model.Vehicle) (int, error)
	ReplaceAll(ctx context.Context, vehicles []model.Vehicle) error
}
