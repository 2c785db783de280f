package repository

import (
	"context"

	"car-leasing/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const vehicleColumns = `id, name, type, fuel, price_per_day_rent, price_buy, image_url`

// vehicleRepository implements the VehicleRepository interface using PostgreSQL.
type vehicleRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewVehicleRepository creates a new PostgreSQL-backed vehicle repository.
func NewVehicleRepository(pool *pgxpool.Pool, logger zerolog.Logger) VehicleRepository {
	return &vehicleRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "vehicle").Logger(),
	}
}

// List retrieves every vehicle ordered by ascending id.
func (r *vehicleRepository) List(ctx context.Context) ([]model.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles ORDER BY id ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query vehicles")
		return nil, persistenceError("failed to query vehicles", err)
	}

	return r.scanVehicles(rows)
}

// GetByIDs retrieves the vehicles matching ids.
func (r *vehicleRepository) GetByIDs(ctx context.Context, ids []int64) ([]model.Vehicle, error) {
	if len(ids) == 0 {
		return []model.Vehicle{}, nil
	}

	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = ANY($1) ORDER BY id ASC`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to query vehicles by IDs")
		return nil, persistenceError("failed to query vehicles by IDs", err)
	}

	return r.scanVehicles(rows)
}

// Upsert inserts vehicles or updates the existing row with the same name.
func (r *vehicleRepository) Upsert(ctx context.Context, vehicles []model.Vehicle) (int, error) {
	if len(vehicles) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO vehicles (name, type, fuel, price_per_day_rent, price_buy, image_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (name) DO UPDATE SET
			type = EXCLUDED.type,
			fuel = EXCLUDED.fuel,
			price_per_day_rent = EXCLUDED.price_per_day_rent,
			price_buy = EXCLUDED.price_buy,
			image_url = EXCLUDED.image_url
	`

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return 0, persistenceError("failed to begin transaction", err)
	}
	defer tx.Rollback(ctx)

	if err := r.insertBatch(ctx, tx, query, vehicles); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Msg("failed to commit vehicle upsert")
		return 0, persistenceError("failed to commit vehicle upsert", err)
	}

	r.logger.Debug().Int("count", len(vehicles)).Msg("vehicles upserted")

	return len(vehicles), nil
}

// ReplaceAll clears orders and vehicles, restarts their identities and
// inserts vehicles, all in one transaction.
func (r *vehicleRepository) ReplaceAll(ctx context.Context, vehicles []model.Vehicle) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return persistenceError("failed to begin transaction", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `TRUNCATE order_items, orders, vehicles RESTART IDENTITY`); err != nil {
		r.logger.Error().Err(err).Msg("failed to clear inventory")
		return persistenceError("failed to clear inventory", err)
	}

	query := `
		INSERT INTO vehicles (name, type, fuel, price_per_day_rent, price_buy, image_url)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if err := r.insertBatch(ctx, tx, query, vehicles); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Msg("failed to commit inventory replacement")
		return persistenceError("failed to commit inventory replacement", err)
	}

	r.logger.Info().Int("count", len(vehicles)).Msg("inventory replaced")

	return nil
}

func (r *vehicleRepository) insertBatch(ctx context.Context, tx pgx.Tx, query string, vehicles []model.Vehicle) error {
	if len(vehicles) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, v := range vehicles {
		batch.Queue(query, v.Name, string(v.Category), string(v.FuelType), v.DailyRentalPrice, v.PurchasePrice, v.ImageRef)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := range vehicles {
		if _, err := results.Exec(); err != nil {
			r.logger.Error().
				Err(err).
				Str("vehicle", vehicles[i].Name).
				Msg("failed to write vehicle")
			return persistenceError("failed to write vehicle", err)
		}
	}

	return nil
}

func (r *vehicleRepository) scanVehicles(rows pgx.Rows) ([]model.Vehicle, error) {
	defer rows.Close()

	vehicles := []model.Vehicle{}
	for rows.Next() {
		var v model.Vehicle
		err := rows.Scan(&v.ID, &v.Name, &v.Category, &v.FuelType, &v.DailyRentalPrice, &v.PurchasePrice, &v.ImageRef)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan vehicle row")
			return nil, persistenceError("failed to scan vehicle", err)
		}
		vehicles = append(vehicles, v)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating vehicle rows")
		return nil, persistenceError("error iterating vehicles", err)
	}

	return vehicles, nil
}
