package repository

import (
	"context"
	"testing"
	"time"

	"car-leasing/internal/database"
	"car-leasing/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB starts a PostgreSQL container and applies the service schema.
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	_, err = pool.Exec(ctx, database.Schema())
	require.NoError(t, err)

	cleanup := func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	}

	return pool, cleanup
}

func strPtr(s string) *string {
	return &s
}

func testVehicles() []model.Vehicle {
	return []model.Vehicle{
		{
			Name:             "BMW",
			Category:         model.CategoryCar,
			FuelType:         model.FuelGasoline,
			DailyRentalPrice: decimal.RequireFromString("39.99"),
			PurchasePrice:    decimal.RequireFromString("16999.00"),
			ImageRef:         strPtr("/photos/bmw.jpg"),
		},
		{
			Name:             "Bugatti",
			Category:         model.CategoryCar,
			FuelType:         model.FuelGasoline,
			DailyRentalPrice: decimal.RequireFromString("59.99"),
			PurchasePrice:    decimal.RequireFromString("28999.00"),
		},
	}
}

// seedVehicles inserts vehicles and returns them with their assigned ids.
func seedVehicles(t *testing.T, pool *pgxpool.Pool, vehicles []model.Vehicle) []model.Vehicle {
	ctx := context.Background()

	seeded := make([]model.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		err := pool.QueryRow(ctx, `
			INSERT INTO vehicles (name, type, fuel, price_per_day_rent, price_buy, image_url)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`, v.Name, string(v.Category), string(v.FuelType), v.DailyRentalPrice, v.PurchasePrice, v.ImageRef).Scan(&v.ID)
		require.NoError(t, err)
		seeded = append(seeded, v)
	}

	return seeded
}
