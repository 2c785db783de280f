// Command seed loads a vehicle seed document into the catalog.
//
//	seed                     upsert the built-in vehicles
//	seed -file vehicles.yaml upsert vehicles from a file (or S3 key when S3 is enabled)
//	seed -replace            delete all orders and vehicles, then insert the seed
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"car-leasing/internal/catalog"
	"car-leasing/internal/config"
	"car-leasing/internal/database"
	"car-leasing/internal/repository"
)

func main() {
	file := flag.String("file", "", "seed document path or S3 key; empty uses the built-in seed")
	replace := flag.Bool("replace", false, "delete existing orders and vehicles before seeding")
	flag.Parse()

	if err := run(*file, *replace); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(file string, replace bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool, logger); err != nil {
		return err
	}

	vehicleRepo := repository.NewVehicleRepository(pool, logger)
	seeder := catalog.NewSeeder(catalog.NewLoader(ctx, cfg.S3, logger), vehicleRepo, logger)

	var n int
	if replace {
		n, err = seeder.Replace(ctx, file)
	} else {
		n, err = seeder.Apply(ctx, file)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Seeded %d vehicles\n", n)
	return nil
}
