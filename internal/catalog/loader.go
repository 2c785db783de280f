package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

//go:embed default_vehicles.yaml
var defaultSeed []byte

// Default returns the built-in seed.
func Default() (*Seed, error) {
	return Parse(bytes.NewReader(defaultSeed), "default_vehicles.yaml")
}

// fileLoader implements Loader for seed documents on the local file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based seed loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "catalog-loader").Logger(),
	}
}

func (l *fileLoader) Load(ctx context.Context, filePath string) (*Seed, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.logger.Info().Str("file", filePath).Msg("loading seed file")

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open seed file")
		return nil, fmt.Errorf("failed to open seed file %s: %w", filePath, err)
	}
	defer file.Close()

	seed, err := Parse(file, filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to parse seed file")
		return nil, err
	}

	l.logger.Info().
		Str("file", filePath).
		Int("vehicles", len(seed.Vehicles)).
		Msg("seed file loaded successfully")

	return seed, nil
}
