package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestSeedFile writes a seed file, gzipped when the name ends in .gz.
func createTestSeedFile(t *testing.T, filename, content string) string {
	t.Helper()

	filePath := filepath.Join(t.TempDir(), filename)
	data := []byte(content)
	if filepath.Ext(filename) == ".gz" {
		data = gzipBytes(t, content)
	}
	require.NoError(t, os.WriteFile(filePath, data, 0o600))
	return filePath
}

func TestFileLoader_Load_Success(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())

	for _, name := range []string{"vehicles.yaml", "vehicles.yaml.gz"} {
		t.Run(name, func(t *testing.T) {
			filePath := createTestSeedFile(t, name, sampleSeed)

			seed, err := loader.Load(context.Background(), filePath)

			require.NoError(t, err)
			require.NotNil(t, seed)
			assert.Len(t, seed.Vehicles, 2)
		})
	}
}

func TestFileLoader_Load_FileNotFound(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())

	seed, err := loader.Load(context.Background(), "/nonexistent/vehicles.yaml")

	assert.Error(t, err)
	assert.Nil(t, seed)
	assert.Contains(t, err.Error(), "failed to open seed file")
}

func TestFileLoader_Load_InvalidDocument(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())
	filePath := createTestSeedFile(t, "bad.yaml", "vehicles:\n  - name: X\n    type: boat\n")

	seed, err := loader.Load(context.Background(), filePath)

	assert.Error(t, err)
	assert.Nil(t, seed)
}

func TestFileLoader_Load_ContextCancelled(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())
	filePath := createTestSeedFile(t, "vehicles.yaml", sampleSeed)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	seed, err := loader.Load(ctx, filePath)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, seed)
}
