package catalog

import (
	"bytes"
	"compress/gzip"
	"strings"
	"testing"

	"car-leasing/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSeed = `
vehicles:
  - name: Volvo FH
    type: truck
    fuel: diesel
    price_per_day_rent: 120.50
    price_buy: 85000
    image_url: /photos/volvo.jpg
  - name: Tesla
    type: car
    fuel: electric
    price_per_day_rent: "49.99"
    price_buy: "45999.00"
`

func gzipBytes(t *testing.T, data string) []byte {
	t.Helper()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte(data))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

func TestParse_Success(t *testing.T) {
	seed, err := Parse(strings.NewReader(sampleSeed), "vehicles.yaml")

	require.NoError(t, err)
	require.Len(t, seed.Vehicles, 2)

	truck := seed.Vehicles[0]
	assert.Equal(t, "Volvo FH", truck.Name)
	assert.Equal(t, model.CategoryTruck, truck.Category)
	assert.Equal(t, model.FuelDiesel, truck.FuelType)
	assert.True(t, truck.DailyRentalPrice.Equal(decimal.RequireFromString("120.50")))
	assert.True(t, truck.PurchasePrice.Equal(decimal.RequireFromString("85000")))
	require.NotNil(t, truck.ImageRef)
	assert.Equal(t, "/photos/volvo.jpg", *truck.ImageRef)

	tesla := seed.Vehicles[1]
	assert.True(t, tesla.DailyRentalPrice.Equal(decimal.RequireFromString("49.99")))
	assert.Nil(t, tesla.ImageRef)
}

func TestParse_Gzip(t *testing.T) {
	seed, err := Parse(bytes.NewReader(gzipBytes(t, sampleSeed)), "vehicles.yaml.gz")

	require.NoError(t, err)
	assert.Len(t, seed.Vehicles, 2)
}

func TestParse_GzipKeyWithPlainContent(t *testing.T) {
	_, err := Parse(strings.NewReader(sampleSeed), "vehicles.yaml.gz")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "gzip")
}

func TestParse_Defaults(t *testing.T) {
	seed, err := Parse(strings.NewReader("vehicles:\n  - name: Plain\n"), "plain.yaml")

	require.NoError(t, err)
	require.Len(t, seed.Vehicles, 1)
	assert.Equal(t, model.CategoryCar, seed.Vehicles[0].Category)
	assert.Equal(t, model.FuelGasoline, seed.Vehicles[0].FuelType)
	assert.True(t, seed.Vehicles[0].DailyRentalPrice.IsZero())
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "Empty document",
			doc:     "",
			wantErr: "no vehicles",
		},
		{
			name:    "No vehicles",
			doc:     "vehicles: []\n",
			wantErr: "no vehicles",
		},
		{
			name:    "Missing name",
			doc:     "vehicles:\n  - type: car\n",
			wantErr: "name is required",
		},
		{
			name:    "Unknown type",
			doc:     "vehicles:\n  - name: Bike\n    type: bicycle\n",
			wantErr: "unknown type",
		},
		{
			name:    "Unknown fuel",
			doc:     "vehicles:\n  - name: Steam\n    fuel: coal\n",
			wantErr: "unknown fuel",
		},
		{
			name:    "Negative price",
			doc:     "vehicles:\n  - name: Cheap\n    price_buy: -1\n",
			wantErr: "must not be negative",
		},
		{
			name:    "Duplicate name",
			doc:     "vehicles:\n  - name: BMW\n  - name: BMW\n",
			wantErr: "duplicate name",
		},
		{
			name:    "Malformed YAML",
			doc:     "vehicles: [",
			wantErr: "failed to decode seed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seed, err := Parse(strings.NewReader(tt.doc), "bad.yaml")

			require.Error(t, err)
			assert.Nil(t, seed)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDefault(t *testing.T) {
	seed, err := Default()

	require.NoError(t, err)
	require.Len(t, seed.Vehicles, 4)

	expected := []struct {
		name string
		rent string
		buy  string
	}{
		{"BMW", "39.99", "16999"},
		{"Bugatti", "59.99", "28999"},
		{"Lamborghini", "79.99", "35999"},
		{"Luxury Car", "89.99", "39999"},
	}
	for i, e := range expected {
		v := seed.Vehicles[i]
		assert.Equal(t, e.name, v.Name)
		assert.True(t, v.DailyRentalPrice.Equal(decimal.RequireFromString(e.rent)), e.name)
		assert.True(t, v.PurchasePrice.Equal(decimal.RequireFromString(e.buy)), e.name)
		assert.NotNil(t, v.ImageRef)
	}
}
