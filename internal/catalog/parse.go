package catalog

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"strings"

	"car-leasing/internal/model"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type seedDocument struct {
	Vehicles []seedVehicle `yaml:"vehicles"`
}

type seedVehicle struct {
	Name            string          `yaml:"name"`
	Type            string          `yaml:"type"`
	Fuel            string          `yaml:"fuel"`
	PricePerDayRent decimal.Decimal `yaml:"price_per_day_rent"`
	PriceBuy        decimal.Decimal `yaml:"price_buy"`
	ImageURL        string          `yaml:"image_url"`
}

// ErrEmptySeed is returned when a seed document lists no vehicles.
var ErrEmptySeed = errors.New("seed document contains no vehicles")

// Parse decodes a YAML seed document from r and validates every vehicle.
// The stream is gunzipped first when key ends in .gz.
func Parse(r io.Reader, key string) (*Seed, error) {
	if strings.HasSuffix(key, ".gz") {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader for %s: %w", key, err)
		}
		defer gz.Close()
		r = gz
	}

	var doc seedDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: %w", key, ErrEmptySeed)
		}
		return nil, fmt.Errorf("failed to decode seed %s: %w", key, err)
	}

	if len(doc.Vehicles) == 0 {
		return nil, fmt.Errorf("%s: %w", key, ErrEmptySeed)
	}

	seed := &Seed{Vehicles: make([]model.Vehicle, 0, len(doc.Vehicles))}
	seen := make(map[string]struct{}, len(doc.Vehicles))

	for i, sv := range doc.Vehicles {
		v, err := sv.toVehicle()
		if err != nil {
			return nil, fmt.Errorf("%s: vehicle %d: %w", key, i, err)
		}
		if _, dup := seen[v.Name]; dup {
			return nil, fmt.Errorf("%s: vehicle %d: duplicate name %q", key, i, v.Name)
		}
		seen[v.Name] = struct{}{}
		seed.Vehicles = append(seed.Vehicles, v)
	}

	return seed, nil
}

func (sv seedVehicle) toVehicle() (model.Vehicle, error) {
	name := strings.TrimSpace(sv.Name)
	if name == "" {
		return model.Vehicle{}, errors.New("name is required")
	}

	category := model.Category(sv.Type)
	if sv.Type == "" {
		category = model.CategoryCar
	}
	if !category.Valid() {
		return model.Vehicle{}, fmt.Errorf("unknown type %q", sv.Type)
	}

	fuel := model.FuelType(sv.Fuel)
	if sv.Fuel == "" {
		fuel = model.FuelGasoline
	}
	if !fuel.Valid() {
		return model.Vehicle{}, fmt.Errorf("unknown fuel %q", sv.Fuel)
	}

	if sv.PricePerDayRent.IsNegative() || sv.PriceBuy.IsNegative() {
		return model.Vehicle{}, errors.New("prices must not be negative")
	}

	v := model.Vehicle{
		Name:             name,
		Category:         category,
		FuelType:         fuel,
		DailyRentalPrice: sv.PricePerDayRent.Round(2),
		PurchasePrice:    sv.PriceBuy.Round(2),
	}
	if sv.ImageURL != "" {
		img := sv.ImageURL
		v.ImageRef = &img
	}
	return v, nil
}
