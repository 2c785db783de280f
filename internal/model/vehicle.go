package model

import "github.com/shopspring/decimal"

// Category is the body class of a vehicle.
type Category string

const (
	CategoryCar   Category = "car"
	CategoryTruck Category = "truck"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	return c == CategoryCar || c == CategoryTruck
}

// FuelType is the drivetrain energy source of a vehicle.
type FuelType string

const (
	FuelGasoline FuelType = "gasoline"
	FuelDiesel   FuelType = "diesel"
	FuelElectric FuelType = "electric"
)

// Valid reports whether f is a known fuel type.
func (f FuelType) Valid() bool {
	switch f {
	case FuelGasoline, FuelDiesel, FuelElectric:
		return true
	}
	return false
}

// Vehicle represents a catalog entry that can be rented or bought.
// Subtypes such as electric trucks are expressed through Category and FuelType.
type Vehicle struct {
	ID               int64           `json:"id" db:"id"`
	Name             string          `json:"name" db:"name"`
	Category         Category        `json:"type" db:"type"`
	FuelType         FuelType        `json:"fuel" db:"fuel"`
	DailyRentalPrice decimal.Decimal `json:"price_per_day_rent" db:"price_per_day_rent"`
	PurchasePrice    decimal.Decimal `json:"price_buy" db:"price_buy"`
	ImageRef         *string         `json:"image_url" db:"image_url"`
}

// PriceFor returns the catalog price that applies to the given order type.
func (v Vehicle) PriceFor(orderType OrderType) decimal.Decimal {
	if orderType == OrderTypeBuy {
		return v.PurchasePrice
	}
	return v.DailyRentalPrice
}
