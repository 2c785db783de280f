package model

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// OrderType distinguishes rentals from purchases.
type OrderType string

const (
	OrderTypeRent OrderType = "rent"
	OrderTypeBuy  OrderType = "buy"
)

// Valid reports whether t is rent or buy.
func (t OrderType) Valid() bool {
	return t == OrderTypeRent || t == OrderTypeBuy
}

// Order represents a persisted customer order.
type Order struct {
	ID           int64           `json:"id" db:"id"`
	CustomerName string          `json:"customer_name" db:"customer_name"`
	Email        string          `json:"email" db:"email"`
	Phone        string          `json:"phone" db:"phone"`
	OrderType    OrderType       `json:"order_type" db:"order_type"`
	StartDate    *time.Time      `json:"start_date" db:"start_date"`
	EndDate      *time.Time      `json:"end_date" db:"end_date"`
	Total        decimal.Decimal `json:"total" db:"total"`
	Lines        []OrderLine     `json:"lines" db:"-"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}

// OrderLine is a priced line of an order. PriceEach is a snapshot of the
// catalog price at the time the order was placed.
type OrderLine struct {
	ID        int64           `json:"-" db:"id"`
	OrderID   int64           `json:"-" db:"order_id"`
	VehicleID int64           `json:"vehicle_id" db:"vehicle_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	PriceEach decimal.Decimal `json:"price_each" db:"price_each"`
}

// OrderRequest represents the request payload for placing or quoting an order.
type OrderRequest struct {
	CustomerName string             `json:"customer_name"`
	Email        string             `json:"email"`
	Phone        string             `json:"phone,omitempty"`
	OrderType    OrderType          `json:"order_type"`
	StartDate    string             `json:"start_date,omitempty"`
	EndDate      string             `json:"end_date,omitempty"`
	Items        []OrderItemRequest `json:"items"`
}

// OrderItemRequest represents a single selection in an order request.
// Quantity is kept as a json.Number so fractional or quoted values can be
// filtered out instead of failing the whole request.
type OrderItemRequest struct {
	VehicleID int64       `json:"vehicle_id"`
	Quantity  json.Number `json:"quantity"`
}

// UnmarshalJSON never fails, so one malformed item cannot reject the whole
// order. A quantity is kept as its raw text and validated during pricing;
// anything other than a number or string becomes empty. A vehicle id that
// is not an integer becomes 0, which matches no vehicle and is skipped.
func (it *OrderItemRequest) UnmarshalJSON(data []byte) error {
	*it = OrderItemRequest{}

	var raw struct {
		VehicleID json.RawMessage `json:"vehicle_id"`
		Quantity  json.RawMessage `json:"quantity"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	it.Quantity = json.Number(scalarText(raw.Quantity))
	if id, err := strconv.ParseInt(scalarText(raw.VehicleID), 10, 64); err == nil {
		it.VehicleID = id
	}
	return nil
}

// scalarText returns the text of a JSON string or number, or "" for any
// other value.
func scalarText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// OrderResponse is returned after an order has been persisted.
type OrderResponse struct {
	OK      bool    `json:"ok"`
	OrderID int64   `json:"orderId"`
	Total   float64 `json:"total"`
	Days    int     `json:"days"`
}

// QuoteResponse is returned for a price preview.
type QuoteResponse struct {
	OrderType OrderType   `json:"order_type"`
	Total     float64     `json:"total"`
	Days      int         `json:"days"`
	Lines     []OrderLine `json:"lines"`
	Skipped   []int64     `json:"skipped"`
}
