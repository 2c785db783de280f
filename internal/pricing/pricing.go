// Package pricing computes authoritative order totals from catalog prices.
//
// Pricing is split in two steps so that malformed requests are rejected
// before the catalog is read: Prepare validates and normalises a request,
// and Selection.Price applies current catalog prices to it. Both steps are
// free of I/O.
package pricing

import (
	"math"
	"strings"
	"time"

	"car-leasing/internal/model"

	"github.com/shopspring/decimal"
)

const (
	dateLayout    = "2006-01-02"
	secondsPerDay = 24 * 60 * 60
)

// Item is a validated (vehicle, quantity) selection.
type Item struct {
	VehicleID int64
	Quantity  int
}

// Selection is a validated order request, ready to be priced.
type Selection struct {
	OrderType model.OrderType
	Days      int
	StartDate *time.Time
	EndDate   *time.Time
	Items     []Item
	// Dropped counts items discarded for a non-positive or non-integer quantity.
	Dropped int
}

// Quote is the result of pricing a selection against the catalog.
type Quote struct {
	OrderType model.OrderType
	Days      int
	StartDate *time.Time
	EndDate   *time.Time
	Lines     []model.OrderLine
	// Skipped lists vehicle ids that are not in the catalog.
	Skipped []int64
	Total   decimal.Decimal
}

// Multiplier returns the per-line day multiplier: the rental day count for
// rentals and 1 for purchases.
func (q *Quote) Multiplier() int {
	if q.OrderType == model.OrderTypeRent {
		return q.Days
	}
	return 1
}

// Prepare validates req and resolves its rental period.
//
// Customer name, e-mail, order type and a non-empty item list are required.
// Items with a non-positive or non-integer quantity are dropped; if none
// remain the request is rejected. Bad or missing rental dates are not an
// error: the period falls back to a single day.
func Prepare(req *model.OrderRequest) (*Selection, error) {
	if req == nil {
		return nil, model.ErrMissingFields
	}

	if strings.TrimSpace(req.CustomerName) == "" ||
		strings.TrimSpace(req.Email) == "" ||
		req.OrderType == "" ||
		len(req.Items) == 0 {
		return nil, model.ErrMissingFields
	}

	if !req.OrderType.Valid() {
		return nil, model.ErrInvalidOrderType
	}

	sel := &Selection{
		OrderType: req.OrderType,
		Days:      1,
		Items:     make([]Item, 0, len(req.Items)),
	}

	for _, it := range req.Items {
		qty, ok := parseQuantity(it.Quantity.String())
		if !ok {
			sel.Dropped++
			continue
		}
		sel.Items = append(sel.Items, Item{VehicleID: it.VehicleID, Quantity: qty})
	}

	if len(sel.Items) == 0 {
		return nil, model.ErrNoValidItems
	}

	if req.OrderType == model.OrderTypeRent {
		start, startOK := ParseDate(req.StartDate)
		end, endOK := ParseDate(req.EndDate)
		if startOK {
			sel.StartDate = &start
		}
		if endOK {
			sel.EndDate = &end
		}
		if startOK && endOK {
			sel.Days = RentalDays(start, end)
		}
	}

	return sel, nil
}

// VehicleIDs returns the distinct vehicle ids referenced by the selection,
// in first-seen order.
func (s *Selection) VehicleIDs() []int64 {
	seen := make(map[int64]struct{}, len(s.Items))
	ids := make([]int64, 0, len(s.Items))
	for _, it := range s.Items {
		if _, ok := seen[it.VehicleID]; ok {
			continue
		}
		seen[it.VehicleID] = struct{}{}
		ids = append(ids, it.VehicleID)
	}
	return ids
}

// Price applies catalog prices to the selection. Items whose vehicle is not
// in catalog are skipped. The total is rounded half-up to cents once, after
// summing unrounded line amounts.
func (s *Selection) Price(catalog map[int64]model.Vehicle) *Quote {
	q := &Quote{
		OrderType: s.OrderType,
		Days:      s.Days,
		StartDate: s.StartDate,
		EndDate:   s.EndDate,
		Lines:     make([]model.OrderLine, 0, len(s.Items)),
		Skipped:   []int64{},
	}

	multiplier := decimal.NewFromInt(int64(q.Multiplier()))
	sum := decimal.Zero

	for _, it := range s.Items {
		v, ok := catalog[it.VehicleID]
		if !ok {
			q.Skipped = append(q.Skipped, it.VehicleID)
			continue
		}

		price := v.PriceFor(s.OrderType)
		q.Lines = append(q.Lines, model.OrderLine{
			VehicleID: it.VehicleID,
			Quantity:  it.Quantity,
			PriceEach: price,
		})
		sum = sum.Add(price.Mul(decimal.NewFromInt(int64(it.Quantity))).Mul(multiplier))
	}

	q.Total = sum.Round(2)
	return q
}

// RentalDays returns the number of started days between start and end,
// never less than one. The span is measured in Unix seconds so periods
// longer than time.Duration can hold are still counted exactly.
func RentalDays(start, end time.Time) int {
	secs := end.Unix() - start.Unix()
	nanos := end.Nanosecond() - start.Nanosecond()
	if nanos < 0 {
		secs--
		nanos += int(time.Second)
	}
	if secs < 0 || (secs == 0 && nanos == 0) {
		return 1
	}

	days := secs / secondsPerDay
	if secs%secondsPerDay != 0 || nanos > 0 {
		days++
	}
	if days < 1 {
		return 1
	}
	return int(days)
}

// ParseDate parses a YYYY-MM-DD date, falling back to RFC 3339 timestamps.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// parseQuantity accepts positive integers that fit the storage column.
func parseQuantity(raw string) (int, bool) {
	n, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || !n.IsInteger() || !n.IsPositive() {
		return 0, false
	}
	if n.GreaterThan(decimal.NewFromInt(math.MaxInt32)) {
		return 0, false
	}
	return int(n.IntPart()), true
}
