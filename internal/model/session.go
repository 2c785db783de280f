package model

// LastOrder is the snapshot of the most recent successful order of a session.
type LastOrder struct {
	OrderID int64   `json:"orderId"`
	Total   float64 `json:"total"`
	When    int64   `json:"when"` // unix milliseconds
}
