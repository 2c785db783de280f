// Package events publishes domain events for placed orders.
package events

import (
	"context"
	"time"
)

// RoutingKeyOrderCreated is the routing key of OrderCreated messages.
const RoutingKeyOrderCreated = "order.created"

// OrderCreated is emitted after an order and its lines are committed.
type OrderCreated struct {
	OrderID   int64     `json:"order_id"`
	OrderType string    `json:"order_type"`
	Total     string    `json:"total"`
	Days      int       `json:"days"`
	Lines     int       `json:"lines"`
	CreatedAt time.Time `json:"created_at"`
}

// Publisher delivers order events to downstream consumers.
type Publisher interface {
	PublishOrderCreated(ctx context.Context, event OrderCreated) error
	Close() error
}

// NopPublisher discards every event.
type NopPublisher struct{}

func (NopPublisher) PublishOrderCreated(context.Context, OrderCreated) error { return nil }

func (NopPublisher) Close() error { return nil }
