package service

import (
	"context"

	"car-leasing/internal/model"
)

// CatalogService exposes the vehicle catalog.
type CatalogService interface {
	// List retrieves every vehicle ordered by id.
	List(ctx context.Context) ([]model.Vehicle, error)
}

// OrderService prices and places orders.
type OrderService interface {
	// Quote prices a request against the current catalog without persisting it.
	Quote(ctx context.Context, req *model.OrderRequest) (*model.QuoteResponse, error)

	// CreateOrder validates, prices and atomically persists an order.
	CreateOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error)
}

// ContactService stores contact form submissions.
type ContactService interface {
	Submit(ctx context.Context, req *model.ContactRequest) error
}

// OrderRecorder counts order outcomes.
type OrderRecorder interface {
	ObserveOrder(orderType, outcome string)
}

const (
	outcomeSuccess = "success"
	outcomeInvalid = "invalid"
	outcomeError   = "error"
)

type nopRecorder struct{}

func (nopRecorder) ObserveOrder(string, string) {}
