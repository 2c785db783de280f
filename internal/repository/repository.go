package repository

import (
	"context"
	"fmt"

	"car-leasing/internal/model"

	"github.com/jackc/pgx/v5"
)

// VehicleRepository defines the interface for catalog data access operations.
type VehicleRepository interface {
	// List retrieves every vehicle ordered by ascending id.
	List(ctx context.Context) ([]model.Vehicle, error)

	// GetByIDs retrieves the vehicles matching ids. Unknown ids are absent
	// from the result rather than reported as an error.
	GetByIDs(ctx context.Context, ids []int64) ([]model.Vehicle, error)

	// Upsert inserts vehicles or updates existing ones matched by name.
	Upsert(ctx context.Context, vehicles []model.Vehicle) (int, error)

	// ReplaceAll removes all orders and vehicles and inserts vehicles in
	// a single transaction.
	ReplaceAll(ctx context.Context, vehicles []model.Vehicle) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts the order header within the provided transaction
	// and sets its generated ID and CreatedAt.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderLines inserts the order lines within the provided transaction.
	CreateOrderLines(ctx context.Context, tx pgx.Tx, orderID int64, lines []model.OrderLine) error

	// GetByID retrieves an order by its ID along with its lines.
	GetByID(ctx context.Context, id int64) (*model.Order, error)
}

// ContactRepository defines the interface for contact form storage.
type ContactRepository interface {
	// Create stores a contact message and sets its ID and CreatedAt.
	Create(ctx context.Context, contact *model.Contact) error
}

// persistenceError tags a storage failure with model.ErrPersistence while
// keeping the driver error in the chain.
func persistenceError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, model.ErrPersistence, err)
}
