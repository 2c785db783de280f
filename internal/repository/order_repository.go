package repository

import (
	"context"
	"errors"

	"car-leasing/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, persistenceError("failed to begin transaction", err)
	}
	return tx, nil
}

// CreateOrder inserts the order header within the provided transaction.
func (r *orderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (customer_name, email, phone, order_type, start_date, end_date, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := tx.QueryRow(ctx, query,
		order.CustomerName,
		order.Email,
		order.Phone,
		string(order.OrderType),
		order.StartDate,
		order.EndDate,
		order.Total,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_type", string(order.OrderType)).
			Msg("failed to create order")
		return persistenceError("failed to create order", err)
	}

	r.logger.Debug().
		Int64("order_id", order.ID).
		Msg("order created successfully")

	return nil
}

// CreateOrderLines inserts the order lines within the provided transaction.
func (r *orderRepository) CreateOrderLines(ctx context.Context, tx pgx.Tx, orderID int64, lines []model.OrderLine) error {
	if len(lines) == 0 {
		return nil
	}

	query := `
		INSERT INTO order_items (order_id, vehicle_id, quantity, price_each)
		VALUES ($1, $2, $3, $4)
	`

	batch := &pgx.Batch{}
	for _, line := range lines {
		batch.Queue(query, orderID, line.VehicleID, line.Quantity, line.PriceEach)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := range lines {
		_, err := results.Exec()
		if err != nil {
			r.logger.Error().
				Err(err).
				Int64("order_id", orderID).
				Int64("vehicle_id", lines[i].VehicleID).
				Msg("failed to create order line")
			return persistenceError("failed to create order line", err)
		}
	}

	r.logger.Debug().
		Int64("order_id", orderID).
		Int("count", len(lines)).
		Msg("order lines created successfully")

	return nil
}

// GetByID retrieves an order by its ID along with its lines.
// It returns nil without error when the order does not exist.
func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	orderQuery := `
		SELECT id, customer_name, email, phone, order_type, start_date, end_date, total, created_at
		FROM orders
		WHERE id = $1
	`

	var order model.Order
	err := r.pool.QueryRow(ctx, orderQuery, id).Scan(
		&order.ID,
		&order.CustomerName,
		&order.Email,
		&order.Phone,
		&order.OrderType,
		&order.StartDate,
		&order.EndDate,
		&order.Total,
		&order.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("order_id", id).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("order_id", id).Msg("failed to query order")
		return nil, persistenceError("failed to query order", err)
	}

	linesQuery := `
		SELECT id, order_id, vehicle_id, quantity, price_each
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, linesQuery, id)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("order_id", id).
			Msg("failed to query order lines")
		return nil, persistenceError("failed to query order lines", err)
	}
	defer rows.Close()

	order.Lines = []model.OrderLine{}
	for rows.Next() {
		var line model.OrderLine
		if err := rows.Scan(&line.ID, &line.OrderID, &line.VehicleID, &line.Quantity, &line.PriceEach); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order line row")
			return nil, persistenceError("failed to scan order line", err)
		}
		order.Lines = append(order.Lines, line)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order line rows")
		return nil, persistenceError("error iterating order lines", err)
	}

	return &order, nil
}
