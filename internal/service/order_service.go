package service

import (
	"context"
	"fmt"

	"car-leasing/internal/events"
	"car-leasing/internal/model"
	"car-leasing/internal/pricing"
	"car-leasing/internal/repository"

	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo   repository.OrderRepository
	vehicleRepo repository.VehicleRepository
	publisher   events.Publisher
	recorder    OrderRecorder
	logger      zerolog.Logger
}

// NewOrderService creates a new order service. A nil publisher or recorder
// disables events or metrics.
func NewOrderService(
	orderRepo repository.OrderRepository,
	vehicleRepo repository.VehicleRepository,
	publisher events.Publisher,
	recorder OrderRecorder,
	logger zerolog.Logger,
) OrderService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &orderService{
		orderRepo:   orderRepo,
		vehicleRepo: vehicleRepo,
		publisher:   publisher,
		recorder:    recorder,
		logger:      logger.With().Str("service", "order").Logger(),
	}
}

// Quote prices req with current catalog prices without persisting anything.
func (s *orderService) Quote(ctx context.Context, req *model.OrderRequest) (*model.QuoteResponse, error) {
	sel, err := pricing.Prepare(req)
	if err != nil {
		return nil, err
	}

	quote, err := s.price(ctx, sel)
	if err != nil {
		return nil, err
	}

	return &model.QuoteResponse{
		OrderType: quote.OrderType,
		Total:     quote.Total.InexactFloat64(),
		Days:      quote.Days,
		Lines:     quote.Lines,
		Skipped:   quote.Skipped,
	}, nil
}

// CreateOrder validates and prices req, then writes the order header and its
// lines in one transaction. Validation happens before any I/O.
func (s *orderService) CreateOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error) {
	sel, err := pricing.Prepare(req)
	if err != nil {
		s.recorder.ObserveOrder(orderTypeLabel(req), outcomeInvalid)
		return nil, err
	}
	if sel.Dropped > 0 {
		s.logger.Debug().Int("dropped", sel.Dropped).Msg("items with invalid quantity dropped")
	}

	quote, err := s.price(ctx, sel)
	if err != nil {
		s.recorder.ObserveOrder(string(sel.OrderType), outcomeError)
		return nil, err
	}

	order, err := s.persist(ctx, req, quote)
	if err != nil {
		s.recorder.ObserveOrder(string(sel.OrderType), outcomeError)
		return nil, err
	}

	s.recorder.ObserveOrder(string(order.OrderType), outcomeSuccess)

	event := events.OrderCreated{
		OrderID:   order.ID,
		OrderType: string(order.OrderType),
		Total:     order.Total.StringFixed(2),
		Days:      quote.Days,
		Lines:     len(order.Lines),
		CreatedAt: order.CreatedAt,
	}
	if err := s.publisher.PublishOrderCreated(ctx, event); err != nil {
		s.logger.Warn().Err(err).Int64("order_id", order.ID).Msg("failed to publish order event")
	}

	s.logger.Info().
		Int64("order_id", order.ID).
		Str("order_type", string(order.OrderType)).
		Int("line_count", len(order.Lines)).
		Int("days", quote.Days).
		Str("total", order.Total.StringFixed(2)).
		Msg("order created successfully")

	return &model.OrderResponse{
		OK:      true,
		OrderID: order.ID,
		Total:   order.Total.InexactFloat64(),
		Days:    quote.Days,
	}, nil
}

func (s *orderService) price(ctx context.Context, sel *pricing.Selection) (*pricing.Quote, error) {
	vehicles, err := s.vehicleRepo.GetByIDs(ctx, sel.VehicleIDs())
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to read catalog prices")
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	catalog := make(map[int64]model.Vehicle, len(vehicles))
	for _, v := range vehicles {
		catalog[v.ID] = v
	}

	quote := sel.Price(catalog)
	if len(quote.Skipped) > 0 {
		s.logger.Debug().Ints64("vehicle_ids", quote.Skipped).Msg("unknown vehicles skipped")
	}
	if len(quote.Lines) == 0 {
		s.logger.Warn().Ints64("vehicle_ids", quote.Skipped).Msg("no item resolved to a catalog vehicle, total is zero")
	}

	return quote, nil
}

func (s *orderService) persist(ctx context.Context, req *model.OrderRequest, quote *pricing.Quote) (order *model.Order, err error) {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	order = &model.Order{
		CustomerName: req.CustomerName,
		Email:        req.Email,
		Phone:        req.Phone,
		OrderType:    quote.OrderType,
		Total:        quote.Total,
	}
	if quote.OrderType == model.OrderTypeRent {
		order.StartDate = quote.StartDate
		order.EndDate = quote.EndDate
	}

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Msg("failed to create order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err = s.orderRepo.CreateOrderLines(ctx, tx, order.ID, quote.Lines); err != nil {
		s.logger.Error().
			Err(err).
			Int64("order_id", order.ID).
			Int("line_count", len(quote.Lines)).
			Msg("failed to create order lines")
		return nil, fmt.Errorf("failed to create order lines: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Int64("order_id", order.ID).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	order.Lines = make([]model.OrderLine, len(quote.Lines))
	for i, line := range quote.Lines {
		line.OrderID = order.ID
		order.Lines[i] = line
	}

	return order, nil
}

func orderTypeLabel(req *model.OrderRequest) string {
	if req == nil || !req.OrderType.Valid() {
		return "unknown"
	}
	return string(req.OrderType)
}
