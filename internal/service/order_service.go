package service

import (
	"context"
	"errors"
	"fmt"

	"voucherhub/internal/model"
	"voucherhub/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo    repository.OrderRepository
	voucherRepo  repository.VoucherRepository
	customerRepo repository.CustomerRepository
	logger       zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	voucherRepo repository.VoucherRepository,
	customerRepo repository.CustomerRepository,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		voucherRepo:  voucherRepo,
		customerRepo: customerRepo,
		logger:       logger.With().Str("service", "order").Logger(),
	}
}

// CreateOrder creates a new order with an optional voucher. The order and its
// items are written in one transaction.
func (s *orderService) CreateOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("order request is nil")
	}
	if err := model.Validate(req); err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		s.logger.Error().Err(err).Str("customer_id", req.CustomerID.String()).Msg("failed to look up customer")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	if customer == nil {
		s.logger.Warn().Str("customer_id", req.CustomerID.String()).Msg("order for unknown customer")
		return nil, model.ErrCustomerNotFound
	}

	var voucher model.Voucher
	if req.VoucherID != nil {
		voucher, err = s.voucherRepo.FindByID(ctx, *req.VoucherID)
		if err != nil {
			s.logger.Error().Err(err).Str("voucher_id", req.VoucherID.String()).Msg("failed to look up voucher")
			return nil, fmt.Errorf("failed to create order: %w", err)
		}
		if voucher == nil {
			s.logger.Warn().Str("voucher_id", req.VoucherID.String()).Msg("order with unknown voucher")
			return nil, model.ErrVoucherNotFound
		}
	}

	items := make([]model.OrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = model.OrderItem{
			ProductID:    item.ProductID,
			ProductPrice: item.Price,
			Quantity:     item.Quantity,
		}
	}

	order := model.NewOrder(uuid.New(), req.CustomerID, items, voucher)

	// Start transaction
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

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, order.ID, order.Items); err != nil {
		s.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Int("item_count", len(order.Items)).
			Msg("failed to create order items")
		return nil, fmt.Errorf("failed to create order items: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	resp := model.NewOrderResponse(order)

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Int("item_count", len(order.Items)).
		Int64("total_amount", resp.TotalAmount).
		Msg("order created successfully")

	return resp, nil
}

// GetByID retrieves an order by its ID with items, voucher and total.
func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if order == nil {
		s.logger.Debug().Str("order_id", id.String()).Msg("order not found")
		return nil, model.ErrOrderNotFound
	}

	return model.NewOrderResponse(order), nil
}

// ListByCustomer retrieves the orders placed by a customer.
func (s *orderService) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.OrderResponse, error) {
	orders, err := s.orderRepo.FindByCustomerID(ctx, customerID)
	if err != nil {
		s.logger.Error().Err(err).Str("customer_id", customerID.String()).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	responses := make([]model.OrderResponse, len(orders))
	for i := range orders {
		responses[i] = *model.NewOrderResponse(&orders[i])
	}
	return responses, nil
}

// UpdateStatus changes the status of an order.
func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, req *model.OrderStatusRequest) (*model.OrderResponse, error) {
	if err := model.Validate(req); err != nil {
		return nil, err
	}

	status, err := model.ParseOrderStatus(req.Status)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, status, model.Now()); err != nil {
		if errors.Is(err, model.ErrNoRowsUpdated) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to update order status")
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Str("status", string(status)).
		Msg("order status updated")

	return s.GetByID(ctx, id)
}
