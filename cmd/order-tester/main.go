package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"voucherhub/internal/blacklist"
	"voucherhub/internal/config"
	"voucherhub/internal/database"
	"voucherhub/internal/model"
	"voucherhub/internal/repository"
	"voucherhub/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	testPrice     int64 = 100
	testPercent   int64 = 10
	expectedTotal int64 = testPrice - testPrice*testPercent/100
)

// order-tester places one discounted order against the configured database
// and checks the computed total.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger, os.Stdout).With().Str("component", "order-tester").Logger()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		return err
	}

	registry, err := blacklist.NewRegistry(ctx, cfg.Blacklist.Files, blacklist.NewFileLoader(logger), logger)
	if err != nil {
		return fmt.Errorf("failed to load blacklist: %w", err)
	}

	customerRepo := repository.NewCustomerRepository(pool, logger)
	voucherRepo := repository.NewVoucherRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)

	customers := service.NewCustomerService(customerRepo, registry, logger)
	vouchers := service.NewVoucherService(voucherRepo, customerRepo, logger)
	orders := service.NewOrderService(orderRepo, voucherRepo, customerRepo, logger)

	return placeTestOrder(ctx, customers, vouchers, orders, logger)
}

func placeTestOrder(
	ctx context.Context,
	customers service.CustomerService,
	vouchers service.VoucherService,
	orders service.OrderService,
	logger zerolog.Logger,
) error {
	suffix := uuid.NewString()[:8]
	customer, err := customers.Create(ctx, &model.CustomerCreateRequest{
		Name:  "tester",
		Email: fmt.Sprintf("tester-%s@example.com", suffix),
	})
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}

	voucher, err := vouchers.Create(ctx, &model.VoucherCreateRequest{
		Type:          model.VoucherTypePercentDiscount,
		DiscountValue: testPercent,
		CustomerID:    &customer.ID,
	})
	if err != nil {
		return fmt.Errorf("failed to create voucher: %w", err)
	}

	voucherID := voucher.ID()
	order, err := orders.CreateOrder(ctx, &model.OrderRequest{
		CustomerID: customer.ID,
		VoucherID:  &voucherID,
		Items: []model.OrderItemRequest{
			{ProductID: uuid.New(), Price: testPrice, Quantity: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	logger.Info().
		Str("order_id", order.ID.String()).
		Int64("total_amount", order.TotalAmount).
		Msg("order placed")

	owned, err := vouchers.ListByCustomer(ctx, customer.ID)
	if err != nil {
		return fmt.Errorf("failed to list customer vouchers: %w", err)
	}
	for _, v := range owned {
		logger.Info().
			Str("voucher_id", v.ID().String()).
			Str("type", string(v.Type())).
			Int64("discount_value", v.DiscountValue()).
			Msg("customer voucher")
	}

	blocked, err := customers.FindBlacklist(ctx)
	if err != nil {
		return fmt.Errorf("failed to find blacklist: %w", err)
	}
	for _, c := range blocked {
		logger.Info().
			Str("customer_id", c.ID.String()).
			Str("email", c.Email).
			Msg("blacklisted customer")
	}

	if order.TotalAmount != expectedTotal {
		return fmt.Errorf("unexpected order total: got %d, want %d", order.TotalAmount, expectedTotal)
	}

	logger.Info().Int64("expected_total", expectedTotal).Msg("order total verified")
	return nil
}
