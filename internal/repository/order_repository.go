package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"voucherhub/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// orderSelect joins the applied voucher so an order is read in one round trip.
const orderSelect = `
	SELECT o.order_id, o.customer_id, o.order_status, o.created_at, o.updated_at,
	       v.voucher_id, v.rate, v.type, v.customer_id, v.created_at, v.updated_at
	FROM orders o
	LEFT JOIN vouchers v ON v.voucher_id = o.voucher_id
`

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
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// CreateOrder inserts a new order within the provided transaction.
func (r *orderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (order_id, customer_id, voucher_id, order_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	var voucherID []byte
	if order.Voucher != nil {
		voucherID = toBytes(order.Voucher.ID())
	}

	_, err := tx.Exec(ctx, query,
		toBytes(order.ID),
		toBytes(order.CustomerID),
		voucherID,
		string(order.Status),
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Msg("order created successfully")

	return nil
}

// CreateOrderItems inserts the items of an order within the provided transaction.
func (r *orderRepository) CreateOrderItems(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO order_items (order_id, product_id, price, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	now := model.Now()
	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(query, toBytes(orderID), toBytes(item.ProductID), item.ProductPrice, item.Quantity, now)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(items); i++ {
		_, err := results.Exec()
		if err != nil {
			r.logger.Error().
				Err(err).
				Str("order_id", orderID.String()).
				Str("product_id", items[i].ProductID.String()).
				Msg("failed to create order item")
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	r.logger.Debug().
		Int("count", len(items)).
		Msg("order items created successfully")

	return nil
}

// GetByID retrieves an order by its ID along with its items and voucher.
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := scanOrder(r.pool.QueryRow(ctx, orderSelect+` WHERE o.order_id = $1`, toBytes(id)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("order_id", id.String()).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	items, err := r.loadItems(ctx, [][]byte{toBytes(id)})
	if err != nil {
		return nil, err
	}
	order.Items = items[id]
	if order.Items == nil {
		order.Items = []model.OrderItem{}
	}

	return order, nil
}

// FindByCustomerID retrieves the orders placed by a customer, newest first.
func (r *orderRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]model.Order, error) {
	query := orderSelect + ` WHERE o.customer_id = $1 ORDER BY o.created_at DESC, o.order_id`

	rows, err := r.pool.Query(ctx, query, toBytes(customerID))
	if err != nil {
		r.logger.Error().Err(err).Str("customer_id", customerID.String()).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := make([]model.Order, 0)
	var ids [][]byte
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *order)
		ids = append(ids, toBytes(order.ID))
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	if len(orders) == 0 {
		return orders, nil
	}

	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
		if orders[i].Items == nil {
			orders[i].Items = []model.OrderItem{}
		}
	}

	return orders, nil
}

// UpdateStatus sets the status of an order.
func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus, updatedAt time.Time) error {
	query := `UPDATE orders SET order_status = $2, updated_at = $3 WHERE order_id = $1`

	tag, err := r.pool.Exec(ctx, query, toBytes(id), string(status), updatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to update order status")
		return fmt.Errorf("failed to update order status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Debug().Str("order_id", id.String()).Msg("no order updated")
		return model.ErrNoRowsUpdated
	}

	return nil
}

// DeleteByID removes an order and its items.
func (r *orderRepository) DeleteByID(ctx context.Context, id uuid.UUID) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE order_id = $1`, toBytes(id))
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to delete order")
		return 0, fmt.Errorf("failed to delete order: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteAll removes every order.
func (r *orderRepository) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM orders`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to delete orders")
		return 0, fmt.Errorf("failed to delete orders: %w", err)
	}
	return tag.RowsAffected(), nil
}

// loadItems fetches the items of the given orders keyed by order ID.
func (r *orderRepository) loadItems(ctx context.Context, orderIDs [][]byte) (map[uuid.UUID][]model.OrderItem, error) {
	query := `
		SELECT order_id, product_id, price, quantity
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY seq
	`

	rows, err := r.pool.Query(ctx, query, orderIDs)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query order items")
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	items := make(map[uuid.UUID][]model.OrderItem)
	for rows.Next() {
		var (
			orderID   []byte
			productID []byte
			item      model.OrderItem
		)
		if err := rows.Scan(&orderID, &productID, &item.ProductPrice, &item.Quantity); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order item row")
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}

		id, err := fromBytes(orderID)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		if item.ProductID, err = fromBytes(productID); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}

		items[id] = append(items[id], item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order item rows")
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return items, nil
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		id, customerID       []byte
		status               string
		createdAt, updatedAt time.Time

		voucherID, voucherOwner            []byte
		voucherRate                        *int64
		voucherType                        *string
		voucherCreatedAt, voucherUpdatedAt *time.Time
	)

	err := row.Scan(
		&id, &customerID, &status, &createdAt, &updatedAt,
		&voucherID, &voucherRate, &voucherType, &voucherOwner, &voucherCreatedAt, &voucherUpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	order := &model.Order{
		Status:    model.OrderStatus(status),
		CreatedAt: createdAt.UTC(),
		UpdatedAt: updatedAt.UTC(),
	}
	if order.ID, err = fromBytes(id); err != nil {
		return nil, err
	}
	if order.CustomerID, err = fromBytes(customerID); err != nil {
		return nil, err
	}

	if voucherID != nil && voucherRate != nil && voucherType != nil && voucherCreatedAt != nil && voucherUpdatedAt != nil {
		voucher, err := buildVoucher(voucherID, *voucherRate, *voucherType, voucherOwner, *voucherCreatedAt, *voucherUpdatedAt)
		if err != nil {
			return nil, err
		}
		order.Voucher = voucher
	}

	return order, nil
}
