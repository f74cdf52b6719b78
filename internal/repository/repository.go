package repository

import (
	"context"
	"time"

	"voucherhub/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CustomerRepository defines the interface for customer data access operations.
type CustomerRepository interface {
	// Save inserts a new customer. A duplicate email yields model.ErrDuplicateCustomer.
	Save(ctx context.Context, customer *model.Customer) error

	// FindByID retrieves a single customer by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)

	// FindByEmail retrieves a single customer by email address.
	FindByEmail(ctx context.Context, email string) (*model.Customer, error)

	// FindAll retrieves every customer ordered by creation time.
	FindAll(ctx context.Context) ([]model.Customer, error)

	// FindByType retrieves customers of the given type.
	FindByType(ctx context.Context, customerType model.CustomerType) ([]model.Customer, error)

	// UpdateByID overwrites the mutable fields of the customer with the same ID.
	// Returns model.ErrNoRowsUpdated if no such customer exists.
	UpdateByID(ctx context.Context, customer *model.Customer) error

	// DeleteByID removes a customer and returns the number of deleted rows.
	DeleteByID(ctx context.Context, id uuid.UUID) (int64, error)

	// DeleteAll removes every customer and returns the number of deleted rows.
	DeleteAll(ctx context.Context) (int64, error)
}

// VoucherRepository defines the interface for voucher data access operations.
type VoucherRepository interface {
	// Save inserts a new voucher and returns its ID.
	Save(ctx context.Context, voucher model.Voucher) (uuid.UUID, error)

	// FindByID retrieves a single voucher by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (model.Voucher, error)

	// FindAll retrieves every voucher ordered by creation time.
	FindAll(ctx context.Context) ([]model.Voucher, error)

	// FindByCustomerID retrieves the vouchers owned by a customer.
	FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]model.Voucher, error)

	// FindByTypeAndDate retrieves vouchers of a type created on the UTC calendar day of date.
	FindByTypeAndDate(ctx context.Context, voucherType model.VoucherType, date time.Time) ([]model.Voucher, error)

	// UpdateByID overwrites type and discount value of the voucher with the same ID.
	// Returns model.ErrNoRowsUpdated if no such voucher exists.
	UpdateByID(ctx context.Context, voucher model.Voucher) error

	// UpdateCustomerID assigns a voucher to a customer and returns the number of updated rows.
	UpdateCustomerID(ctx context.Context, voucherID, customerID uuid.UUID) (int64, error)

	// DeleteByID removes a voucher and returns the number of deleted rows.
	DeleteByID(ctx context.Context, id uuid.UUID) (int64, error)

	// DeleteAll removes every voucher and returns the number of deleted rows.
	DeleteAll(ctx context.Context) (int64, error)

	// DeleteByCustomerID removes the vouchers owned by a customer.
	DeleteByCustomerID(ctx context.Context, customerID uuid.UUID) (int64, error)
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts the items of an order within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, items []model.OrderItem) error

	// GetByID retrieves an order by its ID along with its items and voucher.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// FindByCustomerID retrieves the orders placed by a customer, newest first.
	FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]model.Order, error)

	// UpdateStatus sets the status of an order.
	// Returns model.ErrNoRowsUpdated if no such order exists.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus, updatedAt time.Time) error

	// DeleteByID removes an order and its items.
	DeleteByID(ctx context.Context, id uuid.UUID) (int64, error)

	// DeleteAll removes every order.
	DeleteAll(ctx context.Context) (int64, error)
}
