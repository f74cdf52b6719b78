package service

import (
	"context"
	"time"

	"voucherhub/internal/model"

	"github.com/google/uuid"
)

// CustomerService defines operations for customer management.
type CustomerService interface {
	// Create registers a new customer.
	Create(ctx context.Context, req *model.CustomerCreateRequest) (*model.Customer, error)

	// GetByID retrieves a single customer by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)

	// List retrieves every customer.
	List(ctx context.Context) ([]model.Customer, error)

	// Update validates req and overwrites type, name and email of a customer.
	Update(ctx context.Context, id uuid.UUID, req *model.CustomerUpdateRequest) (*model.Customer, error)

	// Delete removes a customer.
	Delete(ctx context.Context, id uuid.UUID) error

	// FindBlacklist returns customers blacklisted by type or by a blacklist file entry.
	FindBlacklist(ctx context.Context) ([]model.Customer, error)
}

// VoucherService defines operations for voucher management.
type VoucherService interface {
	// Create issues a new voucher, optionally owned by a customer.
	Create(ctx context.Context, req *model.VoucherCreateRequest) (model.Voucher, error)

	// GetByID retrieves a single voucher by ID.
	GetByID(ctx context.Context, id uuid.UUID) (model.Voucher, error)

	// List retrieves every voucher.
	List(ctx context.Context) ([]model.Voucher, error)

	// ListByCustomer retrieves the vouchers owned by a customer.
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Voucher, error)

	// ListByTypeAndDate retrieves vouchers of a type created on the UTC day of date.
	ListByTypeAndDate(ctx context.Context, voucherType model.VoucherType, date time.Time) ([]model.Voucher, error)

	// Update changes type and discount value of a voucher.
	Update(ctx context.Context, id uuid.UUID, req *model.VoucherUpdateRequest) (model.Voucher, error)

	// AssignToCustomer hands a voucher to an existing customer.
	AssignToCustomer(ctx context.Context, voucherID, customerID uuid.UUID) (model.Voucher, error)

	// Delete removes a voucher.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByCustomer removes every voucher owned by a customer.
	DeleteByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error)
}

// OrderService defines operations for order management.
type OrderService interface {
	// CreateOrder creates a new order with an optional voucher.
	CreateOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error)

	// GetByID retrieves an order by its ID with items, voucher and total.
	GetByID(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error)

	// ListByCustomer retrieves the orders placed by a customer.
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.OrderResponse, error)

	// UpdateStatus changes the status of an order.
	UpdateStatus(ctx context.Context, id uuid.UUID, req *model.OrderStatusRequest) (*model.OrderResponse, error)
}
