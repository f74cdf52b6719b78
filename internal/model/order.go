package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the lifecycle marker of an order. Callers set it directly.
type OrderStatus string

const (
	OrderStatusAccepted         OrderStatus = "ACCEPTED"
	OrderStatusPaying           OrderStatus = "PAYING"
	OrderStatusCancelled        OrderStatus = "CANCELLED"
	OrderStatusReadyForDelivery OrderStatus = "READY_FOR_DELIVERY"
	OrderStatusShipped          OrderStatus = "SHIPPED"
	OrderStatusSettled          OrderStatus = "SETTLED"
)

// ParseOrderStatus converts s into an OrderStatus.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch st := OrderStatus(s); st {
	case OrderStatusAccepted, OrderStatusPaying, OrderStatusCancelled,
		OrderStatusReadyForDelivery, OrderStatusShipped, OrderStatusSettled:
		return st, nil
	default:
		return "", ErrInvalidOrderStatus
	}
}

// Order represents a customer order.
type Order struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	Items      []OrderItem
	Voucher    Voucher
	Status     OrderStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// OrderItem represents a line item in an order.
type OrderItem struct {
	ProductID    uuid.UUID `json:"productId"`
	ProductPrice int64     `json:"productPrice"`
	Quantity     int64     `json:"quantity"`
}

// NewOrder creates an ACCEPTED order. voucher may be nil.
func NewOrder(id, customerID uuid.UUID, items []OrderItem, voucher Voucher) *Order {
	now := Now()
	return &Order{
		ID:         id,
		CustomerID: customerID,
		Items:      items,
		Voucher:    voucher,
		Status:     OrderStatusAccepted,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// TotalAmount sums price × quantity over all items and applies the voucher,
// if any.
func (o *Order) TotalAmount() int64 {
	var beforeDiscount int64
	for _, item := range o.Items {
		beforeDiscount += item.ProductPrice * item.Quantity
	}
	if o.Voucher != nil {
		return o.Voucher.Discount(beforeDiscount)
	}
	return beforeDiscount
}

// ApplyVoucher attaches v to the order, replacing any previous voucher.
func (o *Order) ApplyVoucher(v Voucher) {
	o.Voucher = v
}

// SetStatus sets the order status.
func (o *Order) SetStatus(status OrderStatus) {
	o.Status = status
	o.UpdatedAt = Now()
}

// OrderRequest represents the request payload for creating an order.
type OrderRequest struct {
	CustomerID uuid.UUID          `json:"customerId" validate:"required"`
	VoucherID  *uuid.UUID         `json:"voucherId,omitempty"`
	Items      []OrderItemRequest `json:"items" validate:"min=1,dive"`
}

// OrderItemRequest represents a single item in an order request.
type OrderItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Price     int64     `json:"price" validate:"min=0"`
	Quantity  int64     `json:"quantity" validate:"min=1"`
}

// OrderStatusRequest changes an order status.
type OrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// OrderResponse represents the response payload for an order.
type OrderResponse struct {
	ID          uuid.UUID    `json:"id"`
	CustomerID  uuid.UUID    `json:"customerId"`
	Items       []OrderItem  `json:"items"`
	Voucher     *VoucherView `json:"voucher,omitempty"`
	Status      OrderStatus  `json:"status"`
	TotalAmount int64        `json:"totalAmount"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// NewOrderResponse renders an order with its computed total.
func NewOrderResponse(o *Order) *OrderResponse {
	resp := &OrderResponse{
		ID:          o.ID,
		CustomerID:  o.CustomerID,
		Items:       o.Items,
		Status:      o.Status,
		TotalAmount: o.TotalAmount(),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
	if resp.Items == nil {
		resp.Items = []OrderItem{}
	}
	if o.Voucher != nil {
		view := VoucherViewOf(o.Voucher)
		resp.Voucher = &view
	}
	return resp
}
