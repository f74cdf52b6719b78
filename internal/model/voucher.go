package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// VoucherType identifies how a voucher reduces an amount.
type VoucherType string

const (
	VoucherTypeFixedAmount     VoucherType = "FIXED_AMOUNT"
	VoucherTypePercentDiscount VoucherType = "PERCENT_DISCOUNT"
)

// ParseVoucherType converts s into a VoucherType.
func ParseVoucherType(s string) (VoucherType, error) {
	switch t := VoucherType(s); t {
	case VoucherTypeFixedAmount, VoucherTypePercentDiscount:
		return t, nil
	default:
		return "", ErrInvalidVoucherType
	}
}

// Voucher reduces an order amount. FixedAmountVoucher and
// PercentDiscountVoucher are the only implementations.
type Voucher interface {
	ID() uuid.UUID
	Type() VoucherType
	// DiscountValue is the flat amount or the percent, depending on Type.
	DiscountValue() int64
	CustomerID() *uuid.UUID
	CreatedAt() time.Time
	UpdatedAt() time.Time
	// Discount returns the amount left after applying the voucher.
	Discount(beforeDiscount int64) int64
}

// voucherBase holds the fields shared by both voucher kinds.
type voucherBase struct {
	id         uuid.UUID
	customerID *uuid.UUID
	createdAt  time.Time
	updatedAt  time.Time
}

func (b *voucherBase) ID() uuid.UUID          { return b.id }
func (b *voucherBase) CustomerID() *uuid.UUID { return b.customerID }
func (b *voucherBase) CreatedAt() time.Time   { return b.createdAt }
func (b *voucherBase) UpdatedAt() time.Time   { return b.updatedAt }

// VoucherOption customises a voucher at construction.
type VoucherOption func(*voucherBase)

// WithVoucherCustomer sets the owning customer.
func WithVoucherCustomer(customerID uuid.UUID) VoucherOption {
	return func(b *voucherBase) {
		id := customerID
		b.customerID = &id
	}
}

// WithVoucherTimestamps sets explicit creation and update times.
func WithVoucherTimestamps(createdAt, updatedAt time.Time) VoucherOption {
	return func(b *voucherBase) {
		b.createdAt = createdAt
		b.updatedAt = updatedAt
	}
}

func newVoucherBase(id uuid.UUID, opts []VoucherOption) voucherBase {
	now := Now()
	b := voucherBase{id: id, createdAt: now, updatedAt: now}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// FixedAmountVoucher subtracts a flat amount.
type FixedAmountVoucher struct {
	voucherBase
	amount int64
}

// NewFixedAmountVoucher creates a fixed voucher. amount must be positive.
func NewFixedAmountVoucher(id uuid.UUID, amount int64, opts ...VoucherOption) (*FixedAmountVoucher, error) {
	if amount <= 0 {
		return nil, ErrInvalidFixedDiscount
	}
	return &FixedAmountVoucher{
		voucherBase: newVoucherBase(id, opts),
		amount:      amount,
	}, nil
}

func (v *FixedAmountVoucher) Type() VoucherType    { return VoucherTypeFixedAmount }
func (v *FixedAmountVoucher) DiscountValue() int64 { return v.amount }

// Discount does not clamp at zero: a discount larger than the amount yields
// a negative result.
func (v *FixedAmountVoucher) Discount(beforeDiscount int64) int64 {
	return beforeDiscount - v.amount
}

func (v *FixedAmountVoucher) String() string {
	return fmt.Sprintf("FixedAmountVoucher{id=%s, amount=%d}", v.id, v.amount)
}

// PercentDiscountVoucher subtracts a percentage, truncating toward zero.
type PercentDiscountVoucher struct {
	voucherBase
	percent int64
}

// NewPercentDiscountVoucher creates a percent voucher. percent must be in (0, 100].
func NewPercentDiscountVoucher(id uuid.UUID, percent int64, opts ...VoucherOption) (*PercentDiscountVoucher, error) {
	if percent <= 0 || percent > 100 {
		return nil, ErrInvalidPercent
	}
	return &PercentDiscountVoucher{
		voucherBase: newVoucherBase(id, opts),
		percent:     percent,
	}, nil
}

func (v *PercentDiscountVoucher) Type() VoucherType    { return VoucherTypePercentDiscount }
func (v *PercentDiscountVoucher) DiscountValue() int64 { return v.percent }

func (v *PercentDiscountVoucher) Discount(beforeDiscount int64) int64 {
	return beforeDiscount - (beforeDiscount * v.percent / 100)
}

func (v *PercentDiscountVoucher) String() string {
	return fmt.Sprintf("PercentDiscountVoucher{id=%s, percent=%d}", v.id, v.percent)
}

// NewVoucher builds the voucher implementation matching voucherType.
func NewVoucher(id uuid.UUID, voucherType VoucherType, value int64, opts ...VoucherOption) (Voucher, error) {
	switch voucherType {
	case VoucherTypeFixedAmount:
		v, err := NewFixedAmountVoucher(id, value, opts...)
		if err != nil {
			return nil, err
		}
		return v, nil
	case VoucherTypePercentDiscount:
		v, err := NewPercentDiscountVoucher(id, value, opts...)
		if err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, ErrInvalidVoucherType
	}
}

// VoucherView is the JSON representation of a voucher.
type VoucherView struct {
	ID            uuid.UUID   `json:"id"`
	Type          VoucherType `json:"type"`
	DiscountValue int64       `json:"discountValue"`
	CustomerID    *uuid.UUID  `json:"customerId,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// VoucherViewOf converts v into its JSON representation.
func VoucherViewOf(v Voucher) VoucherView {
	return VoucherView{
		ID:            v.ID(),
		Type:          v.Type(),
		DiscountValue: v.DiscountValue(),
		CustomerID:    v.CustomerID(),
		CreatedAt:     v.CreatedAt(),
		UpdatedAt:     v.UpdatedAt(),
	}
}

// VoucherViews converts a slice of vouchers.
func VoucherViews(vouchers []Voucher) []VoucherView {
	views := make([]VoucherView, len(vouchers))
	for i, v := range vouchers {
		views[i] = VoucherViewOf(v)
	}
	return views
}
