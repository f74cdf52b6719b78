package model

import "github.com/google/uuid"

// CustomerCreateRequest represents the request payload for registering a customer.
type CustomerCreateRequest struct {
	Name  string       `json:"name" validate:"notblank,max=10"`
	Email string       `json:"email" validate:"notblank,email,max=50"`
	Type  CustomerType `json:"type,omitempty" validate:"omitempty,oneof=NORMAL BLACKLIST"`
}

// CustomerUpdateRequest represents the request payload for updating a customer.
type CustomerUpdateRequest struct {
	Type  CustomerType `json:"customerType" validate:"required,oneof=NORMAL BLACKLIST"`
	Name  string       `json:"name" validate:"notblank,max=10"`
	Email string       `json:"email" validate:"notblank,email,max=50"`
}

// VoucherCreateRequest represents the request payload for issuing a voucher.
type VoucherCreateRequest struct {
	Type          VoucherType `json:"type" validate:"required,oneof=FIXED_AMOUNT PERCENT_DISCOUNT"`
	DiscountValue int64       `json:"discountValue"`
	CustomerID    *uuid.UUID  `json:"customerId,omitempty"`
}

// VoucherUpdateRequest represents the request payload for changing a voucher.
type VoucherUpdateRequest struct {
	Type          VoucherType `json:"type" validate:"required,oneof=FIXED_AMOUNT PERCENT_DISCOUNT"`
	DiscountValue int64       `json:"discountValue"`
}

// VoucherAssignRequest hands a voucher to a customer.
type VoucherAssignRequest struct {
	CustomerID uuid.UUID `json:"customerId" validate:"required"`
}
