package model

import (
	"time"

	"github.com/google/uuid"
)

// CustomerType classifies a customer for processing rules.
type CustomerType string

const (
	CustomerTypeNormal    CustomerType = "NORMAL"
	CustomerTypeBlacklist CustomerType = "BLACKLIST"
)

// Customer represents a registered customer.
type Customer struct {
	ID        uuid.UUID    `json:"id"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Type      CustomerType `json:"type"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// customerFields carries the constructor-time checks for a customer.
type customerFields struct {
	Name  string `json:"name" validate:"notblank,max=10"`
	Email string `json:"email" validate:"notblank,email,max=50"`
	Type  string `json:"type" validate:"oneof=NORMAL BLACKLIST"`
}

// CustomerOption customises a customer built by NewCustomer.
type CustomerOption func(*Customer)

// WithCustomerType sets the customer type. The default is NORMAL.
func WithCustomerType(t CustomerType) CustomerOption {
	return func(c *Customer) {
		c.Type = t
	}
}

// WithCustomerTimestamps sets explicit creation and update times.
func WithCustomerTimestamps(createdAt, updatedAt time.Time) CustomerOption {
	return func(c *Customer) {
		c.CreatedAt = createdAt
		c.UpdatedAt = updatedAt
	}
}

// NewCustomer builds a validated customer.
func NewCustomer(id uuid.UUID, name, email string, opts ...CustomerOption) (*Customer, error) {
	now := Now()
	c := &Customer{
		ID:        id,
		Name:      name,
		Email:     email,
		Type:      CustomerTypeNormal,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := Validate(customerFields{Name: c.Name, Email: c.Email, Type: string(c.Type)}); err != nil {
		return nil, err
	}

	return c, nil
}

// IsBlacklisted reports whether the customer is flagged by type.
func (c *Customer) IsBlacklisted() bool {
	return c.Type == CustomerTypeBlacklist
}

// ApplyUpdate copies a validated update request onto the customer.
func (c *Customer) ApplyUpdate(req CustomerUpdateRequest, now time.Time) {
	c.Type = req.Type
	c.Name = req.Name
	c.Email = req.Email
	c.UpdatedAt = now
}

// Now returns the current time at the precision PostgreSQL stores.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
