package service

import (
	"context"
	"errors"
	"fmt"

	"voucherhub/internal/blacklist"
	"voucherhub/internal/model"
	"voucherhub/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// customerService implements CustomerService.
type customerService struct {
	customerRepo repository.CustomerRepository
	blacklist    blacklist.Set
	logger       zerolog.Logger
}

// NewCustomerService creates a new customer service. blocked may be nil, in
// which case only the customer type marks a customer as blacklisted.
func NewCustomerService(customerRepo repository.CustomerRepository, blocked blacklist.Set, logger zerolog.Logger) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		blacklist:    blocked,
		logger:       logger.With().Str("service", "customer").Logger(),
	}
}

// Create registers a new customer.
func (s *customerService) Create(ctx context.Context, req *model.CustomerCreateRequest) (*model.Customer, error) {
	if err := model.Validate(req); err != nil {
		return nil, err
	}

	customerType := req.Type
	if customerType == "" {
		customerType = model.CustomerTypeNormal
	}

	customer, err := model.NewCustomer(uuid.New(), req.Name, req.Email, model.WithCustomerType(customerType))
	if err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		if errors.Is(err, model.ErrDuplicateCustomer) {
			s.logger.Warn().Str("email", req.Email).Msg("customer email already registered")
			return nil, err
		}
		s.logger.Error().Err(err).Msg("failed to create customer")
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	s.logger.Info().
		Str("customer_id", customer.ID.String()).
		Str("type", string(customer.Type)).
		Msg("customer created successfully")

	return customer, nil
}

// GetByID retrieves a single customer by ID.
func (s *customerService) GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("customer_id", id.String()).Msg("failed to get customer")
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	if customer == nil {
		return nil, model.ErrCustomerNotFound
	}

	return customer, nil
}

// List retrieves every customer.
func (s *customerService) List(ctx context.Context) ([]model.Customer, error) {
	customers, err := s.customerRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list customers")
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

// Update validates req before touching the repository.
func (s *customerService) Update(ctx context.Context, id uuid.UUID, req *model.CustomerUpdateRequest) (*model.Customer, error) {
	if err := model.Validate(req); err != nil {
		s.logger.Debug().Err(err).Str("customer_id", id.String()).Msg("invalid customer update")
		return nil, err
	}

	customer, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	customer.ApplyUpdate(*req, model.Now())

	if err := s.customerRepo.UpdateByID(ctx, customer); err != nil {
		if errors.Is(err, model.ErrNoRowsUpdated) || errors.Is(err, model.ErrDuplicateCustomer) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("customer_id", id.String()).Msg("failed to update customer")
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	s.logger.Info().Str("customer_id", id.String()).Msg("customer updated successfully")

	return customer, nil
}

// Delete removes a customer.
func (s *customerService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.customerRepo.DeleteByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("customer_id", id.String()).Msg("failed to delete customer")
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	if deleted == 0 {
		return model.ErrCustomerNotFound
	}

	s.logger.Info().Str("customer_id", id.String()).Msg("customer deleted")
	return nil
}

// FindBlacklist loads every customer and keeps the blacklisted ones.
func (s *customerService) FindBlacklist(ctx context.Context) ([]model.Customer, error) {
	customers, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	blocked := make([]model.Customer, 0)
	for _, c := range customers {
		if s.isBlacklisted(&c) {
			blocked = append(blocked, c)
		}
	}

	s.logger.Debug().
		Int("customers", len(customers)).
		Int("blacklisted", len(blocked)).
		Msg("blacklist resolved")

	return blocked, nil
}

func (s *customerService) isBlacklisted(c *model.Customer) bool {
	if c.IsBlacklisted() {
		return true
	}
	if s.blacklist == nil {
		return false
	}
	return s.blacklist.Contains(c.ID.String()) || s.blacklist.Contains(c.Email)
}
