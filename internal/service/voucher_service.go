package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"voucherhub/internal/model"
	"voucherhub/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// voucherService implements VoucherService.
type voucherService struct {
	voucherRepo  repository.VoucherRepository
	customerRepo repository.CustomerRepository
	logger       zerolog.Logger
}

// NewVoucherService creates a new voucher service.
func NewVoucherService(
	voucherRepo repository.VoucherRepository,
	customerRepo repository.CustomerRepository,
	logger zerolog.Logger,
) VoucherService {
	return &voucherService{
		voucherRepo:  voucherRepo,
		customerRepo: customerRepo,
		logger:       logger.With().Str("service", "voucher").Logger(),
	}
}

// Create issues a new voucher, optionally owned by a customer.
func (s *voucherService) Create(ctx context.Context, req *model.VoucherCreateRequest) (model.Voucher, error) {
	if err := model.Validate(req); err != nil {
		return nil, err
	}

	var opts []model.VoucherOption
	if req.CustomerID != nil {
		if err := s.ensureCustomer(ctx, *req.CustomerID); err != nil {
			return nil, err
		}
		opts = append(opts, model.WithVoucherCustomer(*req.CustomerID))
	}

	voucher, err := model.NewVoucher(uuid.New(), req.Type, req.DiscountValue, opts...)
	if err != nil {
		s.logger.Debug().
			Err(err).
			Str("type", string(req.Type)).
			Int64("discount_value", req.DiscountValue).
			Msg("invalid voucher")
		return nil, err
	}

	if _, err := s.voucherRepo.Save(ctx, voucher); err != nil {
		s.logger.Error().Err(err).Msg("failed to create voucher")
		return nil, fmt.Errorf("failed to create voucher: %w", err)
	}

	s.logger.Info().
		Str("voucher_id", voucher.ID().String()).
		Str("type", string(voucher.Type())).
		Int64("discount_value", voucher.DiscountValue()).
		Msg("voucher created successfully")

	return voucher, nil
}

// GetByID retrieves a single voucher by ID.
func (s *voucherService) GetByID(ctx context.Context, id uuid.UUID) (model.Voucher, error) {
	voucher, err := s.voucherRepo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("voucher_id", id.String()).Msg("failed to get voucher")
		return nil, fmt.Errorf("failed to get voucher: %w", err)
	}

	if voucher == nil {
		return nil, model.ErrVoucherNotFound
	}

	return voucher, nil
}

// List retrieves every voucher.
func (s *voucherService) List(ctx context.Context) ([]model.Voucher, error) {
	vouchers, err := s.voucherRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list vouchers")
		return nil, fmt.Errorf("failed to list vouchers: %w", err)
	}
	return vouchers, nil
}

// ListByCustomer retrieves the vouchers owned by a customer.
func (s *voucherService) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Voucher, error) {
	vouchers, err := s.voucherRepo.FindByCustomerID(ctx, customerID)
	if err != nil {
		s.logger.Error().Err(err).Str("customer_id", customerID.String()).Msg("failed to list customer vouchers")
		return nil, fmt.Errorf("failed to list customer vouchers: %w", err)
	}
	return vouchers, nil
}

// ListByTypeAndDate retrieves vouchers of a type created on the UTC day of date.
func (s *voucherService) ListByTypeAndDate(ctx context.Context, voucherType model.VoucherType, date time.Time) ([]model.Voucher, error) {
	if _, err := model.ParseVoucherType(string(voucherType)); err != nil {
		return nil, err
	}

	vouchers, err := s.voucherRepo.FindByTypeAndDate(ctx, voucherType, date)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("type", string(voucherType)).
			Time("date", date).
			Msg("failed to list vouchers by type and date")
		return nil, fmt.Errorf("failed to list vouchers: %w", err)
	}
	return vouchers, nil
}

// Update rebuilds the voucher with the new type and value, keeping its owner
// and creation time.
func (s *voucherService) Update(ctx context.Context, id uuid.UUID, req *model.VoucherUpdateRequest) (model.Voucher, error) {
	if err := model.Validate(req); err != nil {
		return nil, err
	}

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	opts := []model.VoucherOption{model.WithVoucherTimestamps(existing.CreatedAt(), model.Now())}
	if owner := existing.CustomerID(); owner != nil {
		opts = append(opts, model.WithVoucherCustomer(*owner))
	}

	updated, err := model.NewVoucher(id, req.Type, req.DiscountValue, opts...)
	if err != nil {
		return nil, err
	}

	if err := s.voucherRepo.UpdateByID(ctx, updated); err != nil {
		if errors.Is(err, model.ErrNoRowsUpdated) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("voucher_id", id.String()).Msg("failed to update voucher")
		return nil, fmt.Errorf("failed to update voucher: %w", err)
	}

	s.logger.Info().
		Str("voucher_id", id.String()).
		Str("type", string(updated.Type())).
		Msg("voucher updated successfully")

	return updated, nil
}

// AssignToCustomer hands a voucher to an existing customer.
func (s *voucherService) AssignToCustomer(ctx context.Context, voucherID, customerID uuid.UUID) (model.Voucher, error) {
	if err := s.ensureCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	updated, err := s.voucherRepo.UpdateCustomerID(ctx, voucherID, customerID)
	if err != nil {
		s.logger.Error().Err(err).Str("voucher_id", voucherID.String()).Msg("failed to assign voucher")
		return nil, fmt.Errorf("failed to assign voucher: %w", err)
	}

	if updated == 0 {
		return nil, model.ErrVoucherNotFound
	}

	s.logger.Info().
		Str("voucher_id", voucherID.String()).
		Str("customer_id", customerID.String()).
		Msg("voucher assigned to customer")

	return s.GetByID(ctx, voucherID)
}

// Delete removes a voucher.
func (s *voucherService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.voucherRepo.DeleteByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("voucher_id", id.String()).Msg("failed to delete voucher")
		return fmt.Errorf("failed to delete voucher: %w", err)
	}

	if deleted == 0 {
		return model.ErrVoucherNotFound
	}

	return nil
}

// DeleteByCustomer removes every voucher owned by a customer.
func (s *voucherService) DeleteByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	deleted, err := s.voucherRepo.DeleteByCustomerID(ctx, customerID)
	if err != nil {
		s.logger.Error().Err(err).Str("customer_id", customerID.String()).Msg("failed to delete customer vouchers")
		return 0, fmt.Errorf("failed to delete customer vouchers: %w", err)
	}

	s.logger.Info().
		Str("customer_id", customerID.String()).
		Int64("deleted", deleted).
		Msg("customer vouchers deleted")

	return deleted, nil
}

func (s *voucherService) ensureCustomer(ctx context.Context, customerID uuid.UUID) error {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		s.logger.Error().Err(err).Str("customer_id", customerID.String()).Msg("failed to look up customer")
		return fmt.Errorf("failed to look up customer: %w", err)
	}
	if customer == nil {
		return model.ErrCustomerNotFound
	}
	return nil
}
