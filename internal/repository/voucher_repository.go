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

const voucherColumns = `voucher_id, rate, type, customer_id, created_at, updated_at`

// voucherRepository implements the VoucherRepository interface using PostgreSQL.
type voucherRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewVoucherRepository creates a new PostgreSQL-backed voucher repository.
func NewVoucherRepository(pool *pgxpool.Pool, logger zerolog.Logger) VoucherRepository {
	return &voucherRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "voucher").Logger(),
	}
}

// Save inserts a new voucher and returns its ID.
func (r *voucherRepository) Save(ctx context.Context, voucher model.Voucher) (uuid.UUID, error) {
	query := `
		INSERT INTO vouchers (voucher_id, rate, type, customer_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		toBytes(voucher.ID()),
		voucher.DiscountValue(),
		string(voucher.Type()),
		toNullableBytes(voucher.CustomerID()),
		voucher.CreatedAt(),
		voucher.UpdatedAt(),
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("voucher_id", voucher.ID().String()).
			Msg("failed to save voucher")
		return uuid.Nil, fmt.Errorf("failed to save voucher: %w", err)
	}

	r.logger.Debug().
		Str("voucher_id", voucher.ID().String()).
		Str("type", string(voucher.Type())).
		Msg("voucher saved successfully")

	return voucher.ID(), nil
}

// FindByID retrieves a single voucher by its ID.
func (r *voucherRepository) FindByID(ctx context.Context, id uuid.UUID) (model.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE voucher_id = $1`

	voucher, err := scanVoucher(r.pool.QueryRow(ctx, query, toBytes(id)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("voucher_id", id.String()).Msg("voucher not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("voucher_id", id.String()).Msg("failed to query voucher")
		return nil, fmt.Errorf("failed to query voucher: %w", err)
	}

	return voucher, nil
}

// FindAll retrieves every voucher ordered by creation time.
func (r *voucherRepository) FindAll(ctx context.Context) ([]model.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers ORDER BY created_at, voucher_id`
	return r.queryVouchers(ctx, query)
}

// FindByCustomerID retrieves the vouchers owned by a customer.
func (r *voucherRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]model.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE customer_id = $1 ORDER BY created_at, voucher_id`
	return r.queryVouchers(ctx, query, toBytes(customerID))
}

// FindByTypeAndDate retrieves vouchers of a type created on the UTC calendar day of date.
func (r *voucherRepository) FindByTypeAndDate(ctx context.Context, voucherType model.VoucherType, date time.Time) ([]model.Voucher, error) {
	date = date.UTC()
	from := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	query := `
		SELECT ` + voucherColumns + `
		FROM vouchers
		WHERE type = $1 AND created_at >= $2 AND created_at < $3
		ORDER BY created_at, voucher_id
	`
	return r.queryVouchers(ctx, query, string(voucherType), from, to)
}

// UpdateByID overwrites type and discount value of the voucher with the same ID.
func (r *voucherRepository) UpdateByID(ctx context.Context, voucher model.Voucher) error {
	query := `
		UPDATE vouchers
		SET rate = $2, type = $3, updated_at = $4
		WHERE voucher_id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		toBytes(voucher.ID()),
		voucher.DiscountValue(),
		string(voucher.Type()),
		voucher.UpdatedAt(),
	)
	if err != nil {
		r.logger.Error().Err(err).Str("voucher_id", voucher.ID().String()).Msg("failed to update voucher")
		return fmt.Errorf("failed to update voucher: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Debug().Str("voucher_id", voucher.ID().String()).Msg("no voucher updated")
		return model.ErrNoRowsUpdated
	}

	return nil
}

// UpdateCustomerID assigns a voucher to a customer and returns the number of updated rows.
func (r *voucherRepository) UpdateCustomerID(ctx context.Context, voucherID, customerID uuid.UUID) (int64, error) {
	query := `UPDATE vouchers SET customer_id = $2, updated_at = $3 WHERE voucher_id = $1`

	tag, err := r.pool.Exec(ctx, query, toBytes(voucherID), toBytes(customerID), model.Now())
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("voucher_id", voucherID.String()).
			Str("customer_id", customerID.String()).
			Msg("failed to assign voucher")
		return 0, fmt.Errorf("failed to assign voucher: %w", err)
	}

	return tag.RowsAffected(), nil
}

// DeleteByID removes a voucher and returns the number of deleted rows.
func (r *voucherRepository) DeleteByID(ctx context.Context, id uuid.UUID) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM vouchers WHERE voucher_id = $1`, toBytes(id))
	if err != nil {
		r.logger.Error().Err(err).Str("voucher_id", id.String()).Msg("failed to delete voucher")
		return 0, fmt.Errorf("failed to delete voucher: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteAll removes every voucher and returns the number of deleted rows.
func (r *voucherRepository) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM vouchers`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to delete vouchers")
		return 0, fmt.Errorf("failed to delete vouchers: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteByCustomerID removes the vouchers owned by a customer.
func (r *voucherRepository) DeleteByCustomerID(ctx context.Context, customerID uuid.UUID) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM vouchers WHERE customer_id = $1`, toBytes(customerID))
	if err != nil {
		r.logger.Error().Err(err).Str("customer_id", customerID.String()).Msg("failed to delete customer vouchers")
		return 0, fmt.Errorf("failed to delete customer vouchers: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *voucherRepository) queryVouchers(ctx context.Context, query string, args ...any) ([]model.Voucher, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query vouchers")
		return nil, fmt.Errorf("failed to query vouchers: %w", err)
	}
	defer rows.Close()

	vouchers := make([]model.Voucher, 0)
	for rows.Next() {
		voucher, err := scanVoucher(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan voucher row")
			return nil, fmt.Errorf("failed to scan voucher: %w", err)
		}
		vouchers = append(vouchers, voucher)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating voucher rows")
		return nil, fmt.Errorf("error iterating vouchers: %w", err)
	}

	return vouchers, nil
}

func scanVoucher(row pgx.Row) (model.Voucher, error) {
	var (
		id          []byte
		rate        int64
		voucherType string
		customerID  []byte
		createdAt   time.Time
		updatedAt   time.Time
	)

	if err := row.Scan(&id, &rate, &voucherType, &customerID, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	return buildVoucher(id, rate, voucherType, customerID, createdAt, updatedAt)
}

// buildVoucher reconstructs a voucher from its column values.
func buildVoucher(id []byte, rate int64, voucherType string, customerID []byte, createdAt, updatedAt time.Time) (model.Voucher, error) {
	voucherID, err := fromBytes(id)
	if err != nil {
		return nil, err
	}

	owner, err := fromNullableBytes(customerID)
	if err != nil {
		return nil, err
	}

	opts := []model.VoucherOption{model.WithVoucherTimestamps(createdAt.UTC(), updatedAt.UTC())}
	if owner != nil {
		opts = append(opts, model.WithVoucherCustomer(*owner))
	}

	return model.NewVoucher(voucherID, model.VoucherType(voucherType), rate, opts...)
}
