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

const customerColumns = `customer_id, name, email, customer_type, created_at, updated_at`

// customerRepository implements the CustomerRepository interface using PostgreSQL.
type customerRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCustomerRepository creates a new PostgreSQL-backed customer repository.
func NewCustomerRepository(pool *pgxpool.Pool, logger zerolog.Logger) CustomerRepository {
	return &customerRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "customer").Logger(),
	}
}

// Save inserts a new customer.
func (r *customerRepository) Save(ctx context.Context, customer *model.Customer) error {
	query := `
		INSERT INTO customers (customer_id, name, email, customer_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		toBytes(customer.ID),
		customer.Name,
		customer.Email,
		string(customer.Type),
		customer.CreatedAt,
		customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Debug().Str("email", customer.Email).Msg("customer already exists")
			return model.ErrDuplicateCustomer
		}
		r.logger.Error().
			Err(err).
			Str("customer_id", customer.ID.String()).
			Msg("failed to save customer")
		return fmt.Errorf("failed to save customer: %w", err)
	}

	r.logger.Debug().
		Str("customer_id", customer.ID.String()).
		Msg("customer saved successfully")

	return nil
}

// FindByID retrieves a single customer by its ID.
func (r *customerRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1`

	customer, err := scanCustomer(r.pool.QueryRow(ctx, query, toBytes(id)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("customer_id", id.String()).Msg("customer not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("customer_id", id.String()).Msg("failed to query customer")
		return nil, fmt.Errorf("failed to query customer: %w", err)
	}

	return customer, nil
}

// FindByEmail retrieves a single customer by email address.
func (r *customerRepository) FindByEmail(ctx context.Context, email string) (*model.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE email = $1`

	customer, err := scanCustomer(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("email", email).Msg("failed to query customer by email")
		return nil, fmt.Errorf("failed to query customer by email: %w", err)
	}

	return customer, nil
}

// FindAll retrieves every customer ordered by creation time.
func (r *customerRepository) FindAll(ctx context.Context) ([]model.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY created_at, customer_id`
	return r.queryCustomers(ctx, query)
}

// FindByType retrieves customers of the given type.
func (r *customerRepository) FindByType(ctx context.Context, customerType model.CustomerType) ([]model.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_type = $1 ORDER BY created_at, customer_id`
	return r.queryCustomers(ctx, query, string(customerType))
}

// UpdateByID overwrites the mutable fields of the customer with the same ID.
func (r *customerRepository) UpdateByID(ctx context.Context, customer *model.Customer) error {
	query := `
		UPDATE customers
		SET name = $2, email = $3, customer_type = $4, updated_at = $5
		WHERE customer_id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		toBytes(customer.ID),
		customer.Name,
		customer.Email,
		string(customer.Type),
		customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrDuplicateCustomer
		}
		r.logger.Error().Err(err).Str("customer_id", customer.ID.String()).Msg("failed to update customer")
		return fmt.Errorf("failed to update customer: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Debug().Str("customer_id", customer.ID.String()).Msg("no customer updated")
		return model.ErrNoRowsUpdated
	}

	return nil
}

// DeleteByID removes a customer and returns the number of deleted rows.
func (r *customerRepository) DeleteByID(ctx context.Context, id uuid.UUID) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE customer_id = $1`, toBytes(id))
	if err != nil {
		r.logger.Error().Err(err).Str("customer_id", id.String()).Msg("failed to delete customer")
		return 0, fmt.Errorf("failed to delete customer: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteAll removes every customer and returns the number of deleted rows.
func (r *customerRepository) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM customers`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to delete customers")
		return 0, fmt.Errorf("failed to delete customers: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *customerRepository) queryCustomers(ctx context.Context, query string, args ...any) ([]model.Customer, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query customers")
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	customers := make([]model.Customer, 0)
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan customer row")
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, *customer)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating customer rows")
		return nil, fmt.Errorf("error iterating customers: %w", err)
	}

	return customers, nil
}

func scanCustomer(row pgx.Row) (*model.Customer, error) {
	var (
		id           []byte
		customer     model.Customer
		customerType string
		createdAt    time.Time
		updatedAt    time.Time
	)

	if err := row.Scan(&id, &customer.Name, &customer.Email, &customerType, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	customerID, err := fromBytes(id)
	if err != nil {
		return nil, err
	}

	customer.ID = customerID
	customer.Type = model.CustomerType(customerType)
	customer.CreatedAt = createdAt.UTC()
	customer.UpdatedAt = updatedAt.UTC()

	return &customer, nil
}
