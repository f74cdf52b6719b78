package repository

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique constraint violations.
const uniqueViolation = "23505"

// toBytes converts an id into its 16-byte column representation.
func toBytes(id uuid.UUID) []byte {
	return id[:]
}

// toNullableBytes returns nil, stored as NULL, for a nil id.
func toNullableBytes(id *uuid.UUID) []byte {
	if id == nil {
		return nil
	}
	return id[:]
}

// fromBytes converts a 16-byte column value into an id.
func fromBytes(b []byte) (uuid.UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid binary uuid: %w", err)
	}
	return id, nil
}

// fromNullableBytes returns nil for a NULL column.
func fromNullableBytes(b []byte) (*uuid.UUID, error) {
	if b == nil {
		return nil, nil
	}
	id, err := fromBytes(b)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
