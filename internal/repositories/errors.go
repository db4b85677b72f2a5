package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

// ErrNoRows is returned when a lookup, update or delete matched no
// row. It aliases pgx.ErrNoRows so Scan results and RowsAffected
// checks surface as the same error.
var ErrNoRows = pgx.ErrNoRows

// ErrUnknownVariant is returned when an order item references a
// product variant that does not exist.
var ErrUnknownVariant = errors.New("unknown product variant")
