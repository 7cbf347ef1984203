package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dtroode/blackjack-server/internal/model"
)

const uniqueViolationCode = "23505"

// uniqueColumns maps unique constraint names to the column they protect.
var uniqueColumns = map[string]string{
	"identities_email_key":       "email",
	"players_username_key":       "username",
	"players_wallet_address_key": "wallet_address",
	"players_user_id_key":        "user_id",
}

// storeError classifies err for callers: no rows becomes model.ErrNotFound,
// unique violations become *model.UniqueViolationError, server-side errors
// are wrapped as is, and everything else (network, timeouts, pool closed)
// is wrapped with model.ErrStoreUnavailable.
func storeError(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return model.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == uniqueViolationCode {
			field, ok := uniqueColumns[pgErr.ConstraintName]
			if !ok {
				field = pgErr.ConstraintName
			}
			return &model.UniqueViolationError{Field: field, Err: err}
		}
		return fmt.Errorf("failed to %s: %w", op, err)
	}

	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("failed to %s: %w", op, err)
	}

	return fmt.Errorf("failed to %s: %w: %w", op, model.ErrStoreUnavailable, err)
}
