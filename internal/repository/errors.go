package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/metinatakli/showtime-booking/internal/domain"
)

// showtimeCapacityConstraint is the only check constraint whose violation
// means another booking took the seats first.
const showtimeCapacityConstraint = "showtimes_available_seats_check"

// classifyError maps driver errors onto the domain taxonomy. Errors that are
// already classified, or that carry no storage meaning, are returned as is.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, domain.ErrConflict) ||
		errors.Is(err, domain.ErrRecordNotFound) ||
		errors.Is(err, domain.ErrStoreUnavailable) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgerrcode.UniqueViolation,
			pgErr.Code == pgerrcode.CheckViolation && pgErr.ConstraintName == showtimeCapacityConstraint:
			return fmt.Errorf("%w: %s", domain.ErrConflict, pgErr.ConstraintName)
		case pgerrcode.IsConnectionException(pgErr.Code),
			pgerrcode.IsInsufficientResources(pgErr.Code),
			pgerrcode.IsOperatorIntervention(pgErr.Code),
			pgerrcode.IsTransactionRollback(pgErr.Code),
			pgErr.Code == pgerrcode.LockNotAvailable:
			return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
		}

		return err
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) ||
		pgconn.Timeout(err) ||
		errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}

	return err
}
