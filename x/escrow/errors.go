package escrow

import "github.com/iov-one/tescrow/errors"

// ABCI Response Codes
// escrow takes 130-139
var (
	ErrNotUnlockable = errors.Register(130, "not yet unlockable")
	ErrConstraint    = errors.Register(131, "constraint violation")
)

// IsConstraintViolation returns true for any error that rejects a
// transition because of the parties, accounts or balances involved.
// Expired and not yet unlockable escrows are not constraint violations.
func IsConstraintViolation(err error) bool {
	return errors.IsAny(err,
		ErrConstraint,
		errors.ErrUnauthorized,
		errors.ErrInsufficientAmount,
		errors.ErrNotFound,
		errors.ErrDuplicate,
		errors.ErrCurrency,
	)
}
