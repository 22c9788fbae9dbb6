/*
Package errors implements the error handling used across tescrow.

Every failure that is exposed to a client wraps one of the root errors
declared in this package (or registered by an extension with Register). Each
root error carries a unique ABCI code, which allows clients to distinguish
failure kinds without parsing messages.

Wrap errors at the point of creation with Wrap or Wrapf so that a stack trace
is attached once, at the lowest frame:

	return errors.Wrapf(errors.ErrNotFound, "escrow %s", addr)

Test the kind of an error with the Is method of the root error:

	if errors.ErrExpired.Is(err) { ... }

Formatting an error with %+v prints the full stack trace.
*/
package errors
