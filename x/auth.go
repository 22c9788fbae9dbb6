package x

import (
	"github.com/iov-one/tescrow"
	"github.com/iov-one/tescrow/errors"
)

// Authenticator tells which conditions a transaction fulfils. Handlers get
// one in their constructor instead of reading signatures themselves, so
// the escrow extension can add its own record conditions next to the
// signature conditions.
type Authenticator interface {
	GetConditions(tescrow.Context) []tescrow.Condition
	HasAddress(tescrow.Context, tescrow.Address) bool
}

// ChainAuth merges several authenticators. A condition fulfilled by any of
// them counts.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls: impls}
}

type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

func (m MultiAuth) GetConditions(ctx tescrow.Context) []tescrow.Condition {
	var all []tescrow.Condition
	for _, a := range m.impls {
		all = append(all, a.GetConditions(ctx)...)
	}
	return all
}

func (m MultiAuth) HasAddress(ctx tescrow.Context, addr tescrow.Address) bool {
	for _, a := range m.impls {
		if a.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first fulfilled condition or nil.
func MainSigner(ctx tescrow.Context, auth Authenticator) tescrow.Condition {
	if conds := auth.GetConditions(ctx); len(conds) > 0 {
		return conds[0]
	}
	return nil
}

// HasAllConditions reports whether every required condition is fulfilled.
func HasAllConditions(ctx tescrow.Context, auth Authenticator, required []tescrow.Condition) bool {
	return HasNConditions(ctx, auth, required, len(required))
}

// HasNConditions reports whether at least n of the requested conditions
// are fulfilled.
func HasNConditions(ctx tescrow.Context, auth Authenticator, requested []tescrow.Condition, n int) bool {
	if n <= 0 {
		return true
	}
	have := auth.GetConditions(ctx)
	for _, want := range requested {
		for _, c := range have {
			if c.Equals(want) {
				n--
				break
			}
		}
		if n == 0 {
			return true
		}
	}
	return false
}

// RequireAddress fails with ErrUnauthorized unless addr is authenticated.
// The role names the address in the error, for example "maker".
func RequireAddress(ctx tescrow.Context, auth Authenticator, addr tescrow.Address, role string) error {
	if len(addr) == 0 {
		return errors.Wrapf(errors.ErrEmpty, "%s address", role)
	}
	if !auth.HasAddress(ctx, addr) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s %s did not sign", role, addr)
	}
	return nil
}
