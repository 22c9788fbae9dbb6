package weavetest

import (
	"context"

	"github.com/iov-one/tescrow"
)

// Auth authenticates a fixed set of conditions: Signer, when set, together
// with all of Signers.
type Auth struct {
	Signer  tescrow.Condition
	Signers []tescrow.Condition
}

func (a *Auth) GetConditions(tescrow.Context) []tescrow.Condition {
	if a.Signer == nil {
		return a.Signers
	}
	conds := make([]tescrow.Condition, 0, len(a.Signers)+1)
	conds = append(conds, a.Signers...)
	return append(conds, a.Signer)
}

func (a *Auth) HasAddress(ctx tescrow.Context, addr tescrow.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

// CtxAuth authenticates the conditions stored in the context under Key.
// Two CtxAuth with different keys do not see each other's conditions.
type CtxAuth struct {
	Key string
}

type ctxAuthKey string

func (a *CtxAuth) SetConditions(ctx tescrow.Context, conds ...tescrow.Condition) tescrow.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), conds)
}

func (a *CtxAuth) GetConditions(ctx tescrow.Context) []tescrow.Condition {
	conds, _ := ctx.Value(ctxAuthKey(a.Key)).([]tescrow.Condition)
	return conds
}

func (a *CtxAuth) HasAddress(ctx tescrow.Context, addr tescrow.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

func hasAddress(conds []tescrow.Condition, addr tescrow.Address) bool {
	for _, c := range conds {
		if c.Address().Equals(addr) {
			return true
		}
	}
	return false
}
