// Package sigs verifies transaction signatures and keeps a per signer
// sequence for replay protection.
package sigs

import (
	"context"

	"github.com/iov-one/tescrow"
	"github.com/iov-one/tescrow/errors"
	"github.com/iov-one/tescrow/x"
)

// signatureVerifyCost is the gas charged in CheckTx per valid signature.
const signatureVerifyCost = 500

type signersKey struct{}

// RegisterQuery exposes the user bucket under /auth.
func RegisterQuery(qr tescrow.QueryRouter) {
	NewBucket().Register("auth", qr)
}

// Decorator verifies the signatures of a SignedTx and makes the signers
// available through Authenticate. Transactions that carry no signatures
// are rejected unless AllowMissingSigs was called.
type Decorator struct {
	allowMissingSigs bool
}

var _ tescrow.Decorator = Decorator{}

func NewDecorator() Decorator {
	return Decorator{}
}

// AllowMissingSigs returns a copy that accepts unsigned transactions.
func (d Decorator) AllowMissingSigs() Decorator {
	d.allowMissingSigs = true
	return d
}

func (d Decorator) Check(ctx tescrow.Context, db tescrow.KVStore, tx tescrow.Tx, next tescrow.Checker) (*tescrow.CheckResult, error) {
	ctx, n, err := d.verify(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res, err := next.Check(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.GasPayment += int64(n) * signatureVerifyCost
	return res, nil
}

func (d Decorator) Deliver(ctx tescrow.Context, db tescrow.KVStore, tx tescrow.Tx, next tescrow.Deliverer) (*tescrow.DeliverResult, error) {
	ctx, _, err := d.verify(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, db, tx)
}

func (d Decorator) verify(ctx tescrow.Context, db tescrow.KVStore, tx tescrow.Tx) (tescrow.Context, int, error) {
	stx, ok := tx.(SignedTx)
	if !ok {
		return ctx, 0, nil
	}
	conds, err := VerifyTxSignatures(db, stx, tescrow.GetChainID(ctx))
	switch {
	case err != nil:
		return ctx, 0, errors.Wrap(err, "cannot verify signatures")
	case len(conds) == 0 && !d.allowMissingSigs:
		return ctx, 0, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return context.WithValue(ctx, signersKey{}, conds), len(conds), nil
}

// Authenticate reads the signers that the Decorator stored in the context.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

func (Authenticate) GetConditions(ctx tescrow.Context) []tescrow.Condition {
	conds, _ := ctx.Value(signersKey{}).([]tescrow.Condition)
	return conds
}

func (a Authenticate) HasAddress(ctx tescrow.Context, addr tescrow.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if c.Address().Equals(addr) {
			return true
		}
	}
	return false
}
