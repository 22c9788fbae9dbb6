package currency

import (
	"github.com/iov-one/tescrow"
	"github.com/iov-one/tescrow/errors"
	"github.com/iov-one/tescrow/x"
	"github.com/iov-one/tescrow/x/cash"
)

const (
	newTokenCost = 100
	mintCost     = 50
)

// RegisterQuery will register the token bucket as "/tokens"
func RegisterQuery(qr tescrow.QueryRouter) {
	NewTokenBucket().Register("tokens", qr)
}

// RegisterRoutes registers the token handlers. When registrar is not nil,
// only the registrar may create new tokens.
func RegisterRoutes(r tescrow.Registry, auth x.Authenticator, registrar tescrow.Address, ctrl cash.Controller) {
	r.Handle(pathCreateMsg, &createTokenHandler{
		auth:      auth,
		registrar: registrar,
		bucket:    NewTokenBucket(),
	})
	r.Handle(pathMintMsg, &mintHandler{
		auth: auth,
		ctrl: ctrl,
	})
}

type createTokenHandler struct {
	auth      x.Authenticator
	bucket    TokenBucket
	registrar tescrow.Address
}

var _ tescrow.Handler = (*createTokenHandler)(nil)

func (h *createTokenHandler) Check(ctx tescrow.Context, db tescrow.KVStore, tx tescrow.Tx) (*tescrow.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tescrow.CheckResult{GasAllocated: newTokenCost}, nil
}

func (h *createTokenHandler) Deliver(ctx tescrow.Context, db tescrow.KVStore, tx tescrow.Tx) (*tescrow.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	obj := NewToken(msg.Ticker, msg.Name, msg.MintAuthority)
	if err := h.bucket.Save(db, obj); err != nil {
		return nil, errors.Wrap(err, "cannot save token")
	}
	return &tescrow.DeliverResult{Data: []byte(msg.Ticker)}, nil
}

func (h *createTokenHandler) validate(ctx tescrow.Context, db tescrow.KVStore, tx tescrow.Tx) (*CreateMsg, error) {
	var msg CreateMsg
	if err := tescrow.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}

	if h.registrar != nil && !h.auth.HasAddress(ctx, h.registrar) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "token only registered by %s", h.registrar)
	}

	// Token can be registered only once and must not be updated.
	switch has, err := h.bucket.Has(db, []byte(msg.Ticker)); {
	case err != nil:
		return nil, err
	case has:
		return nil, errors.Wrapf(errors.ErrDuplicate, "ticker %s", msg.Ticker)
	}
	return &msg, nil
}

type mintHandler struct {
	auth x.Authenticator
	ctrl cash.Controller
}

var _ tescrow.Handler = (*mintHandler)(nil)

func (h *mintHandler) Check(ctx tescrow.Context, db tescrow.KVStore, tx tescrow.Tx) (*tescrow.CheckResult, error) {
	var msg MintMsg
	if err := tescrow.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &tescrow.CheckResult{GasAllocated: mintCost}, nil
}

func (h *mintHandler) Deliver(ctx tescrow.Context, db tescrow.KVStore, tx tescrow.Tx) (*tescrow.DeliverResult, error) {
	var msg MintMsg
	if err := tescrow.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.MintTo(ctx, h.auth, db, msg.Destination, *msg.Amount); err != nil {
		return nil, err
	}
	return &tescrow.DeliverResult{}, nil
}
