package escrow

import (
	"github.com/iov-one/tescrow"
	"github.com/iov-one/tescrow/coin"
	"github.com/iov-one/tescrow/errors"
	"github.com/iov-one/tescrow/x"
	"github.com/iov-one/tescrow/x/cash"
	"github.com/iov-one/tescrow/x/currency"
	"github.com/tendermint/tendermint/libs/common"
)

const (
	// pay escrow cost up-front
	createEscrowCost int64 = 300
	claimEscrowCost  int64 = 50
	refundEscrowCost int64 = 0
	settleEscrowCost int64 = 0
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r tescrow.Registry, auth x.Authenticator, cashctrl cash.Controller) {
	base := handler{
		auth:    auth,
		bucket:  NewBucket(),
		wallets: cash.NewBucket(),
		tokens:  currency.NewTokenBucket(),
		bank:    cashctrl,
	}
	r.Handle(pathCreateMsg, CreateHandler{base})
	r.Handle(pathClaimMsg, ClaimHandler{base})
	r.Handle(pathRefundMsg, RefundHandler{base})
	r.Handle(pathSettleMsg, SettleHandler{base})
}

// RegisterQuery will register this bucket as "/escrows"
func RegisterQuery(qr tescrow.QueryRouter) {
	NewBucket().Register("escrows", qr)
}

// handler holds what all escrow handlers share.
type handler struct {
	auth    x.Authenticator
	bucket  Bucket
	wallets cash.Bucket
	tokens  currency.TokenBucket
	bank    cash.Controller
}

// asAuthority returns a context and an authenticator that act on behalf of
// the escrow authority.
func (h handler) asAuthority(ctx tescrow.Context, a *Addresses) (tescrow.Context, x.Authenticator) {
	return withAuthority(ctx, a), x.ChainAuth(h.auth, authorityAuth{})
}

// requireOwner fails with ErrConstraint if the account exists and is not
// owned by owner. A missing account fails with ErrNotFound unless
// allowMissing is set.
func (h handler) requireOwner(db tescrow.ReadOnlyKVStore, account, owner tescrow.Address, allowMissing bool) error {
	obj, err := h.wallets.Get(db, account)
	if err != nil {
		return errors.Wrap(err, "cannot load account")
	}
	if obj == nil {
		if allowMissing {
			return nil
		}
		return errors.Wrapf(errors.ErrNotFound, "account %s", account)
	}
	if w := cash.AsWallet(obj); !w.Owner.Equals(owner) {
		return errors.Wrapf(ErrConstraint, "account %s is not owned by %s", account, owner)
	}
	return nil
}

// requireAssociated fails with ErrConstraint unless account is the holding
// account associated with owner. The account may not exist yet. Accounts
// opened on behalf of someone else are restricted to these addresses so
// that no caller can occupy an address derived for a future escrow.
func (h handler) requireAssociated(db tescrow.ReadOnlyKVStore, account, owner tescrow.Address) error {
	if want := cash.HoldingAddress(owner); !want.Equals(account) {
		return errors.Wrapf(ErrConstraint, "%s is not the holding account of %s", account, owner)
	}
	return h.requireOwner(db, account, owner, true)
}

// openOwned returns the account, opening it for owner when missing. An
// existing account must be owned by owner.
func (h handler) openOwned(db tescrow.KVStore, account, owner tescrow.Address) error {
	w, err := h.bank.GetOrCreate(db, account, owner)
	if err != nil {
		return err
	}
	if !w.Owner.Equals(owner) {
		return errors.Wrapf(ErrConstraint, "account %s is not owned by %s", account, owner)
	}
	return nil
}

// drain moves the whole vault balance to dest and closes the vault. Both
// steps are authorized by the escrow authority.
func (h handler) drain(ctx tescrow.Context, db tescrow.KVStore, a *Addresses, dest tescrow.Address) error {
	actx, auth := h.asAuthority(ctx, a)
	balance, err := h.bank.Balance(db, a.Vault)
	if err != nil {
		return errors.Wrap(err, "vault")
	}
	for _, c := range balance {
		if err := h.bank.Transfer(actx, auth, db, a.Vault, dest, *c); err != nil {
			return errors.Wrapf(err, "empty vault of %s", c.Ticker)
		}
	}
	if err := h.bank.CloseAccount(actx, auth, db, a.Vault, dest); err != nil {
		return errors.Wrap(err, "close vault")
	}
	return nil
}

// loadEscrow returns the record and its rebuilt addresses. The given
// addresses must be the derived ones.
func (h handler) loadEscrow(db tescrow.ReadOnlyKVStore, record, vault, authority tescrow.Address) (*EscrowRecord, *Addresses, error) {
	rec, err := h.bucket.GetEscrow(db, record)
	if err != nil {
		return nil, nil, err
	}
	addrs, err := rec.addresses()
	if err != nil {
		return nil, nil, err
	}
	if err := addrs.Match(record, vault, authority); err != nil {
		return nil, nil, err
	}
	return rec, addrs, nil
}

func currentHeight(ctx tescrow.Context) (int64, error) {
	height, ok := tescrow.GetHeight(ctx)
	if !ok {
		return 0, errors.Wrap(errors.ErrState, "block height not set")
	}
	return height, nil
}

func escrowTags(addr tescrow.Address) []common.KVPair {
	return []common.KVPair{tescrow.Tag("escrow", []byte(addr.String()))}
}

// CreateHandler opens an escrow, mints the claim token to the taker and
// moves the deposit into the vault.
type CreateHandler struct {
	handler
}

var _ tescrow.Handler = CreateHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h CreateHandler) Check(ctx tescrow.Context, db tescrow.KVStore, tx tescrow.Tx) (*tescrow.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tescrow.CheckResult{GasAllocated: createEscrowCost}, nil
}

// Deliver creates the escrow if all preconditions are met.
func (h CreateHandler) Deliver(ctx tescrow.Context, db tescrow.KVStore, tx tescrow.Tx) (*tescrow.DeliverResult, error) {
	msg, addrs, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	height, err := currentHeight(ctx)
	if err != nil {
		return nil, err
	}

	rec := &EscrowRecord{
		Maker:           msg.Maker,
		MakerAssetClass: msg.MakerAssetClass,
		TakerAssetClass: msg.TakerAssetClass,
		Taker:           msg.Taker,
		OfferAmount:     offerAmount,
		Seed:            msg.Seed,
		Expiry:          msg.Expiry,
		LockingPeriod:   msg.LockingPeriod,
		AuthorityBump:   addrs.AuthorityBump,
		VaultBump:       addrs.VaultBump,
		RecordBump:      addrs.RecordBump,
		CreatedTime:     uint64(height),
	}
	if err := h.bucket.Save(db, NewEscrow(addrs.Record, rec)); err != nil {
		return nil, errors.Wrap(err, "cannot save escrow")
	}

	if err := h.bank.OpenAccount(db, addrs.Vault, addrs.Authority); err != nil {
		return nil, errors.Wrap(err, "vault")
	}
	if err := h.openOwned(db, msg.TakerHolding, msg.Taker); err != nil {
		return nil, errors.Wrap(err, "taker holding")
	}

	actx, auth := h.asAuthority(ctx, addrs)
	claim := coin.NewCoin(offerAmount, msg.TakerAssetClass)
	if err := h.bank.MintTo(actx, auth, db, msg.TakerHolding, claim); err != nil {
		return nil, errors.Wrap(err, "mint claim token")
	}
	deposit := coin.NewCoin(msg.DepositAmount, msg.MakerAssetClass)
	if deposit.IsPositive() {
		if err := h.bank.Transfer(ctx, h.auth, db, msg.MakerHolding, addrs.Vault, deposit); err != nil {
			return nil, errors.Wrap(err, "deposit")
		}
	}

	tescrow.GetLogger(ctx).Debug("escrow created",
		"escrow", addrs.Record, "maker", msg.Maker, "taker", msg.Taker, "deposit", deposit.String())
	return &tescrow.DeliverResult{
		Data: addrs.Record,
		Tags: escrowTags(addrs.Record),
	}, nil
}

func (h CreateHandler) validate(ctx tescrow.Context, db tescrow.KVStore, tx tescrow.Tx) (*CreateMsg, *Addresses, error) {
	var msg CreateMsg
	if err := tescrow.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireAddress(ctx, h.auth, msg.Maker, "maker"); err != nil {
		return nil, nil, err
	}

	addrs, err := DeriveAddresses(msg.Maker, msg.Seed)
	if err != nil {
		return nil, nil, err
	}
	if err := addrs.Match(msg.Escrow, msg.Vault, msg.Authority); err != nil {
		return nil, nil, err
	}

	switch has, err := h.bucket.Has(db, addrs.Record); {
	case err != nil:
		return nil, nil, err
	case has:
		return nil, nil, errors.Wrapf(errors.ErrDuplicate, "escrow %s", addrs.Record)
	}

	token, err := h.tokens.GetToken(db, msg.TakerAssetClass)
	if err != nil {
		return nil, nil, errors.Wrap(err, "taker asset class")
	}
	if !token.MintAuthority.Equals(addrs.Authority) {
		return nil, nil, errors.Wrapf(ErrConstraint, "mint authority of %s is not the escrow authority", msg.TakerAssetClass)
	}

	if err := h.requireOwner(db, msg.MakerHolding, msg.Maker, false); err != nil {
		return nil, nil, errors.Wrap(err, "maker holding")
	}
	if err := h.requireAssociated(db, msg.TakerHolding, msg.Taker); err != nil {
		return nil, nil, errors.Wrap(err, "taker holding")
	}
	balance, err := h.bank.Balance(db, msg.MakerHolding)
	if err != nil {
		return nil, nil, err
	}
	if got := balance.Balance(msg.MakerAssetClass); got < msg.DepositAmount {
		return nil, nil, errors.Wrapf(errors.ErrInsufficientAmount, "maker holds %d %s", got, msg.MakerAssetClass)
	}
	return &msg, addrs, nil
}

// ClaimHandler moves one claim token from the taker into the vault.
type ClaimHandler struct {
	handler
}

var _ tescrow.Handler = ClaimHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h ClaimHandler) Check(ctx tescrow.Context, db tescrow.KVStore, tx tescrow.Tx) (*tescrow.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tescrow.CheckResult{GasAllocated: claimEscrowCost}, nil
}

// Deliver deposits the claim token. The record is not modified.
func (h ClaimHandler) Deliver(ctx tescrow.Context, db tescrow.KVStore, tx tescrow.Tx) (*tescrow.DeliverResult, error) {
	msg, rec, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	claim := coin.NewCoin(offerAmount, rec.TakerAssetClass)
	if err := h.bank.Transfer(ctx, h.auth, db, msg.TakerHolding, msg.Vault, claim); err != nil {
		return nil, errors.Wrap(err, "claim")
	}
	return &tescrow.DeliverResult{Tags: escrowTags(msg.Escrow)}, nil
}

func (h ClaimHandler) validate(ctx tescrow.Context, db tescrow.KVStore, tx tescrow.Tx) (*ClaimMsg, *EscrowRecord, error) {
	var msg ClaimMsg
	if err := tescrow.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireAddress(ctx, h.auth, msg.Taker, "taker"); err != nil {
		return nil, nil, err
	}
	rec, _, err := h.loadEscrow(db, msg.Escrow, msg.Vault, msg.Authority)
	if err != nil {
		return nil, nil, err
	}
	if !rec.Taker.Equals(msg.Taker) {
		return nil, nil, errors.Wrapf(ErrConstraint, "%s is not the taker", msg.Taker)
	}

	height, err := currentHeight(ctx)
	if err != nil {
		return nil, nil, err
	}
	if rec.IsExpired(height) {
		return nil, nil, errors.Wrapf(errors.ErrExpired, "expired at %d", rec.Expiry)
	}
	if err := h.requireOwner(db, msg.TakerHolding, msg.Taker, false); err != nil {
		return nil, nil, errors.Wrap(err, "taker holding")
	}
	return &msg, rec, nil
}

// RefundHandler returns the whole vault to the maker and destroys the
// escrow. It may be called at any time.
type RefundHandler struct {
	handler
}

var _ tescrow.Handler = RefundHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h RefundHandler) Check(ctx tescrow.Context, db tescrow.KVStore, tx tescrow.Tx) (*tescrow.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tescrow.CheckResult{GasAllocated: refundEscrowCost}, nil
}

// Deliver drains the vault to the maker holding account.
func (h RefundHandler) Deliver(ctx tescrow.Context, db tescrow.KVStore, tx tescrow.Tx) (*tescrow.DeliverResult, error) {
	msg, addrs, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.drain(ctx, db, addrs, msg.MakerHolding); err != nil {
		return nil, err
	}
	if err := h.bucket.Delete(db, addrs.Record); err != nil {
		return nil, errors.Wrap(err, "cannot delete escrow")
	}
	return &tescrow.DeliverResult{Tags: escrowTags(addrs.Record)}, nil
}

func (h RefundHandler) validate(ctx tescrow.Context, db tescrow.KVStore, tx tescrow.Tx) (*RefundMsg, *Addresses, error) {
	var msg RefundMsg
	if err := tescrow.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireAddress(ctx, h.auth, msg.Maker, "maker"); err != nil {
		return nil, nil, err
	}
	rec, addrs, err := h.loadEscrow(db, msg.Escrow, msg.Vault, msg.Authority)
	if err != nil {
		return nil, nil, err
	}
	if !rec.Maker.Equals(msg.Maker) {
		return nil, nil, errors.Wrapf(ErrConstraint, "%s is not the maker", msg.Maker)
	}
	if rec.MakerAssetClass != msg.MakerAssetClass {
		return nil, nil, errors.Wrapf(ErrConstraint, "maker asset class is %s", rec.MakerAssetClass)
	}
	if err := h.requireOwner(db, msg.MakerHolding, msg.Maker, false); err != nil {
		return nil, nil, errors.Wrap(err, "maker holding")
	}
	return &msg, addrs, nil
}

// SettleHandler moves the whole vault to the taker and destroys the escrow
// once the locking period has passed.
type SettleHandler struct {
	handler
}

var _ tescrow.Handler = SettleHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h SettleHandler) Check(ctx tescrow.Context, db tescrow.KVStore, tx tescrow.Tx) (*tescrow.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tescrow.CheckResult{GasAllocated: settleEscrowCost}, nil
}

// Deliver drains the vault to the taker receiving account.
func (h SettleHandler) Deliver(ctx tescrow.Context, db tescrow.KVStore, tx tescrow.Tx) (*tescrow.DeliverResult, error) {
	msg, rec, addrs, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.openOwned(db, msg.TakerReceive, rec.Taker); err != nil {
		return nil, errors.Wrap(err, "taker receive")
	}
	if err := h.openOwned(db, msg.MakerReceive, rec.Maker); err != nil {
		return nil, errors.Wrap(err, "maker receive")
	}
	if err := h.drain(ctx, db, addrs, msg.TakerReceive); err != nil {
		return nil, err
	}
	if err := h.bucket.Delete(db, addrs.Record); err != nil {
		return nil, errors.Wrap(err, "cannot delete escrow")
	}
	return &tescrow.DeliverResult{Tags: escrowTags(addrs.Record)}, nil
}

func (h SettleHandler) validate(ctx tescrow.Context, db tescrow.KVStore, tx tescrow.Tx) (*SettleMsg, *EscrowRecord, *Addresses, error) {
	var msg SettleMsg
	if err := tescrow.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireAddress(ctx, h.auth, msg.Taker, "taker"); err != nil {
		return nil, nil, nil, err
	}
	rec, addrs, err := h.loadEscrow(db, msg.Escrow, msg.Vault, msg.Authority)
	if err != nil {
		return nil, nil, nil, err
	}
	if !rec.Taker.Equals(msg.Taker) {
		return nil, nil, nil, errors.Wrapf(ErrConstraint, "%s is not the taker", msg.Taker)
	}

	height, err := currentHeight(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	if !rec.IsUnlocked(height) {
		return nil, nil, nil, errors.Wrapf(ErrNotUnlockable, "locked until %d", rec.CreatedTime+rec.LockingPeriod)
	}
	if err := h.requireAssociated(db, msg.TakerReceive, rec.Taker); err != nil {
		return nil, nil, nil, errors.Wrap(err, "taker receive")
	}
	if err := h.requireAssociated(db, msg.MakerReceive, rec.Maker); err != nil {
		return nil, nil, nil, errors.Wrap(err, "maker receive")
	}
	return &msg, rec, addrs, nil
}
