package cash

import (
	"github.com/iov-one/tescrow"
	"github.com/iov-one/tescrow/coin"
	"github.com/iov-one/tescrow/errors"
	"github.com/iov-one/tescrow/orm"
	"github.com/iov-one/tescrow/x"
)

// Issuer grants the right to create new coins of an asset class. It must
// check that the mint authority of the asset class is authenticated and
// account for the new supply.
type Issuer interface {
	Issue(ctx tescrow.Context, auth x.Authenticator, db tescrow.KVStore, amount coin.Coin) error
}

// Controller is the asset transfer service. Every mutating operation
// requires the account owner (or mint authority) to be authenticated.
// All operations are synchronous and rely on the transaction savepoint to be
// atomic.
type Controller interface {
	// Balance returns the coins held by the account.
	Balance(db tescrow.ReadOnlyKVStore, addr tescrow.Address) (coin.Coins, error)
	// OpenAccount creates an empty account owned by owner.
	OpenAccount(db tescrow.KVStore, addr, owner tescrow.Address) error
	// GetOrCreate returns the account, opening it when missing.
	GetOrCreate(db tescrow.KVStore, addr, owner tescrow.Address) (*Wallet, error)
	// Transfer moves coins between two existing accounts.
	Transfer(ctx tescrow.Context, auth x.Authenticator, db tescrow.KVStore, from, to tescrow.Address, amount coin.Coin) error
	// MintTo creates new coins in an existing account.
	MintTo(ctx tescrow.Context, auth x.Authenticator, db tescrow.KVStore, to tescrow.Address, amount coin.Coin) error
	// CloseAccount moves any remaining coins to destination and destroys
	// the account.
	CloseAccount(ctx tescrow.Context, auth x.Authenticator, db tescrow.KVStore, account, destination tescrow.Address) error
}

// BaseController is a simple implementation of the Controller. It keeps the
// accounts in a bucket.
type BaseController struct {
	bucket Bucket
	issuer Issuer
}

var _ Controller = BaseController{}

// NewController returns a controller. Minting is refused when issuer is nil.
func NewController(bucket Bucket, issuer Issuer) BaseController {
	return BaseController{bucket: bucket, issuer: issuer}
}

func (c BaseController) load(db tescrow.ReadOnlyKVStore, addr tescrow.Address) (orm.Object, *Wallet, error) {
	if err := addr.Validate(); err != nil {
		return nil, nil, errors.Wrap(err, "account address")
	}
	obj, err := c.bucket.Get(db, addr)
	if err != nil {
		return nil, nil, errors.Wrap(err, "cannot load account")
	}
	if obj == nil {
		return nil, nil, errors.Wrapf(errors.ErrNotFound, "account %s", addr)
	}
	return obj, AsWallet(obj), nil
}

// Balance returns the coins held by the account or ErrNotFound.
func (c BaseController) Balance(db tescrow.ReadOnlyKVStore, addr tescrow.Address) (coin.Coins, error) {
	_, w, err := c.load(db, addr)
	if err != nil {
		return nil, err
	}
	return w.Coins.Clone(), nil
}

// OpenAccount creates an empty account. It fails with ErrDuplicate if the
// address is taken.
func (c BaseController) OpenAccount(db tescrow.KVStore, addr, owner tescrow.Address) error {
	if err := addr.Validate(); err != nil {
		return errors.Wrap(err, "account address")
	}
	switch has, err := c.bucket.Has(db, addr); {
	case err != nil:
		return errors.Wrap(err, "cannot load account")
	case has:
		return errors.Wrapf(errors.ErrDuplicate, "account %s", addr)
	}
	return c.bucket.Save(db, NewWallet(addr, owner))
}

// GetOrCreate returns the account stored under addr. A missing account is
// opened with the given owner. The owner of an existing account is not
// checked.
func (c BaseController) GetOrCreate(db tescrow.KVStore, addr, owner tescrow.Address) (*Wallet, error) {
	obj, err := c.bucket.Get(db, addr)
	if err != nil {
		return nil, errors.Wrap(err, "cannot load account")
	}
	if obj != nil {
		return AsWallet(obj), nil
	}
	if err := c.OpenAccount(db, addr, owner); err != nil {
		return nil, err
	}
	return &Wallet{Owner: owner}, nil
}

// Transfer moves the given amount from src to dest. Both accounts must
// exist and the owner of src must be authenticated.
func (c BaseController) Transfer(ctx tescrow.Context, auth x.Authenticator, db tescrow.KVStore, src, dest tescrow.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive transfer: %s", amount)
	}
	if err := amount.Validate(); err != nil {
		return err
	}

	srcObj, sender, err := c.load(db, src)
	if err != nil {
		return errors.Wrap(err, "source")
	}
	if !auth.HasAddress(ctx, sender.Owner) {
		return errors.Wrapf(errors.ErrUnauthorized, "owner of %s", src)
	}
	if src.Equals(dest) {
		// Nothing moves, but the balance must still cover the amount.
		if !sender.Coins.Contains(amount) {
			return errors.Wrapf(errors.ErrInsufficientAmount, "%s holds less than %s", src, amount)
		}
		return nil
	}

	destObj, recipient, err := c.load(db, dest)
	if err != nil {
		return errors.Wrap(err, "destination")
	}

	if sender.Coins, err = sender.Coins.Subtract(amount); err != nil {
		return err
	}
	if recipient.Coins, err = recipient.Coins.Add(amount); err != nil {
		return err
	}
	if err := c.bucket.Save(db, srcObj); err != nil {
		return err
	}
	return c.bucket.Save(db, destObj)
}

// MintTo creates the given amount in the dest account. The issuer decides
// if the mint authority of the asset class is authenticated.
func (c BaseController) MintTo(ctx tescrow.Context, auth x.Authenticator, db tescrow.KVStore, dest tescrow.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive mint: %s", amount)
	}
	if err := amount.Validate(); err != nil {
		return err
	}
	if c.issuer == nil {
		return errors.Wrap(errors.ErrUnauthorized, "minting disabled")
	}

	obj, recipient, err := c.load(db, dest)
	if err != nil {
		return errors.Wrap(err, "destination")
	}
	if err := c.issuer.Issue(ctx, auth, db, amount); err != nil {
		return err
	}
	if recipient.Coins, err = recipient.Coins.Add(amount); err != nil {
		return err
	}
	return c.bucket.Save(db, obj)
}

// CloseAccount destroys the account. Any remaining coins are moved to the
// destination account, which must exist. The owner of the closed account
// must be authenticated.
func (c BaseController) CloseAccount(ctx tescrow.Context, auth x.Authenticator, db tescrow.KVStore, account, dest tescrow.Address) error {
	_, w, err := c.load(db, account)
	if err != nil {
		return err
	}
	if !auth.HasAddress(ctx, w.Owner) {
		return errors.Wrapf(errors.ErrUnauthorized, "owner of %s", account)
	}
	if account.Equals(dest) {
		return errors.Wrap(errors.ErrInput, "cannot close account into itself")
	}
	if _, _, err := c.load(db, dest); err != nil {
		return errors.Wrap(err, "destination")
	}
	for _, amount := range w.Coins {
		if err := c.Transfer(ctx, auth, db, account, dest, *amount); err != nil {
			return errors.Wrap(err, "sweep")
		}
	}
	return c.bucket.Delete(db, account)
}
