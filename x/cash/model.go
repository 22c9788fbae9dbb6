package cash

import (
	"github.com/iov-one/tescrow"
	"github.com/iov-one/tescrow/coin"
	"github.com/iov-one/tescrow/errors"
	"github.com/iov-one/tescrow/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Wallet is a holding account. It is stored under its own address.
type Wallet struct {
	// Owner is the only address allowed to withdraw from this account.
	Owner tescrow.Address
	// Coins is the normalized balance of the account.
	Coins coin.Coins
}

var _ orm.Model = (*Wallet)(nil)

// Validate requires an owner and a normalized set of coins.
func (w *Wallet) Validate() error {
	if err := w.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	return w.Coins.Validate()
}

// Marshal implements tescrow.Persistent.
func (w *Wallet) Marshal() ([]byte, error) {
	return orm.MarshalAmino(w)
}

// Unmarshal implements tescrow.Persistent.
func (w *Wallet) Unmarshal(raw []byte) error {
	return orm.UnmarshalAmino(raw, w)
}

// HoldingAddress returns the address of the associated holding account of
// the owner. Each owner has exactly one associated account per ledger.
func HoldingAddress(owner tescrow.Address) tescrow.Address {
	return tescrow.NewCondition("cash", "holding", owner).Address()
}

// NewWallet returns an object holding an empty wallet stored under key.
func NewWallet(key, owner tescrow.Address) orm.Object {
	return orm.NewSimpleObj(key, &Wallet{Owner: owner})
}

// WalletWith creates a wallet object holding the given coins.
func WalletWith(key, owner tescrow.Address, coins ...*coin.Coin) (orm.Object, error) {
	cs, err := coin.NormalizeCoins(coins)
	if err != nil {
		return nil, err
	}
	return orm.NewSimpleObj(key, &Wallet{Owner: owner, Coins: cs}), nil
}

// AsWallet will safely type-cast any value from Bucket to a Wallet.
func AsWallet(obj orm.Object) *Wallet {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*Wallet)
}

// Bucket is a type-safe wrapper around orm.Bucket
type Bucket struct {
	orm.Bucket
}

// NewBucket initializes a cash.Bucket with default name. Wallets are
// indexed by the owner.
func NewBucket() Bucket {
	b := orm.NewBucket(BucketName, NewWallet(nil, nil)).
		WithIndex("owner", ownerIndex)
	return Bucket{Bucket: b}
}

func ownerIndex(obj orm.Object) ([]byte, error) {
	w := AsWallet(obj)
	if w == nil {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	return w.Owner, nil
}
