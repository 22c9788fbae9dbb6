package cash

import (
	"github.com/iov-one/tescrow"
	"github.com/iov-one/tescrow/coin"
	"github.com/iov-one/tescrow/errors"
)

// GenesisAccount is one entry of the "cash" genesis section. An entry with
// no address funds the holding account of Owner.
type GenesisAccount struct {
	Address tescrow.Address `json:"address"`
	Owner   tescrow.Address `json:"owner"`
	Coins   coin.Coins      `json:"coins"`
}

// Initializer creates the genesis wallets.
type Initializer struct{}

var _ tescrow.Initializer = Initializer{}

func (Initializer) FromGenesis(opts tescrow.Options, db tescrow.KVStore) error {
	var accounts []GenesisAccount
	if err := opts.ReadOptions("cash", &accounts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	b := NewBucket()
	for i, a := range accounts {
		if err := b.saveGenesis(db, a); err != nil {
			return errors.Wrapf(err, "cash account %d", i)
		}
	}
	return nil
}

func (b Bucket) saveGenesis(db tescrow.KVStore, a GenesisAccount) error {
	addr := a.Address
	if len(addr) == 0 {
		addr = HoldingAddress(a.Owner)
	}
	if err := addr.Validate(); err != nil {
		return err
	}
	w, err := WalletWith(addr, a.Owner, a.Coins...)
	if err != nil {
		return err
	}
	return b.Save(db, w)
}
