package currency

import (
	"github.com/iov-one/tescrow"
	"github.com/iov-one/tescrow/errors"
)

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct{}

var _ tescrow.Initializer = Initializer{}

// GenesisToken is a token registered at genesis.
type GenesisToken struct {
	Ticker        string          `json:"ticker"`
	Name          string          `json:"name"`
	MintAuthority tescrow.Address `json:"mint_authority"`
	Supply        uint64          `json:"supply"`
}

// FromGenesis will parse initial token info from genesis and save it to the
// database
func (Initializer) FromGenesis(opts tescrow.Options, kv tescrow.KVStore) error {
	var tokens []GenesisToken
	if err := opts.ReadOptions("currency", &tokens); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	bucket := NewTokenBucket()
	for _, t := range tokens {
		obj := NewToken(t.Ticker, t.Name, t.MintAuthority)
		AsToken(obj).Supply = t.Supply
		if err := bucket.Save(kv, obj); err != nil {
			return errors.Wrapf(err, "token %s", t.Ticker)
		}
	}
	return nil
}
