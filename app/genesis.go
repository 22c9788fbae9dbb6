package app

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/tescrow"
	"github.com/iov-one/tescrow/errors"
)

// Genesis is the subset of the tendermint genesis file this application
// reads. AppState is passed to the initializer on InitChain.
type Genesis struct {
	ChainID  string          `json:"chain_id"`
	AppState tescrow.Options `json:"app_state"`
}

// LoadGenesis reads and parses the genesis file at the given path.
func LoadGenesis(filePath string) (*Genesis, error) {
	raw, err := ioutil.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	var gen Genesis
	if err := json.Unmarshal(raw, &gen); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	if !tescrow.IsValidChainID(gen.ChainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id: %q", gen.ChainID)
	}
	return &gen, nil
}

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...tescrow.Initializer) tescrow.Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []tescrow.Initializer
}

// FromGenesis will pass opts to all Initializers in the list,
// aborting at the first error.
func (c chainInitializer) FromGenesis(opts tescrow.Options, kv tescrow.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}
