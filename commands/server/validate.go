package server

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/tescrow"
	"github.com/iov-one/tescrow/errors"
	"github.com/iov-one/tescrow/store"
)

// ValidateGenesis runs ini over the app_state of each genesis file against
// a throwaway in memory store and stops at the first file that fails.
func ValidateGenesis(ini tescrow.Initializer, paths []string) error {
	if len(paths) == 0 {
		return errors.Wrap(errors.ErrInput, "usage: validate <genesis.json>...")
	}
	for _, p := range paths {
		state, err := readAppState(p)
		if err == nil {
			err = ini.FromGenesis(state, store.MemStore())
		}
		if err != nil {
			return errors.Wrap(err, p)
		}
	}
	return nil
}

func readAppState(path string) (tescrow.Options, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "read genesis: %s", err)
	}
	var doc struct {
		AppState tescrow.Options `json:"app_state"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "decode genesis: %s", err)
	}
	return doc.AppState, nil
}
