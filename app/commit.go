package app

import (
	"github.com/iov-one/tescrow"
	"github.com/iov-one/tescrow/errors"
)

// appState is the root store together with the two caches transactions run
// in. Deliver writes reach the root store on commit. Check writes are
// dropped, so a mempool check never leaks into the block state.
type appState struct {
	root    tescrow.CommitKVStore
	deliver tescrow.KVCacheWrap
	check   tescrow.KVCacheWrap
}

func openState(root tescrow.CommitKVStore) (*appState, error) {
	if err := root.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "load latest version")
	}
	s := &appState{root: root}
	s.resetCaches()
	return s, nil
}

func (s *appState) resetCaches() {
	s.deliver = s.root.CacheWrap()
	s.check = s.root.CacheWrap()
}

func (s *appState) latest() (tescrow.CommitID, error) {
	return s.root.LatestVersion()
}

// commit persists the deliver cache as a new version and starts fresh
// caches on top of it.
func (s *appState) commit() (tescrow.CommitID, error) {
	if err := s.deliver.Write(); err != nil {
		return tescrow.CommitID{}, errors.Wrap(err, "flush deliver cache")
	}
	s.check.Discard()

	id, err := s.root.Commit()
	if err != nil {
		return id, errors.Wrap(err, "commit")
	}
	s.resetCaches()
	return id, nil
}

// chainIDKey lives outside of every bucket prefix. Buckets use lower case
// names without a leading underscore.
var chainIDKey = []byte("_app:chain_id")

// loadChainID returns the chain id written at genesis, or an empty string
// before InitChain.
func loadChainID(db tescrow.ReadOnlyKVStore) (string, error) {
	raw, err := db.Get(chainIDKey)
	if err != nil {
		return "", errors.Wrap(err, "load chain id")
	}
	return string(raw), nil
}

// saveChainID writes the chain id once. A second call fails with
// ErrUnauthorized.
func saveChainID(db tescrow.KVStore, chainID string) error {
	if !tescrow.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id %q", chainID)
	}
	switch stored, err := loadChainID(db); {
	case err != nil:
		return err
	case stored != "":
		return errors.Wrapf(errors.ErrUnauthorized, "chain id already set to %q", stored)
	}
	return errors.Wrap(db.Set(chainIDKey, []byte(chainID)), "save chain id")
}
