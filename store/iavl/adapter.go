// Package iavl persists the application state in a versioned iavl tree.
// Every commit saves a new version and its root hash becomes the app hash.
package iavl

import (
	"github.com/iov-one/tescrow/errors"
	"github.com/iov-one/tescrow/store"
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// DefaultCacheSize is the number of tree nodes kept in memory.
const DefaultCacheSize = 10000

// CommitStore reads from the last saved version and writes to the working
// tree, which becomes the next version on Commit.
type CommitStore struct {
	tree *iavl.MutableTree
}

var _ store.CommitKVStore = CommitStore{}

// NewCommitStore opens the database name in dir. backend is a tendermint db
// backend such as "goleveldb". With "memdb", dir and name are ignored.
func NewCommitStore(dir, name, backend string) CommitStore {
	if dbm.DBBackendType(backend) == dbm.MemDBBackend {
		return NewCommitStoreFromDB(dbm.NewMemDB())
	}
	return NewCommitStoreFromDB(dbm.NewDB(name, dbm.DBBackendType(backend), dir))
}

func NewCommitStoreFromDB(db dbm.DB) CommitStore {
	return CommitStore{tree: iavl.NewMutableTree(db, DefaultCacheSize)}
}

// Get reads the last saved version. Uncommitted writes are not visible.
func (s CommitStore) Get(key []byte) ([]byte, error) {
	v := s.tree.Version()
	if v == 0 {
		return nil, nil
	}
	saved, err := s.tree.GetImmutable(v)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "load version %d: %s", v, err)
	}
	_, value := saved.Get(key)
	return value, nil
}

func (s CommitStore) Commit() (store.CommitID, error) {
	hash, v, err := s.tree.SaveVersion()
	if err != nil {
		return store.CommitID{}, errors.Wrapf(errors.ErrDatabase, "save version: %s", err)
	}
	return store.CommitID{Version: v, Hash: hash}, nil
}

// LoadLatestVersion opens the newest complete version on disk.
func (s CommitStore) LoadLatestVersion() error {
	if _, err := s.tree.Load(); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "load tree: %s", err)
	}
	return nil
}

func (s CommitStore) LatestVersion() (store.CommitID, error) {
	return store.CommitID{Version: s.tree.Version(), Hash: s.tree.Hash()}, nil
}

// CacheWrap buffers writes in memory. Writing the cache moves them to the
// working tree.
func (s CommitStore) CacheWrap() store.KVCacheWrap { return s.Adapter().CacheWrap() }

// Adapter gives direct access to the working tree.
func (s CommitStore) Adapter() store.CacheableKVStore { return store.WithCache(adapter{s.tree}) }

// adapter is the working tree as a KVStore. The tree panics on a nil key.
type adapter struct {
	tree *iavl.MutableTree
}

var _ store.KVStore = adapter{}

func (a adapter) Has(key []byte) (bool, error) { return a.tree.Has(key), nil }
func (a adapter) Set(key, value []byte) error  { a.tree.Set(key, value); return nil }
func (a adapter) Delete(key []byte) error      { a.tree.Remove(key); return nil }
func (a adapter) NewBatch() store.Batch        { return store.NewReplayBatch(a) }

func (a adapter) Get(key []byte) ([]byte, error) {
	_, value := a.tree.Get(key)
	return value, nil
}

func (a adapter) Iterator(start, end []byte) (store.Iterator, error) {
	return a.collect(start, end, true), nil
}

func (a adapter) ReverseIterator(start, end []byte) (store.Iterator, error) {
	return a.collect(start, end, false), nil
}

// collect loads the range [start, end) into memory.
func (a adapter) collect(start, end []byte, ascending bool) store.Iterator {
	var models []store.Model
	a.tree.IterateRange(start, end, ascending, func(k, v []byte) bool {
		models = append(models, store.Pair(k, v))
		return false
	})
	return store.NewSliceIterator(models)
}
