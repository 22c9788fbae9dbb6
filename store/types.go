// Package store implements the in-memory layers of the application state:
// btree cache wraps, a replay batch and a slice iterator. The persistent
// tree lives in the iavl subpackage.
package store

import "github.com/iov-one/tescrow"

// Aliases of the root interfaces so that store code reads without the
// package prefix.
type (
	ReadOnlyKVStore  = tescrow.ReadOnlyKVStore
	SetDeleter       = tescrow.SetDeleter
	KVStore          = tescrow.KVStore
	Batch            = tescrow.Batch
	Iterator         = tescrow.Iterator
	CacheableKVStore = tescrow.CacheableKVStore
	KVCacheWrap      = tescrow.KVCacheWrap
	CommitKVStore    = tescrow.CommitKVStore
	CommitID         = tescrow.CommitID
	Model            = tescrow.Model
)

var Pair = tescrow.Pair
