package tescrow

// ReadOnlyKVStore is the read side of every store. A missing key reads as a
// nil value.
type ReadOnlyKVStore interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)

	// Iterator and ReverseIterator walk the keys in [start, end). A nil
	// bound leaves that side of the range open. The range must not be
	// written to while an iterator over it is in use.
	Iterator(start, end []byte) (Iterator, error)
	ReverseIterator(start, end []byte) (Iterator, error)
}

// SetDeleter is the write side shared by stores and batches. Implementations
// must not modify the given slices.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// KVStore is a readable and writable store.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter
	NewBatch() Batch
}

// Batch collects writes and applies them to its store on Write.
type Batch interface {
	SetDeleter
	Write() error
}

// Iterator yields key value pairs until Next returns ErrIteratorDone.
//
//	it, err := db.Iterator(start, end)
//	...
//	defer it.Release()
//	for {
//		key, value, err := it.Next()
//		if errors.ErrIteratorDone.Is(err) {
//			break
//		}
//		...
//	}
type Iterator interface {
	Next() (key, value []byte, err error)
	Release()
}

// CacheableKVStore can stage writes in a cache wrap. Each transaction and
// each savepoint runs in its own wrap.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap holds uncommitted writes on top of a parent store. Reads see
// the staged writes. Write hands them to the parent and Discard drops them.
type KVCacheWrap interface {
	CacheableKVStore
	Write() error
	Discard()
}

// CommitKVStore is the persistent root store. It keeps a history of
// committed versions.
type CommitKVStore interface {
	// Get reads the last committed version.
	Get(key []byte) ([]byte, error)

	// CacheWrap stages writes on top of the working version.
	CacheWrap() KVCacheWrap

	// Commit persists the working version and returns its id.
	Commit() (CommitID, error)

	// LoadLatestVersion opens the newest stable version on disk.
	LoadLatestVersion() error
	LatestVersion() (CommitID, error)
}

// CommitID identifies a committed version by height and merkle root.
type CommitID struct {
	Version int64
	Hash    []byte
}
