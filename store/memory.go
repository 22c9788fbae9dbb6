package store

import "github.com/iov-one/tescrow/errors"

// MemStore returns an empty in-memory store. Nothing is persisted, it is
// meant for tests and for query sandboxes.
func MemStore() CacheableKVStore {
	return WithCache(emptyStore{})
}

// WithCache lets kv hand out btree cache wraps. Writes of a cache wrap go to
// kv in a single batch.
func WithCache(kv KVStore) CacheableKVStore {
	return cacheable{kv}
}

type cacheable struct {
	KVStore
}

func (c cacheable) CacheWrap() KVCacheWrap {
	return newCacheWrap(c.KVStore, c.NewBatch(), nil)
}

// NewSliceIterator iterates over models in the given order.
func NewSliceIterator(models []Model) Iterator {
	return &sliceIterator{models: models}
}

type sliceIterator struct {
	models []Model
}

func (s *sliceIterator) Next() ([]byte, []byte, error) {
	if len(s.models) == 0 {
		return nil, nil, errors.ErrIteratorDone
	}
	m := s.models[0]
	s.models = s.models[1:]
	return m.Key, m.Value, nil
}

func (s *sliceIterator) Release() {
	s.models = nil
}

// emptyStore holds nothing and ignores writes. It is the bottom layer of
// MemStore.
type emptyStore struct{}

func (emptyStore) Get([]byte) ([]byte, error)             { return nil, nil }
func (emptyStore) Has([]byte) (bool, error)               { return false, nil }
func (emptyStore) Set(_, _ []byte) error                  { return nil }
func (emptyStore) Delete([]byte) error                    { return nil }
func (emptyStore) Iterator(_, _ []byte) (Iterator, error) { return NewSliceIterator(nil), nil }

func (emptyStore) ReverseIterator(_, _ []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

func (e emptyStore) NewBatch() Batch {
	return NewReplayBatch(e)
}

// NewReplayBatch records writes and replays them in order on dst when
// written. The replay is not atomic, so use it only for stores that have no
// batch of their own: in-memory layers and the iavl working tree, which is
// persisted on commit.
func NewReplayBatch(dst SetDeleter) Batch {
	return &replayBatch{dst: dst}
}

type write struct {
	key   []byte
	value []byte
	del   bool
}

type replayBatch struct {
	dst    SetDeleter
	writes []write
}

func (b *replayBatch) Set(key, value []byte) error {
	b.writes = append(b.writes, write{key: key, value: value})
	return nil
}

func (b *replayBatch) Delete(key []byte) error {
	b.writes = append(b.writes, write{key: key, del: true})
	return nil
}

func (b *replayBatch) Write() error {
	for i, w := range b.writes {
		var err error
		if w.del {
			err = b.dst.Delete(w.key)
		} else {
			err = b.dst.Set(w.key, w.value)
		}
		if err != nil {
			b.writes = b.writes[i:]
			return errors.Wrap(err, "replay batch")
		}
	}
	b.writes = nil
	return nil
}
