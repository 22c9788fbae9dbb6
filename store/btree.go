package store

import (
	"bytes"

	"github.com/google/btree"
)

// btreeDegree keeps nodes small. Cache wraps live for one transaction or
// one block and rarely hold many entries.
const btreeDegree = 2

// entry is a cached write. A deleted entry hides the key of the parent
// store.
type entry struct {
	key     []byte
	value   []byte
	deleted bool
}

func (e entry) Less(than btree.Item) bool {
	return bytes.Compare(e.key, than.(entry).key) < 0
}

// cacheWrap keeps writes in a btree until Write sends them to the parent
// batch. Reads consult the btree first and fall back to the parent.
type cacheWrap struct {
	tree   *btree.BTree
	free   *btree.FreeList
	parent ReadOnlyKVStore
	out    Batch
}

var _ KVCacheWrap = cacheWrap{}

// newCacheWrap layers a cache over parent. All writes go to out. Nested
// wraps pass their free list down so node memory is recycled.
func newCacheWrap(parent ReadOnlyKVStore, out Batch, free *btree.FreeList) cacheWrap {
	if free == nil {
		free = btree.NewFreeList(btree.DefaultFreeListSize)
	}
	return cacheWrap{
		tree:   btree.NewWithFreeList(btreeDegree, free),
		free:   free,
		parent: parent,
		out:    out,
	}
}

func (c cacheWrap) CacheWrap() KVCacheWrap {
	return newCacheWrap(c, c.NewBatch(), c.free)
}

func (c cacheWrap) NewBatch() Batch {
	return NewReplayBatch(c)
}

// Write flushes the cached writes to the parent and empties the cache.
func (c cacheWrap) Write() error {
	err := c.out.Write()
	c.Discard()
	return err
}

// Discard drops every cached write. Nodes go back to the free list.
func (c cacheWrap) Discard() {
	for c.tree.DeleteMin() != nil {
	}
}

func (c cacheWrap) Set(key, value []byte) error {
	c.tree.ReplaceOrInsert(entry{key: key, value: value})
	return c.out.Set(key, value)
}

func (c cacheWrap) Delete(key []byte) error {
	c.tree.ReplaceOrInsert(entry{key: key, deleted: true})
	return c.out.Delete(key)
}

func (c cacheWrap) lookup(key []byte) (entry, bool) {
	if item := c.tree.Get(entry{key: key}); item != nil {
		return item.(entry), true
	}
	return entry{}, false
}

func (c cacheWrap) Get(key []byte) ([]byte, error) {
	if e, ok := c.lookup(key); ok {
		if e.deleted {
			return nil, nil
		}
		return e.value, nil
	}
	return c.parent.Get(key)
}

func (c cacheWrap) Has(key []byte) (bool, error) {
	if e, ok := c.lookup(key); ok {
		return !e.deleted, nil
	}
	return c.parent.Has(key)
}

func (c cacheWrap) Iterator(start, end []byte) (Iterator, error) {
	under, err := c.parent.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return &mergeIterator{cached: c.entries(start, end, true), under: under, ascending: true}, nil
}

func (c cacheWrap) ReverseIterator(start, end []byte) (Iterator, error) {
	under, err := c.parent.ReverseIterator(start, end)
	if err != nil {
		return nil, err
	}
	return &mergeIterator{cached: c.entries(start, end, false), under: under}, nil
}

// entries copies the cached writes within [start, end) in iteration order.
// A nil bound leaves that side open.
func (c cacheWrap) entries(start, end []byte, ascending bool) []entry {
	var res []entry
	add := func(i btree.Item) bool {
		res = append(res, i.(entry))
		return true
	}
	switch {
	case start == nil && end == nil:
		c.tree.Ascend(add)
	case start == nil:
		c.tree.AscendLessThan(entry{key: end}, add)
	case end == nil:
		c.tree.AscendGreaterOrEqual(entry{key: start}, add)
	default:
		c.tree.AscendRange(entry{key: start}, entry{key: end}, add)
	}
	if !ascending {
		for i, j := 0, len(res)-1; i < j; i, j = i+1, j-1 {
			res[i], res[j] = res[j], res[i]
		}
	}
	return res
}
