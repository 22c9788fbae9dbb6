/*
Package orm stores models in buckets over a KVStore.

A bucket keeps one model type under the key prefix "<name>:" and can keep
secondary indexes of it, for example the escrows of a maker. Buckets answer
ABCI queries for their keys and for each of their indexes.
*/
package orm

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/iov-one/tescrow"
	"github.com/iov-one/tescrow/errors"
)

var bucketName = regexp.MustCompile(`^[a-z_]{3,10}$`)

// Bucket is untyped. Extensions wrap it in a bucket of their model type.
type Bucket struct {
	name    string
	prefix  []byte
	proto   Cloneable
	indexes map[string]*index
}

var _ tescrow.QueryHandler = Bucket{}

// NewBucket creates a bucket of the model type of proto. The name must be
// 3 to 10 lower case letters or underscores, otherwise NewBucket panics.
func NewBucket(name string, proto Cloneable) Bucket {
	if !bucketName.MatchString(name) {
		panic(fmt.Sprintf("invalid bucket name %q", name))
	}
	return Bucket{name: name, prefix: []byte(name + ":"), proto: proto}
}

func (b Bucket) Name() string {
	return b.name
}

// WithIndex returns a copy of the bucket that also maintains the named
// index. Adding a name twice panics.
func (b Bucket) WithIndex(name string, fn Indexer) Bucket {
	if _, ok := b.indexes[name]; ok {
		panic(fmt.Sprintf("bucket %s: index %q added twice", b.name, name))
	}
	indexes := map[string]*index{name: newIndex(b.name+"_"+name, fn, b.DBKey)}
	for n, idx := range b.indexes {
		indexes[n] = idx
	}
	b.indexes = indexes
	return b
}

// Register exposes the bucket under "/<path>" and each index under
// "/<path>/<index>". An empty path uses the bucket name.
func (b Bucket) Register(path string, r tescrow.QueryRouter) {
	if path == "" {
		path = b.name
	}
	r.Register("/"+path, b)
	for _, name := range b.indexNames() {
		r.Register("/"+path+"/"+name, b.indexes[name])
	}
}

func (b Bucket) indexNames() []string {
	names := make([]string, 0, len(b.indexes))
	for n := range b.indexes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// DBKey returns the store key of key. The result never aliases key.
func (b Bucket) DBKey(key []byte) []byte {
	out := make([]byte, 0, len(b.prefix)+len(key))
	return append(append(out, b.prefix...), key...)
}

// Query answers a key lookup or a prefix scan of the bucket.
func (b Bucket) Query(db tescrow.ReadOnlyKVStore, mod string, data []byte) ([]tescrow.Model, error) {
	switch mod {
	case tescrow.KeyQueryMod:
		key := b.DBKey(data)
		value, err := db.Get(key)
		if err != nil || value == nil {
			return nil, err
		}
		return []tescrow.Model{tescrow.Pair(key, value)}, nil
	case tescrow.PrefixQueryMod:
		return queryPrefix(db, b.DBKey(data))
	}
	return nil, errors.Wrapf(errors.ErrInput, "unknown query modifier %q", mod)
}

// Get loads the object stored under key. A missing object is nil without an
// error.
func (b Bucket) Get(db tescrow.ReadOnlyKVStore, key []byte) (Object, error) {
	raw, err := db.Get(b.DBKey(key))
	if err != nil || raw == nil {
		return nil, err
	}
	return b.Parse(key, raw)
}

func (b Bucket) Has(db tescrow.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(b.DBKey(key))
}

// Parse decodes a stored value into a new object with the given key.
func (b Bucket) Parse(key, value []byte) (Object, error) {
	obj := b.proto.Clone()
	if err := obj.Value().Unmarshal(value); err != nil {
		return nil, errors.Wrapf(errors.ErrState, "cannot parse %s: %s", b.name, err)
	}
	obj.SetKey(key)
	return obj, nil
}

// Save validates obj and writes it together with its index entries.
func (b Bucket) Save(db tescrow.KVStore, obj Object) error {
	if err := obj.Validate(); err != nil {
		return err
	}
	raw, err := obj.Value().Marshal()
	if err != nil {
		return err
	}
	if err := b.reindex(db, obj.Key(), obj); err != nil {
		return err
	}
	return db.Set(b.DBKey(obj.Key()), raw)
}

// Delete removes the object under key and its index entries.
func (b Bucket) Delete(db tescrow.KVStore, key []byte) error {
	if err := b.reindex(db, key, nil); err != nil {
		return err
	}
	return db.Delete(b.DBKey(key))
}

// reindex moves the index entries of key from the stored object to next.
// A nil next removes them.
func (b Bucket) reindex(db tescrow.KVStore, key []byte, next Object) error {
	if len(b.indexes) == 0 {
		return nil
	}
	prev, err := b.Get(db, key)
	if err != nil {
		return err
	}
	for _, name := range b.indexNames() {
		if err := b.indexes[name].update(db, prev, next); err != nil {
			return errors.Wrapf(err, "index %s", name)
		}
	}
	return nil
}

// GetIndexed loads every object whose named index value equals value.
func (b Bucket) GetIndexed(db tescrow.ReadOnlyKVStore, name string, value []byte) ([]Object, error) {
	idx, ok := b.indexes[name]
	if !ok {
		return nil, errors.Wrapf(ErrInvalidIndex, "%s has no index %q", b.name, name)
	}
	keys, err := idx.keys(db, value)
	if err != nil {
		return nil, err
	}
	var objs []Object
	for _, key := range keys {
		obj, err := b.Get(db, key)
		if err != nil {
			return nil, err
		}
		if obj != nil {
			objs = append(objs, obj)
		}
	}
	return objs, nil
}
