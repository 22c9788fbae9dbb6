package orm

import (
	"bytes"
	"sort"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/tescrow"
	"github.com/iov-one/tescrow/errors"
)

// Indexer returns the index value of an object. Objects with an empty value
// are left out of the index.
type Indexer func(Object) ([]byte, error)

// index keeps, for every index value, the set of primary keys of the
// objects having it. The set is stored under "_i.<name>:<value>".
type index struct {
	prefix []byte
	value  Indexer
	dbKey  func([]byte) []byte
}

var _ tescrow.QueryHandler = (*index)(nil)

func newIndex(name string, value Indexer, dbKey func([]byte) []byte) *index {
	return &index{
		prefix: []byte("_i." + name + ":"),
		value:  value,
		dbKey:  dbKey,
	}
}

func (i *index) key(value []byte) []byte {
	out := make([]byte, 0, len(i.prefix)+len(value))
	return append(append(out, i.prefix...), value...)
}

// update replaces the entry of prev with the entry of next. Either may be
// nil for an insert or a delete.
func (i *index) update(db tescrow.KVStore, prev, next Object) error {
	var before, after []byte
	if prev != nil {
		v, err := i.value(prev)
		if err != nil {
			return err
		}
		before = v
	}
	if next != nil {
		v, err := i.value(next)
		if err != nil {
			return err
		}
		after = v
	}
	if prev != nil && next != nil && bytes.Equal(before, after) {
		return nil
	}
	if prev != nil && len(before) > 0 {
		if err := i.edit(db, before, prev.Key(), (*refSet).remove); err != nil {
			return err
		}
	}
	if next != nil && len(after) > 0 {
		return i.edit(db, after, next.Key(), (*refSet).add)
	}
	return nil
}

// edit applies op to the set stored for value. An emptied set is deleted.
func (i *index) edit(db tescrow.KVStore, value, pk []byte, op func(*refSet, []byte) error) error {
	key := i.key(value)
	set, err := loadRefSet(db, key)
	if err != nil {
		return err
	}
	if err := op(set, pk); err != nil {
		return err
	}
	if len(set.Refs) == 0 {
		return db.Delete(key)
	}
	raw, err := proto.Marshal(set)
	if err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	return db.Set(key, raw)
}

// keys returns the primary keys indexed under value.
func (i *index) keys(db tescrow.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	set, err := loadRefSet(db, i.key(value))
	if err != nil {
		return nil, err
	}
	return set.Refs, nil
}

// Query returns the bucket entries indexed under the data, or under every
// value starting with it for a prefix query.
func (i *index) Query(db tescrow.ReadOnlyKVStore, mod string, data []byte) ([]tescrow.Model, error) {
	var refs [][]byte
	switch mod {
	case tescrow.KeyQueryMod:
		keys, err := i.keys(db, data)
		if err != nil {
			return nil, err
		}
		refs = keys
	case tescrow.PrefixQueryMod:
		entries, err := queryPrefix(db, i.key(data))
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			var set refSet
			if err := proto.Unmarshal(e.Value, &set); err != nil {
				return nil, errors.Wrap(errors.ErrState, err.Error())
			}
			refs = append(refs, set.Refs...)
		}
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown query modifier %q", mod)
	}

	models := make([]tescrow.Model, 0, len(refs))
	for _, ref := range refs {
		key := i.dbKey(ref)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		models = append(models, tescrow.Pair(key, value))
	}
	return models, nil
}

// refSet is a sorted set of primary keys.
type refSet struct {
	Refs [][]byte `protobuf:"bytes,1,rep,name=refs,proto3"`
}

func (r *refSet) Reset()         { *r = refSet{} }
func (r *refSet) String() string { return proto.CompactTextString(r) }
func (*refSet) ProtoMessage()    {}

func loadRefSet(db tescrow.ReadOnlyKVStore, key []byte) (*refSet, error) {
	var set refSet
	raw, err := db.Get(key)
	if err != nil || raw == nil {
		return &set, err
	}
	if err := proto.Unmarshal(raw, &set); err != nil {
		return nil, errors.Wrap(errors.ErrState, err.Error())
	}
	return &set, nil
}

// find returns the position of ref and whether it is present.
func (r *refSet) find(ref []byte) (int, bool) {
	n := sort.Search(len(r.Refs), func(i int) bool { return bytes.Compare(r.Refs[i], ref) >= 0 })
	return n, n < len(r.Refs) && bytes.Equal(r.Refs[n], ref)
}

func (r *refSet) add(ref []byte) error {
	n, ok := r.find(ref)
	if ok {
		return errors.Wrapf(errors.ErrDuplicate, "reference %X", ref)
	}
	r.Refs = append(r.Refs, nil)
	copy(r.Refs[n+1:], r.Refs[n:])
	r.Refs[n] = ref
	return nil
}

func (r *refSet) remove(ref []byte) error {
	n, ok := r.find(ref)
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "reference %X", ref)
	}
	r.Refs = append(r.Refs[:n], r.Refs[n+1:]...)
	return nil
}
