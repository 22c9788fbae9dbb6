package orm

import (
	"github.com/iov-one/tescrow"
	"github.com/iov-one/tescrow/errors"
)

// queryPrefix reads every pair whose key starts with prefix.
func queryPrefix(db tescrow.ReadOnlyKVStore, prefix []byte) ([]tescrow.Model, error) {
	start, end := prefixRange(prefix)
	it, err := db.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	defer it.Release()

	var res []tescrow.Model
	for {
		key, value, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			return res, nil
		}
		if err != nil {
			return nil, err
		}
		res = append(res, tescrow.Pair(key, value))
	}
}

// prefixRange returns the iterator bounds covering every key that starts
// with prefix. The end is the shortest key above all of them, or nil when
// the prefix is all 0xFF bytes.
func prefixRange(prefix []byte) (start, end []byte) {
	if len(prefix) == 0 {
		return nil, nil
	}
	for n := len(prefix); n > 0; n-- {
		if prefix[n-1] != 0xFF {
			end = append([]byte(nil), prefix[:n]...)
			end[n-1]++
			return prefix, end
		}
	}
	return prefix, nil
}
