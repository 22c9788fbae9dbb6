package utils

import (
	"github.com/iov-one/tescrow"
	"github.com/iov-one/tescrow/errors"
)

// Savepoint runs the rest of the stack on a cache of the store. The cache is
// written back only when the call succeeds, so a failed transaction leaves
// no partial writes behind. It is disabled for both phases until OnCheck or
// OnDeliver is called.
type Savepoint struct {
	check, deliver bool
}

var _ tescrow.Decorator = Savepoint{}

func NewSavepoint() Savepoint { return Savepoint{} }

func (s Savepoint) OnCheck() Savepoint   { s.check = true; return s }
func (s Savepoint) OnDeliver() Savepoint { s.deliver = true; return s }

func (s Savepoint) Check(ctx tescrow.Context, db tescrow.KVStore, tx tescrow.Tx, next tescrow.Checker) (*tescrow.CheckResult, error) {
	var res *tescrow.CheckResult
	err := isolate(s.check, db, func(db tescrow.KVStore) (err error) {
		res, err = next.Check(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s Savepoint) Deliver(ctx tescrow.Context, db tescrow.KVStore, tx tescrow.Tx, next tescrow.Deliverer) (*tescrow.DeliverResult, error) {
	var res *tescrow.DeliverResult
	err := isolate(s.deliver, db, func(db tescrow.KVStore) (err error) {
		res, err = next.Deliver(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// isolate calls fn on a cache wrap of db when enabled and db supports it,
// otherwise on db directly.
func isolate(enabled bool, db tescrow.KVStore, fn func(tescrow.KVStore) error) error {
	c, ok := db.(tescrow.CacheableKVStore)
	if !enabled || !ok {
		return fn(db)
	}
	cache := c.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	return errors.Wrap(cache.Write(), "write savepoint")
}
