package utils

import (
	"github.com/iov-one/tescrow"
	"github.com/iov-one/tescrow/errors"
)

// Recovery converts a panic anywhere below it into an ErrPanic result, so a
// faulty handler fails its transaction instead of the node.
type Recovery struct{}

var _ tescrow.Decorator = Recovery{}

func NewRecovery() Recovery { return Recovery{} }

func (Recovery) Check(ctx tescrow.Context, db tescrow.KVStore, tx tescrow.Tx, next tescrow.Checker) (res *tescrow.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, db, tx)
}

func (Recovery) Deliver(ctx tescrow.Context, db tescrow.KVStore, tx tescrow.Tx, next tescrow.Deliverer) (res *tescrow.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, db, tx)
}
