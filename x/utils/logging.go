package utils

import (
	"time"

	"github.com/iov-one/tescrow"
)

// Logging writes one entry per transaction with its path and duration.
// Failures are logged as errors. Successful deliveries are logged at info
// and successful checks at debug.
type Logging struct{}

var _ tescrow.Decorator = Logging{}

func NewLogging() Logging { return Logging{} }

func (Logging) Check(ctx tescrow.Context, db tescrow.KVStore, tx tescrow.Tx, next tescrow.Checker) (*tescrow.CheckResult, error) {
	began := time.Now()
	res, err := next.Check(ctx, db, tx)
	var msg string
	if res != nil {
		msg = res.Log
	}
	logTx(ctx, tx, began, msg, err, true)
	return res, err
}

func (Logging) Deliver(ctx tescrow.Context, db tescrow.KVStore, tx tescrow.Tx, next tescrow.Deliverer) (*tescrow.DeliverResult, error) {
	began := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	var msg string
	if res != nil {
		msg = res.Log
	}
	logTx(ctx, tx, began, msg, err, false)
	return res, err
}

func logTx(ctx tescrow.Context, tx tescrow.Tx, began time.Time, msg string, err error, check bool) {
	l := tescrow.GetLogger(ctx).With(
		"path", tescrow.GetPath(tx),
		"duration", time.Since(began)/time.Microsecond,
	)
	switch {
	case err != nil:
		l.With("err", err).Error(msg)
	case check:
		l.Debug(msg)
	default:
		l.Info(msg)
	}
}
