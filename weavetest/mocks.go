package weavetest

import "github.com/iov-one/tescrow"

// calls counts how often the check and deliver paths of a mock ran.
type calls struct {
	check, deliver int
}

func (c *calls) CheckCallCount() int   { return c.check }
func (c *calls) DeliverCallCount() int { return c.deliver }
func (c *calls) CallCount() int        { return c.check + c.deliver }

// Handler returns the configured result, or the configured error if set.
type Handler struct {
	calls

	CheckResult tescrow.CheckResult
	CheckErr    error

	DeliverResult tescrow.DeliverResult
	DeliverErr    error
}

var _ tescrow.Handler = (*Handler)(nil)

func (h *Handler) Check(tescrow.Context, tescrow.KVStore, tescrow.Tx) (*tescrow.CheckResult, error) {
	h.check++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(tescrow.Context, tescrow.KVStore, tescrow.Tx) (*tescrow.DeliverResult, error) {
	h.deliver++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

// Decorator fails with CheckErr or DeliverErr when set and otherwise calls
// the next handler. Every call is counted, failed or not.
type Decorator struct {
	calls

	CheckErr   error
	DeliverErr error
}

var _ tescrow.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx tescrow.Context, db tescrow.KVStore, tx tescrow.Tx, next tescrow.Checker) (*tescrow.CheckResult, error) {
	d.check++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx tescrow.Context, db tescrow.KVStore, tx tescrow.Tx, next tescrow.Deliverer) (*tescrow.DeliverResult, error) {
	d.deliver++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

// WriteHandler stores Key=Value and then fails with Err, if set. It is used
// to see whether writes of a failed call survive.
type WriteHandler struct {
	Key, Value []byte
	Err        error
}

var _ tescrow.Handler = WriteHandler{}

func (h WriteHandler) write(db tescrow.KVStore) error {
	if err := db.Set(h.Key, h.Value); err != nil {
		return err
	}
	return h.Err
}

func (h WriteHandler) Check(_ tescrow.Context, db tescrow.KVStore, _ tescrow.Tx) (*tescrow.CheckResult, error) {
	if err := h.write(db); err != nil {
		return nil, err
	}
	return &tescrow.CheckResult{}, nil
}

func (h WriteHandler) Deliver(_ tescrow.Context, db tescrow.KVStore, _ tescrow.Tx) (*tescrow.DeliverResult, error) {
	if err := h.write(db); err != nil {
		return nil, err
	}
	return &tescrow.DeliverResult{}, nil
}

// PanicHandler panics with Msg.
type PanicHandler struct {
	Msg string
}

var _ tescrow.Handler = PanicHandler{}

func (h PanicHandler) Check(tescrow.Context, tescrow.KVStore, tescrow.Tx) (*tescrow.CheckResult, error) {
	panic(h.Msg)
}

func (h PanicHandler) Deliver(tescrow.Context, tescrow.KVStore, tescrow.Tx) (*tescrow.DeliverResult, error) {
	panic(h.Msg)
}
