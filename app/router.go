package app

import (
	"fmt"
	"regexp"

	"github.com/iov-one/tescrow"
	"github.com/iov-one/tescrow/errors"
)

var validPath = regexp.MustCompile(`^[a-zA-Z0-9_\-/]+$`)

// Router dispatches a transaction to the handler registered for the path
// of its message.
type Router struct {
	handlers map[string]tescrow.Handler
}

var (
	_ tescrow.Registry = (*Router)(nil)
	_ tescrow.Handler  = (*Router)(nil)
)

func NewRouter() *Router {
	return &Router{handlers: make(map[string]tescrow.Handler)}
}

// Handle binds h to path. It panics on a malformed or taken path.
func (r *Router) Handle(path string, h tescrow.Handler) {
	if !validPath.MatchString(path) {
		panic(fmt.Sprintf("invalid route %q", path))
	}
	if _, taken := r.handlers[path]; taken {
		panic(fmt.Sprintf("route %q registered twice", path))
	}
	r.handlers[path] = h
}

func (r *Router) Check(ctx tescrow.Context, db tescrow.KVStore, tx tescrow.Tx) (*tescrow.CheckResult, error) {
	h, err := r.route(tx)
	if err != nil {
		return nil, err
	}
	return h.Check(ctx, db, tx)
}

func (r *Router) Deliver(ctx tescrow.Context, db tescrow.KVStore, tx tescrow.Tx) (*tescrow.DeliverResult, error) {
	h, err := r.route(tx)
	if err != nil {
		return nil, err
	}
	return h.Deliver(ctx, db, tx)
}

// route fails with ErrNotFound when no handler is bound to the message
// path.
func (r *Router) route(tx tescrow.Tx) (tescrow.Handler, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	if msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	}
	h, ok := r.handlers[msg.Path()]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", msg.Path())
	}
	return h, nil
}
