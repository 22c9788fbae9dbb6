package app

import (
	"reflect"

	"github.com/iov-one/tescrow"
)

// Decorators is a chain of decorators waiting for its final handler.
//
//	app.ChainDecorators(
//		utils.NewLogging(),
//		utils.NewRecovery(),
//		sigs.NewDecorator(),
//	).WithHandler(router)
type Decorators struct {
	chain []tescrow.Decorator
}

// ChainDecorators starts a chain. Nil decorators, including typed nil
// pointers, are left out so optional decorators can be passed as is.
func ChainDecorators(ds ...tescrow.Decorator) Decorators {
	return Decorators{}.Chain(ds...)
}

// Chain returns a copy with ds appended.
func (d Decorators) Chain(ds ...tescrow.Decorator) Decorators {
	chain := make([]tescrow.Decorator, 0, len(d.chain)+len(ds))
	chain = append(chain, d.chain...)
	for _, dec := range ds {
		if !isNilDecorator(dec) {
			chain = append(chain, dec)
		}
	}
	return Decorators{chain: chain}
}

func isNilDecorator(d tescrow.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler closes the chain. The first decorator runs first and h runs
// last.
func (d Decorators) WithHandler(h tescrow.Handler) tescrow.Handler {
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = decorated{dec: d.chain[i], next: h}
	}
	return h
}

// decorated calls one decorator with the rest of the chain as next.
type decorated struct {
	dec  tescrow.Decorator
	next tescrow.Handler
}

func (d decorated) Check(ctx tescrow.Context, db tescrow.KVStore, tx tescrow.Tx) (*tescrow.CheckResult, error) {
	return d.dec.Check(ctx, db, tx, d.next)
}

func (d decorated) Deliver(ctx tescrow.Context, db tescrow.KVStore, tx tescrow.Tx) (*tescrow.DeliverResult, error) {
	return d.dec.Deliver(ctx, db, tx, d.next)
}
