package utils

import (
	"context"
	"testing"

	"github.com/iov-one/tescrow/errors"
	"github.com/iov-one/tescrow/store"
	"github.com/iov-one/tescrow/weavetest"
	"github.com/stretchr/testify/assert"
)

func TestRecovery(t *testing.T) {
	h := weavetest.PanicHandler{Msg: "boom"}
	r := NewRecovery()

	ctx := context.Background()
	s := store.MemStore()

	// Panic handler panics. Test the test tool.
	assert.Panics(t, func() { _, _ = h.Check(ctx, s, nil) })
	assert.Panics(t, func() { _, _ = h.Deliver(ctx, s, nil) })

	// Recovery wrapped handler returns an error.
	_, err := r.Check(ctx, s, nil, h)
	assert.True(t, errors.ErrPanic.Is(err))

	_, err = r.Deliver(ctx, s, nil, h)
	assert.True(t, errors.ErrPanic.Is(err))
}
