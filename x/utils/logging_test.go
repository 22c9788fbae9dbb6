package utils

import (
	"bytes"
	"context"
	"testing"

	"github.com/iov-one/tescrow"
	"github.com/iov-one/tescrow/errors"
	"github.com/iov-one/tescrow/store"
	"github.com/iov-one/tescrow/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	ctx := tescrow.WithLogger(context.Background(), log.NewTMJSONLogger(&buf))
	db := store.MemStore()
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "escrow/refund"}}

	_, err := NewLogging().Deliver(ctx, db, tx, &weavetest.Handler{
		DeliverResult: tescrow.DeliverResult{Log: "refunded"},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"path":"escrow/refund"`)
	assert.Contains(t, buf.String(), `"_msg":"refunded"`)
	assert.Contains(t, buf.String(), `"level":"info"`)

	buf.Reset()
	_, err = NewLogging().Deliver(ctx, db, tx, &weavetest.Handler{DeliverErr: errors.ErrNotFound})
	require.True(t, errors.ErrNotFound.Is(err))
	assert.Contains(t, buf.String(), `"level":"error"`)
	assert.Contains(t, buf.String(), `not found`)
}
