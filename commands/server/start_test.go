package server

import (
	"testing"
	"time"

	"github.com/iov-one/tescrow/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

func TestServeUntilStopped(t *testing.T) {
	home, cleanup := tempHome(t)
	defer cleanup()

	cfg := DefaultConfig()
	cfg.Bind = "tcp://127.0.0.1:0"
	cfg.MetricsAddr = "127.0.0.1:0"

	var gotHome string
	gen := func(home string, logger log.Logger, cfg Config, reg prometheus.Registerer) (abci.Application, error) {
		gotHome = home
		return abci.NewBaseApplication(), nil
	}

	shutdown, err := serve(gen, log.NewNopLogger(), home, cfg)
	require.NoError(t, err)
	assert.Equal(t, home, gotHome)

	done := make(chan error, 1)
	go func() { done <- shutdown() }()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServeGeneratorFailure(t *testing.T) {
	gen := func(string, log.Logger, Config, prometheus.Registerer) (abci.Application, error) {
		return nil, errors.ErrState
	}
	shutdown, err := serve(gen, log.NewNopLogger(), "", DefaultConfig())
	assert.True(t, errors.ErrState.Is(err))
	assert.Nil(t, shutdown)
}
