package server

import (
	"context"
	"flag"
	"net/http"
	"time"

	"github.com/iov-one/tescrow/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagBind      = "bind"
	flagDebug     = "debug"
	flagLogLevel  = "log_level"
	flagMetrics   = "metrics"
	flagDBBackend = "db_backend"
)

// parseFlags applies the start command line flags on top of the given
// configuration.
func parseFlags(cfg Config, args []string) (Config, error) {
	startFlags := flag.NewFlagSet("start", flag.ContinueOnError)
	startFlags.StringVar(&cfg.Bind, flagBind, cfg.Bind, "address server listens on")
	startFlags.BoolVar(&cfg.Debug, flagDebug, cfg.Debug, "call stack returned on error")
	startFlags.StringVar(&cfg.LogLevel, flagLogLevel, cfg.LogLevel, "log level (debug, info, error, none)")
	startFlags.StringVar(&cfg.MetricsAddr, flagMetrics, cfg.MetricsAddr, "prometheus metrics listen address, empty to disable")
	startFlags.StringVar(&cfg.DBBackend, flagDBBackend, cfg.DBBackend, "database backend of the state store")
	if err := startFlags.Parse(args); err != nil {
		return cfg, errors.Wrap(errors.ErrInput, err.Error())
	}
	return cfg, nil
}

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags.
// Application metrics must be registered with the given registerer.
type AppGenerator func(home string, logger log.Logger, cfg Config, reg prometheus.Registerer) (abci.Application, error)

// StartCmd initializes the application and serves it over an ABCI socket
// until the process receives an interrupt or termination signal.
func StartCmd(gen AppGenerator, logger log.Logger, home string, args []string) error {
	cfg, err := LoadConfig(home)
	if err != nil {
		return err
	}
	cfg, err = parseFlags(cfg, args)
	if err != nil {
		return err
	}

	shutdown, err := serve(gen, logger, home, cfg)
	if err != nil {
		return err
	}
	cmn.TrapSignal(logger, func() {
		if err := shutdown(); err != nil {
			logger.Error("shutdown", "err", err)
		}
	})

	// Wait forever. TrapSignal exits the process after the cleanup.
	select {}
}

// serve starts the ABCI server and the metrics endpoint. The returned
// function stops both.
func serve(gen AppGenerator, logger log.Logger, home string, cfg Config) (func() error, error) {
	reg := prometheus.NewRegistry()
	app, err := gen(home, logger, cfg, reg)
	if err != nil {
		return nil, err
	}

	logger.Info("Starting ABCI app", "bind", cfg.Bind)
	svr, err := server.NewServer(cfg.Bind, "socket", app)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot create listener: %s", err)
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return nil, errors.Wrapf(errors.ErrState, "cannot start abci server: %s", err)
	}

	var metrics *http.Server
	if cfg.MetricsAddr != "" {
		metrics = &http.Server{
			Addr:    cfg.MetricsAddr,
			Handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		}
		go func() {
			logger.Info("Serving metrics", "addr", cfg.MetricsAddr)
			if err := metrics.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server stopped", "err", err)
			}
		}()
	}

	return func() error {
		logger.Info("Shutting down")
		if metrics != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := metrics.Shutdown(ctx); err != nil {
				logger.Error("cannot stop metrics server", "err", err)
			}
		}
		if err := svr.Stop(); err != nil {
			return errors.Wrapf(errors.ErrState, "cannot stop abci server: %s", err)
		}
		return nil
	}, nil
}
