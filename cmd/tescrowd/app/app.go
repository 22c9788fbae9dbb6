/*
Package app links together all the various components
to construct the tescrow node application.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/tescrow"
	"github.com/iov-one/tescrow/app"
	"github.com/iov-one/tescrow/errors"
	"github.com/iov-one/tescrow/store/iavl"
	"github.com/iov-one/tescrow/x"
	"github.com/iov-one/tescrow/x/cash"
	"github.com/iov-one/tescrow/x/currency"
	"github.com/iov-one/tescrow/x/escrow"
	"github.com/iov-one/tescrow/x/sigs"
	"github.com/iov-one/tescrow/x/utils"
)

// Name is returned by the ABCI Info call.
const Name = "tescrow"

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication,
// logging, metrics and recovery
func Chain(metrics utils.Metrics) app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		metrics,
		utils.NewRecovery(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// on DeliverTx, bad tx will increment the sequence
		// even if the message fails
		utils.NewSavepoint().OnDeliver(),
		utils.NewActionTagger(),
	)
}

// Router returns a router dispatching to the cash, currency and escrow
// handlers.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	ctrl := cash.NewController(cash.NewBucket(), currency.NewIssuer())
	cash.RegisterRoutes(r, authFn, ctrl)
	// anyone can register a token, escrow claim tokens are created by
	// the maker with the derived escrow authority as mint authority
	currency.RegisterRoutes(r, authFn, nil, ctrl)
	escrow.RegisterRoutes(r, authFn, ctrl)
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/wallets", "/tokens", "/auth" and "/escrows"
func QueryRouter() tescrow.QueryRouter {
	r := tescrow.NewQueryRouter()
	r.RegisterAll(
		escrow.RegisterQuery,
		cash.RegisterQuery,
		currency.RegisterQuery,
		sigs.RegisterQuery,
	)
	return r
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack(metrics utils.Metrics) tescrow.Handler {
	authFn := Authenticator()
	return Chain(metrics).WithHandler(Router(authFn))
}

// Initializers returns the genesis initializers of all extensions.
func Initializers() tescrow.Initializer {
	return app.ChainInitializers(
		cash.Initializer{},
		currency.Initializer{},
	)
}

// Application constructs a basic ABCI application with
// the given arguments. If you are not sure what to use
// for the Handler, just use Stack().
func Application(name string, h tescrow.Handler,
	tx tescrow.TxDecoder, kv tescrow.CommitKVStore, debug bool) app.BaseApp {

	store := app.NewStoreApp(name, kv, QueryRouter(), context.Background())
	store.WithInit(Initializers())
	return app.NewBaseApp(store, tx, h, debug)
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path using the given database backend.
func CommitKVStore(dbPath, backend string) (tescrow.CommitKVStore, error) {
	// Expand the path fully
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}

	// Some external calls accidently add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	// Split the database name into it's components (dir, name)
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name, backend), nil
}

