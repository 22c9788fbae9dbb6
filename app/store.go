package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iov-one/tescrow"
	"github.com/iov-one/tescrow/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// StoreApp implements the state side of abci.Application: Info, InitChain,
// BeginBlock, EndBlock, Commit and Query. BaseApp adds transactions on top.
//
// ABCI calls other than CheckTx, DeliverTx and Query carry no user input,
// so a failure there means the node cannot continue and StoreApp panics.
type StoreApp struct {
	name        string
	state       *appState
	initializer tescrow.Initializer
	queries     tescrow.QueryRouter
	logger      log.Logger
	debug       bool

	// chainID is empty until InitChain stores it.
	chainID string

	// appCtx lives as long as the application, blockCtx is replaced on
	// every BeginBlock.
	appCtx   tescrow.Context
	blockCtx tescrow.Context
}

// NewStoreApp opens the latest version of root. It panics when the stored
// state cannot be read.
func NewStoreApp(name string, root tescrow.CommitKVStore, queries tescrow.QueryRouter, ctx tescrow.Context) *StoreApp {
	state, err := openState(root)
	if err != nil {
		panic(err)
	}
	chainID, err := loadChainID(state.deliver)
	if err != nil {
		panic(err)
	}
	last, err := state.latest()
	if err != nil {
		panic(err)
	}

	s := &StoreApp{
		name:    name,
		state:   state,
		queries: queries,
		appCtx:  ctx,
		chainID: chainID,
	}
	if chainID != "" {
		s.appCtx = tescrow.WithChainID(s.appCtx, chainID)
	}
	s = s.WithLogger(log.NewNopLogger())
	s.blockCtx = tescrow.WithHeight(s.appCtx, last.Version)
	return s
}

// WithInit sets the initializer called with the genesis app state.
func (s *StoreApp) WithInit(init tescrow.Initializer) *StoreApp {
	s.initializer = init
	return s
}

// WithDebug makes error responses carry the full error with stack trace.
func (s *StoreApp) WithDebug(debug bool) *StoreApp {
	s.debug = debug
	return s
}

// WithLogger sets the application logger. Handlers get it from the
// context.
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.logger = logger
	s.appCtx = tescrow.WithLogger(s.appCtx, logger)
	return s
}

func (s *StoreApp) Logger() log.Logger                     { return s.logger }
func (s *StoreApp) GetChainID() string                     { return s.chainID }
func (s *StoreApp) BlockContext() tescrow.Context          { return s.blockCtx }
func (s *StoreApp) DeliverStore() tescrow.CacheableKVStore { return s.state.deliver }
func (s *StoreApp) CheckStore() tescrow.CacheableKVStore   { return s.state.check }

// Info reports the last committed height and app hash.
func (s *StoreApp) Info(abci.RequestInfo) abci.ResponseInfo {
	last, err := s.state.latest()
	if err != nil {
		panic(err)
	}
	s.logger.Info("Info synced", "height", last.Version, "hash", fmt.Sprintf("%X", last.Hash))
	return abci.ResponseInfo{
		Data:             s.name,
		Version:          tescrow.Version(),
		LastBlockHeight:  last.Version,
		LastBlockAppHash: last.Hash,
	}
}

func (s *StoreApp) SetOption(abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "Not Implemented"}
}

// InitChain stores the chain id and runs the initializer over the genesis
// app state. It is called once in the lifetime of a chain.
func (s *StoreApp) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	if err := s.initChain(req.ChainId, req.AppStateBytes); err != nil {
		panic(err)
	}
	return abci.ResponseInitChain{}
}

func (s *StoreApp) initChain(chainID string, appState []byte) error {
	if s.chainID != "" {
		return errors.Wrapf(errors.ErrState, "chain %s already initialized", s.chainID)
	}
	if len(appState) == 0 {
		return errors.Wrap(errors.ErrState, "genesis has no app_state, run init first")
	}
	var opts tescrow.Options
	if err := json.Unmarshal(appState, &opts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	db := s.state.deliver
	if err := saveChainID(db, chainID); err != nil {
		return err
	}
	s.chainID = chainID
	s.appCtx = tescrow.WithChainID(s.appCtx, chainID)

	if s.initializer == nil {
		return nil
	}
	return s.initializer.FromGenesis(opts, db)
}

// BeginBlock starts the context of the block from its header.
func (s *StoreApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	ctx := tescrow.WithHeader(s.appCtx, req.Header)
	s.blockCtx = tescrow.WithHeight(ctx, req.Header.GetHeight())
	return abci.ResponseBeginBlock{}
}

// EndBlock never changes the validator set.
func (s *StoreApp) EndBlock(abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}

// Commit persists the block and returns the new app hash.
func (s *StoreApp) Commit() abci.ResponseCommit {
	id, err := s.state.commit()
	if err != nil {
		panic(err)
	}
	s.logger.Debug("Commit synced", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseCommit{Data: id.Hash}
}

// Query reads the last committed version.
//
// The path names the query handler, for example "/escrows" or
// "/escrows/maker", optionally followed by "?prefix" for a prefix query.
// Data is the key or prefix and the requested height is ignored. Key and
// Value of the response are ResultSets of equal length.
func (s *StoreApp) Query(req abci.RequestQuery) abci.ResponseQuery {
	res, err := s.query(req.Path, req.Data)
	if err != nil {
		return tescrow.QueryError(err, s.debug)
	}
	return res
}

func (s *StoreApp) query(fullPath string, data []byte) (abci.ResponseQuery, error) {
	var res abci.ResponseQuery
	path, mod := splitPath(fullPath)
	h := s.queries.Handler(path)
	if h == nil {
		return res, errors.Wrapf(errors.ErrNotFound, "no query handler for %q", fullPath)
	}
	last, err := s.state.latest()
	if err != nil {
		return res, err
	}

	db := s.state.root.CacheWrap()
	defer db.Discard()
	models, err := h.Query(db, mod, data)
	if err != nil {
		return res, err
	}

	res.Height = last.Version
	if res.Key, err = ResultsFromKeys(models).Marshal(); err != nil {
		return res, errors.Wrap(err, "keys")
	}
	if res.Value, err = ResultsFromValues(models).Marshal(); err != nil {
		return res, errors.Wrap(err, "values")
	}
	return res, nil
}

// splitPath cuts the query modifier following "?" from the path.
func splitPath(full string) (path, mod string) {
	if i := strings.IndexByte(full, '?'); i >= 0 {
		return full[:i], full[i+1:]
	}
	return full, ""
}
