package weavetest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/iov-one/tescrow"
	"github.com/iov-one/tescrow/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// Tester is the part of testing.TB the runner needs.
type Tester interface {
	Helper()
	Fatalf(string, ...interface{})
}

// TxRunner executes transactions inside a block opened by InBlock.
type TxRunner interface {
	CheckTx(tescrow.Tx) error
	DeliverTx(tescrow.Tx) (*abci.ResponseDeliverTx, error)
}

// ABCIRunner feeds serialized transactions to an abci.Application and takes
// care of block boundaries. A block that cannot be built fails the test.
type ABCIRunner struct {
	t       Tester
	app     abci.Application
	chainID string
	height  int64
}

func NewABCIRunner(t Tester, app abci.Application, chainID string) *ABCIRunner {
	return &ABCIRunner{t: t, app: app, chainID: chainID}
}

// Height is the height of the last block built.
func (r *ABCIRunner) Height() int64 { return r.height }

// InitChain loads genesis, serialized as JSON, in a block of its own.
func (r *ABCIRunner) InitChain(genesis interface{}) {
	r.t.Helper()
	state, err := json.Marshal(genesis)
	if err != nil {
		r.t.Fatalf("genesis: %s", err)
	}
	changed := r.InBlock(func(TxRunner) error {
		r.app.InitChain(abci.RequestInitChain{
			Time:          time.Now(),
			ChainId:       r.chainID,
			AppStateBytes: state,
		})
		return nil
	})
	if !changed {
		r.t.Fatalf("genesis left the state unchanged")
	}
}

// InBlock opens a new block, runs fn and commits. It reports whether the
// app hash changed.
func (r *ABCIRunner) InBlock(fn func(TxRunner) error) bool {
	r.t.Helper()
	r.height++
	before := r.app.Info(abci.RequestInfo{}).LastBlockAppHash

	r.app.BeginBlock(abci.RequestBeginBlock{
		Header: abci.Header{ChainID: r.chainID, Height: r.height, Time: time.Now()},
	})
	if err := fn(r); err != nil {
		r.t.Fatalf("block %d: %+v", r.height, err)
	}
	r.app.EndBlock(abci.RequestEndBlock{Height: r.height})

	return !bytes.Equal(before, r.app.Commit().Data)
}

func (r *ABCIRunner) CheckTx(tx tescrow.Tx) error {
	raw, err := tx.Marshal()
	if err != nil {
		return errors.Wrap(err, "marshal tx")
	}
	if res := r.app.CheckTx(raw); res.Code != errors.SuccessABCICode {
		return ABCIError{Code: res.Code, Log: res.Log}
	}
	return nil
}

// DeliverTx returns the response even when the transaction failed, together
// with an ABCIError.
func (r *ABCIRunner) DeliverTx(tx tescrow.Tx) (*abci.ResponseDeliverTx, error) {
	raw, err := tx.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal tx")
	}
	res := r.app.DeliverTx(raw)
	if res.Code != errors.SuccessABCICode {
		return &res, ABCIError{Code: res.Code, Log: res.Log}
	}
	return &res, nil
}

// ABCIError is a failed ABCI response.
type ABCIError struct {
	Code uint32
	Log  string
}

func (e ABCIError) Error() string    { return fmt.Sprintf("%d: %s", e.Code, e.Log) }
func (e ABCIError) ABCICode() uint32 { return e.Code }

// Is reports whether the response was produced by an error of kind.
func (e ABCIError) Is(kind *errors.Error) bool {
	return kind != nil && kind.ABCICode() == e.Code
}
