package app

import (
	"github.com/iov-one/tescrow"
	"github.com/iov-one/tescrow/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp is a complete abci.Application. It decodes every transaction and
// runs it through the handler, in the check or deliver cache of StoreApp.
type BaseApp struct {
	*StoreApp
	decode  tescrow.TxDecoder
	handler tescrow.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp builds the application. With debug set, error responses
// carry full messages and stack traces.
func NewBaseApp(s *StoreApp, decode tescrow.TxDecoder, h tescrow.Handler, debug bool) BaseApp {
	return BaseApp{
		StoreApp: s.WithDebug(debug),
		decode:   decode,
		handler:  h,
		debug:    debug,
	}
}

func (b BaseApp) CheckTx(raw []byte) abci.ResponseCheckTx {
	tx, err := b.decodeTx(raw)
	if err != nil {
		return tescrow.CheckTxError(err, b.debug)
	}
	res, err := b.handler.Check(b.txContext("check_tx", tx), b.CheckStore(), tx)
	return tescrow.CheckOrError(res, err, b.debug)
}

func (b BaseApp) DeliverTx(raw []byte) abci.ResponseDeliverTx {
	tx, err := b.decodeTx(raw)
	if err != nil {
		return tescrow.DeliverTxError(err, b.debug)
	}
	res, err := b.handler.Deliver(b.txContext("deliver_tx", tx), b.DeliverStore(), tx)
	return tescrow.DeliverOrError(res, err, b.debug)
}

// txContext adds the call and the message path to the block logger.
func (b BaseApp) txContext(call string, tx tescrow.Tx) tescrow.Context {
	return tescrow.WithLogInfo(b.BlockContext(), "call", call, "path", tescrow.GetPath(tx))
}

// decodeTx turns a decoder panic into ErrPanic. Transactions are client
// input and must not crash the node.
func (b BaseApp) decodeTx(raw []byte) (tx tescrow.Tx, err error) {
	defer errors.Recover(&err)
	return b.decode(raw)
}
