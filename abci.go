package tescrow

import (
	"github.com/iov-one/tescrow/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

// CheckResult is the outcome of a successful CheckTx. Failures are returned
// as errors instead.
type CheckResult struct {
	Data []byte
	Log  string

	// GasAllocated caps the work the transaction may cause and GasPayment
	// is what it pays for. Both are reported to tendermint as wanted gas.
	GasAllocated int64
	GasPayment   int64
}

func (c CheckResult) ToABCI() abci.ResponseCheckTx {
	return abci.ResponseCheckTx{Data: c.Data, Log: c.Log, GasWanted: c.GasAllocated}
}

// DeliverResult is the outcome of a successful DeliverTx. Tags are indexed
// by tendermint and let clients search the transaction history, for example
// by escrow address.
type DeliverResult struct {
	Data []byte
	Log  string
	Tags []common.KVPair
}

func (d DeliverResult) ToABCI() abci.ResponseDeliverTx {
	return abci.ResponseDeliverTx{Data: d.Data, Log: d.Log, Tags: d.Tags}
}

// Tag builds a deliver tag.
func Tag(key string, value []byte) common.KVPair {
	return common.KVPair{Key: []byte(key), Value: value}
}

// CheckOrError returns the response for the outcome of a check.
func CheckOrError(res *CheckResult, err error, debug bool) abci.ResponseCheckTx {
	if err != nil {
		return CheckTxError(err, debug)
	}
	return res.ToABCI()
}

// DeliverOrError returns the response for the outcome of a deliver.
func DeliverOrError(res *DeliverResult, err error, debug bool) abci.ResponseDeliverTx {
	if err != nil {
		return DeliverTxError(err, debug)
	}
	return res.ToABCI()
}

// CheckTxError returns the failed check response for err. See
// errors.ABCIInfo for what is exposed.
func CheckTxError(err error, debug bool) abci.ResponseCheckTx {
	code, log := abciFailure("check", err, debug)
	return abci.ResponseCheckTx{Code: code, Log: log}
}

// DeliverTxError returns the failed deliver response for err.
func DeliverTxError(err error, debug bool) abci.ResponseDeliverTx {
	code, log := abciFailure("deliver", err, debug)
	return abci.ResponseDeliverTx{Code: code, Log: log}
}

// QueryError returns the failed query response for err.
func QueryError(err error, debug bool) abci.ResponseQuery {
	code, log := errors.ABCIInfo(err, debug)
	return abci.ResponseQuery{Code: code, Log: log}
}

func abciFailure(call string, err error, debug bool) (uint32, string) {
	code, log := errors.ABCIInfo(err, debug)
	if code == errors.SuccessABCICode {
		return code, log
	}
	return code, "cannot " + call + " tx: " + log
}
