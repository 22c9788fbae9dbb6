package sigs

import (
	"github.com/iov-one/tescrow"
	"github.com/iov-one/tescrow/weavetest"
)

// StdTx is a signed transaction used in tests.
type StdTx struct {
	weavetest.Tx
	Signatures []*StdSignature
}

var _ SignedTx = (*StdTx)(nil)
var _ tescrow.Tx = (*StdTx)(nil)

func NewStdTx(payload []byte) *StdTx {
	return &StdTx{
		Tx: weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/sigs", Serialized: payload}},
	}
}

func (tx *StdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx *StdTx) GetSignBytes() ([]byte, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	return msg.Marshal()
}

// SigCheckHandler stores the seen signers on each call
type SigCheckHandler struct {
	Signers []tescrow.Condition
}

var _ tescrow.Handler = (*SigCheckHandler)(nil)

func (s *SigCheckHandler) Check(ctx tescrow.Context, store tescrow.KVStore, tx tescrow.Tx) (*tescrow.CheckResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &tescrow.CheckResult{}, nil
}

func (s *SigCheckHandler) Deliver(ctx tescrow.Context, store tescrow.KVStore, tx tescrow.Tx) (*tescrow.DeliverResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &tescrow.DeliverResult{}, nil
}
