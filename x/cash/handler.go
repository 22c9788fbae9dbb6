package cash

import (
	"github.com/iov-one/tescrow"
	"github.com/iov-one/tescrow/errors"
	"github.com/iov-one/tescrow/x"
)

// RegisterRoutes adds the cash/send handler to r.
func RegisterRoutes(r tescrow.Registry, auth x.Authenticator, control Controller) {
	r.Handle(pathSendMsg, NewSendHandler(auth, control))
}

// RegisterQuery exposes the wallet bucket under /wallets.
func RegisterQuery(qr tescrow.QueryRouter) {
	NewBucket().Register("wallets", qr)
}

// SendHandler moves coins between two accounts. The source must be
// controlled by a signer, see Controller.Transfer.
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ tescrow.Handler = SendHandler{}

func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{auth: auth, control: control}
}

// Check rejects a send the source cannot cover. Authorization is left to
// Deliver.
func (h SendHandler) Check(ctx tescrow.Context, db tescrow.KVStore, tx tescrow.Tx) (*tescrow.CheckResult, error) {
	msg, err := loadSend(tx)
	if err != nil {
		return nil, err
	}
	have, err := h.control.Balance(db, msg.Source)
	if err != nil {
		return nil, err
	}
	if !have.Contains(*msg.Amount) {
		return nil, errors.Wrapf(errors.ErrInsufficientAmount, "%s holds less than %s", msg.Source, msg.Amount)
	}
	return &tescrow.CheckResult{GasAllocated: sendTxCost}, nil
}

func (h SendHandler) Deliver(ctx tescrow.Context, db tescrow.KVStore, tx tescrow.Tx) (*tescrow.DeliverResult, error) {
	msg, err := loadSend(tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Transfer(ctx, h.auth, db, msg.Source, msg.Destination, *msg.Amount); err != nil {
		return nil, err
	}
	return &tescrow.DeliverResult{}, nil
}

func loadSend(tx tescrow.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := tescrow.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &msg, nil
}
