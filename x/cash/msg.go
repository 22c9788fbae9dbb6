package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/tescrow"
	"github.com/iov-one/tescrow/coin"
	"github.com/iov-one/tescrow/errors"
)

const (
	pathSendMsg = "cash/send"

	sendTxCost int64 = 100

	maxMemoSize int = 128
)

// SendMsg moves coins between two holding accounts. The owner of the source
// account must sign.
type SendMsg struct {
	Source      tescrow.Address `protobuf:"bytes,1,opt,name=source,proto3"`
	Destination tescrow.Address `protobuf:"bytes,2,opt,name=destination,proto3"`
	Amount      *coin.Coin      `protobuf:"bytes,3,opt,name=amount,proto3"`
	Memo        string          `protobuf:"bytes,4,opt,name=memo,proto3"`
}

var _ tescrow.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return pathSendMsg
}

// Validate makes sure that this is sensible
func (m *SendMsg) Validate() error {
	if coin.IsEmpty(m.Amount) {
		return errors.Wrapf(errors.ErrAmount, "non-positive SendMsg: %v", m.Amount)
	}
	if err := m.Amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if err := m.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := m.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if len(m.Memo) > maxMemoSize {
		return errors.Wrap(errors.ErrInput, "memo too long")
	}
	return nil
}

type sendMsgPB SendMsg

func (m *sendMsgPB) Reset()         { *m = sendMsgPB{} }
func (m *sendMsgPB) String() string { return proto.CompactTextString(m) }
func (*sendMsgPB) ProtoMessage()    {}

// Marshal encodes the message as protobuf.
func (m *SendMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*sendMsgPB)(m))
}

// Unmarshal decodes a message created by Marshal.
func (m *SendMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*sendMsgPB)(m))
}
