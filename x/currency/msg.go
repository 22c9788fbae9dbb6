package currency

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/tescrow"
	"github.com/iov-one/tescrow/coin"
	"github.com/iov-one/tescrow/errors"
)

const (
	pathCreateMsg = "currency/create"
	pathMintMsg   = "currency/mint"
)

// CreateMsg registers a new asset class.
type CreateMsg struct {
	Ticker        string          `protobuf:"bytes,1,opt,name=ticker,proto3"`
	Name          string          `protobuf:"bytes,2,opt,name=name,proto3"`
	MintAuthority tescrow.Address `protobuf:"bytes,3,opt,name=mint_authority,proto3"`
}

var _ tescrow.Msg = (*CreateMsg)(nil)

// Path returns the routing path for this message
func (CreateMsg) Path() string {
	return pathCreateMsg
}

// Validate checks the ticker, name and mint authority.
func (m *CreateMsg) Validate() error {
	if !coin.IsCC(m.Ticker) {
		return errors.Wrapf(errors.ErrCurrency, "ticker %q", m.Ticker)
	}
	if !isTokenName(m.Name) {
		return errors.Wrapf(errors.ErrInput, "invalid token name %q", m.Name)
	}
	if err := m.MintAuthority.Validate(); err != nil {
		return errors.Wrap(err, "mint authority")
	}
	return nil
}

type createMsgPB CreateMsg

func (m *createMsgPB) Reset()         { *m = createMsgPB{} }
func (m *createMsgPB) String() string { return proto.CompactTextString(m) }
func (*createMsgPB) ProtoMessage()    {}

// Marshal encodes the message as protobuf.
func (m *CreateMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*createMsgPB)(m))
}

// Unmarshal decodes a message created by Marshal.
func (m *CreateMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*createMsgPB)(m))
}

// MintMsg creates new units of an asset class in a holding account. The
// mint authority of the asset class must sign.
type MintMsg struct {
	Destination tescrow.Address `protobuf:"bytes,1,opt,name=destination,proto3"`
	Amount      *coin.Coin      `protobuf:"bytes,2,opt,name=amount,proto3"`
}

var _ tescrow.Msg = (*MintMsg)(nil)

// Path returns the routing path for this message
func (MintMsg) Path() string {
	return pathMintMsg
}

// Validate checks the destination and amount.
func (m *MintMsg) Validate() error {
	if err := m.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if coin.IsEmpty(m.Amount) {
		return errors.Wrap(errors.ErrAmount, "non-positive amount")
	}
	return m.Amount.Validate()
}

type mintMsgPB MintMsg

func (m *mintMsgPB) Reset()         { *m = mintMsgPB{} }
func (m *mintMsgPB) String() string { return proto.CompactTextString(m) }
func (*mintMsgPB) ProtoMessage()    {}

// Marshal encodes the message as protobuf.
func (m *MintMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*mintMsgPB)(m))
}

// Unmarshal decodes a message created by Marshal.
func (m *MintMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*mintMsgPB)(m))
}
