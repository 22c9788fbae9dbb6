package escrow

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/tescrow"
	"github.com/iov-one/tescrow/coin"
	"github.com/iov-one/tescrow/errors"
)

const (
	pathCreateMsg = "escrow/create"
	pathClaimMsg  = "escrow/claim"
	pathRefundMsg = "escrow/refund"
	pathSettleMsg = "escrow/settle"
)

var (
	_ tescrow.Msg = (*CreateMsg)(nil)
	_ tescrow.Msg = (*ClaimMsg)(nil)
	_ tescrow.Msg = (*RefundMsg)(nil)
	_ tescrow.Msg = (*SettleMsg)(nil)
)

// CreateMsg opens a new escrow. The maker must sign. The deposit is taken
// from MakerHolding and the claim token is minted to TakerHolding, the
// associated holding account of the taker.
type CreateMsg struct {
	Maker           tescrow.Address `protobuf:"bytes,1,opt,name=maker,proto3"`
	Taker           tescrow.Address `protobuf:"bytes,2,opt,name=taker,proto3"`
	MakerAssetClass string          `protobuf:"bytes,3,opt,name=maker_asset_class,proto3"`
	TakerAssetClass string          `protobuf:"bytes,4,opt,name=taker_asset_class,proto3"`
	MakerHolding    tescrow.Address `protobuf:"bytes,5,opt,name=maker_holding,proto3"`
	TakerHolding    tescrow.Address `protobuf:"bytes,6,opt,name=taker_holding,proto3"`
	Escrow          tescrow.Address `protobuf:"bytes,7,opt,name=escrow,proto3"`
	Vault           tescrow.Address `protobuf:"bytes,8,opt,name=vault,proto3"`
	Authority       tescrow.Address `protobuf:"bytes,9,opt,name=authority,proto3"`
	Seed            uint64          `protobuf:"varint,10,opt,name=seed,proto3"`
	DepositAmount   uint64          `protobuf:"varint,11,opt,name=deposit_amount,proto3"`
	Expiry          uint64          `protobuf:"varint,12,opt,name=expiry,proto3"`
	LockingPeriod   uint64          `protobuf:"varint,13,opt,name=locking_period,proto3"`
}

// Path returns the routing path for this message
func (CreateMsg) Path() string {
	return pathCreateMsg
}

// Validate makes sure that this is sensible
func (m *CreateMsg) Validate() error {
	if err := validateAddresses(map[string]tescrow.Address{
		"maker":         m.Maker,
		"taker":         m.Taker,
		"maker holding": m.MakerHolding,
		"taker holding": m.TakerHolding,
		"escrow":        m.Escrow,
		"vault":         m.Vault,
		"authority":     m.Authority,
	}); err != nil {
		return err
	}
	if !coin.IsCC(m.MakerAssetClass) {
		return errors.Wrapf(errors.ErrCurrency, "maker asset class %q", m.MakerAssetClass)
	}
	if !coin.IsCC(m.TakerAssetClass) {
		return errors.Wrapf(errors.ErrCurrency, "taker asset class %q", m.TakerAssetClass)
	}
	if m.MakerAssetClass == m.TakerAssetClass {
		return errors.Wrap(errors.ErrCurrency, "asset classes must differ")
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

// ClaimMsg deposits one claim token into the vault. The taker must sign.
type ClaimMsg struct {
	Taker        tescrow.Address `protobuf:"bytes,1,opt,name=taker,proto3"`
	TakerHolding tescrow.Address `protobuf:"bytes,2,opt,name=taker_holding,proto3"`
	Escrow       tescrow.Address `protobuf:"bytes,3,opt,name=escrow,proto3"`
	Vault        tescrow.Address `protobuf:"bytes,4,opt,name=vault,proto3"`
	Authority    tescrow.Address `protobuf:"bytes,5,opt,name=authority,proto3"`
}

// Path returns the routing path for this message
func (ClaimMsg) Path() string {
	return pathClaimMsg
}

// Validate makes sure that this is sensible
func (m *ClaimMsg) Validate() error {
	return validateAddresses(map[string]tescrow.Address{
		"taker":         m.Taker,
		"taker holding": m.TakerHolding,
		"escrow":        m.Escrow,
		"vault":         m.Vault,
		"authority":     m.Authority,
	})
}

type claimMsgPB ClaimMsg

func (m *claimMsgPB) Reset()         { *m = claimMsgPB{} }
func (m *claimMsgPB) String() string { return proto.CompactTextString(m) }
func (*claimMsgPB) ProtoMessage()    {}

// Marshal encodes the message as protobuf.
func (m *ClaimMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*claimMsgPB)(m))
}

// Unmarshal decodes a message created by Marshal.
func (m *ClaimMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*claimMsgPB)(m))
}

// RefundMsg returns the vault content to the maker and closes the escrow.
// The maker must sign.
type RefundMsg struct {
	Maker           tescrow.Address `protobuf:"bytes,1,opt,name=maker,proto3"`
	MakerHolding    tescrow.Address `protobuf:"bytes,2,opt,name=maker_holding,proto3"`
	MakerAssetClass string          `protobuf:"bytes,3,opt,name=maker_asset_class,proto3"`
	Escrow          tescrow.Address `protobuf:"bytes,4,opt,name=escrow,proto3"`
	Vault           tescrow.Address `protobuf:"bytes,5,opt,name=vault,proto3"`
	Authority       tescrow.Address `protobuf:"bytes,6,opt,name=authority,proto3"`
}

// Path returns the routing path for this message
func (RefundMsg) Path() string {
	return pathRefundMsg
}

// Validate makes sure that this is sensible
func (m *RefundMsg) Validate() error {
	if err := validateAddresses(map[string]tescrow.Address{
		"maker":         m.Maker,
		"maker holding": m.MakerHolding,
		"escrow":        m.Escrow,
		"vault":         m.Vault,
		"authority":     m.Authority,
	}); err != nil {
		return err
	}
	if !coin.IsCC(m.MakerAssetClass) {
		return errors.Wrapf(errors.ErrCurrency, "maker asset class %q", m.MakerAssetClass)
	}
	return nil
}

type refundMsgPB RefundMsg

func (m *refundMsgPB) Reset()         { *m = refundMsgPB{} }
func (m *refundMsgPB) String() string { return proto.CompactTextString(m) }
func (*refundMsgPB) ProtoMessage()    {}

// Marshal encodes the message as protobuf.
func (m *RefundMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*refundMsgPB)(m))
}

// Unmarshal decodes a message created by Marshal.
func (m *RefundMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*refundMsgPB)(m))
}

// SettleMsg moves the vault content to the taker and closes the escrow.
// The taker must sign.
type SettleMsg struct {
	Taker        tescrow.Address `protobuf:"bytes,1,opt,name=taker,proto3"`
	TakerReceive tescrow.Address `protobuf:"bytes,2,opt,name=taker_receive,proto3"`
	MakerReceive tescrow.Address `protobuf:"bytes,3,opt,name=maker_receive,proto3"`
	Escrow       tescrow.Address `protobuf:"bytes,4,opt,name=escrow,proto3"`
	Vault        tescrow.Address `protobuf:"bytes,5,opt,name=vault,proto3"`
	Authority    tescrow.Address `protobuf:"bytes,6,opt,name=authority,proto3"`
}

// Path returns the routing path for this message
func (SettleMsg) Path() string {
	return pathSettleMsg
}

// Validate makes sure that this is sensible
func (m *SettleMsg) Validate() error {
	return validateAddresses(map[string]tescrow.Address{
		"taker":         m.Taker,
		"taker receive": m.TakerReceive,
		"maker receive": m.MakerReceive,
		"escrow":        m.Escrow,
		"vault":         m.Vault,
		"authority":     m.Authority,
	})
}

type settleMsgPB SettleMsg

func (m *settleMsgPB) Reset()         { *m = settleMsgPB{} }
func (m *settleMsgPB) String() string { return proto.CompactTextString(m) }
func (*settleMsgPB) ProtoMessage()    {}

// Marshal encodes the message as protobuf.
func (m *SettleMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*settleMsgPB)(m))
}

// Unmarshal decodes a message created by Marshal.
func (m *SettleMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*settleMsgPB)(m))
}

func validateAddresses(addrs map[string]tescrow.Address) error {
	for name, a := range addrs {
		if err := a.Validate(); err != nil {
			return errors.Wrap(err, name)
		}
	}
	return nil
}
