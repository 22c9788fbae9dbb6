package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/tescrow"
	"github.com/iov-one/tescrow/errors"
	"github.com/iov-one/tescrow/x/cash"
	"github.com/iov-one/tescrow/x/currency"
	"github.com/iov-one/tescrow/x/escrow"
	"github.com/iov-one/tescrow/x/sigs"
)

// Tx is the transaction envelope of the node: the signatures of all
// signers and a single message.
type Tx struct {
	Signatures []*sigs.StdSignature
	Msg        tescrow.Msg
}

var _ tescrow.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// txPB is the wire form of Tx. Every message type has its own field and
// exactly one of them is set in a valid transaction.
type txPB struct {
	Signatures      []*sigs.StdSignature `protobuf:"bytes,1,rep,name=signatures,proto3"`
	SendMsg         *cash.SendMsg        `protobuf:"bytes,2,opt,name=send_msg,proto3"`
	CreateTokenMsg  *currency.CreateMsg  `protobuf:"bytes,3,opt,name=create_token_msg,proto3"`
	MintMsg         *currency.MintMsg    `protobuf:"bytes,4,opt,name=mint_msg,proto3"`
	CreateEscrowMsg *escrow.CreateMsg    `protobuf:"bytes,5,opt,name=create_escrow_msg,proto3"`
	ClaimEscrowMsg  *escrow.ClaimMsg     `protobuf:"bytes,6,opt,name=claim_escrow_msg,proto3"`
	RefundEscrowMsg *escrow.RefundMsg    `protobuf:"bytes,7,opt,name=refund_escrow_msg,proto3"`
	SettleEscrowMsg *escrow.SettleMsg    `protobuf:"bytes,8,opt,name=settle_escrow_msg,proto3"`
}

func (m *txPB) Reset()         { *m = txPB{} }
func (m *txPB) String() string { return proto.CompactTextString(m) }
func (*txPB) ProtoMessage()    {}

// setMsg stores msg in the field of its type.
func (m *txPB) setMsg(msg tescrow.Msg) error {
	switch msg := msg.(type) {
	case nil:
	case *cash.SendMsg:
		m.SendMsg = msg
	case *currency.CreateMsg:
		m.CreateTokenMsg = msg
	case *currency.MintMsg:
		m.MintMsg = msg
	case *escrow.CreateMsg:
		m.CreateEscrowMsg = msg
	case *escrow.ClaimMsg:
		m.ClaimEscrowMsg = msg
	case *escrow.RefundMsg:
		m.RefundEscrowMsg = msg
	case *escrow.SettleMsg:
		m.SettleEscrowMsg = msg
	default:
		return errors.Wrapf(errors.ErrType, "unsupported message %T", msg)
	}
	return nil
}

// msg returns the only message set. More than one message is rejected.
func (m *txPB) msg() (tescrow.Msg, error) {
	var found []tescrow.Msg
	add := func(set bool, msg tescrow.Msg) {
		if set {
			found = append(found, msg)
		}
	}
	add(m.SendMsg != nil, m.SendMsg)
	add(m.CreateTokenMsg != nil, m.CreateTokenMsg)
	add(m.MintMsg != nil, m.MintMsg)
	add(m.CreateEscrowMsg != nil, m.CreateEscrowMsg)
	add(m.ClaimEscrowMsg != nil, m.ClaimEscrowMsg)
	add(m.RefundEscrowMsg != nil, m.RefundEscrowMsg)
	add(m.SettleEscrowMsg != nil, m.SettleEscrowMsg)

	switch len(found) {
	case 0:
		return nil, nil
	case 1:
		return found[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrMsg, "%d messages", len(found))
	}
}

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (tescrow.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

// GetMsg returns the single message of this transaction.
func (tx *Tx) GetMsg() (tescrow.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "transaction without message")
	}
	return tx.Msg, nil
}

// GetSignatures implements sigs.SignedTx
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign. Signatures are not part of them.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	var pb txPB
	if err := pb.setMsg(tx.Msg); err != nil {
		return nil, err
	}
	return proto.Marshal(&pb)
}

// Marshal encodes the transaction as protobuf.
func (tx *Tx) Marshal() ([]byte, error) {
	pb := txPB{Signatures: tx.Signatures}
	if err := pb.setMsg(tx.Msg); err != nil {
		return nil, err
	}
	return proto.Marshal(&pb)
}

// Unmarshal decodes a transaction created by Marshal.
func (tx *Tx) Unmarshal(raw []byte) error {
	var pb txPB
	if err := proto.Unmarshal(raw, &pb); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	msg, err := pb.msg()
	if err != nil {
		return err
	}
	*tx = Tx{Signatures: pb.Signatures, Msg: msg}
	return nil
}
