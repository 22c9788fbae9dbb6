package sigs

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/tescrow/crypto"
	"github.com/iov-one/tescrow/errors"
)

// SignedTx is a transaction the Decorator can authenticate.
type SignedTx interface {
	// GetSignBytes is the payload every signature commits to. It must not
	// cover the signatures themselves.
	GetSignBytes() ([]byte, error)
	GetSignatures() []*StdSignature
}

// StdSignature is an ed25519 signature made at the given sequence of the
// signer.
type StdSignature struct {
	Sequence  int64             `protobuf:"varint,1,opt,name=sequence,proto3"`
	Pubkey    *crypto.PublicKey `protobuf:"bytes,2,opt,name=pubkey,proto3"`
	Signature *crypto.Signature `protobuf:"bytes,3,opt,name=signature,proto3"`
}

func (s *StdSignature) Validate() error {
	switch {
	case s.Sequence < 0:
		return errors.Wrap(ErrInvalidSequence, "negative")
	case s.Pubkey == nil || len(s.Pubkey.Ed25519) == 0:
		return errors.Wrap(errors.ErrUnauthorized, "missing public key")
	case s.Signature == nil || len(s.Signature.Ed25519) == 0:
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return nil
}

type stdSignaturePB StdSignature

func (s *stdSignaturePB) Reset()         { *s = stdSignaturePB{} }
func (s *stdSignaturePB) String() string { return proto.CompactTextString(s) }
func (*stdSignaturePB) ProtoMessage()    {}

func (s *StdSignature) Marshal() ([]byte, error) { return proto.Marshal((*stdSignaturePB)(s)) }
func (s *StdSignature) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*stdSignaturePB)(s)) }
