/*
Package crypto holds the signing keys used to authorize transactions.

Only ed25519 keys are supported. A public key is turned into a signature
condition that the sigs extension puts into the request context once the
transaction signature is verified.
*/
package crypto

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/tescrow"
)

// ExtensionName is used for the Conditions we get from signatures
const ExtensionName = "sigs"

// Signer is the functionality we use from a private key
// No serializing to support hardware devices as well.
type Signer interface {
	Sign(message []byte) (*Signature, error)
	PublicKey() *PublicKey
}

// PublicKey is a serializable public key.
type PublicKey struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3"`
}

// PrivateKey is a serializable private key.
type PrivateKey struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3"`
}

// Signature is a serializable signature.
type Signature struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3"`
}

// Address is a shortcut to the address of the signature condition.
func (p *PublicKey) Address() tescrow.Address {
	cond := p.Condition()
	if cond == nil {
		return nil
	}
	return cond.Address()
}

// The protobuf views of the key types have no Marshal method, so the
// protobuf library encodes them from the struct tags.
type (
	publicKeyPB  PublicKey
	privateKeyPB PrivateKey
	signaturePB  Signature
)

func (p *publicKeyPB) Reset()          { *p = publicKeyPB{} }
func (p *publicKeyPB) String() string  { return proto.CompactTextString(p) }
func (*publicKeyPB) ProtoMessage()     {}
func (p *privateKeyPB) Reset()         { *p = privateKeyPB{} }
func (p *privateKeyPB) String() string { return proto.CompactTextString(p) }
func (*privateKeyPB) ProtoMessage()    {}
func (s *signaturePB) Reset()          { *s = signaturePB{} }
func (s *signaturePB) String() string  { return proto.CompactTextString(s) }
func (*signaturePB) ProtoMessage()     {}

// Marshal implements tescrow.Marshaller.
func (p *PublicKey) Marshal() ([]byte, error) {
	return proto.Marshal((*publicKeyPB)(p))
}

// Unmarshal implements tescrow.Persistent.
func (p *PublicKey) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*publicKeyPB)(p))
}

// Marshal implements tescrow.Marshaller.
func (p *PrivateKey) Marshal() ([]byte, error) {
	return proto.Marshal((*privateKeyPB)(p))
}

// Unmarshal implements tescrow.Persistent.
func (p *PrivateKey) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*privateKeyPB)(p))
}

// Marshal implements tescrow.Marshaller.
func (s *Signature) Marshal() ([]byte, error) {
	return proto.Marshal((*signaturePB)(s))
}

// Unmarshal implements tescrow.Persistent.
func (s *Signature) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*signaturePB)(s))
}
