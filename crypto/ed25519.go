package crypto

import (
	"github.com/iov-one/tescrow"
	"github.com/iov-one/tescrow/errors"
	"golang.org/x/crypto/ed25519"
)

var _ Signer = (*PrivateKey)(nil)

// GenPrivKeyEd25519 returns a key from crypto/rand. It panics when the
// system has no entropy.
func GenPrivKeyEd25519() *PrivateKey {
	_, k, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Ed25519: k}
}

// PrivKeyEd25519FromSeed derives a key from a 32 byte seed. The same seed
// always gives the same key.
func PrivKeyEd25519FromSeed(seed []byte) *PrivateKey {
	return &PrivateKey{Ed25519: ed25519.NewKeyFromSeed(seed)}
}

func (p *PrivateKey) valid() bool { return len(p.Ed25519) == ed25519.PrivateKeySize }

func (p *PrivateKey) Sign(message []byte) (*Signature, error) {
	if !p.valid() {
		return nil, errors.Wrap(errors.ErrState, "invalid private key")
	}
	return &Signature{Ed25519: ed25519.Sign(p.Ed25519, message)}, nil
}

// PublicKey returns an empty key if p is malformed.
func (p *PrivateKey) PublicKey() *PublicKey {
	if !p.valid() {
		return &PublicKey{}
	}
	pub := ed25519.PrivateKey(p.Ed25519).Public().(ed25519.PublicKey)
	return &PublicKey{Ed25519: pub}
}

// Verify reports whether sig is a signature of message by p. Keys and
// signatures of the wrong size never verify.
func (p *PublicKey) Verify(message []byte, sig *Signature) bool {
	switch {
	case sig == nil:
		return false
	case len(p.Ed25519) != ed25519.PublicKeySize, len(sig.Ed25519) != ed25519.SignatureSize:
		return false
	}
	return ed25519.Verify(p.Ed25519, message, sig.Ed25519)
}

// Condition is sigs/ed25519/<key>. An empty key has no condition.
func (p *PublicKey) Condition() tescrow.Condition {
	if len(p.Ed25519) == 0 {
		return nil
	}
	return tescrow.NewCondition(ExtensionName, "ed25519", p.Ed25519)
}
