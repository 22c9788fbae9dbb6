package weavetest

import (
	"github.com/iov-one/tescrow"
	"github.com/iov-one/tescrow/crypto"
)

// NewKey returns a new random signing key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the signature condition of a new random key.
func NewCondition() tescrow.Condition {
	return NewKey().PublicKey().Condition()
}
