package sigs

import (
	"crypto/sha512"
	"encoding/binary"

	"github.com/iov-one/tescrow"
	"github.com/iov-one/tescrow/crypto"
	"github.com/iov-one/tescrow/errors"
)

// SignCodeV1 prefixes every signed payload. Bumping it invalidates all
// signatures made with an older layout.
var SignCodeV1 = []byte{0, 0xCA, 0xFE, 0}

// BuildSignBytes returns the sha512 digest a signer commits to:
//
//	SignCodeV1 | uint8 len(chainID) | chainID | uint64 BE sequence | payload
func BuildSignBytes(payload []byte, chainID string, seq int64) ([]byte, error) {
	switch {
	case seq < 0:
		return nil, errors.Wrap(ErrInvalidSequence, "negative")
	case !tescrow.IsValidChainID(chainID):
		return nil, errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}

	var nonce [8]byte
	binary.BigEndian.PutUint64(nonce[:], uint64(seq))

	h := sha512.New()
	h.Write(SignCodeV1)
	h.Write([]byte{byte(len(chainID))})
	h.Write([]byte(chainID))
	h.Write(nonce[:])
	h.Write(payload)
	return h.Sum(nil), nil
}

// BuildSignBytesTx is BuildSignBytes over the sign bytes of tx.
func BuildSignBytesTx(tx SignedTx, chainID string, seq int64) ([]byte, error) {
	payload, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	return BuildSignBytes(payload, chainID, seq)
}

// SignTx signs tx for the given chain at sequence seq.
func SignTx(signer crypto.Signer, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	digest, err := BuildSignBytesTx(tx, chainID, seq)
	if err != nil {
		return nil, err
	}
	raw, err := signer.Sign(digest)
	if err != nil {
		return nil, err
	}
	return &StdSignature{Sequence: seq, Pubkey: signer.PublicKey(), Signature: raw}, nil
}
