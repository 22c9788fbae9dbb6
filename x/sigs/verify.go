package sigs

import (
	"github.com/iov-one/tescrow"
	"github.com/iov-one/tescrow/errors"
)

// VerifyTxSignatures checks every signature of tx and bumps the sequence of
// each signer. The returned conditions keep the order of the signatures.
func VerifyTxSignatures(db tescrow.KVStore, tx SignedTx, chainID string) ([]tescrow.Condition, error) {
	payload, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	sigs := tx.GetSignatures()
	conds := make([]tescrow.Condition, 0, len(sigs))
	for i, sig := range sigs {
		cond, err := VerifySignature(db, sig, payload, chainID)
		if err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
		conds = append(conds, cond)
	}
	return conds, nil
}

// VerifySignature validates a single signature over payload. On success the
// signer's sequence is incremented and persisted.
func VerifySignature(db tescrow.KVStore, sig *StdSignature, payload []byte, chainID string) (tescrow.Condition, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	digest, err := BuildSignBytes(payload, chainID, sig.Sequence)
	if err != nil {
		return nil, err
	}

	b := NewBucket()
	obj, err := b.GetOrCreate(db, sig.Pubkey)
	if err != nil {
		return nil, err
	}
	user := AsUser(obj)
	key := user.PublicKey()
	if !key.Verify(digest, sig.Signature) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}
	if err := user.CheckAndIncrementSequence(sig.Sequence); err != nil {
		return nil, err
	}
	if err := b.Save(db, obj); err != nil {
		return nil, err
	}
	return key.Condition(), nil
}
