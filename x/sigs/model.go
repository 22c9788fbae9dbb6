package sigs

import (
	"github.com/iov-one/tescrow"
	"github.com/iov-one/tescrow/crypto"
	"github.com/iov-one/tescrow/errors"
	"github.com/iov-one/tescrow/orm"
)

// BucketName is the prefix of the user records.
const BucketName = "sigs"

// maxSequenceValue is 2^53-1, the largest integer a javascript client can
// represent exactly.
const maxSequenceValue = 1<<53 - 1

// User keeps the replay protection state of one signer, stored under the
// address of its key.
type User struct {
	Pubkey   []byte
	Sequence int64
}

var _ orm.Model = (*User)(nil)

func (u *User) Marshal() ([]byte, error) { return orm.MarshalAmino(u) }
func (u *User) Unmarshal(b []byte) error { return orm.UnmarshalAmino(b, u) }

func (u *User) Validate() error {
	switch {
	case u.Sequence < 0:
		return errors.Wrap(ErrInvalidSequence, "negative")
	case u.Sequence > maxSequenceValue:
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	case u.Sequence != 0 && len(u.Pubkey) == 0:
		return errors.Wrap(ErrInvalidSequence, "needs Pubkey")
	}
	return nil
}

func (u *User) PublicKey() *crypto.PublicKey {
	return &crypto.PublicKey{Ed25519: u.Pubkey}
}

// CheckAndIncrementSequence advances the sequence by one if it currently
// equals expected.
func (u *User) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", expected, u.Sequence)
	}
	if u.Sequence >= maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence++
	return nil
}

// AsUser returns the User held by obj, or nil.
func AsUser(obj orm.Object) *User {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*User)
}

// NewUser returns a fresh record for pubkey. A nil key gives the template
// object used by the bucket.
func NewUser(pubkey *crypto.PublicKey) orm.Object {
	u := &User{}
	if pubkey == nil {
		return orm.NewSimpleObj(nil, u)
	}
	u.Pubkey = pubkey.Ed25519
	return orm.NewSimpleObj(pubkey.Address(), u)
}

type Bucket struct {
	orm.Bucket
}

func NewBucket() Bucket {
	return Bucket{Bucket: orm.NewBucket(BucketName, NewUser(nil))}
}

// GetOrCreate loads the user of pubkey, or a new one at sequence zero.
func (b Bucket) GetOrCreate(db tescrow.KVStore, pubkey *crypto.PublicKey) (orm.Object, error) {
	obj, err := b.Get(db, pubkey.Address())
	if err != nil || obj != nil {
		return obj, err
	}
	return NewUser(pubkey), nil
}

// NextNonce is the sequence the next signature of signer must carry.
func NextNonce(db tescrow.ReadOnlyKVStore, signer tescrow.Address) (int64, error) {
	obj, err := NewBucket().Get(db, signer)
	if err != nil {
		return 0, errors.Wrap(err, "load user")
	}
	if u := AsUser(obj); u != nil {
		return u.Sequence, nil
	}
	return 0, nil
}
