/*
Package currency keeps the registry of asset classes.

Each asset class is identified by its ticker and names a mint authority, the
only address allowed to create new units. The mint authority may be a human
signer or a derived address such as an escrow authority.
*/
package currency

import (
	"regexp"

	"github.com/iov-one/tescrow"
	"github.com/iov-one/tescrow/coin"
	"github.com/iov-one/tescrow/errors"
	"github.com/iov-one/tescrow/orm"
)

var isTokenName = regexp.MustCompile(`^[A-Za-z0-9 \-_:]{3,32}$`).MatchString

// Token describes a single asset class.
type Token struct {
	Name          string
	MintAuthority tescrow.Address
	Supply        uint64
}

var _ orm.Model = (*Token)(nil)

// NewToken returns a new token, as represented by orm object.
func NewToken(ticker, name string, authority tescrow.Address) orm.Object {
	return orm.NewSimpleObj([]byte(ticker), &Token{
		Name:          name,
		MintAuthority: authority,
	})
}

// Validate requires a readable name and a mint authority.
func (t *Token) Validate() error {
	if !isTokenName(t.Name) {
		return errors.Wrapf(errors.ErrModel, "invalid token name %q", t.Name)
	}
	if err := t.MintAuthority.Validate(); err != nil {
		return errors.Wrap(err, "mint authority")
	}
	return nil
}

// Marshal implements tescrow.Persistent.
func (t *Token) Marshal() ([]byte, error) {
	return orm.MarshalAmino(t)
}

// Unmarshal implements tescrow.Persistent.
func (t *Token) Unmarshal(raw []byte) error {
	return orm.UnmarshalAmino(raw, t)
}

// AsToken will safely type-cast any value from Bucket to a Token.
func AsToken(obj orm.Object) *Token {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*Token)
}

// TokenBucket stores Token instances, using ticker name (currency
// symbol) as the key.
type TokenBucket struct {
	orm.Bucket
}

// NewTokenBucket returns a bucket indexing tokens by their mint authority.
func NewTokenBucket() TokenBucket {
	b := orm.NewBucket("token", NewToken("", "", nil)).
		WithIndex("authority", authorityIndex)
	return TokenBucket{Bucket: b}
}

func authorityIndex(obj orm.Object) ([]byte, error) {
	t := AsToken(obj)
	if t == nil {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	return t.MintAuthority, nil
}

// GetToken returns the token registered under the ticker or ErrNotFound.
func (b TokenBucket) GetToken(db tescrow.ReadOnlyKVStore, ticker string) (*Token, error) {
	obj, err := b.Get(db, []byte(ticker))
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "token %q", ticker)
	}
	return AsToken(obj), nil
}

// Save validates the ticker before writing the token.
func (b TokenBucket) Save(db tescrow.KVStore, obj orm.Object) error {
	if _, ok := obj.Value().(*Token); !ok {
		return errors.WithType(errors.ErrModel, obj.Value())
	}
	if n := string(obj.Key()); !coin.IsCC(n) {
		return errors.Wrapf(errors.ErrCurrency, "ticker %q", n)
	}
	return b.Bucket.Save(db, obj)
}
