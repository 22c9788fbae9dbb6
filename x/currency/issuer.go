package currency

import (
	"github.com/iov-one/tescrow"
	"github.com/iov-one/tescrow/coin"
	"github.com/iov-one/tescrow/errors"
	"github.com/iov-one/tescrow/x"
	"github.com/iov-one/tescrow/x/cash"
)

// Issuer grants minting rights to the mint authority of a registered token
// and keeps track of the token supply.
type Issuer struct {
	bucket TokenBucket
}

var _ cash.Issuer = Issuer{}

// NewIssuer returns an issuer backed by the token registry.
func NewIssuer() Issuer {
	return Issuer{bucket: NewTokenBucket()}
}

// Issue fails with ErrUnauthorized unless the mint authority of the token
// is authenticated. On success the token supply grows by the amount.
func (i Issuer) Issue(ctx tescrow.Context, auth x.Authenticator, db tescrow.KVStore, amount coin.Coin) error {
	obj, err := i.bucket.Get(db, []byte(amount.Ticker))
	if err != nil {
		return errors.Wrap(err, "cannot load token")
	}
	if obj == nil {
		return errors.Wrapf(errors.ErrNotFound, "token %q", amount.Ticker)
	}
	token := AsToken(obj)
	if !auth.HasAddress(ctx, token.MintAuthority) {
		return errors.Wrapf(errors.ErrUnauthorized, "mint authority of %s", amount.Ticker)
	}
	supply := token.Supply + amount.Amount
	if supply < token.Supply {
		return errors.Wrapf(errors.ErrOverflow, "supply of %s", amount.Ticker)
	}
	token.Supply = supply
	return i.bucket.Save(db, obj)
}
