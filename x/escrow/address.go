package escrow

import (
	"context"
	"encoding/binary"

	"github.com/iov-one/tescrow"
	"github.com/iov-one/tescrow/errors"
	"github.com/iov-one/tescrow/x"
)

const (
	condExt       = "escrow"
	condRecord    = "record"
	condVault     = "vault"
	condAuthority = "auth"
)

// Addresses are the derived addresses of one escrow.
type Addresses struct {
	Record        tescrow.Address
	Vault         tescrow.Address
	Authority     tescrow.Address
	RecordBump    uint8
	VaultBump     uint8
	AuthorityBump uint8

	authority tescrow.Condition
}

// DeriveAddresses computes the record, vault and authority addresses of the
// escrow created by maker with the given seed. Clients use it to register
// the claim token with the escrow authority as the mint authority.
func DeriveAddresses(maker tescrow.Address, seed uint64) (*Addresses, error) {
	if err := maker.Validate(); err != nil {
		return nil, errors.Wrap(err, "maker")
	}
	record, recordBump, err := tescrow.DeriveCondition(condExt, condRecord, recordSeed(maker, seed))
	if err != nil {
		return nil, err
	}
	addr := record.Address()
	vault, vaultBump, err := tescrow.DeriveCondition(condExt, condVault, addr)
	if err != nil {
		return nil, err
	}
	auth, authBump, err := tescrow.DeriveCondition(condExt, condAuthority, addr)
	if err != nil {
		return nil, err
	}
	return &Addresses{
		Record:        addr,
		Vault:         vault.Address(),
		Authority:     auth.Address(),
		RecordBump:    recordBump,
		VaultBump:     vaultBump,
		AuthorityBump: authBump,
		authority:     auth,
	}, nil
}

// addresses rebuilds the derived addresses from the bumps stored in the
// record.
func (e *EscrowRecord) addresses() (*Addresses, error) {
	record, err := tescrow.DerivedCondition(condExt, condRecord, recordSeed(e.Maker, e.Seed), e.RecordBump)
	if err != nil {
		return nil, errors.Wrap(ErrConstraint, err.Error())
	}
	addr := record.Address()
	vault, err := tescrow.DerivedCondition(condExt, condVault, addr, e.VaultBump)
	if err != nil {
		return nil, errors.Wrap(ErrConstraint, err.Error())
	}
	auth, err := tescrow.DerivedCondition(condExt, condAuthority, addr, e.AuthorityBump)
	if err != nil {
		return nil, errors.Wrap(ErrConstraint, err.Error())
	}
	return &Addresses{
		Record:        addr,
		Vault:         vault.Address(),
		Authority:     auth.Address(),
		RecordBump:    e.RecordBump,
		VaultBump:     e.VaultBump,
		AuthorityBump: e.AuthorityBump,
		authority:     auth,
	}, nil
}

// Match fails with ErrConstraint unless the given escrow, vault and
// authority addresses are the derived ones.
func (a *Addresses) Match(record, vault, authority tescrow.Address) error {
	if !a.Record.Equals(record) {
		return errors.Wrapf(ErrConstraint, "escrow address %s, want %s", record, a.Record)
	}
	if !a.Vault.Equals(vault) {
		return errors.Wrapf(ErrConstraint, "vault address %s, want %s", vault, a.Vault)
	}
	if !a.Authority.Equals(authority) {
		return errors.Wrapf(ErrConstraint, "authority address %s, want %s", authority, a.Authority)
	}
	return nil
}

func recordSeed(maker tescrow.Address, seed uint64) []byte {
	raw := make([]byte, len(maker)+8)
	copy(raw, maker)
	binary.LittleEndian.PutUint64(raw[len(maker):], seed)
	return raw
}

type contextKey int // local to the escrow module

const (
	contextKeyAuthority contextKey = iota
)

// withAuthority grants the derived authority for the rest of the request.
// Only this package can create the capability.
func withAuthority(ctx tescrow.Context, a *Addresses) tescrow.Context {
	return context.WithValue(ctx, contextKeyAuthority, a.authority)
}

// authorityAuth authenticates an escrow authority granted by withAuthority.
type authorityAuth struct{}

var _ x.Authenticator = authorityAuth{}

func (authorityAuth) GetConditions(ctx tescrow.Context) []tescrow.Condition {
	val, _ := ctx.Value(contextKeyAuthority).(tescrow.Condition)
	if val == nil {
		return nil
	}
	return []tescrow.Condition{val}
}

func (a authorityAuth) HasAddress(ctx tescrow.Context, addr tescrow.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
