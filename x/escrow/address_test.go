package escrow

import (
	"testing"

	"github.com/iov-one/tescrow"
	"github.com/iov-one/tescrow/errors"
	"github.com/iov-one/tescrow/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveAddresses(t *testing.T) {
	maker := weavetest.NewCondition().Address()

	a, err := DeriveAddresses(maker, 7)
	require.NoError(t, err)
	b, err := DeriveAddresses(maker, 7)
	require.NoError(t, err)
	assert.Equal(t, a, b, "derivation must be deterministic")

	for _, addr := range []tescrow.Address{a.Record, a.Vault, a.Authority} {
		require.NoError(t, addr.Validate())
	}
	assert.False(t, a.Record.Equals(a.Vault))
	assert.False(t, a.Vault.Equals(a.Authority))

	other, err := DeriveAddresses(maker, 8)
	require.NoError(t, err)
	assert.False(t, other.Record.Equals(a.Record))

	otherMaker, err := DeriveAddresses(weavetest.NewCondition().Address(), 7)
	require.NoError(t, err)
	assert.False(t, otherMaker.Record.Equals(a.Record))

	// No derived condition is an ed25519 public key.
	assert.False(t, tescrow.IsOnCurve(a.authority))

	_, err = DeriveAddresses(nil, 1)
	assert.True(t, errors.ErrInput.Is(err))
}

func TestRecordAddresses(t *testing.T) {
	maker := weavetest.NewCondition().Address()
	want, err := DeriveAddresses(maker, 3)
	require.NoError(t, err)

	rec := &EscrowRecord{
		Maker:         maker,
		Seed:          3,
		AuthorityBump: want.AuthorityBump,
		VaultBump:     want.VaultBump,
		RecordBump:    want.RecordBump,
	}
	got, err := rec.addresses()
	require.NoError(t, err)
	assert.Equal(t, want, got)
	require.NoError(t, got.Match(want.Record, want.Vault, want.Authority))

	err = got.Match(want.Record, want.Authority, want.Authority)
	assert.True(t, ErrConstraint.Is(err))
	assert.True(t, IsConstraintViolation(err))

	// Another seed derives different addresses from the stored bumps.
	rec.Seed = 4
	if other, err := rec.addresses(); err == nil {
		assert.False(t, other.Record.Equals(want.Record))
	} else {
		assert.True(t, ErrConstraint.Is(err))
	}
}
