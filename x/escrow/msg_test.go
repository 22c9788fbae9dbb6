package escrow

import (
	"testing"

	"github.com/iov-one/tescrow"
	"github.com/iov-one/tescrow/errors"
	"github.com/iov-one/tescrow/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMsgCodec(t *testing.T) {
	addr := func() tescrow.Address { return weavetest.NewCondition().Address() }

	cases := map[string]struct {
		msg  tescrow.Msg
		dest tescrow.Msg
	}{
		"create": {
			msg: &CreateMsg{
				Maker: addr(), Taker: addr(),
				MakerAssetClass: "FOO", TakerAssetClass: "CLM",
				MakerHolding: addr(), TakerHolding: addr(),
				Escrow: addr(), Vault: addr(), Authority: addr(),
				Seed: 1, DepositAmount: 100, Expiry: 1100, LockingPeriod: 500,
			},
			dest: &CreateMsg{},
		},
		"claim": {
			msg:  &ClaimMsg{Taker: addr(), TakerHolding: addr(), Escrow: addr(), Vault: addr(), Authority: addr()},
			dest: &ClaimMsg{},
		},
		"refund": {
			msg: &RefundMsg{Maker: addr(), MakerHolding: addr(), MakerAssetClass: "FOO",
				Escrow: addr(), Vault: addr(), Authority: addr()},
			dest: &RefundMsg{},
		},
		"settle": {
			msg: &SettleMsg{Taker: addr(), TakerReceive: addr(), MakerReceive: addr(),
				Escrow: addr(), Vault: addr(), Authority: addr()},
			dest: &SettleMsg{},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, tc.msg.Validate())
			raw, err := tc.msg.Marshal()
			require.NoError(t, err)
			require.NoError(t, tc.dest.Unmarshal(raw))
			assert.Equal(t, tc.msg, tc.dest)
			assert.Equal(t, tc.msg.Path(), tc.dest.Path())
		})
	}
}

func TestMsgValidate(t *testing.T) {
	addr := weavetest.NewCondition().Address()

	err := (&ClaimMsg{Taker: addr, TakerHolding: addr, Escrow: addr, Vault: addr}).Validate()
	assert.True(t, errors.ErrInput.Is(err), "missing authority: %+v", err)

	err = (&RefundMsg{Maker: addr, MakerHolding: addr, Escrow: addr, Vault: addr, Authority: addr}).Validate()
	assert.True(t, errors.ErrCurrency.Is(err), "missing asset class: %+v", err)

	create := &CreateMsg{
		Maker: addr, Taker: addr, MakerAssetClass: "FOO", TakerAssetClass: "CLM",
		MakerHolding: addr, TakerHolding: addr, Escrow: addr, Vault: addr, Authority: addr,
	}
	// Neither a deposit nor an expiry is required.
	assert.NoError(t, create.Validate())

	create.TakerAssetClass = create.MakerAssetClass
	err = create.Validate()
	assert.True(t, errors.ErrCurrency.Is(err), "same asset classes: %+v", err)
}
