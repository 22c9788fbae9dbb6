package cash

import (
	"testing"

	"github.com/iov-one/tescrow"
	"github.com/iov-one/tescrow/coin"
	"github.com/iov-one/tescrow/errors"
	"github.com/iov-one/tescrow/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendMsgValidate(t *testing.T) {
	src := weavetest.NewCondition().Address()
	dst := weavetest.NewCondition().Address()

	cases := map[string]struct {
		msg     SendMsg
		wantErr *errors.Error
	}{
		"valid": {
			msg: SendMsg{Source: src, Destination: dst, Amount: coin.NewCoinp(5, "IOV"), Memo: "thanks"},
		},
		"missing amount": {
			msg:     SendMsg{Source: src, Destination: dst},
			wantErr: errors.ErrAmount,
		},
		"zero amount": {
			msg:     SendMsg{Source: src, Destination: dst, Amount: coin.NewCoinp(0, "IOV")},
			wantErr: errors.ErrAmount,
		},
		"bad ticker": {
			msg:     SendMsg{Source: src, Destination: dst, Amount: coin.NewCoinp(1, "io")},
			wantErr: errors.ErrCurrency,
		},
		"missing source": {
			msg:     SendMsg{Destination: dst, Amount: coin.NewCoinp(1, "IOV")},
			wantErr: errors.ErrInput,
		},
		"bad destination": {
			msg:     SendMsg{Source: src, Destination: tescrow.Address("x"), Amount: coin.NewCoinp(1, "IOV")},
			wantErr: errors.ErrInput,
		},
		"memo too long": {
			msg:     SendMsg{Source: src, Destination: dst, Amount: coin.NewCoinp(1, "IOV"), Memo: string(make([]byte, maxMemoSize+1))},
			wantErr: errors.ErrInput,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := tc.msg.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, tc.wantErr.Is(err), "got %v", err)
			}
		})
	}
}

func TestSendMsgMarshal(t *testing.T) {
	msg := &SendMsg{
		Source:      weavetest.NewCondition().Address(),
		Destination: weavetest.NewCondition().Address(),
		Amount:      coin.NewCoinp(42, "ETH"),
		Memo:        "rent",
	}
	raw, err := msg.Marshal()
	require.NoError(t, err)

	var got SendMsg
	require.NoError(t, got.Unmarshal(raw))
	assert.Equal(t, msg, &got)
	assert.Equal(t, "cash/send", got.Path())
}
