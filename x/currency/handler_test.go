package currency

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/iov-one/tescrow"
	"github.com/iov-one/tescrow/coin"
	"github.com/iov-one/tescrow/errors"
	"github.com/iov-one/tescrow/store"
	"github.com/iov-one/tescrow/weavetest"
	"github.com/iov-one/tescrow/x/cash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type routes map[string]tescrow.Handler

func (r routes) Handle(path string, h tescrow.Handler) {
	r[path] = h
}

func TestCreateToken(t *testing.T) {
	registrar := weavetest.NewCondition()
	authority := weavetest.NewCondition().Address()

	cases := map[string]struct {
		signer  tescrow.Condition
		before  []CreateMsg
		msg     tescrow.Msg
		wantErr *errors.Error
	}{
		"success": {
			signer: registrar,
			msg:    &CreateMsg{Ticker: "DOGE", Name: "Doge Coin", MintAuthority: authority},
		},
		"registrar must sign": {
			signer:  weavetest.NewCondition(),
			msg:     &CreateMsg{Ticker: "DOGE", Name: "Doge Coin", MintAuthority: authority},
			wantErr: errors.ErrUnauthorized,
		},
		"duplicate ticker": {
			signer:  registrar,
			before:  []CreateMsg{{Ticker: "DOGE", Name: "First", MintAuthority: authority}},
			msg:     &CreateMsg{Ticker: "DOGE", Name: "Second", MintAuthority: authority},
			wantErr: errors.ErrDuplicate,
		},
		"invalid ticker": {
			signer:  registrar,
			msg:     &CreateMsg{Ticker: "doge", Name: "Doge Coin", MintAuthority: authority},
			wantErr: errors.ErrCurrency,
		},
		"invalid name": {
			signer:  registrar,
			msg:     &CreateMsg{Ticker: "DOGE", Name: "$$", MintAuthority: authority},
			wantErr: errors.ErrInput,
		},
		"missing authority": {
			signer:  registrar,
			msg:     &CreateMsg{Ticker: "DOGE", Name: "Doge Coin"},
			wantErr: errors.ErrInput,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			db := store.MemStore()
			bucket := NewTokenBucket()
			for _, b := range tc.before {
				require.NoError(t, bucket.Save(db, NewToken(b.Ticker, b.Name, b.MintAuthority)))
			}

			r := routes{}
			RegisterRoutes(r, &weavetest.Auth{Signer: tc.signer}, registrar.Address(), nil)
			h := r[pathCreateMsg]
			tx := &weavetest.Tx{Msg: tc.msg}

			_, err := h.Check(context.Background(), db.CacheWrap(), tx)
			if tc.wantErr != nil {
				require.True(t, tc.wantErr.Is(err), "got %+v", err)
			} else {
				require.NoError(t, err)
			}
			res, err := h.Deliver(context.Background(), db, tx)
			if tc.wantErr != nil {
				require.True(t, tc.wantErr.Is(err), "got %+v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []byte("DOGE"), res.Data)

			token, err := bucket.GetToken(db, "DOGE")
			require.NoError(t, err)
			assert.Equal(t, authority, token.MintAuthority)
			assert.Equal(t, uint64(0), token.Supply)
		})
	}
}

func TestMintAndIssuer(t *testing.T) {
	db := store.MemStore()
	minter := weavetest.NewCondition()
	holder := weavetest.NewCondition().Address()
	acct := cash.HoldingAddress(holder)

	require.NoError(t, NewTokenBucket().Save(db, NewToken("CLM", "Claim", minter.Address())))
	ctrl := cash.NewController(cash.NewBucket(), NewIssuer())
	require.NoError(t, ctrl.OpenAccount(db, acct, holder))

	mint := func(signer tescrow.Condition, amount coin.Coin) error {
		r := routes{}
		RegisterRoutes(r, &weavetest.Auth{Signer: signer}, nil, ctrl)
		tx := &weavetest.Tx{Msg: &MintMsg{Destination: acct, Amount: &amount}}
		if _, err := r[pathMintMsg].Check(context.Background(), db, tx); err != nil {
			return err
		}
		_, err := r[pathMintMsg].Deliver(context.Background(), db, tx)
		return err
	}

	require.NoError(t, mint(minter, coin.NewCoin(3, "CLM")))
	err := mint(weavetest.NewCondition(), coin.NewCoin(3, "CLM"))
	assert.True(t, errors.ErrUnauthorized.Is(err), "got %+v", err)
	err = mint(minter, coin.NewCoin(3, "NOPE"))
	assert.True(t, errors.ErrNotFound.Is(err), "got %+v", err)
	err = mint(minter, coin.NewCoin(0, "CLM"))
	assert.True(t, errors.ErrAmount.Is(err), "got %+v", err)

	balance, err := ctrl.Balance(db, acct)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), balance.Balance("CLM"))
	token, err := NewTokenBucket().GetToken(db, "CLM")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), token.Supply)

	// Tokens are indexed by their mint authority.
	objs, err := NewTokenBucket().GetIndexed(db, "authority", minter.Address())
	require.NoError(t, err)
	require.Len(t, objs, 1)
	assert.Equal(t, []byte("CLM"), objs[0].Key())
}

func TestMsgMarshal(t *testing.T) {
	create := &CreateMsg{Ticker: "ABC", Name: "A Token", MintAuthority: weavetest.NewCondition().Address()}
	raw, err := create.Marshal()
	require.NoError(t, err)
	var gotCreate CreateMsg
	require.NoError(t, gotCreate.Unmarshal(raw))
	assert.Equal(t, create, &gotCreate)

	mint := &MintMsg{Destination: weavetest.NewCondition().Address(), Amount: coin.NewCoinp(9, "ABC")}
	raw, err = mint.Marshal()
	require.NoError(t, err)
	var gotMint MintMsg
	require.NoError(t, gotMint.Unmarshal(raw))
	assert.Equal(t, mint, &gotMint)
}

func TestGenesis(t *testing.T) {
	authority := weavetest.NewCondition().Address()
	genesis := `{"currency": [
		{"ticker": "IOV", "name": "Internet of Values", "mint_authority": "` + authority.String() + `", "supply": 100},
		{"ticker": "ETH", "name": "Ether", "mint_authority": "` + authority.String() + `"}
	]}`
	var opts tescrow.Options
	require.NoError(t, json.Unmarshal([]byte(genesis), &opts))

	db := store.MemStore()
	require.NoError(t, Initializer{}.FromGenesis(opts, db))

	token, err := NewTokenBucket().GetToken(db, "IOV")
	require.NoError(t, err)
	assert.Equal(t, "Internet of Values", token.Name)
	assert.Equal(t, uint64(100), token.Supply)

	_, err = NewTokenBucket().GetToken(db, "BTC")
	assert.True(t, errors.ErrNotFound.Is(err))

	bad := tescrow.Options{"currency": json.RawMessage(`[{"ticker": "x", "name": "Bad one", "mint_authority": "` + authority.String() + `"}]`)}
	err = Initializer{}.FromGenesis(bad, store.MemStore())
	assert.True(t, errors.ErrCurrency.Is(err), "got %+v", err)
}
