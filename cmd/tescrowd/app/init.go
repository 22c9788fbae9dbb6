package app

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/iov-one/tescrow"
	"github.com/iov-one/tescrow/coin"
	"github.com/iov-one/tescrow/commands/server"
	"github.com/iov-one/tescrow/crypto"
	"github.com/iov-one/tescrow/errors"
	"github.com/iov-one/tescrow/x/cash"
	"github.com/iov-one/tescrow/x/currency"
	"github.com/iov-one/tescrow/x/utils"
	"github.com/prometheus/client_golang/prometheus"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	defaultTicker = "IOV"
	initialSupply = 123456789
)

// GenInitOptions will produce some basic options for one rich
// account, to use for dev mode
//
// Arguments are an optional ticker and an optional owner address in hex.
// When no address is given a key is generated and printed.
func GenInitOptions(args []string) (json.RawMessage, error) {
	ticker := defaultTicker
	if len(args) > 0 {
		ticker = args[0]
		if !coin.IsCC(ticker) {
			return nil, errors.Wrapf(errors.ErrCurrency, "invalid ticker %s", ticker)
		}
	}

	var addr tescrow.Address
	if len(args) > 1 {
		if err := addr.UnmarshalJSON([]byte(fmt.Sprintf("%q", args[1]))); err != nil {
			return nil, errors.Wrap(err, "owner address")
		}
		if err := addr.Validate(); err != nil {
			return nil, errors.Wrap(err, "owner address")
		}
	} else {
		// if no address provided, auto-generate one
		// and print out the keys
		a, keys, err := GenerateCoinKey()
		if err != nil {
			return nil, err
		}
		addr = a
		fmt.Println(keys)
	}

	state := map[string]interface{}{
		"cash": []cash.GenesisAccount{
			{
				Owner: addr,
				Coins: coin.Coins{coin.NewCoinp(initialSupply, ticker)},
			},
		},
		"currency": []currency.GenesisToken{
			{
				Ticker:        ticker,
				Name:          "Default " + ticker + " token",
				MintAuthority: addr,
				Supply:        initialSupply,
			},
		},
	}
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return raw, nil
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(home string, logger log.Logger, cfg server.Config, reg prometheus.Registerer) (abci.Application, error) {
	kv, err := CommitKVStore(filepath.Join(home, "tescrow.db"), cfg.DBBackend)
	if err != nil {
		return nil, err
	}
	metrics, err := utils.NewMetrics(reg)
	if err != nil {
		return nil, err
	}
	application := Application(Name, Stack(metrics), TxDecoder, kv, cfg.Debug)

	// set the logger and return
	application.WithLogger(logger)
	return application, nil
}

type output struct {
	Address tescrow.Address `json:"address"`
	Pubkey  []byte          `json:"pub_key"`
	Secret  []byte          `json:"secret"`
}

// GenerateCoinKey returns the address of a public key,
// along with a json representation of the keys.
// You can give coins to this address and
// import the keys in a client to use them
func GenerateCoinKey() (tescrow.Address, string, error) {
	privKey := crypto.GenPrivKeyEd25519()
	pubKey := privKey.PublicKey()
	addr := pubKey.Address()

	out := output{
		Address: addr,
		Pubkey:  pubKey.Ed25519,
		Secret:  privKey.Ed25519,
	}
	keys, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrInput, err.Error())
	}
	return addr, string(keys), nil
}
