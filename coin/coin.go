/*
Package coin defines the asset amounts moved between holding accounts.

A coin is an unsigned amount of the smallest unit of an asset class,
identified by its ticker. Coins is a normalized set of coins, sorted by
ticker and without zero entries.
*/
package coin

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/tescrow/errors"
)

// TickerLength is the longest allowed ticker. Escrow records store asset
// classes in fixed fields of this size.
const TickerLength = 8

var tickerFormat = regexp.MustCompile(`^[A-Z][A-Z0-9]{2,7}$`)

// IsCC reports whether s is a valid ticker: an upper case letter followed
// by 2 to 7 upper case letters or digits.
func IsCC(s string) bool {
	return tickerFormat.MatchString(s)
}

// Coin is an amount of a single asset class.
type Coin struct {
	Ticker string `json:"ticker" protobuf:"bytes,1,opt,name=ticker,proto3"`
	Amount uint64 `json:"amount" protobuf:"varint,2,opt,name=amount,proto3"`
}

func NewCoin(amount uint64, ticker string) Coin {
	return Coin{Ticker: ticker, Amount: amount}
}

func NewCoinp(amount uint64, ticker string) *Coin {
	return &Coin{Ticker: ticker, Amount: amount}
}

// IsEmpty reports whether c is nil or zero.
func IsEmpty(c *Coin) bool {
	return c == nil || c.Amount == 0
}

func (c Coin) ID() string           { return c.Ticker }
func (c Coin) IsZero() bool         { return c.Amount == 0 }
func (c Coin) IsPositive() bool     { return c.Amount > 0 }
func (c Coin) SameType(o Coin) bool { return c.Ticker == o.Ticker }
func (c Coin) Equals(o Coin) bool   { return c == o }
func (c Coin) IsGTE(o Coin) bool    { return c.SameType(o) && c.Amount >= o.Amount }

// Compare orders coins by amount only. Check SameType first where the
// ticker matters.
func (c Coin) Compare(o Coin) int {
	if c.Amount == o.Amount {
		return 0
	}
	if c.Amount > o.Amount {
		return 1
	}
	return -1
}

// Add sums two coins of the same ticker. A coin with neither ticker nor
// amount is neutral. It fails with ErrCurrency on different tickers and
// with ErrOverflow when the sum does not fit.
func (c Coin) Add(o Coin) (Coin, error) {
	switch {
	case c == Coin{}:
		return o, nil
	case o == Coin{}:
		return c, nil
	case !c.SameType(o):
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "adding %s to %s", o.Ticker, c.Ticker)
	case c.Amount+o.Amount < c.Amount:
		return Coin{}, errors.Wrapf(errors.ErrOverflow, "%s + %s", c, o)
	}
	c.Amount += o.Amount
	return c, nil
}

// Subtract takes o from c. It fails with ErrInsufficientAmount when o is
// larger.
func (c Coin) Subtract(o Coin) (Coin, error) {
	switch {
	case o.IsZero():
		return c, nil
	case !c.SameType(o):
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "subtracting %s from %s", o.Ticker, c.Ticker)
	case c.Amount < o.Amount:
		return Coin{}, errors.Wrapf(errors.ErrInsufficientAmount, "%s is less than %s", c, o)
	}
	c.Amount -= o.Amount
	return c, nil
}

func (c *Coin) Clone() *Coin {
	if c == nil {
		return nil
	}
	cpy := *c
	return &cpy
}

// Validate checks the ticker only. Zero amounts are valid coins.
func (c Coin) Validate() error {
	if !IsCC(c.Ticker) {
		return errors.Wrapf(errors.ErrCurrency, "invalid currency: %q", c.Ticker)
	}
	return nil
}

// coinPB is the protobuf view of Coin. It has no Marshal method so the
// protobuf library encodes it from the struct tags.
type coinPB Coin

func (c *coinPB) Reset()         { *c = coinPB{} }
func (c *coinPB) String() string { return proto.CompactTextString(c) }
func (*coinPB) ProtoMessage()    {}

// Marshal encodes the coin as a protobuf message.
func (c *Coin) Marshal() ([]byte, error) {
	return proto.Marshal((*coinPB)(c))
}

// Unmarshal decodes a protobuf message created by Marshal.
func (c *Coin) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*coinPB)(c))
}

// UnmarshalJSON accepts both the human readable "<amount> <ticker>" format
// and a JSON object.
func (c *Coin) UnmarshalJSON(raw []byte) error {
	var human string
	if err := json.Unmarshal(raw, &human); err == nil {
		parsed, err := ParseHumanFormat(human)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	}

	// Fallback into the default unmarshaling. Because UnmarshalJSON method
	// is provided, we can no longer use Coin type for this.
	var coin struct {
		Ticker string
		Amount uint64
	}
	if err := json.Unmarshal(raw, &coin); err != nil {
		return errors.Wrapf(errors.ErrInput, "coin: %s", err)
	}
	c.Ticker = coin.Ticker
	c.Amount = coin.Amount
	return nil
}

// String provides a human readable representation of the coin. For a valid
// coin the result can be parsed back with ParseHumanFormat.
func (c Coin) String() string {
	if c.Ticker == "" {
		return strconv.FormatUint(c.Amount, 10)
	}
	return fmt.Sprintf("%d %s", c.Amount, c.Ticker)
}

var humanCoinFormatRx = regexp.MustCompile(`^\s*(\d+)\s*([A-Z][A-Z0-9]{2,7})\s*$`)

// ParseHumanFormat parse a human readable coin representation. Accepted format
// is a string:
//   "<amount> <ticker>"
func ParseHumanFormat(h string) (Coin, error) {
	m := humanCoinFormatRx.FindStringSubmatch(h)
	if m == nil {
		return Coin{}, errors.Wrapf(errors.ErrInput, "invalid coin format %q", h)
	}
	amount, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return Coin{}, errors.Wrapf(errors.ErrOverflow, "amount %q", m[1])
	}
	return NewCoin(amount, m[2]), nil
}

// Set updates this coin value to what is provided. This method implements
// flag.Value interface.
func (c *Coin) Set(raw string) error {
	val, err := ParseHumanFormat(raw)
	if err != nil {
		return err
	}
	*c = val
	return nil
}
