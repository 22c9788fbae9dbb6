package coin

import (
	"sort"

	"github.com/iov-one/tescrow/errors"
)

// Coins is the normalized set of coins a wallet holds: sorted by ticker,
// at most one coin per ticker and never a zero amount. Every method keeps
// that form and none modifies the receiver.
type Coins []*Coin

// CombineCoins validates cs and sums them into a normalized set.
func CombineCoins(cs ...Coin) (Coins, error) {
	var set Coins
	for _, c := range cs {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		next, err := set.Add(c)
		if err != nil {
			return nil, err
		}
		set = next
	}
	return set, nil
}

// NormalizeCoins brings an arbitrary list, for example one read from
// genesis, into normalized form. Nil and zero coins are dropped.
func NormalizeCoins(cs Coins) (Coins, error) {
	var set Coins
	for _, c := range cs {
		if IsEmpty(c) {
			continue
		}
		next, err := set.Add(*c)
		if err != nil {
			return nil, errors.Wrap(err, "cannot sum coins")
		}
		set = next
	}
	return set, nil
}

// locate returns the position of ticker in the set and whether a coin of
// that ticker is there. Without a match the position is where it belongs.
func (cs Coins) locate(ticker string) (int, bool) {
	i := sort.Search(len(cs), func(i int) bool { return cs[i].Ticker >= ticker })
	return i, i < len(cs) && cs[i].Ticker == ticker
}

func (cs Coins) Clone() Coins {
	if cs == nil {
		return nil
	}
	cpy := make(Coins, 0, len(cs))
	for _, c := range cs {
		cpy = append(cpy, c.Clone())
	}
	return cpy
}

// Add returns the set increased by c.
func (cs Coins) Add(c Coin) (Coins, error) {
	res := cs.Clone()
	if c.IsZero() {
		return res, nil
	}
	i, found := res.locate(c.Ticker)
	if found {
		sum, err := res[i].Add(c)
		if err != nil {
			return nil, err
		}
		res[i] = &sum
		return res, nil
	}
	res = append(res[:i], append(Coins{c.Clone()}, res[i:]...)...)
	return res, nil
}

// Subtract returns the set decreased by c. It fails with
// ErrInsufficientAmount unless the set contains c. A ticker that drops to
// zero leaves the set.
func (cs Coins) Subtract(c Coin) (Coins, error) {
	res := cs.Clone()
	if c.IsZero() {
		return res, nil
	}
	i, found := res.locate(c.Ticker)
	if !found {
		return nil, errors.Wrapf(errors.ErrInsufficientAmount, "no %s", c.Ticker)
	}
	left, err := res[i].Subtract(c)
	if err != nil {
		return nil, err
	}
	if left.IsZero() {
		return append(res[:i], res[i+1:]...), nil
	}
	res[i] = &left
	return res, nil
}

// Combine returns the sum of both sets.
func (cs Coins) Combine(o Coins) (Coins, error) {
	res := cs.Clone()
	for _, c := range o {
		var err error
		if res, err = res.Add(*c); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Contains reports whether Subtract(c) would succeed.
func (cs Coins) Contains(c Coin) bool {
	if c.IsZero() {
		return true
	}
	i, found := cs.locate(c.Ticker)
	return found && cs[i].Amount >= c.Amount
}

// Balance returns the amount of ticker in the set.
func (cs Coins) Balance(ticker string) uint64 {
	if i, found := cs.locate(ticker); found {
		return cs[i].Amount
	}
	return 0
}

func (cs Coins) IsEmpty() bool { return len(cs) == 0 }
func (cs Coins) Count() int    { return len(cs) }

func (cs Coins) Equals(o Coins) bool {
	if len(cs) != len(o) {
		return false
	}
	for i, c := range cs {
		if !c.Equals(*o[i]) {
			return false
		}
	}
	return true
}

// Validate checks that the set is normalized and every coin is valid.
func (cs Coins) Validate() error {
	for i, c := range cs {
		switch {
		case c == nil:
			return errors.Wrap(errors.ErrState, "nil coin")
		case c.IsZero():
			return errors.Wrapf(errors.ErrState, "zero %s", c.Ticker)
		case i > 0 && cs[i-1].Ticker >= c.Ticker:
			return errors.Wrapf(errors.ErrState, "%s not sorted", c.Ticker)
		}
		if err := c.Validate(); err != nil {
			return errors.Wrap(err, "coin")
		}
	}
	return nil
}
