package coin

import (
	"sort"

	"github.com/iov-one/almoner/errors"
)

// Coins is a set of coins, one per currency, sorted by ticker for a
// deterministic representation.
type Coins []Coin

// NewCoins builds a normalized set out of the given coins: same currencies
// combined, zero values dropped, sorted by ticker.
func NewCoins(cs ...Coin) (Coins, error) {
	byTicker := make(map[string]int64, len(cs))
	for _, c := range cs {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		n := byTicker[c.Ticker] + c.Amount
		byTicker[c.Ticker] = n
	}
	res := make(Coins, 0, len(byTicker))
	for ticker, amount := range byTicker {
		if amount == 0 {
			continue
		}
		res = append(res, Coin{Ticker: ticker, Amount: amount})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Ticker < res[j].Ticker })
	for _, c := range res {
		if !c.IsValidAmount() {
			return nil, errors.Wrapf(errors.ErrOverflow, "amount of %s", c.Ticker)
		}
	}
	return res, nil
}

// Amount returns the amount stored for the given currency, zero when the
// set does not contain it.
func (cs Coins) Amount(ticker string) int64 {
	for _, c := range cs {
		if c.Ticker == ticker {
			return c.Amount
		}
	}
	return 0
}

// Add returns a new set with the given coin combined in. The receiver is
// not modified.
func (cs Coins) Add(o Coin) (Coins, error) {
	all := make([]Coin, 0, len(cs)+1)
	all = append(all, cs...)
	all = append(all, o)
	return NewCoins(all...)
}

// Subtract returns a new set with the given coin value removed. The result
// may contain negative amounts only transiently during validation, in which
// case an error is returned.
func (cs Coins) Subtract(o Coin) (Coins, error) {
	res, err := cs.Add(o.Negative())
	if err != nil {
		return nil, err
	}
	for _, c := range res {
		if !c.IsNonNegative() {
			return nil, errors.Wrapf(errors.ErrAmount, "insufficient %s", c.Ticker)
		}
	}
	return res, nil
}

// Contains returns true if the set holds at least the given coin value.
func (cs Coins) Contains(o Coin) bool {
	if !o.IsPositive() {
		return false
	}
	return cs.Amount(o.Ticker) >= o.Amount
}

// IsEmpty returns true when the set holds no value at all.
func (cs Coins) IsEmpty() bool {
	for _, c := range cs {
		if !c.IsZero() {
			return false
		}
	}
	return true
}

// IsPositive returns true when the set holds some value and no negative
// amounts.
func (cs Coins) IsPositive() bool {
	if cs.IsEmpty() {
		return false
	}
	return cs.IsNonNegative()
}

// IsNonNegative returns true if no amount in the set is negative.
func (cs Coins) IsNonNegative() bool {
	for _, c := range cs {
		if !c.IsNonNegative() {
			return false
		}
	}
	return true
}

// Equals returns true if both sets hold the same value.
func (cs Coins) Equals(o Coins) bool {
	if len(cs) != len(o) {
		return false
	}
	for i := range cs {
		if !cs[i].Equals(o[i]) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the set.
func (cs Coins) Clone() Coins {
	res := make(Coins, len(cs))
	copy(res, cs)
	return res
}

// Validate requires a sorted, deduplicated set of valid coins.
func (cs Coins) Validate() error {
	last := ""
	for _, c := range cs {
		if err := c.Validate(); err != nil {
			return err
		}
		if c.Ticker <= last {
			return errors.Wrap(errors.ErrState, "coins not sorted by ticker")
		}
		last = c.Ticker
	}
	return nil
}
