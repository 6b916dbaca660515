package coin

import (
	"regexp"
	"strconv"

	"github.com/iov-one/almoner/errors"
)

// IsCC determines if a string is a valid currency code. Currency codes are
// lowercase, as they name on-chain denominations rather than ISO tickers.
var IsCC = regexp.MustCompile(`^[a-z]{3,10}$`).MatchString

// Coin is a whole number of units of a single currency. The registry deals
// only in integer quantities, there is no fractional component.
type Coin struct {
	Amount int64  `json:"amount"`
	Ticker string `json:"ticker"`
}

// NewCoin creates a new coin object.
func NewCoin(amount int64, ticker string) Coin {
	return Coin{
		Amount: amount,
		Ticker: ticker,
	}
}

// ID returns the coin ticker name.
func (c Coin) ID() string {
	return c.Ticker
}

// Divide splits the value of a coin into the given number of pieces and
// returns a single piece together with the leftover that cannot be
// distributed evenly.
//   5 = 2 x 2 + 1
func (c Coin) Divide(pieces int64) (Coin, Coin, error) {
	// This is an invalid use of the method.
	if pieces <= 0 {
		zero := Coin{Ticker: c.Ticker}
		return zero, zero, errors.Wrap(errors.ErrInput, "pieces must be greater than zero")
	}

	one := Coin{
		Ticker: c.Ticker,
		Amount: c.Amount / pieces,
	}
	rest := Coin{
		Ticker: c.Ticker,
		Amount: c.Amount % pieces,
	}
	return one, rest, nil
}

// Multiply returns the result of a coin value multiplication. This method
// returns an error if the result would overflow the maximum coin value.
func (c Coin) Multiply(times int64) (Coin, error) {
	if times == 0 || c.Amount == 0 {
		return Coin{Ticker: c.Ticker}, nil
	}
	amount, err := mul64(c.Amount, times)
	if err != nil {
		return Coin{}, err
	}
	return Coin{Ticker: c.Ticker, Amount: amount}, nil
}

// mul64 multiplies two int64 numbers. If the result overflows the int64
// range, an error is returned.
func mul64(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	c := a * b
	if c/a != b {
		return c, errors.Wrapf(errors.ErrOverflow, "cannot multiply %d and %d", a, b)
	}
	return c, nil
}

// Add combines two coins of the same currency.
func (c Coin) Add(o Coin) (Coin, error) {
	if !c.SameType(o) {
		err := errors.Wrapf(errors.ErrCurrency, "adding %s to %s", c.Ticker, o.Ticker)
		return Coin{}, err
	}
	c.Amount += o.Amount
	if !c.IsValidAmount() {
		return Coin{}, errors.Wrap(errors.ErrOverflow, "amount")
	}
	return c, nil
}

// Subtract removes the other coin value from this one.
func (c Coin) Subtract(o Coin) (Coin, error) {
	return c.Add(o.Negative())
}

// Negative returns the opposite coin value.
//   c.Add(c.Negative()).IsZero() == true
func (c Coin) Negative() Coin {
	return Coin{
		Ticker: c.Ticker,
		Amount: -1 * c.Amount,
	}
}

// Compare will check values of two coins, without matching currency.
// It returns -1, 0 or 1 for less than, equal to and greater than.
func (c Coin) Compare(o Coin) int {
	switch {
	case c.Amount < o.Amount:
		return -1
	case c.Amount > o.Amount:
		return 1
	default:
		return 0
	}
}

// Equals returns true if all fields are identical.
func (c Coin) Equals(o Coin) bool {
	return c.Ticker == o.Ticker && c.Amount == o.Amount
}

// IsZero returns true if the amount is zero.
func (c Coin) IsZero() bool {
	return c.Amount == 0
}

// IsPositive returns true if the amount is greater than zero.
func (c Coin) IsPositive() bool {
	return c.Amount > 0
}

// IsNonNegative returns true if the amount is zero or greater.
func (c Coin) IsNonNegative() bool {
	return c.Amount >= 0
}

// IsGTE returns true if the amount is at least as large as the other,
// assuming they have the same currency.
func (c Coin) IsGTE(o Coin) bool {
	return c.SameType(o) && c.Amount >= o.Amount
}

// SameType returns true if both coins name the same currency.
func (c Coin) SameType(o Coin) bool {
	return c.Ticker == o.Ticker
}

// Clone provides an independent copy of a coin.
func (c Coin) Clone() Coin {
	return Coin{
		Ticker: c.Ticker,
		Amount: c.Amount,
	}
}

// MaxAmount is the largest whole amount a single coin can hold. The limit
// keeps additions of two valid coins from overflowing int64.
const MaxAmount = int64(999999999999999) // 10^15-1

// IsValidAmount returns true if the amount is within the allowed range.
func (c Coin) IsValidAmount() bool {
	return c.Amount >= -MaxAmount && c.Amount <= MaxAmount
}

// Validate ensures the coin is in the valid range and names a parsable
// currency.
func (c Coin) Validate() error {
	if !IsCC(c.Ticker) {
		return errors.Wrapf(errors.ErrCurrency, "invalid currency: %s", c.Ticker)
	}
	if !c.IsValidAmount() {
		return errors.Wrap(errors.ErrAmount, "out of range")
	}
	return nil
}

func (c Coin) String() string {
	return strconv.FormatInt(c.Amount, 10) + " " + c.Ticker
}
