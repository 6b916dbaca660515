package cash

import (
	"github.com/iov-one/almoner"
	"github.com/iov-one/almoner/coin"
	"github.com/iov-one/almoner/errors"
)

// Controller allows to manage coins stored by the accounts without the need
// to directly access the bucket.
type Controller struct {
	bucket Bucket
}

// NewController returns a controller using the given bucket underneath.
func NewController(bucket Bucket) *Controller {
	return &Controller{bucket: bucket}
}

// Balance returns the coins stored under the given account. A missing
// account is reported as ErrNotFound.
func (c *Controller) Balance(db almoner.KVStore, src almoner.Address) (coin.Coins, error) {
	return c.bucket.Wallet(db, src)
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient coins, it fails.
func (c *Controller) MoveCoins(db almoner.KVStore, src, dest almoner.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive transfer: %v", amount)
	}

	sender, err := c.bucket.Wallet(db, src)
	if err != nil {
		return errors.Wrap(err, "sender")
	}
	if !sender.Contains(amount) {
		return errors.Wrapf(errors.ErrAmount, "%s has insufficient funds", src)
	}
	left, err := sender.Subtract(amount)
	if err != nil {
		return err
	}

	recipient, err := c.bucket.Wallet(db, dest)
	switch {
	case err == nil:
	case errors.ErrNotFound.Is(err):
		recipient = nil
	default:
		return errors.Wrap(err, "recipient")
	}
	total, err := recipient.Add(amount)
	if err != nil {
		return err
	}

	if err := c.bucket.Save(db, src, left); err != nil {
		return err
	}
	return c.bucket.Save(db, dest, total)
}

// IssueCoins attempts to add the given amount of coins to the destination
// address. It is used to seed accounts during initialization.
func (c *Controller) IssueCoins(db almoner.KVStore, dest almoner.Address, amount coin.Coin) error {
	recipient, err := c.bucket.Wallet(db, dest)
	switch {
	case err == nil:
	case errors.ErrNotFound.Is(err):
		recipient = nil
	default:
		return err
	}
	total, err := recipient.Add(amount)
	if err != nil {
		return err
	}
	return c.bucket.Save(db, dest, total)
}
