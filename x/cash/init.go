package cash

import (
	"github.com/iov-one/almoner"
	"github.com/iov-one/almoner/coin"
	"github.com/iov-one/almoner/errors"
)

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ almoner.Initializer = (*Initializer)(nil)

// FromGenesis will parse initial account balances from genesis and save
// them to the database.
func (*Initializer) FromGenesis(ctx almoner.Context, opts almoner.Options, kv almoner.KVStore) error {
	var accounts []struct {
		Address almoner.Address `json:"address"`
		Coins   []coin.Coin     `json:"coins"`
	}
	if err := opts.ReadOptions("cash", &accounts); err != nil {
		return errors.Wrap(errors.ErrInput, "cannot load cash")
	}

	bucket := NewBucket()
	for i, acc := range accounts {
		if err := acc.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
		coins, err := coin.NewCoins(acc.Coins...)
		if err != nil {
			return errors.Wrapf(err, "account #%d coins", i)
		}
		if err := bucket.Save(kv, acc.Address, coins); err != nil {
			return errors.Wrapf(err, "cannot store #%d account", i)
		}
	}
	return nil
}
