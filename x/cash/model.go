package cash

import (
	"encoding/json"

	"github.com/iov-one/almoner"
	"github.com/iov-one/almoner/coin"
	"github.com/iov-one/almoner/errors"
)

// bucketPrefix namespaces all wallet entries in the database.
const bucketPrefix = "cash:"

// Wallet is the state of the coins owned by a single address.
type Wallet struct {
	Coins coin.Coins `json:"coins"`
}

// Validate requires a normalized coin set.
func (w *Wallet) Validate() error {
	return errors.Wrap(w.Coins.Validate(), "coins")
}

// Bucket provides access to the wallet storage.
type Bucket struct{}

// NewBucket initializes a wallet bucket.
func NewBucket() Bucket {
	return Bucket{}
}

func walletKey(addr almoner.Address) []byte {
	return append([]byte(bucketPrefix), addr...)
}

// Wallet returns the coins owned by the given address. A missing wallet is
// reported as ErrNotFound.
func (b Bucket) Wallet(db almoner.ReadOnlyKVStore, addr almoner.Address) (coin.Coins, error) {
	raw, err := db.Get(walletKey(addr))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrStore, "wallet of %s: %s", addr, err)
	}
	if raw == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "wallet of %s", addr)
	}
	var w Wallet
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, errors.Wrapf(errors.ErrState, "wallet of %s: %s", addr, err)
	}
	return w.Coins, nil
}

// Save persists the wallet of the given address. An empty wallet removes
// the database entry instead of storing a husk.
func (b Bucket) Save(db almoner.KVStore, addr almoner.Address, coins coin.Coins) error {
	if coins.IsEmpty() {
		if err := db.Delete(walletKey(addr)); err != nil {
			return errors.Wrapf(errors.ErrStore, "delete wallet of %s: %s", addr, err)
		}
		return nil
	}
	w := Wallet{Coins: coins}
	if err := w.Validate(); err != nil {
		return err
	}
	raw, err := json.Marshal(&w)
	if err != nil {
		return errors.Wrapf(errors.ErrState, "marshal wallet of %s: %s", addr, err)
	}
	if err := db.Set(walletKey(addr), raw); err != nil {
		return errors.Wrapf(errors.ErrStore, "save wallet of %s: %s", addr, err)
	}
	return nil
}
