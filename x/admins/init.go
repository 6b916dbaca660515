package admins

import (
	"github.com/iov-one/almoner"
	"github.com/iov-one/almoner/errors"
	"github.com/iov-one/almoner/gconf"
)

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ almoner.Initializer = (*Initializer)(nil)

// FromGenesis initializes the registry from the "admins" genesis option:
//
//	"admins": {
//	  "admins": ["C0FFEE...", ...],
//	  "donation_denom": "eth"
//	}
//
// Every listed address is validated and registered with the genesis block
// time as its join time. The first invalid address aborts the whole
// initialization, nothing is registered. Duplicates in the list are
// processed independently, the last entry wins.
func (Initializer) FromGenesis(ctx almoner.Context, opts almoner.Options, kv almoner.KVStore) error {
	var genesis struct {
		Admins        []string `json:"admins"`
		DonationDenom string   `json:"donation_denom"`
	}
	if err := opts.ReadOptions("admins", &genesis); err != nil {
		return errors.Wrap(err, "read admins genesis")
	}

	conf := Configuration{DonationDenom: genesis.DonationDenom}
	if err := gconf.Save(kv, "admins", &conf); err != nil {
		return errors.Wrap(err, "save configuration")
	}

	now, err := almoner.BlockTime(ctx)
	if err != nil {
		return errors.Wrap(err, "block time")
	}
	joined := almoner.AsUnixTime(now)

	book := NewMemberBook()
	for _, enc := range genesis.Admins {
		addr, err := almoner.ParseAddress(enc)
		if err != nil {
			return errors.Wrapf(err, "admin %q", enc)
		}
		if err := book.Put(kv, addr, joined); err != nil {
			return errors.Wrapf(err, "cannot register %q", enc)
		}
	}
	return nil
}
