package admins

import (
	"encoding/json"

	"github.com/iov-one/almoner"
	"github.com/iov-one/almoner/coin"
	"github.com/iov-one/almoner/errors"
	"github.com/iov-one/almoner/gconf"
)

// memberPrefix namespaces all membership entries in the database. The raw
// address bytes follow the prefix, so iterating the range yields members in
// ascending address order.
const memberPrefix = "admins:m:"

// MemberBook is the explicit handle to the membership storage. Every
// operation takes the store it acts on, nothing is cached.
type MemberBook struct{}

// NewMemberBook returns a handle to the membership storage.
func NewMemberBook() MemberBook {
	return MemberBook{}
}

func memberKey(addr almoner.Address) []byte {
	return append([]byte(memberPrefix), addr...)
}

// Put registers the address with the given join time. This is an
// unconditional upsert: registering an existing member overwrites its join
// time.
func (b MemberBook) Put(db almoner.KVStore, addr almoner.Address, joined almoner.UnixTime) error {
	raw, err := json.Marshal(joined)
	if err != nil {
		return errors.Wrapf(errors.ErrState, "marshal join time: %s", err)
	}
	if err := db.Set(memberKey(addr), raw); err != nil {
		return errors.Wrapf(errors.ErrStore, "member %s: %s", addr, err)
	}
	return nil
}

// Remove deletes the address from the book. Removing an address that is
// not a member is not an error.
func (b MemberBook) Remove(db almoner.KVStore, addr almoner.Address) error {
	if err := db.Delete(memberKey(addr)); err != nil {
		return errors.Wrapf(errors.ErrStore, "member %s: %s", addr, err)
	}
	return nil
}

// JoinTime returns the join time of the given member. ErrNotFound is
// returned if the address is not currently a member, including when it has
// left.
func (b MemberBook) JoinTime(db almoner.ReadOnlyKVStore, addr almoner.Address) (almoner.UnixTime, error) {
	raw, err := db.Get(memberKey(addr))
	if err != nil {
		return 0, errors.Wrapf(errors.ErrStore, "member %s: %s", addr, err)
	}
	if raw == nil {
		return 0, errors.Wrapf(errors.ErrNotFound, "member %s", addr)
	}
	var joined almoner.UnixTime
	if err := json.Unmarshal(raw, &joined); err != nil {
		return 0, errors.Wrapf(errors.ErrState, "member %s: %s", addr, err)
	}
	return joined, nil
}

// All returns every member address, ascending by the address bytes. The
// order is deterministic and stable as long as the membership does not
// change.
func (b MemberBook) All(db almoner.ReadOnlyKVStore) ([]almoner.Address, error) {
	start, end := prefixRange([]byte(memberPrefix))
	it, err := db.Iterator(start, end)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrStore, "members: %s", err)
	}
	defer it.Close()

	var members []almoner.Address
	for it.Valid() {
		key := it.Key()
		addr := make(almoner.Address, len(key)-len(memberPrefix))
		copy(addr, key[len(memberPrefix):])
		members = append(members, addr)
		if err := it.Next(); err != nil {
			return nil, errors.Wrapf(errors.ErrStore, "members: %s", err)
		}
	}
	return members, nil
}

// prefixRange turns a prefix into a (start, end) iteration range covering
// exactly the keys with that prefix.
func prefixRange(prefix []byte) ([]byte, []byte) {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return prefix, end
		}
		// overflow, shorten the end and continue
		end = end[:i]
	}
	// prefix of only 0xff bytes, iterate to the very end
	return prefix, nil
}

// Configuration holds the donation currency of the registry. It is written
// exactly once, during initialization, and never changes afterwards: no
// handler updates it.
type Configuration struct {
	DonationDenom string `json:"donation_denom"`
}

// Validate requires a parsable currency name.
func (c *Configuration) Validate() error {
	if !coin.IsCC(c.DonationDenom) {
		return errors.Wrapf(errors.ErrCurrency, "donation denom: %q", c.DonationDenom)
	}
	return nil
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var c Configuration
	if err := gconf.Load(db, "admins", &c); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &c, nil
}

// PoolAccount is the registry owned account that collects donations before
// they are distributed. Remainders that cannot be split evenly accumulate
// here.
func PoolAccount() almoner.Address {
	return almoner.NewCondition("admins", "pool", []byte("donations")).Address()
}
