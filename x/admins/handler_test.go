package admins

import (
	"bytes"
	"context"
	"sort"
	"testing"
	"time"

	"github.com/iov-one/almoner"
	"github.com/iov-one/almoner/almtest"
	"github.com/iov-one/almoner/almtest/assert"
	"github.com/iov-one/almoner/coin"
	"github.com/iov-one/almoner/errors"
	"github.com/iov-one/almoner/gconf"
	"github.com/iov-one/almoner/store"
	"github.com/iov-one/almoner/x/cash"
)

var blockNow = time.Date(2021, time.June, 1, 10, 0, 0, 0, time.UTC)

// newTestDB returns a store with the donation currency configured and the
// given addresses registered as members.
func newTestDB(t testing.TB, denom string, members ...almoner.Address) almoner.CacheableKVStore {
	t.Helper()
	db := store.MemStore()
	conf := Configuration{DonationDenom: denom}
	assert.Nil(t, gconf.Save(db, "admins", &conf))
	book := NewMemberBook()
	for _, m := range members {
		assert.Nil(t, book.Put(db, m, almoner.AsUnixTime(blockNow)))
	}
	return db
}

func TestLeaveHandler(t *testing.T) {
	member := almtest.NewCondition()
	stranger := almtest.NewCondition()

	cases := map[string]struct {
		signer     almoner.Condition
		wantErr    *errors.Error
		wantMember bool
	}{
		"member leaves": {
			signer: member,
		},
		"leaving without being a member is a noop": {
			signer: stranger,
		},
		"no signer": {
			signer:  nil,
			wantErr: errors.ErrUnauthorized,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := newTestDB(t, "eth", member.Address())
			auth := &almtest.CtxAuth{Key: "auth"}
			h := leaveHandler{auth: auth, book: NewMemberBook()}

			ctx := almoner.WithBlockTime(context.Background(), blockNow)
			if tc.signer != nil {
				ctx = auth.SetConditions(ctx, tc.signer)
			}
			tx := &almtest.Tx{Msg: &LeaveMsg{}}

			if _, err := h.Check(ctx, db, tx); !tc.wantErr.Is(err) {
				t.Fatalf("check: want %q, got %+v", tc.wantErr, err)
			}
			res, err := h.Deliver(ctx, db, tx)
			if !tc.wantErr.Is(err) {
				t.Fatalf("deliver: want %q, got %+v", tc.wantErr, err)
			}
			if tc.wantErr != nil {
				return
			}

			if _, err := NewMemberBook().JoinTime(db, tc.signer.Address()); !errors.ErrNotFound.Is(err) {
				t.Fatalf("member still registered: %+v", err)
			}
			assert.Equal(t, "leave", tagValue(t, res, "action"))
			assert.Equal(t, tc.signer.Address().String(), tagValue(t, res, "sender"))
		})
	}
}

func TestLeaveTwice(t *testing.T) {
	member := almtest.NewCondition()
	db := newTestDB(t, "eth", member.Address())
	auth := &almtest.CtxAuth{Key: "auth"}
	h := leaveHandler{auth: auth, book: NewMemberBook()}
	ctx := auth.SetConditions(almoner.WithBlockTime(context.Background(), blockNow), member)
	tx := &almtest.Tx{Msg: &LeaveMsg{}}

	if _, err := h.Deliver(ctx, db, tx); err != nil {
		t.Fatalf("first leave: %+v", err)
	}
	if _, err := h.Deliver(ctx, db, tx); err != nil {
		t.Fatalf("second leave must succeed: %+v", err)
	}
}

func TestDonateHandler(t *testing.T) {
	members := []almoner.Condition{
		almtest.NewCondition(),
		almtest.NewCondition(),
	}
	addrs := make([]almoner.Address, len(members))
	for i, m := range members {
		addrs[i] = m.Address()
	}

	cases := map[string]struct {
		members    []almoner.Address
		payment    coin.Coins
		wantErr    *errors.Error
		wantEach   int64
		wantPool   int64
		wantPerTag string
		wantAmtTag string
	}{
		"5 eth split between two admins": {
			members:    addrs,
			payment:    coin.Coins{coin.NewCoin(5, "eth")},
			wantEach:   2,
			wantPool:   1,
			wantPerTag: "2",
			wantAmtTag: "5",
		},
		"even split leaves nothing in the pool": {
			members:    addrs,
			payment:    coin.Coins{coin.NewCoin(4, "eth")},
			wantEach:   2,
			wantPool:   0,
			wantPerTag: "2",
			wantAmtTag: "4",
		},
		"donation smaller than the member count stays in the pool": {
			members:    addrs,
			payment:    coin.Coins{coin.NewCoin(1, "eth")},
			wantEach:   0,
			wantPool:   1,
			wantPerTag: "0",
			wantAmtTag: "1",
		},
		"no payment": {
			members: addrs,
			payment: nil,
			wantErr: ErrPayment,
		},
		"wrong currency": {
			members: addrs,
			payment: coin.Coins{coin.NewCoin(5, "btc")},
			wantErr: ErrPayment,
		},
		"more than one currency": {
			members: addrs,
			payment: coin.Coins{coin.NewCoin(5, "btc"), coin.NewCoin(5, "eth")},
			wantErr: ErrPayment,
		},
		"no members": {
			members: nil,
			payment: coin.Coins{coin.NewCoin(5, "eth")},
			wantErr: ErrNoAdmins,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := newTestDB(t, "eth", tc.members...)
			ctrl := cash.NewController(cash.NewBucket())

			// The payment decorator would have credited the
			// attached funds to the pool account already.
			for _, c := range tc.payment {
				assert.Nil(t, ctrl.IssueCoins(db, PoolAccount(), c))
			}

			auth := &almtest.CtxAuth{Key: "auth"}
			h := donateHandler{auth: auth, book: NewMemberBook(), ctrl: ctrl}
			ctx := auth.SetConditions(
				almoner.WithBlockTime(context.Background(), blockNow),
				almtest.NewCondition())
			tx := &almtest.Tx{Msg: &DonateMsg{}, Payment: tc.payment}

			res, err := h.Deliver(ctx, db, tx)
			if !tc.wantErr.Is(err) {
				t.Fatalf("want %q, got %+v", tc.wantErr, err)
			}
			if tc.wantErr != nil {
				return
			}

			for _, addr := range tc.members {
				assertBalance(t, ctrl, db, addr, tc.wantEach, "eth")
			}
			assertBalance(t, ctrl, db, PoolAccount(), tc.wantPool, "eth")

			assert.Equal(t, "donate", tagValue(t, res, "action"))
			assert.Equal(t, tc.wantAmtTag, tagValue(t, res, "amount"))
			assert.Equal(t, tc.wantPerTag, tagValue(t, res, "per_admin"))
		})
	}
}

func tagValue(t testing.TB, res *almoner.DeliverResult, key string) string {
	t.Helper()
	val, ok := res.GetTag(key)
	if !ok {
		t.Fatalf("tag %q not set", key)
	}
	return val
}

func assertBalance(t testing.TB, ctrl *cash.Controller, db almoner.KVStore, addr almoner.Address, amount int64, ticker string) {
	t.Helper()
	coins, err := ctrl.Balance(db, addr)
	switch {
	case errors.ErrNotFound.Is(err):
		coins = nil
	case err != nil:
		t.Fatalf("balance of %s: %+v", addr, err)
	}
	if got := coins.Amount(ticker); got != amount {
		t.Fatalf("want %d %s on %s, got %d", amount, ticker, addr, got)
	}
}

func TestDonateFailureKeepsBalances(t *testing.T) {
	// A donation in a wrong currency must not move any funds, even
	// though the payment decorator already credited them to the pool
	// within the same cache-wrap. Discarding the wrap restores the
	// wallet of the donor.
	db := store.MemStore()
	cache := db.CacheWrap()

	conf := Configuration{DonationDenom: "eth"}
	assert.Nil(t, gconf.Save(db, "admins", &conf))

	member := almtest.NewCondition()
	donor := almtest.NewCondition()
	book := NewMemberBook()
	assert.Nil(t, book.Put(db, member.Address(), almoner.AsUnixTime(blockNow)))

	ctrl := cash.NewController(cash.NewBucket())
	assert.Nil(t, ctrl.IssueCoins(db, donor.Address(), coin.NewCoin(5, "btc")))

	// Collection succeeds on the cache, the handler then rejects the
	// currency.
	assert.Nil(t, ctrl.MoveCoins(cache, donor.Address(), PoolAccount(), coin.NewCoin(5, "btc")))

	auth := &almtest.CtxAuth{Key: "auth"}
	h := donateHandler{auth: auth, book: book, ctrl: ctrl}
	ctx := auth.SetConditions(almoner.WithBlockTime(context.Background(), blockNow), donor)
	tx := &almtest.Tx{Msg: &DonateMsg{}, Payment: coin.Coins{coin.NewCoin(5, "btc")}}

	if _, err := h.Deliver(ctx, cache, tx); !ErrPayment.Is(err) {
		t.Fatalf("want payment error, got %+v", err)
	}
	cache.Discard()

	assertBalance(t, ctrl, db, donor.Address(), 5, "btc")
	assertBalance(t, ctrl, db, PoolAccount(), 0, "btc")
}

func TestAddMembersHandler(t *testing.T) {
	member := almtest.NewCondition()
	stranger := almtest.NewCondition()
	newcomer := almtest.NewCondition().Address()

	cases := map[string]struct {
		signer  almoner.Condition
		admins  []string
		wantErr *errors.Error
	}{
		"member adds a newcomer": {
			signer: member,
			admins: []string{newcomer.String()},
		},
		"re-adding an existing member refreshes the join time": {
			signer: member,
			admins: []string{member.Address().String()},
		},
		"stranger cannot add": {
			signer:  stranger,
			admins:  []string{newcomer.String()},
			wantErr: errors.ErrUnauthorized,
		},
		"no signer": {
			signer:  nil,
			admins:  []string{newcomer.String()},
			wantErr: errors.ErrUnauthorized,
		},
		"empty list": {
			signer:  member,
			admins:  nil,
			wantErr: errors.ErrEmpty,
		},
		"invalid address aborts the whole call": {
			signer:  member,
			admins:  []string{newcomer.String(), "zzzz"},
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := newTestDB(t, "eth", member.Address())
			auth := &almtest.CtxAuth{Key: "auth"}
			h := addMembersHandler{auth: auth, book: NewMemberBook()}

			later := blockNow.Add(time.Hour)
			ctx := almoner.WithBlockTime(context.Background(), later)
			if tc.signer != nil {
				ctx = auth.SetConditions(ctx, tc.signer)
			}
			tx := &almtest.Tx{Msg: &AddMembersMsg{Admins: tc.admins}}

			_, err := h.Deliver(ctx, db, tx)
			if !tc.wantErr.Is(err) {
				t.Fatalf("want %q, got %+v", tc.wantErr, err)
			}
			if tc.wantErr != nil {
				return
			}

			book := NewMemberBook()
			for _, enc := range tc.admins {
				addr := almtest.ParseAddress(t, enc)
				joined, err := book.JoinTime(db, addr)
				assert.Nil(t, err)
				assert.Equal(t, almoner.AsUnixTime(later), joined)
			}
		})
	}
}

func TestMembersQuery(t *testing.T) {
	members := []almoner.Address{
		almtest.NewCondition().Address(),
		almtest.NewCondition().Address(),
		almtest.NewCondition().Address(),
	}
	db := newTestDB(t, "eth", members...)

	q := membersQuery{book: NewMemberBook()}
	models, err := q.Query(db, almoner.KeyQueryMod, nil)
	assert.Nil(t, err)
	assert.Equal(t, len(members), len(models))

	sorted := make([]almoner.Address, len(members))
	copy(sorted, members)
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i], sorted[j]) < 0
	})
	for i, m := range models {
		assert.Equal(t, []byte(sorted[i]), m.Key)
	}
}

func TestJoinTimeQuery(t *testing.T) {
	member := almtest.NewCondition().Address()
	db := newTestDB(t, "eth", member)

	q := joinTimeQuery{book: NewMemberBook()}
	models, err := q.Query(db, almoner.KeyQueryMod, member)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(models))

	// An unknown or malformed key cannot match anything.
	if _, err := q.Query(db, almoner.KeyQueryMod, []byte("anything")); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found, got %+v", err)
	}
}
