package admins

import (
	"strconv"

	"github.com/iov-one/almoner"
	"github.com/iov-one/almoner/coin"
	"github.com/iov-one/almoner/errors"
	"github.com/iov-one/almoner/x"
)

const (
	leaveCost               = 0
	donatePerMemberCost     = 0
	addMembersPerMemberCost = 0
)

// CashController allows to move coins between accounts without the need to
// directly access the wallet bucket. Required functionality is implemented
// by the x/cash extension.
type CashController interface {
	MoveCoins(almoner.KVStore, almoner.Address, almoner.Address, coin.Coin) error
}

// RegisterRoutes registers handlers for the registry message processing.
func RegisterRoutes(r almoner.Registry, auth x.Authenticator, ctrl CashController) {
	book := NewMemberBook()
	r.Handle(pathLeaveMsg, &leaveHandler{
		auth: auth,
		book: book,
	})
	r.Handle(pathDonateMsg, &donateHandler{
		auth: auth,
		book: book,
		ctrl: ctrl,
	})
	r.Handle(pathAddMembersMsg, &addMembersHandler{
		auth: auth,
		book: book,
	})
}

// RegisterQuery registers the membership queries.
func RegisterQuery(qr almoner.QueryRouter) {
	book := NewMemberBook()
	qr.Register("/admins", &membersQuery{book: book})
	qr.Register("/admins/jointime", &joinTimeQuery{book: book})
}

// ------------------- leave -------------------

type leaveHandler struct {
	auth x.Authenticator
	book MemberBook
}

var _ almoner.Handler = (*leaveHandler)(nil)

func (h *leaveHandler) Check(ctx almoner.Context, db almoner.KVStore, tx almoner.Tx) (*almoner.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &almoner.CheckResult{GasAllocated: leaveCost}, nil
}

func (h *leaveHandler) Deliver(ctx almoner.Context, db almoner.KVStore, tx almoner.Tx) (*almoner.DeliverResult, error) {
	sender, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	// Removal is unconditional. Leaving twice, or leaving without ever
	// being a member, is a successful noop.
	if err := h.book.Remove(db, sender); err != nil {
		return nil, errors.Wrap(err, "cannot remove member")
	}

	res := &almoner.DeliverResult{}
	res.AddTag("action", "leave")
	res.AddTag("sender", sender.String())
	return res, nil
}

func (h *leaveHandler) validate(ctx almoner.Context, db almoner.KVStore, tx almoner.Tx) (almoner.Address, error) {
	var msg LeaveMsg
	if err := almoner.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	return signer.Address(), nil
}

// ------------------- donate -------------------

type donateHandler struct {
	auth x.Authenticator
	book MemberBook
	ctrl CashController
}

var _ almoner.Handler = (*donateHandler)(nil)

func (h *donateHandler) Check(ctx almoner.Context, db almoner.KVStore, tx almoner.Tx) (*almoner.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	members, err := h.book.All(db)
	if err != nil {
		return nil, err
	}
	res := almoner.CheckResult{
		GasAllocated: donatePerMemberCost * int64(len(members)),
	}
	return &res, nil
}

func (h *donateHandler) Deliver(ctx almoner.Context, db almoner.KVStore, tx almoner.Tx) (*almoner.DeliverResult, error) {
	donation, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	members, err := h.book.All(db)
	if err != nil {
		return nil, err
	}
	// Never divide by the size of an empty member set.
	if len(members) == 0 {
		return nil, errors.Wrap(ErrNoAdmins, "cannot donate")
	}

	// The remainder of the division is not distributed to anyone. It
	// stays on the pool account. Dust accumulates in the registry rather
	// than being split unevenly.
	perMember, _, err := donation.Divide(int64(len(members)))
	if err != nil {
		return nil, errors.Wrap(err, "cannot split donation")
	}

	if !perMember.IsZero() {
		pool := PoolAccount()
		for _, member := range members {
			if err := h.ctrl.MoveCoins(db, pool, member, perMember); err != nil {
				return nil, errors.Wrapf(err, "cannot pay %s", member)
			}
		}
	}

	res := &almoner.DeliverResult{}
	res.AddTag("action", "donate")
	res.AddTag("amount", strconv.FormatInt(donation.Amount, 10))
	res.AddTag("per_admin", strconv.FormatInt(perMember.Amount, 10))
	return res, nil
}

func (h *donateHandler) validate(ctx almoner.Context, db almoner.KVStore, tx almoner.Tx) (coin.Coin, error) {
	var msg DonateMsg
	if err := almoner.LoadMsg(tx, &msg); err != nil {
		return coin.Coin{}, errors.Wrap(err, "load msg")
	}
	conf, err := loadConf(db)
	if err != nil {
		return coin.Coin{}, err
	}
	return mustPay(tx, conf.DonationDenom)
}

// mustPay requires the transaction to carry a payment of a single positive
// amount in the given currency and returns it. Anything else, including no
// payment at all, is an ErrPayment. A wrong currency payment earns no
// partial credit.
func mustPay(tx almoner.Tx, denom string) (coin.Coin, error) {
	ptx, ok := tx.(almoner.PaymentTx)
	if !ok {
		return coin.Coin{}, errors.Wrap(ErrPayment, "no funds attached")
	}
	payment := ptx.GetPayment()
	switch len(payment) {
	case 0:
		return coin.Coin{}, errors.Wrap(ErrPayment, "no funds attached")
	case 1:
		// the only acceptable case
	default:
		return coin.Coin{}, errors.Wrap(ErrPayment, "more than one currency attached")
	}
	c := payment[0]
	if c.Ticker != denom {
		return coin.Coin{}, errors.Wrapf(ErrPayment, "want %s, got %s", denom, c.Ticker)
	}
	if !c.IsPositive() {
		return coin.Coin{}, errors.Wrapf(ErrPayment, "non-positive amount: %d", c.Amount)
	}
	return c, nil
}

// ------------------- add members -------------------

type addMembersHandler struct {
	auth x.Authenticator
	book MemberBook
}

var _ almoner.Handler = (*addMembersHandler)(nil)

func (h *addMembersHandler) Check(ctx almoner.Context, db almoner.KVStore, tx almoner.Tx) (*almoner.CheckResult, error) {
	msg, _, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res := almoner.CheckResult{
		GasAllocated: addMembersPerMemberCost * int64(len(msg.Admins)),
	}
	return &res, nil
}

func (h *addMembersHandler) Deliver(ctx almoner.Context, db almoner.KVStore, tx almoner.Tx) (*almoner.DeliverResult, error) {
	msg, sender, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	now, err := almoner.BlockTime(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "block time")
	}
	// The same validate-then-register rule as during initialization: the
	// first invalid address aborts the whole call.
	for _, enc := range msg.Admins {
		addr, err := almoner.ParseAddress(enc)
		if err != nil {
			return nil, errors.Wrapf(err, "admin %q", enc)
		}
		if err := h.book.Put(db, addr, almoner.AsUnixTime(now)); err != nil {
			return nil, errors.Wrapf(err, "cannot register %q", enc)
		}
	}

	res := &almoner.DeliverResult{}
	res.AddTag("action", "add_members")
	res.AddTag("sender", sender.String())
	return res, nil
}

func (h *addMembersHandler) validate(ctx almoner.Context, db almoner.KVStore, tx almoner.Tx) (*AddMembersMsg, almoner.Address, error) {
	var msg AddMembersMsg
	if err := almoner.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	sender := signer.Address()
	// Only an existing member may grow the membership.
	if _, err := h.book.JoinTime(db, sender); err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, nil, errors.Wrapf(errors.ErrUnauthorized, "%s is not a member", sender)
		}
		return nil, nil, err
	}
	return &msg, sender, nil
}

// ------------------- queries -------------------

// membersQuery lists the full membership, ascending by address.
type membersQuery struct {
	book MemberBook
}

var _ almoner.QueryHandler = (*membersQuery)(nil)

func (q *membersQuery) Query(db almoner.ReadOnlyKVStore, mod string, data []byte) ([]almoner.Model, error) {
	if mod != almoner.KeyQueryMod && mod != almoner.PrefixQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %q", mod)
	}
	members, err := q.book.All(db)
	if err != nil {
		return nil, err
	}
	models := make([]almoner.Model, 0, len(members))
	for _, addr := range members {
		joined, err := q.book.JoinTime(db, addr)
		if err != nil {
			return nil, err
		}
		raw := []byte(strconv.FormatInt(int64(joined), 10))
		models = append(models, almoner.Pair(addr, raw))
	}
	return models, nil
}

// joinTimeQuery returns the join time of a single member. The input is
// used as a raw lookup key without going through the address validation:
// a malformed address cannot match any stored key and yields ErrNotFound.
type joinTimeQuery struct {
	book MemberBook
}

var _ almoner.QueryHandler = (*joinTimeQuery)(nil)

func (q *joinTimeQuery) Query(db almoner.ReadOnlyKVStore, mod string, data []byte) ([]almoner.Model, error) {
	if mod != almoner.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %q", mod)
	}
	joined, err := q.book.JoinTime(db, almoner.Address(data))
	if err != nil {
		return nil, err
	}
	raw := []byte(strconv.FormatInt(int64(joined), 10))
	return []almoner.Model{almoner.Pair(data, raw)}, nil
}
