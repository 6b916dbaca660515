package cash

import (
	"github.com/iov-one/almoner"
	"github.com/iov-one/almoner/errors"
	"github.com/iov-one/almoner/x"
)

// PaymentDecorator moves the funds attached to a transaction from the main
// signer to the collection account before the wrapped handler runs. The
// handler then distributes from the collection account. Because everything
// happens on the same cache-wrap, a failing handler returns the attached
// funds to the sender.
type PaymentDecorator struct {
	auth      x.Authenticator
	ctrl      *Controller
	collector almoner.Address
}

var _ almoner.Decorator = PaymentDecorator{}

// NewPaymentDecorator returns a decorator crediting attached payments to
// the given collection account.
func NewPaymentDecorator(auth x.Authenticator, ctrl *Controller, collector almoner.Address) PaymentDecorator {
	return PaymentDecorator{
		auth:      auth,
		ctrl:      ctrl,
		collector: collector,
	}
}

// Check collects the attached payment and calls the next checker.
func (d PaymentDecorator) Check(ctx almoner.Context, db almoner.KVStore, tx almoner.Tx, next almoner.Checker) (*almoner.CheckResult, error) {
	if err := d.collect(ctx, db, tx); err != nil {
		return nil, err
	}
	return next.Check(ctx, db, tx)
}

// Deliver collects the attached payment and calls the next deliverer.
func (d PaymentDecorator) Deliver(ctx almoner.Context, db almoner.KVStore, tx almoner.Tx, next almoner.Deliverer) (*almoner.DeliverResult, error) {
	if err := d.collect(ctx, db, tx); err != nil {
		return nil, err
	}
	return next.Deliver(ctx, db, tx)
}

func (d PaymentDecorator) collect(ctx almoner.Context, db almoner.KVStore, tx almoner.Tx) error {
	ptx, ok := tx.(almoner.PaymentTx)
	if !ok {
		return nil
	}
	payment := ptx.GetPayment()
	if payment.IsEmpty() {
		return nil
	}

	signer := x.MainSigner(ctx, d.auth)
	if signer == nil {
		return errors.Wrap(errors.ErrUnauthorized, "payment without a signer")
	}
	for _, c := range payment {
		if err := d.ctrl.MoveCoins(db, signer.Address(), d.collector, c); err != nil {
			return errors.Wrap(err, "cannot collect payment")
		}
	}
	return nil
}
