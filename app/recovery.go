package app

import (
	"github.com/iov-one/almoner"
	"github.com/iov-one/almoner/errors"
)

// Recovery is a decorator to recover from panics in transactions, so we
// can report them as normal errors instead of taking the process down.
type Recovery struct{}

var _ almoner.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator.
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into normal errors.
func (r Recovery) Check(ctx almoner.Context, store almoner.KVStore, tx almoner.Tx, next almoner.Checker) (res *almoner.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, store, tx)
}

// Deliver turns panics into normal errors.
func (r Recovery) Deliver(ctx almoner.Context, store almoner.KVStore, tx almoner.Tx, next almoner.Deliverer) (res *almoner.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, tx)
}
