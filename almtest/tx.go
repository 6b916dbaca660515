package almtest

import (
	"github.com/iov-one/almoner"
	"github.com/iov-one/almoner/coin"
)

// Tx is a mock transaction. It carries a message and, optionally, a
// payment, which makes it implement PaymentTx as well.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg almoner.Msg
	// Payment is the funds attached to this transaction.
	Payment coin.Coins
	// Err if set is returned by GetMsg.
	Err error
}

var _ almoner.Tx = (*Tx)(nil)
var _ almoner.PaymentTx = (*Tx)(nil)

func (tx *Tx) GetMsg() (almoner.Msg, error) {
	return tx.Msg, tx.Err
}

func (tx *Tx) GetPayment() coin.Coins {
	return tx.Payment
}

// Msg is a mock message with a configurable path.
type Msg struct {
	// RoutePath is returned by the Path method, consumed by the router.
	RoutePath string
	// Err if set is returned by Validate.
	Err error
}

var _ almoner.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}
