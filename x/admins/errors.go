package admins

import (
	"github.com/iov-one/almoner/errors"
)

var (
	// ErrPayment is returned when a donation carries no payment, a
	// payment in a currency other than the configured one, or more than
	// a single currency.
	ErrPayment = errors.Register(120, "invalid payment")

	// ErrNoAdmins is returned when a donation arrives while the registry
	// has no members. The donation cannot be split between zero members
	// and the division is never attempted.
	ErrNoAdmins = errors.Register(121, "empty admin set")
)
