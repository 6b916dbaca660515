package admins

import (
	"github.com/iov-one/almoner/errors"
)

const (
	pathLeaveMsg      = "admins/leave"
	pathDonateMsg     = "admins/donate"
	pathAddMembersMsg = "admins/add_members"
)

// LeaveMsg removes the calling identity from the registry. Leaving is
// always allowed, even for identities that are not members.
type LeaveMsg struct{}

func (LeaveMsg) Validate() error {
	return nil
}

func (LeaveMsg) Path() string {
	return pathLeaveMsg
}

// DonateMsg splits the payment attached to the transaction equally between
// all current members. The message itself carries no data, the payment and
// the sender come with the transaction.
type DonateMsg struct{}

func (DonateMsg) Validate() error {
	return nil
}

func (DonateMsg) Path() string {
	return pathDonateMsg
}

// AddMembersMsg registers new members. Only an existing member is
// authorized to do this. Addresses are carried in their textual form and
// go through the full address validation before being registered, the same
// rule as during initialization.
type AddMembersMsg struct {
	Admins []string `json:"admins"`
}

func (msg *AddMembersMsg) Validate() error {
	if len(msg.Admins) == 0 {
		return errors.Wrap(errors.ErrEmpty, "admins")
	}
	return nil
}

func (*AddMembersMsg) Path() string {
	return pathAddMembersMsg
}
