package almoner

import (
	"reflect"

	"github.com/iov-one/almoner/errors"
)

// LoadMsg extracts the message from the transaction, validates it and loads
// it into the destination. Destination must be a pointer to the expected
// message type, otherwise an ErrType is returned.
func LoadMsg(tx Tx, destination Msg) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get message")
	}
	if msg == nil {
		return errors.Wrap(errors.ErrMsg, "no message in transaction")
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}

	dest := reflect.ValueOf(destination)
	if dest.Kind() != reflect.Ptr || dest.IsNil() {
		return errors.Wrap(errors.ErrType, "destination must be a non-nil pointer")
	}
	elem := dest.Elem()
	val := reflect.ValueOf(msg)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if elem.Type() != val.Type() {
		return errors.Wrapf(errors.ErrType, "want %s message, got %s", elem.Type(), val.Type())
	}
	elem.Set(val)
	return nil
}
