package almtest

import (
	"encoding/binary"
	"sync/atomic"
	"testing"

	"github.com/iov-one/almoner"
)

// conditionCounter is a globally unique counter. This is to ensure global
// uniqueness of generated conditions.
var conditionCounter uint64

// NewCondition returns a new, unique condition.
func NewCondition() almoner.Condition {
	c := atomic.AddUint64(&conditionCounter, 1)
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, c)
	return almoner.NewCondition("almtest", "cond", data)
}

// ParseAddress takes an address in a human readable (hex) format and
// returns its binary representation, failing the test on a bad input.
func ParseAddress(t testing.TB, encodedAddress string) almoner.Address {
	t.Helper()

	addr, err := almoner.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
