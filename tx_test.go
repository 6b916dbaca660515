package almoner

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/iov-one/almoner/errors"
)

func TestParseAddress(t *testing.T) {
	cases := map[string]struct {
		enc     string
		wantErr *errors.Error
	}{
		"valid lowercase": {
			enc: strings.Repeat("ab", AddressLength),
		},
		"valid uppercase": {
			enc: strings.Repeat("AB", AddressLength),
		},
		"not hex": {
			enc:     strings.Repeat("zz", AddressLength),
			wantErr: errors.ErrInput,
		},
		"too short": {
			enc:     "c0ffee",
			wantErr: errors.ErrInput,
		},
		"too long": {
			enc:     strings.Repeat("ab", AddressLength+1),
			wantErr: errors.ErrInput,
		},
		"empty": {
			enc:     "",
			wantErr: errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			addr, err := ParseAddress(tc.enc)
			if !tc.wantErr.Is(err) {
				t.Fatalf("want %q, got %+v", tc.wantErr, err)
			}
			if tc.wantErr == nil && len(addr) != AddressLength {
				t.Fatalf("unexpected address length: %d", len(addr))
			}
		})
	}
}

func TestAddressJSONRoundtrip(t *testing.T) {
	addr := NewCondition("almoner", "test", []byte("whatever")).Address()

	raw, err := json.Marshal(addr)
	if err != nil {
		t.Fatalf("marshal: %s", err)
	}
	var restored Address
	if err := json.Unmarshal(raw, &restored); err != nil {
		t.Fatalf("unmarshal: %s", err)
	}
	if !addr.Equals(restored) {
		t.Fatalf("want %s, got %s", addr, restored)
	}
}

func TestAddressString(t *testing.T) {
	if got := Address(nil).String(); got != "(nil)" {
		t.Fatalf("unexpected nil representation: %q", got)
	}
	if got := (Address{0xc0, 0xff, 0xee}).String(); got != "C0FFEE" {
		t.Fatalf("unexpected representation: %q", got)
	}
}

type loadMsgTx struct {
	msg Msg
	err error
}

func (tx *loadMsgTx) GetMsg() (Msg, error) { return tx.msg, tx.err }

type loadableMsg struct {
	Payload string
	err     error
}

func (m *loadableMsg) Validate() error { return m.err }
func (m *loadableMsg) Path() string    { return "testpkg/loadable" }

type anotherMsg struct{}

func (m *anotherMsg) Validate() error { return nil }
func (m *anotherMsg) Path() string    { return "testpkg/another" }

func TestLoadMsg(t *testing.T) {
	cases := map[string]struct {
		tx      Tx
		dest    Msg
		wantErr *errors.Error
	}{
		"happy path": {
			tx:   &loadMsgTx{msg: &loadableMsg{Payload: "data"}},
			dest: &loadableMsg{},
		},
		"no message": {
			tx:      &loadMsgTx{},
			dest:    &loadableMsg{},
			wantErr: errors.ErrMsg,
		},
		"invalid message": {
			tx:      &loadMsgTx{msg: &loadableMsg{err: errors.ErrEmpty}},
			dest:    &loadableMsg{},
			wantErr: errors.ErrEmpty,
		},
		"wrong destination type": {
			tx:      &loadMsgTx{msg: &loadableMsg{}},
			dest:    &anotherMsg{},
			wantErr: errors.ErrType,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := LoadMsg(tc.tx, tc.dest)
			if !tc.wantErr.Is(err) {
				t.Fatalf("want %q, got %+v", tc.wantErr, err)
			}
			if tc.wantErr == nil {
				if got := tc.dest.(*loadableMsg).Payload; got != "data" {
					t.Fatalf("message not loaded: %q", got)
				}
			}
		})
	}
}
