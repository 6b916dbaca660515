package cash

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/iov-one/almoner"
	"github.com/iov-one/almoner/almtest"
	"github.com/iov-one/almoner/almtest/assert"
	"github.com/iov-one/almoner/errors"
	"github.com/iov-one/almoner/store"
)

func TestGenesisAccounts(t *testing.T) {
	alice := almtest.NewCondition().Address()

	cases := map[string]struct {
		genesis string
		wantErr *errors.Error
		wantEth int64
	}{
		"single account": {
			genesis: fmt.Sprintf(
				`[{"address": %q, "coins": [{"amount": 7, "ticker": "eth"}]}]`, alice),
			wantEth: 7,
		},
		"invalid address": {
			genesis: `[{"address": "c0ffee", "coins": [{"amount": 7, "ticker": "eth"}]}]`,
			wantErr: errors.ErrInput,
		},
		"invalid coins": {
			genesis: fmt.Sprintf(
				`[{"address": %q, "coins": [{"amount": 7, "ticker": "INVALID"}]}]`, alice),
			wantErr: errors.ErrCurrency,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			opts := almoner.Options{"cash": json.RawMessage(tc.genesis)}

			var ini Initializer
			err := ini.FromGenesis(context.Background(), opts, db)
			if !tc.wantErr.Is(err) {
				t.Fatalf("want %q, got %+v", tc.wantErr, err)
			}
			if tc.wantErr != nil {
				return
			}

			coins, err := NewBucket().Wallet(db, alice)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantEth, coins.Amount("eth"))
		})
	}
}
