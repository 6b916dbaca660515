package almoner

import (
	"context"
	"testing"
	"time"

	"github.com/iov-one/almoner/errors"
)

func TestUnixTimeUnmarshal(t *testing.T) {
	cases := map[string]struct {
		raw     string
		want    UnixTime
		wantErr *errors.Error
	}{
		"number": {
			raw:  "1234567890",
			want: 1234567890,
		},
		"time string": {
			raw:  `"2021-06-01T10:00:00Z"`,
			want: UnixTime(time.Date(2021, time.June, 1, 10, 0, 0, 0, time.UTC).Unix()),
		},
		"negative number": {
			raw:     "-5",
			wantErr: errors.ErrInput,
		},
		"garbage": {
			raw:     `"not a time"`,
			wantErr: errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got UnixTime
			err := got.UnmarshalJSON([]byte(tc.raw))
			if !tc.wantErr.Is(err) {
				t.Fatalf("want %q, got %+v", tc.wantErr, err)
			}
			if tc.wantErr == nil && got != tc.want {
				t.Fatalf("want %d, got %d", tc.want, got)
			}
		})
	}
}

func TestBlockTime(t *testing.T) {
	now := time.Now()
	ctx := WithBlockTime(context.Background(), now)
	got, err := BlockTime(ctx)
	if err != nil {
		t.Fatalf("block time: %+v", err)
	}
	if !got.Equal(now) {
		t.Fatalf("want %s, got %s", now, got)
	}

	if _, err := BlockTime(context.Background()); !errors.ErrHuman.Is(err) {
		t.Fatalf("want a coding error, got %+v", err)
	}
}

func TestIsExpired(t *testing.T) {
	now := time.Now()
	ctx := WithBlockTime(context.Background(), now)

	if !IsExpired(ctx, AsUnixTime(now)) {
		t.Fatal("expiration must be inclusive")
	}
	if !IsExpired(ctx, AsUnixTime(now.Add(-time.Hour))) {
		t.Fatal("past time must be expired")
	}
	if IsExpired(ctx, AsUnixTime(now.Add(time.Hour))) {
		t.Fatal("future time must not be expired")
	}
}
