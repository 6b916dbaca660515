package app

import (
	"context"
	"testing"

	"github.com/iov-one/almoner"
	"github.com/iov-one/almoner/almtest"
	"github.com/iov-one/almoner/almtest/assert"
	"github.com/iov-one/almoner/errors"
	"github.com/iov-one/almoner/store"
)

// countingHandler counts how many times it was called.
type countingHandler struct {
	checks   int
	delivers int
}

var _ almoner.Handler = (*countingHandler)(nil)

func (h *countingHandler) Check(almoner.Context, almoner.KVStore, almoner.Tx) (*almoner.CheckResult, error) {
	h.checks++
	return &almoner.CheckResult{}, nil
}

func (h *countingHandler) Deliver(almoner.Context, almoner.KVStore, almoner.Tx) (*almoner.DeliverResult, error) {
	h.delivers++
	return &almoner.DeliverResult{}, nil
}

func TestRouterDispatch(t *testing.T) {
	r := NewRouter()
	var h countingHandler
	r.Handle("testpkg/do", &h)

	db := store.MemStore()
	ctx := context.Background()

	tx := &almtest.Tx{Msg: &almtest.Msg{RoutePath: "testpkg/do"}}
	_, err := r.Check(ctx, db, tx)
	assert.Nil(t, err)
	_, err = r.Deliver(ctx, db, tx)
	assert.Nil(t, err)
	assert.Equal(t, 1, h.checks)
	assert.Equal(t, 1, h.delivers)

	missing := &almtest.Tx{Msg: &almtest.Msg{RoutePath: "testpkg/unknown"}}
	if _, err := r.Deliver(ctx, db, missing); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found, got %+v", err)
	}
}

func TestRouterRegistration(t *testing.T) {
	r := NewRouter()
	r.Handle("testpkg/do", &countingHandler{})

	assert.Panics(t, func() {
		r.Handle("testpkg/do", &countingHandler{})
	})
	assert.Panics(t, func() {
		r.Handle("invalid path!", &countingHandler{})
	})
}
