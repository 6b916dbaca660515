package app

import (
	"regexp"

	"github.com/iov-one/almoner"
	"github.com/iov-one/almoner/errors"
)

// isPath defines the valid message paths. Extensions use a "pkg/action"
// convention, eg. "admins/donate".
var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router maps message paths to handlers. It implements both the Registry
// interface for the setup phase and the Handler interface for execution.
type Router struct {
	routes map[string]almoner.Handler
}

var _ almoner.Registry = (*Router)(nil)
var _ almoner.Handler = (*Router)(nil)

// NewRouter initializes a router with no routes.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]almoner.Handler),
	}
}

// Handle adds a route. Requires a valid path and panics on duplicate
// registration, as both are a setup time coding error.
func (r *Router) Handle(path string, h almoner.Handler) {
	if !isPath(path) {
		panic("invalid path: " + path)
	}
	if _, ok := r.routes[path]; ok {
		panic("re-registering route: " + path)
	}
	r.routes[path] = h
}

// handler returns the registered Handler, or a handler that always fails
// with a not found error, so that the caller does not need a nil check.
func (r *Router) handler(m almoner.Msg) almoner.Handler {
	// Special case: handle bad message
	if m == nil {
		return notFoundHandler("")
	}
	path := m.Path()
	if h, ok := r.routes[path]; ok {
		return h
	}
	return notFoundHandler(path)
}

// Check dispatches to the proper handler based on the message path.
func (r *Router) Check(ctx almoner.Context, store almoner.KVStore, tx almoner.Tx) (*almoner.CheckResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.handler(msg).Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on the message path.
func (r *Router) Deliver(ctx almoner.Context, store almoner.KVStore, tx almoner.Tx) (*almoner.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.handler(msg).Deliver(ctx, store, tx)
}

// notFoundHandler always returns ErrNotFound, paired with the path that
// could not be routed.
type notFoundHandler string

var _ almoner.Handler = notFoundHandler("")

func (path notFoundHandler) Check(almoner.Context, almoner.KVStore, almoner.Tx) (*almoner.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(path))
}

func (path notFoundHandler) Deliver(almoner.Context, almoner.KVStore, almoner.Tx) (*almoner.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(path))
}
