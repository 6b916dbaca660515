package app

import (
	"github.com/iov-one/almoner"
	"github.com/iov-one/almoner/errors"
	"github.com/rs/zerolog"
)

// Application wires the store, the transaction execution stack, the
// genesis initializers and the query dispatch together.
type Application struct {
	store   almoner.CacheableKVStore
	handler almoner.Handler
	queries almoner.QueryRouter
	inits   []almoner.Initializer
	logger  zerolog.Logger
}

// New returns an application executing transactions through the given
// handler, which is usually a decorator chain resolved with a router.
func New(store almoner.CacheableKVStore, handler almoner.Handler, queries almoner.QueryRouter, logger zerolog.Logger, inits ...almoner.Initializer) *Application {
	return &Application{
		store:   store,
		handler: handler,
		queries: queries,
		inits:   inits,
		logger:  logger,
	}
}

// InitGenesis runs all initializers with the given genesis options. The
// initialization is all or nothing: the first failing initializer discards
// everything written so far and nothing is persisted.
func (a *Application) InitGenesis(ctx almoner.Context, opts almoner.Options) error {
	cache := a.store.CacheWrap()
	for _, ini := range a.inits {
		if err := ini.FromGenesis(ctx, opts, cache); err != nil {
			cache.Discard()
			a.logger.Error().Err(err).Msg("genesis initialization failed")
			return errors.Wrap(err, "genesis")
		}
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "commit genesis")
	}
	a.logger.Info().Msg("genesis initialized")
	return nil
}

// CheckTx runs the transaction through the execution stack on a throwaway
// cache. No state change survives, regardless of the outcome.
func (a *Application) CheckTx(ctx almoner.Context, tx almoner.Tx) (*almoner.CheckResult, error) {
	cache := a.store.CacheWrap()
	defer cache.Discard()
	return a.handler.Check(ctx, cache, tx)
}

// DeliverTx executes the transaction on a cache-wrap of the state. The
// wrap is committed only if the whole execution succeeded. On any error
// every change made by the transaction, including the payment collection,
// is discarded.
func (a *Application) DeliverTx(ctx almoner.Context, tx almoner.Tx) (*almoner.DeliverResult, error) {
	path := almoner.GetPath(tx)
	cache := a.store.CacheWrap()
	res, err := a.handler.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		a.logger.Info().Err(err).Str("path", path).Msg("transaction failed")
		return nil, err
	}
	if err := cache.Write(); err != nil {
		a.logger.Error().Err(err).Str("path", path).Msg("cannot commit transaction")
		return nil, errors.Wrap(err, "commit")
	}
	a.logger.Debug().Str("path", path).Msg("transaction delivered")
	return res, nil
}

// Query resolves a read-only request against the committed state. Queries
// never observe transactions in flight.
func (a *Application) Query(path string, mod string, data []byte) ([]almoner.Model, error) {
	h := a.queries.Handler(path)
	if h == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "no handler for query path %q", path)
	}
	return h.Query(a.store, mod, data)
}
