package app

import (
	"context"
	"fmt"

	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Engine executes transactions against a single state store, one block at a
// time. It plays the role of the ABCI application for a host that runs the
// handlers in-process.
//
// Each transaction runs in its own cache wrap. Deliver writes the changes
// back only when the handler succeeds, Check always discards them.
type Engine struct {
	logger      log.Logger
	store       paysplit.CacheableKVStore
	handler     paysplit.Handler
	initializer paysplit.Initializer
	chainID     string
	height      int64
	debug       bool
}

// NewEngine returns an engine that executes transactions using given
// handler. If the store already holds a chain ID, it is loaded. A store that
// persists versions resumes at the block following its latest version.
func NewEngine(
	store paysplit.CacheableKVStore,
	handler paysplit.Handler,
	initializer paysplit.Initializer,
) (*Engine, error) {
	chainID, err := loadChainID(store)
	if err != nil {
		return nil, err
	}
	var height int64 = 1
	if c, ok := store.(paysplit.CommitKVStore); ok {
		height = c.LatestVersion().Version + 1
	}
	return &Engine{
		logger:      log.NewNopLogger(),
		store:       store,
		handler:     handler,
		initializer: initializer,
		chainID:     chainID,
		height:      height,
	}, nil
}

// WithLogger sets the logger on the engine and returns it, to make it easy
// to chain in initialization.
func (e *Engine) WithLogger(logger log.Logger) *Engine {
	e.logger = logger
	return e
}

// WithDebug controls whether internal error details are included in the
// returned errors.
func (e *Engine) WithDebug(debug bool) *Engine {
	e.debug = debug
	return e
}

// InitChain stores the chain ID and initializes all extensions from the
// genesis application options. Nothing is written if any step fails.
func (e *Engine) InitChain(gen Genesis) error {
	if e.chainID != "" {
		return errors.Wrapf(errors.ErrState, "chain %q already initialized", e.chainID)
	}
	cache := e.store.CacheWrap()
	if err := saveChainID(cache, gen.ChainID); err != nil {
		cache.Discard()
		return err
	}
	if e.initializer != nil {
		if err := e.initializer.FromGenesis(gen.AppOptions, cache); err != nil {
			cache.Discard()
			return errors.Wrap(err, "initialize from genesis")
		}
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	e.chainID = gen.ChainID
	e.logger.Info("chain initialized", "chainID", gen.ChainID)
	return nil
}

// ChainID returns the identifier of the chain this engine runs.
func (e *Engine) ChainID() string {
	return e.chainID
}

// Height returns the height of the block currently being built.
func (e *Engine) Height() int64 {
	return e.height
}

// Check validates the transaction without persisting any state change.
func (e *Engine) Check(tx paysplit.Tx) (*paysplit.CheckResult, error) {
	cache := e.store.CacheWrap()
	defer cache.Discard()

	ctx := paysplit.WithLogInfo(e.blockContext(), "call", "check_tx", "path", paysplit.GetPath(tx))
	res, err := e.handler.Check(ctx, cache, tx)
	if err != nil {
		return nil, e.failure(ctx, err)
	}
	return res, nil
}

// Deliver executes the transaction and persists its state changes if it
// succeeds.
func (e *Engine) Deliver(tx paysplit.Tx) (*paysplit.DeliverResult, error) {
	cache := e.store.CacheWrap()

	ctx := paysplit.WithLogInfo(e.blockContext(), "call", "deliver_tx", "path", paysplit.GetPath(tx))
	res, err := e.handler.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, e.failure(ctx, err)
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return res, nil
}

// Commit closes the current block. Following transactions are executed at
// the next height. When the store persists versions, the block is saved as a
// new version and its root hash is returned.
func (e *Engine) Commit() (paysplit.CommitID, error) {
	id := paysplit.CommitID{Version: e.height}
	if c, ok := e.store.(paysplit.CommitKVStore); ok {
		var err error
		if id, err = c.Commit(); err != nil {
			return id, err
		}
	}
	e.logger.Info("commit", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	e.height = id.Version + 1
	return id, nil
}

func (e *Engine) failure(ctx paysplit.Context, err error) error {
	code, msg := errors.ABCIInfo(err, e.debug)
	paysplit.GetLogger(ctx).Debug("transaction failed", "code", code, "log", msg)
	return errors.Redact(err, e.debug)
}

func (e *Engine) blockContext() paysplit.Context {
	ctx := paysplit.WithLogger(context.Background(), e.logger)
	ctx = paysplit.WithHeight(ctx, e.height)
	if e.chainID != "" {
		ctx = paysplit.WithChainID(ctx, e.chainID)
	}
	return ctx
}
