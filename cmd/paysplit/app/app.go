/*
Package app wires the extensions into a single application: the decorator
chain, the message router and the persistent state store.
*/
package app

import (
	"os"
	"path/filepath"

	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/app"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/store/iavl"
	"github.com/iov-one/paysplit/x"
	"github.com/iov-one/paysplit/x/cash"
	"github.com/iov-one/paysplit/x/distribution"
	"github.com/iov-one/paysplit/x/sigs"
	"github.com/iov-one/paysplit/x/token"
	"github.com/iov-one/paysplit/x/utils"
	"github.com/tendermint/tendermint/libs/log"
)

// Authenticator returns the typical authentication, just using public key
// signatures
func Authenticator() x.Authenticator {
	return sigs.Authenticate{}
}

// CashControl returns a controller for cash functions
func CashControl() cash.Controller {
	return cash.NewController()
}

// Chain returns a chain of decorators, to handle authentication, logging,
// and recovery
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewActionTagger(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// on DeliverTx, bad tx will increment nonce even if the
		// message fails
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching all messages of the application.
// Distributions pay through the given recipient programs.
func Router(authFn x.Authenticator, tokens *token.Registry, receivers *distribution.Receivers) *app.Router {
	r := app.NewRouter()
	cash.RegisterRoutes(r, authFn, CashControl())
	token.RegisterRoutes(r, authFn, tokens)
	sigs.RegisterRoutes(r, authFn)
	distribution.RegisterRoutes(r, authFn, distribution.Env{
		Cash:      CashControl(),
		Tokens:    tokens,
		Receivers: receivers,
	})
	return r
}

// Stack wires up a standard router with a standard decorator chain.
func Stack(tokens *token.Registry, receivers *distribution.Receivers) paysplit.Handler {
	authFn := Authenticator()
	return Chain().WithHandler(Router(authFn, tokens, receivers))
}

// Initializers returns the genesis loaders of all extensions.
func Initializers() paysplit.Initializer {
	return paysplit.ChainInitializers(
		cash.Initializer{},
		token.Initializer{},
		distribution.Initializer{},
	)
}

// CommitKVStore returns an initialized store that persists the data in the
// home directory. The latest saved version is loaded.
func CommitKVStore(home string) (*iavl.CommitStore, error) {
	path, err := filepath.Abs(home)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid home directory: %s", err)
	}
	if err := os.MkdirAll(path, 0700); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot create home directory: %s", err)
	}
	kv, err := iavl.NewCommitStore(path, "state")
	if err != nil {
		return nil, err
	}
	if err := kv.LoadLatestVersion(); err != nil {
		kv.Close()
		return nil, err
	}
	return kv, nil
}

// Application constructs an engine running on given store. Tokens declared
// and recipient programs deployed in the store are registered before the
// handlers are built.
func Application(kv paysplit.CommitKVStore, logger log.Logger) (*app.Engine, error) {
	tokens, err := token.LoadRegistry(kv)
	if err != nil {
		return nil, err
	}
	receivers, err := distribution.LoadReceivers(kv)
	if err != nil {
		return nil, err
	}
	e, err := app.NewEngine(kv, Stack(tokens, receivers), Initializers())
	if err != nil {
		return nil, err
	}
	return e.WithLogger(logger), nil
}
