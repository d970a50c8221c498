package main

import (
	"flag"
	"fmt"
	"io"
	"math/big"
	"os"

	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/app"
	pslapp "github.com/iov-one/paysplit/cmd/paysplit/app"
	"github.com/iov-one/paysplit/coin"
	"github.com/iov-one/paysplit/store/iavl"
	"github.com/iov-one/paysplit/x/token"
	"github.com/tendermint/tendermint/libs/log"
)

func defaultHome() string {
	return env("PAYSPLIT_HOME", os.Getenv("HOME")+"/.paysplit")
}

func cmdInit(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Initialize the state stored in the home directory from a genesis file.

The genesis file declares the chain ID and the initial state of every
extension. This command fails if the state was already initialized.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl    = fl.String("home", defaultHome(), "State directory. You can use PAYSPLIT_HOME environment variable to set it.")
		genesisFl = fl.String("genesis", "genesis.json", "Path to the genesis file.")
		debugFl   = fl.Bool("debug", false, "Log debug information.")
	)
	fl.Parse(args)

	gen, err := app.LoadGenesis(*genesisFl)
	if err != nil {
		return err
	}
	kv, e, err := openEngine(*homeFl, *debugFl)
	if err != nil {
		return err
	}
	defer kv.Close()

	if err := e.InitChain(gen); err != nil {
		return fmt.Errorf("cannot initialize chain: %s", err)
	}
	id, err := e.Commit()
	if err != nil {
		return fmt.Errorf("cannot commit: %s", err)
	}
	_, err = fmt.Fprintf(output, "%s initialized at version %d: %X\n", e.ChainID(), id.Version, id.Hash)
	return err
}

func cmdBalance(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the balance of an address. Without a ticker the native balance is
printed.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl    = fl.String("home", defaultHome(), "State directory. You can use PAYSPLIT_HOME environment variable to set it.")
		addressFl = flAddress(fl, "address", "", "Address to print the balance of.")
		tickerFl  = fl.String("ticker", "", "Token ticker.")
	)
	fl.Parse(args)

	if len(*addressFl) == 0 {
		flagDie("address is required")
	}

	kv, err := pslapp.CommitKVStore(*homeFl)
	if err != nil {
		return err
	}
	defer kv.Close()

	balance, err := balanceOf(kv, *addressFl, *tickerFl)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(output, coin.Format(balance))
	return err
}

func balanceOf(db paysplit.ReadOnlyKVStore, addr paysplit.Address, ticker string) (balance *big.Int, err error) {
	if ticker == "" {
		return pslapp.CashControl().Balance(db, addr)
	}
	tokens, err := token.LoadRegistry(db)
	if err != nil {
		return nil, err
	}
	c, err := tokens.Contract(ticker)
	if err != nil {
		return nil, err
	}
	return c.BalanceOf(db, addr)
}

// openEngine loads the state from the home directory and returns an engine
// running on it. The store must be closed by the caller.
func openEngine(home string, debug bool) (*iavl.CommitStore, *app.Engine, error) {
	kv, err := pslapp.CommitKVStore(home)
	if err != nil {
		return nil, nil, err
	}
	opt := log.AllowInfo()
	if debug {
		opt = log.AllowDebug()
	}
	logger := log.NewFilter(log.NewTMLogger(log.NewSyncWriter(os.Stderr)), opt)
	e, err := pslapp.Application(kv, logger)
	if err != nil {
		kv.Close()
		return nil, nil, err
	}
	return kv, e.WithDebug(debug), nil
}
