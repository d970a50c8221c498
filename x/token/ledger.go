package token

import (
	"math/big"

	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/coin"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/orm"
)

// Contract is a fungible token. Each implementation maintains balances of a
// single token.
type Contract interface {
	// Ticker returns the unique identifier of this token.
	Ticker() string

	// BalanceOf returns the amount owned by given address.
	BalanceOf(db paysplit.ReadOnlyKVStore, owner paysplit.Address) (*big.Int, error)

	// Transfer moves amount owned by from to the to address. It fails
	// if the owner does not have enough funds.
	Transfer(ctx paysplit.Context, db paysplit.KVStore, from, to paysplit.Address, amount *big.Int) error
}

// Ledger is a Contract implementation that stores all balances in the
// database.
type Ledger struct {
	ticker  string
	holding orm.ModelBucket
}

var _ Contract = (*Ledger)(nil)

// NewLedger returns a ledger for the token with given ticker. It panics if
// the ticker is not valid.
func NewLedger(ticker string) *Ledger {
	if !coin.IsCC(ticker) {
		panic(errors.Wrapf(errors.ErrInput, "invalid ticker %q", ticker))
	}
	return &Ledger{
		ticker:  ticker,
		holding: newHoldingBucket(ticker),
	}
}

func (l *Ledger) Ticker() string {
	return l.ticker
}

func (l *Ledger) BalanceOf(db paysplit.ReadOnlyKVStore, owner paysplit.Address) (*big.Int, error) {
	var h Holding
	switch err := l.holding.One(db, owner, &h); {
	case err == nil:
		return h.Value(), nil
	case errors.ErrNotFound.Is(err):
		return coin.Zero(), nil
	default:
		return nil, errors.Wrapf(err, "%s balance", l.ticker)
	}
}

func (l *Ledger) Transfer(ctx paysplit.Context, db paysplit.KVStore, from, to paysplit.Address, amount *big.Int) error {
	if !coin.IsPositive(amount) {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount %s", coin.Format(amount))
	}
	if err := from.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := to.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	have, err := l.BalanceOf(db, from)
	if err != nil {
		return err
	}
	left, err := coin.Subtract(have, amount)
	if err != nil {
		return errors.Wrapf(err, "%s transfer from %s", l.ticker, from)
	}
	if from.Equals(to) {
		return nil
	}
	if err := l.set(db, from, left); err != nil {
		return err
	}
	if err := l.add(db, to, amount); err != nil {
		return err
	}
	paysplit.GetLogger(ctx).Debug("token transfer",
		"ticker", l.ticker, "from", from, "to", to, "amount", amount)
	return nil
}

// Mint creates new tokens owned by given address.
func (l *Ledger) Mint(db paysplit.KVStore, to paysplit.Address, amount *big.Int) error {
	if !coin.IsPositive(amount) {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount %s", coin.Format(amount))
	}
	if err := to.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	return l.add(db, to, amount)
}

// TotalSupply returns the sum of all balances.
func (l *Ledger) TotalSupply(db paysplit.ReadOnlyKVStore) (*big.Int, error) {
	total := coin.Zero()
	err := l.holding.ForEach(db, func(key []byte, m orm.Model) error {
		total.Add(total, m.(*Holding).Value())
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "%s supply", l.ticker)
	}
	return total, nil
}

func (l *Ledger) add(db paysplit.KVStore, owner paysplit.Address, amount *big.Int) error {
	have, err := l.BalanceOf(db, owner)
	if err != nil {
		return err
	}
	return l.set(db, owner, have.Add(have, amount))
}

func (l *Ledger) set(db paysplit.KVStore, owner paysplit.Address, amount *big.Int) error {
	if _, err := l.holding.Put(db, owner, &Holding{Amount: coin.Format(amount)}); err != nil {
		return errors.Wrapf(err, "cannot save %s holding", l.ticker)
	}
	return nil
}
