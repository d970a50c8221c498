package distribution

import (
	"math/big"

	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/coin"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/x/token"
	"github.com/iov-one/paysplit/x/utils"
)

// CashController allows to manage native value balances.
type CashController interface {
	Balance(db paysplit.ReadOnlyKVStore, owner paysplit.Address) (*big.Int, error)
	MoveCoins(db paysplit.KVStore, src, dest paysplit.Address, amount *big.Int) error
}

// TokenRegistry resolves token tickers to their contracts.
type TokenRegistry interface {
	Contract(ticker string) (token.Contract, error)
}

// Env groups the collaborators a splitter moves value through.
type Env struct {
	Cash CashController
	// Tokens is required only by token distribution.
	Tokens TokenRegistry
	// Receivers is optional.
	Receivers *Receivers
}

// Unit is a splitter ready to operate: its account, its recipients and its
// features bound to the environment holding the balances.
type Unit struct {
	account  paysplit.Address
	table    *RecipientTable
	features Features
	env      Env
}

// NewUnit returns a unit that distributes value owned by account.
func NewUnit(account paysplit.Address, table *RecipientTable, features Features, env Env) (*Unit, error) {
	if err := account.Validate(); err != nil {
		return nil, errors.Wrap(err, "account")
	}
	if table == nil {
		return nil, errors.Wrap(ErrConfiguration, "no recipient table")
	}
	if err := features.Validate(); err != nil {
		return nil, err
	}
	if env.Cash == nil {
		return nil, errors.Wrap(errors.ErrInput, "cash controller required")
	}
	return &Unit{
		account:  account,
		table:    table,
		features: features,
		env:      env,
	}, nil
}

// Account returns the address holding funds of this unit.
func (u *Unit) Account() paysplit.Address {
	return u.account
}

// Table returns the recipient table.
func (u *Unit) Table() *RecipientTable {
	return u.table
}

// Features returns the features this unit was created with.
func (u *Unit) Features() Features {
	return u.features
}

// Deposit moves amount of native value from the given address to the unit
// account. With AutoSplit enabled the whole balance is distributed in a
// single pass afterwards and the report of that pass is returned.
func (u *Unit) Deposit(ctx paysplit.Context, db paysplit.KVStore, from paysplit.Address, amount *big.Int) (*Report, error) {
	if !u.features.Native {
		return nil, errors.Wrap(ErrDisabled, "deposit")
	}
	if !coin.IsPositive(amount) {
		return nil, errors.Wrap(errors.ErrAmount, "deposit must be positive")
	}
	if err := u.env.Cash.MoveCoins(db, from, u.account, amount); err != nil {
		return nil, errors.Wrap(err, "cannot deposit")
	}
	if !u.features.AutoSplit {
		return &Report{}, nil
	}
	return u.distribute(ctx, db)
}

// Distribute sends each recipient its portion of the native balance in a
// single pass. Failed transfers are not retried. Depending on the features,
// failures are ignored, recorded in the report or abort the call with
// ErrTransfer.
func (u *Unit) Distribute(ctx paysplit.Context, db paysplit.KVStore) (*Report, error) {
	if !u.features.Distribute {
		return nil, errors.Wrap(ErrDisabled, "distribute")
	}
	return u.distribute(ctx, db)
}

func (u *Unit) distribute(ctx paysplit.Context, db paysplit.KVStore) (*Report, error) {
	balance, err := u.nativeBalance(db)
	if err != nil {
		return nil, err
	}
	pass := newPass(NativeAsset, balance)
	if balance.Sign() == 0 {
		if u.features.GuardZeroBalance {
			return nil, errors.Wrap(ErrZeroBalance, NativeAsset)
		}
		return &Report{Passes: []*Pass{pass}}, nil
	}

	keep := u.features.CheckTransfers || u.features.StrictTransfers
	total := u.table.TotalShares()
	for _, r := range u.table.entries {
		amount := Portion(balance, r.Share, total)
		if amount.Sign() == 0 {
			continue
		}
		err := u.sendNative(ctx, db, r.Address, amount)
		if err != nil {
			if u.features.StrictTransfers {
				return nil, errors.Wrapf(ErrTransfer, "%s to %s: %s", amount, r.Address, err)
			}
			u.logFailure(ctx, NativeAsset, r.Address, amount, err)
		}
		pass.record(Transfer{Recipient: r.Address, Amount: amount, Phase: 1, Err: err}, keep)
	}
	u.logPass(ctx, pass)
	return &Report{Passes: []*Pass{pass}}, nil
}

// DistributeWithRetry distributes the native balance in up to two phases.
//
// The first phase sends each recipient its portion of the balance. If some
// but not all recipients accepted their portion, the second phase splits
// whatever was not delivered between the recipients that accepted, in
// proportion to their shares. Failures of the second phase are final and
// the value stays on the unit account until the next distribution.
func (u *Unit) DistributeWithRetry(ctx paysplit.Context, db paysplit.KVStore) (*Report, error) {
	if !u.features.DistributeWithRetry {
		return nil, errors.Wrap(ErrDisabled, "distribute with retry")
	}
	balance, err := u.nativeBalance(db)
	if err != nil {
		return nil, err
	}
	pass := newPass(NativeAsset, balance)
	if balance.Sign() == 0 {
		if u.features.GuardZeroBalance {
			return nil, errors.Wrap(ErrZeroBalance, NativeAsset)
		}
		return &Report{Passes: []*Pass{pass}}, nil
	}

	var (
		total       = u.table.TotalShares()
		remaining   = new(big.Int).Set(balance)
		valid       = make([]Recipient, 0, len(u.table.entries))
		validShares = new(big.Int)
	)
	for _, r := range u.table.entries {
		amount := Portion(balance, r.Share, total)
		if amount.Sign() == 0 {
			// Nothing to reject, so the recipient is considered valid.
			valid = append(valid, r)
			validShares.Add(validShares, r.Share)
			continue
		}
		err := u.sendNative(ctx, db, r.Address, amount)
		pass.record(Transfer{Recipient: r.Address, Amount: amount, Phase: 1, Err: err}, true)
		if err != nil {
			u.logFailure(ctx, NativeAsset, r.Address, amount, err)
			continue
		}
		valid = append(valid, r)
		validShares.Add(validShares, r.Share)
		remaining.Sub(remaining, amount)
	}

	if len(valid) == 0 || len(valid) == len(u.table.entries) || validShares.Sign() == 0 {
		u.logPass(ctx, pass)
		return &Report{Passes: []*Pass{pass}}, nil
	}

	for _, r := range valid {
		amount := Portion(remaining, r.Share, validShares)
		if amount.Sign() == 0 {
			continue
		}
		err := u.sendNative(ctx, db, r.Address, amount)
		if err != nil {
			u.logFailure(ctx, NativeAsset, r.Address, amount, err)
		}
		pass.record(Transfer{Recipient: r.Address, Amount: amount, Phase: 2, Err: err}, true)
	}
	u.logPass(ctx, pass)
	return &Report{Passes: []*Pass{pass}}, nil
}

// DistributeToken distributes the unit balance of a single token in a
// single pass.
func (u *Unit) DistributeToken(ctx paysplit.Context, db paysplit.KVStore, ticker string) (*Report, error) {
	if !u.features.Token {
		return nil, errors.Wrap(ErrDisabled, "distribute token")
	}
	c, err := u.contract(ticker)
	if err != nil {
		return nil, err
	}
	pass, err := u.distributeToken(ctx, db, c, false)
	if err != nil {
		return nil, err
	}
	return &Report{Passes: []*Pass{pass}}, nil
}

// DistributeTokens distributes balances of all given tokens, in order.
// All tickers are resolved before any value is moved.
func (u *Unit) DistributeTokens(ctx paysplit.Context, db paysplit.KVStore, tickers []string) (*Report, error) {
	if !u.features.Tokens {
		return nil, errors.Wrap(ErrDisabled, "distribute tokens")
	}
	contracts := make([]token.Contract, len(tickers))
	for i, t := range tickers {
		c, err := u.contract(t)
		if err != nil {
			return nil, err
		}
		contracts[i] = c
	}

	report := &Report{}
	for _, c := range contracts {
		pass, err := u.distributeToken(ctx, db, c, u.features.SkipZeroBalanceTokens)
		if err != nil {
			return nil, err
		}
		report.add(pass)
	}
	return report, nil
}

func (u *Unit) distributeToken(ctx paysplit.Context, db paysplit.KVStore, c token.Contract, skipZero bool) (*Pass, error) {
	ticker := c.Ticker()
	balance, err := c.BalanceOf(db, u.account)
	if err != nil {
		return nil, errors.Wrapf(err, "balance of %s", ticker)
	}
	pass := newPass(ticker, balance)
	if balance.Sign() == 0 {
		switch {
		case skipZero:
			pass.Skipped = errors.Wrapf(ErrBatchItem, "%s: zero balance", ticker)
			return pass, nil
		case u.features.GuardZeroBalance:
			return nil, errors.Wrap(ErrZeroBalance, ticker)
		default:
			return pass, nil
		}
	}

	total := u.table.TotalShares()
	for _, r := range u.table.entries {
		amount := Portion(balance, r.Share, total)
		if amount.Sign() == 0 {
			continue
		}
		recipient := r.Address
		err := utils.Isolate(db, func(db paysplit.KVStore) error {
			return c.Transfer(ctx, db, u.account, recipient, amount)
		})
		if err != nil {
			if !u.features.TolerateTokenFailures {
				return nil, errors.Wrapf(ErrTransfer, "%s %s to %s: %s", amount, ticker, recipient, err)
			}
			u.logFailure(ctx, ticker, recipient, amount, err)
		}
		pass.record(Transfer{Recipient: recipient, Amount: amount, Phase: 1, Err: err}, true)
	}
	u.logPass(ctx, pass)
	return pass, nil
}

// sendNative moves amount from the unit account to the recipient and
// notifies the recipient program, if any. The transfer is isolated: if
// either step fails, nothing is written.
func (u *Unit) sendNative(ctx paysplit.Context, db paysplit.KVStore, to paysplit.Address, amount *big.Int) error {
	return utils.Isolate(db, func(db paysplit.KVStore) error {
		if err := u.env.Cash.MoveCoins(db, u.account, to, amount); err != nil {
			return err
		}
		if rcv := u.env.Receivers.Lookup(to); rcv != nil {
			if err := rcv.Receive(ctx, db, u.account, amount); err != nil {
				return errors.Wrap(err, "receiver")
			}
		}
		return nil
	})
}

func (u *Unit) nativeBalance(db paysplit.ReadOnlyKVStore) (*big.Int, error) {
	balance, err := u.env.Cash.Balance(db, u.account)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read balance")
	}
	return balance, nil
}

func (u *Unit) contract(ticker string) (token.Contract, error) {
	if u.env.Tokens == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "token %q", ticker)
	}
	return u.env.Tokens.Contract(ticker)
}

func (u *Unit) logFailure(ctx paysplit.Context, asset string, to paysplit.Address, amount *big.Int, err error) {
	paysplit.GetLogger(ctx).Debug("transfer failed",
		"account", u.account,
		"asset", asset,
		"recipient", to,
		"amount", amount.String(),
		"err", err)
}

func (u *Unit) logPass(ctx paysplit.Context, p *Pass) {
	paysplit.GetLogger(ctx).Info("distribution pass",
		"account", u.account,
		"asset", p.Asset,
		"snapshot", p.Snapshot.String(),
		"delivered", p.Delivered.String(),
		"failed", len(p.Failed()))
}
