package token

import (
	"math/big"

	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/coin"
	"github.com/iov-one/paysplit/errors"
)

const optKey = "token"

// GenesisHolding declares an initial token balance.
type GenesisHolding struct {
	Ticker  string           `json:"ticker"`
	Address paysplit.Address `json:"address"`
	Amount  *big.Int         `json:"amount"`
}

// Initializer fulfils the Initializer interface to load token balances from
// the genesis file.
type Initializer struct{}

var _ paysplit.Initializer = Initializer{}

// FromGenesis declares every ticker and mints all holdings.
func (Initializer) FromGenesis(opts paysplit.Options, db paysplit.KVStore) error {
	var holdings []GenesisHolding
	if err := opts.ReadOptions(optKey, &holdings); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot read %q options: %s", optKey, err)
	}
	for i, h := range holdings {
		if !coin.IsCC(h.Ticker) {
			return errors.Wrapf(errors.ErrInput, "holding %d: invalid ticker %q", i, h.Ticker)
		}
		if err := Declare(db, h.Ticker); err != nil {
			return errors.Wrapf(err, "holding %d", i)
		}
		if coin.IsZero(h.Amount) {
			continue
		}
		if err := NewLedger(h.Ticker).Mint(db, h.Address, h.Amount); err != nil {
			return errors.Wrapf(err, "holding %d", i)
		}
	}
	return nil
}
