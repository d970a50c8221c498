package cash

import (
	"math/big"

	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file.
// The address is hex encoded, the amount is a JSON number.
type GenesisAccount struct {
	Address paysplit.Address `json:"address"`
	Amount  *big.Int         `json:"amount"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ paysplit.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (Initializer) FromGenesis(opts paysplit.Options, db paysplit.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot read %q options: %s", optKey, err)
	}
	ctrl := NewController()
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		if acct.Amount == nil || acct.Amount.Sign() == 0 {
			continue
		}
		if err := ctrl.IssueCoins(db, acct.Address, acct.Amount); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
	return nil
}
