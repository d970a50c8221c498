package cash

import (
	"math/big"

	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/coin"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Wallet holds the native balance of a single address. The address is the
// key the wallet is stored under.
type Wallet struct {
	// Balance is the decimal representation of the owned amount.
	Balance string
}

var _ orm.Model = (*Wallet)(nil)

// NewWallet returns a wallet holding given amount.
func NewWallet(amount *big.Int) *Wallet {
	return &Wallet{Balance: coin.Format(amount)}
}

func (w *Wallet) Marshal() ([]byte, error) {
	return paysplit.MarshalBinary(w)
}

func (w *Wallet) Unmarshal(raw []byte) error {
	return paysplit.UnmarshalBinary(raw, w)
}

// Validate makes sure the balance is a valid amount.
func (w *Wallet) Validate() error {
	if _, err := coin.Parse(w.Balance); err != nil {
		return errors.Field("Balance", err, "invalid balance")
	}
	return nil
}

// Amount returns the balance held by this wallet. An invalid balance is
// returned as zero and is rejected by Validate before it can be stored.
func (w *Wallet) Amount() *big.Int {
	a, err := coin.Parse(w.Balance)
	if err != nil {
		return coin.Zero()
	}
	return a
}

// NewBucket returns a bucket storing a wallet per address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Wallet{})
}
