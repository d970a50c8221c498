package token

import (
	"math/big"
	"strings"

	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/coin"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/orm"
)

// Holding is the amount of a single token owned by an address.
type Holding struct {
	Amount string
}

var _ orm.Model = (*Holding)(nil)

func (h *Holding) Marshal() ([]byte, error) {
	return paysplit.MarshalBinary(h)
}

func (h *Holding) Unmarshal(raw []byte) error {
	return paysplit.UnmarshalBinary(raw, h)
}

func (h *Holding) Validate() error {
	if _, err := coin.Parse(h.Amount); err != nil {
		return errors.Field("Amount", err, "invalid holding")
	}
	return nil
}

// Value returns the held amount.
func (h *Holding) Value() *big.Int {
	a, err := coin.Parse(h.Amount)
	if err != nil {
		return coin.Zero()
	}
	return a
}

// newHoldingBucket returns a bucket storing balances of the token with given
// ticker.
func newHoldingBucket(ticker string) orm.ModelBucket {
	return orm.NewModelBucket("tok_"+strings.ToLower(ticker), &Holding{})
}

// Declaration marks a token ticker as known to the chain. It is stored under
// the ticker.
type Declaration struct {
	Ticker string
}

var _ orm.Model = (*Declaration)(nil)

func (d *Declaration) Marshal() ([]byte, error) {
	return paysplit.MarshalBinary(d)
}

func (d *Declaration) Unmarshal(raw []byte) error {
	return paysplit.UnmarshalBinary(raw, d)
}

func (d *Declaration) Validate() error {
	if !coin.IsCC(d.Ticker) {
		return errors.Field("Ticker", errors.ErrInput, "invalid ticker %q", d.Ticker)
	}
	return nil
}

// NewDeclarationBucket returns a bucket listing all declared tokens.
func NewDeclarationBucket() orm.ModelBucket {
	return orm.NewModelBucket("tokens", &Declaration{})
}

// Declare records the ticker as known. Declaring a ticker twice is a no-op.
func Declare(db paysplit.KVStore, ticker string) error {
	_, err := NewDeclarationBucket().Put(db, []byte(ticker), &Declaration{Ticker: ticker})
	return err
}
