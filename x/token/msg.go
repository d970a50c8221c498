package token

import (
	"math/big"

	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/coin"
	"github.com/iov-one/paysplit/errors"
)

const transferCost int64 = 100

// TransferMsg requests moving tokens between two addresses.
type TransferMsg struct {
	Ticker      string
	Source      paysplit.Address
	Destination paysplit.Address
	Amount      string
}

var _ paysplit.Msg = (*TransferMsg)(nil)

func (TransferMsg) Path() string {
	return "token/transfer"
}

func (m *TransferMsg) Marshal() ([]byte, error) {
	return paysplit.MarshalBinary(m)
}

func (m *TransferMsg) Unmarshal(raw []byte) error {
	return paysplit.UnmarshalBinary(raw, m)
}

func (m *TransferMsg) Validate() error {
	var errs error
	if !coin.IsCC(m.Ticker) {
		errs = errors.AppendField(errs, "Ticker", errors.ErrInput)
	}
	errs = errors.AppendField(errs, "Source", m.Source.Validate())
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	if a, err := coin.Parse(m.Amount); err != nil {
		errs = errors.AppendField(errs, "Amount", err)
	} else if !coin.IsPositive(a) {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	}
	return errs
}

// GetAmount returns the parsed amount. Call it on validated messages only.
func (m *TransferMsg) GetAmount() *big.Int {
	a, err := coin.Parse(m.Amount)
	if err != nil {
		return coin.Zero()
	}
	return a
}
