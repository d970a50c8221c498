package cash

import (
	"math/big"

	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/coin"
	"github.com/iov-one/paysplit/errors"
)

const (
	sendTxCost int64 = 100

	maxMemoSize int = 128
)

// SendMsg requests moving native value between two addresses.
type SendMsg struct {
	Source      paysplit.Address
	Destination paysplit.Address
	Amount      string
	Memo        string
}

var _ paysplit.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "cash/send"
}

func (m *SendMsg) Marshal() ([]byte, error) {
	return paysplit.MarshalBinary(m)
}

func (m *SendMsg) Unmarshal(raw []byte) error {
	return paysplit.UnmarshalBinary(raw, m)
}

// Validate makes sure that this is sensible
func (m *SendMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Source", m.Source.Validate())
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	if a, err := coin.Parse(m.Amount); err != nil {
		errs = errors.AppendField(errs, "Amount", err)
	} else if !coin.IsPositive(a) {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	}
	if len(m.Memo) > maxMemoSize {
		errs = errors.AppendField(errs, "Memo", errors.ErrInput)
	}
	return errs
}

// GetAmount returns the parsed amount. Call it on validated messages only.
func (m *SendMsg) GetAmount() *big.Int {
	a, err := coin.Parse(m.Amount)
	if err != nil {
		return coin.Zero()
	}
	return a
}
