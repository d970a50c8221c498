package distribution

import (
	"math/big"

	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/coin"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/orm"
)

const (
	pathCreateMsg              = "distribution/create"
	pathDepositMsg             = "distribution/deposit"
	pathDistributeMsg          = "distribution/distribute"
	pathDistributeWithRetryMsg = "distribution/distribute_with_retry"
	pathDistributeTokenMsg     = "distribution/distribute_token"
	pathDistributeTokensMsg    = "distribution/distribute_tokens"
)

// CreateMsg declares a new splitter. Neither the recipients nor the features
// can be changed later.
type CreateMsg struct {
	Destinations []Destination
	Features     Features
}

var _ paysplit.Msg = (*CreateMsg)(nil)

func (CreateMsg) Path() string {
	return pathCreateMsg
}

func (m *CreateMsg) Marshal() ([]byte, error) {
	return paysplit.MarshalBinary(m)
}

func (m *CreateMsg) Unmarshal(raw []byte) error {
	return paysplit.UnmarshalBinary(raw, m)
}

func (m *CreateMsg) Validate() error {
	if _, err := recipientTable(m.Destinations); err != nil {
		return err
	}
	return m.Features.Validate()
}

// DepositMsg moves native value from the source to a splitter.
type DepositMsg struct {
	SplitterID []byte
	Source     paysplit.Address
	Amount     string
}

var _ paysplit.Msg = (*DepositMsg)(nil)

func (DepositMsg) Path() string {
	return pathDepositMsg
}

func (m *DepositMsg) Marshal() ([]byte, error) {
	return paysplit.MarshalBinary(m)
}

func (m *DepositMsg) Unmarshal(raw []byte) error {
	return paysplit.UnmarshalBinary(raw, m)
}

func (m *DepositMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "SplitterID", validateID(m.SplitterID))
	errs = errors.AppendField(errs, "Source", m.Source.Validate())
	if a, err := coin.Parse(m.Amount); err != nil {
		errs = errors.AppendField(errs, "Amount", err)
	} else if !coin.IsPositive(a) {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	}
	return errs
}

// GetAmount returns the parsed amount. Call it on validated messages only.
func (m *DepositMsg) GetAmount() *big.Int {
	a, err := coin.Parse(m.Amount)
	if err != nil {
		return coin.Zero()
	}
	return a
}

// DistributeMsg requests a single pass distribution of the native balance.
type DistributeMsg struct {
	SplitterID []byte
}

var _ paysplit.Msg = (*DistributeMsg)(nil)

func (DistributeMsg) Path() string {
	return pathDistributeMsg
}

func (m *DistributeMsg) Marshal() ([]byte, error) {
	return paysplit.MarshalBinary(m)
}

func (m *DistributeMsg) Unmarshal(raw []byte) error {
	return paysplit.UnmarshalBinary(raw, m)
}

func (m *DistributeMsg) Validate() error {
	return errors.AppendField(nil, "SplitterID", validateID(m.SplitterID))
}

// DistributeWithRetryMsg requests a two phase distribution of the native
// balance.
type DistributeWithRetryMsg struct {
	SplitterID []byte
}

var _ paysplit.Msg = (*DistributeWithRetryMsg)(nil)

func (DistributeWithRetryMsg) Path() string {
	return pathDistributeWithRetryMsg
}

func (m *DistributeWithRetryMsg) Marshal() ([]byte, error) {
	return paysplit.MarshalBinary(m)
}

func (m *DistributeWithRetryMsg) Unmarshal(raw []byte) error {
	return paysplit.UnmarshalBinary(raw, m)
}

func (m *DistributeWithRetryMsg) Validate() error {
	return errors.AppendField(nil, "SplitterID", validateID(m.SplitterID))
}

// DistributeTokenMsg requests distribution of a single token balance.
type DistributeTokenMsg struct {
	SplitterID []byte
	Ticker     string
}

var _ paysplit.Msg = (*DistributeTokenMsg)(nil)

func (DistributeTokenMsg) Path() string {
	return pathDistributeTokenMsg
}

func (m *DistributeTokenMsg) Marshal() ([]byte, error) {
	return paysplit.MarshalBinary(m)
}

func (m *DistributeTokenMsg) Unmarshal(raw []byte) error {
	return paysplit.UnmarshalBinary(raw, m)
}

func (m *DistributeTokenMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "SplitterID", validateID(m.SplitterID))
	if !coin.IsCC(m.Ticker) {
		errs = errors.AppendField(errs, "Ticker", errors.ErrInput)
	}
	return errs
}

// DistributeTokensMsg requests distribution of many token balances, in the
// given order.
type DistributeTokensMsg struct {
	SplitterID []byte
	Tickers    []string
}

var _ paysplit.Msg = (*DistributeTokensMsg)(nil)

func (DistributeTokensMsg) Path() string {
	return pathDistributeTokensMsg
}

func (m *DistributeTokensMsg) Marshal() ([]byte, error) {
	return paysplit.MarshalBinary(m)
}

func (m *DistributeTokensMsg) Unmarshal(raw []byte) error {
	return paysplit.UnmarshalBinary(raw, m)
}

func (m *DistributeTokensMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "SplitterID", validateID(m.SplitterID))
	if len(m.Tickers) == 0 {
		errs = errors.AppendField(errs, "Tickers", errors.ErrEmpty)
	}
	seen := make(map[string]struct{}, len(m.Tickers))
	for i, t := range m.Tickers {
		if !coin.IsCC(t) {
			errs = errors.AppendField(errs, errors.FieldPath("Tickers", i), errors.Wrapf(errors.ErrInput, "invalid ticker %q", t))
			continue
		}
		if _, ok := seen[t]; ok {
			errs = errors.AppendField(errs, errors.FieldPath("Tickers", i), errors.Wrapf(errors.ErrDuplicate, "ticker %q", t))
		}
		seen[t] = struct{}{}
	}
	return errs
}

// GetSplitterID returns the ID of the splitter the message operates on.
func (m *DepositMsg) GetSplitterID() []byte { return m.SplitterID }
func (m *DistributeMsg) GetSplitterID() []byte { return m.SplitterID }
func (m *DistributeWithRetryMsg) GetSplitterID() []byte { return m.SplitterID }
func (m *DistributeTokenMsg) GetSplitterID() []byte { return m.SplitterID }
func (m *DistributeTokensMsg) GetSplitterID() []byte { return m.SplitterID }

func validateID(id []byte) error {
	if len(id) == 0 {
		return errors.ErrEmpty
	}
	_, err := orm.DecodeSequence(id)
	return err
}
