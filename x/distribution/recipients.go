package distribution

import (
	"math/big"

	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/errors"
)

// Recipient is a single entry of a recipient table.
type Recipient struct {
	Address paysplit.Address
	Share   *big.Int
}

// RecipientTable is an ordered and immutable list of recipients together
// with their shares. Use NewRecipientTable to create one.
type RecipientTable struct {
	entries []Recipient
	total   *big.Int
}

// NewRecipientTable returns a table holding a copy of given entries.
//
// ErrConfiguration is returned when the list is empty, when an address is
// invalid or repeated, when a share is negative or when all shares sum up
// to zero. Entries with a zero share are accepted and never receive
// anything.
func NewRecipientTable(entries []Recipient) (*RecipientTable, error) {
	if len(entries) == 0 {
		return nil, errors.Wrap(ErrConfiguration, "no recipients")
	}
	t := &RecipientTable{
		entries: make([]Recipient, len(entries)),
		total:   new(big.Int),
	}
	seen := make(map[string]struct{}, len(entries))
	for i, e := range entries {
		if err := e.Address.Validate(); err != nil {
			return nil, errors.Field(errors.FieldPath("Recipients", i, "Address"),
				errors.Wrapf(ErrConfiguration, "invalid address: %s", err), "")
		}
		if _, ok := seen[string(e.Address)]; ok {
			return nil, errors.Field(errors.FieldPath("Recipients", i, "Address"),
				errors.Wrapf(ErrConfiguration, "duplicated address %s", e.Address), "")
		}
		seen[string(e.Address)] = struct{}{}

		if e.Share == nil || e.Share.Sign() < 0 {
			return nil, errors.Field(errors.FieldPath("Recipients", i, "Share"),
				errors.Wrap(ErrConfiguration, "share must not be negative"), "")
		}
		t.entries[i] = Recipient{
			Address: e.Address.Clone(),
			Share:   new(big.Int).Set(e.Share),
		}
		t.total.Add(t.total, e.Share)
	}
	if t.total.Sign() == 0 {
		return nil, errors.Wrap(ErrConfiguration, "total share is zero")
	}
	return t, nil
}

// Len returns the number of recipients.
func (t *RecipientTable) Len() int {
	return len(t.entries)
}

// At returns a copy of the i-th entry.
func (t *RecipientTable) At(i int) Recipient {
	e := t.entries[i]
	return Recipient{
		Address: e.Address.Clone(),
		Share:   new(big.Int).Set(e.Share),
	}
}

// ShareOf returns the share of the i-th recipient.
func (t *RecipientTable) ShareOf(i int) *big.Int {
	return new(big.Int).Set(t.entries[i].Share)
}

// TotalShares returns the sum of all shares. It is always greater than zero.
func (t *RecipientTable) TotalShares() *big.Int {
	return new(big.Int).Set(t.total)
}

// Entries returns a copy of all entries, in order.
func (t *RecipientTable) Entries() []Recipient {
	res := make([]Recipient, len(t.entries))
	for i := range t.entries {
		res[i] = t.At(i)
	}
	return res
}
