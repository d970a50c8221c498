package token

import (
	"sort"

	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/orm"
)

// Registry maps token tickers to their contracts.
type Registry struct {
	contracts map[string]Contract
}

// NewRegistry returns a registry holding given contracts. It panics if two
// contracts share the same ticker.
func NewRegistry(contracts ...Contract) *Registry {
	r := &Registry{contracts: make(map[string]Contract)}
	for _, c := range contracts {
		r.Register(c)
	}
	return r
}

// Register adds a contract. It panics if a contract with the same ticker is
// already registered.
func (r *Registry) Register(c Contract) {
	if _, ok := r.contracts[c.Ticker()]; ok {
		panic(errors.Wrapf(errors.ErrDuplicate, "token %q", c.Ticker()))
	}
	r.contracts[c.Ticker()] = c
}

// Contract returns the contract registered for given ticker. ErrNotFound is
// returned for unknown tickers.
func (r *Registry) Contract(ticker string) (Contract, error) {
	c, ok := r.contracts[ticker]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "token %q", ticker)
	}
	return c, nil
}

// Tickers returns all registered tickers in alphabetical order.
func (r *Registry) Tickers() []string {
	tickers := make([]string, 0, len(r.contracts))
	for t := range r.contracts {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)
	return tickers
}

// LoadRegistry returns a registry with a ledger for every token declared in
// the database.
func LoadRegistry(db paysplit.ReadOnlyKVStore) (*Registry, error) {
	r := NewRegistry()
	err := NewDeclarationBucket().ForEach(db, func(key []byte, m orm.Model) error {
		r.Register(NewLedger(m.(*Declaration).Ticker))
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "load declarations")
	}
	return r, nil
}
