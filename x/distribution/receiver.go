package distribution

import (
	"math/big"

	"github.com/iov-one/paysplit"
)

// Receiver is implemented by recipient programs that want to be notified
// about native value sent to them. Returning an error rejects the transfer
// and all changes made by the receiver are discarded together with the
// transfer itself.
//
// The store given to the receiver is the one the transfer operates on, so a
// receiver can issue further calls, including a distribution of the very
// splitter that is paying it.
type Receiver interface {
	Receive(ctx paysplit.Context, db paysplit.KVStore, from paysplit.Address, amount *big.Int) error
}

// ReceiverFunc is an adapter to use a function as a Receiver.
type ReceiverFunc func(ctx paysplit.Context, db paysplit.KVStore, from paysplit.Address, amount *big.Int) error

func (fn ReceiverFunc) Receive(ctx paysplit.Context, db paysplit.KVStore, from paysplit.Address, amount *big.Int) error {
	return fn(ctx, db, from, amount)
}

// Receivers maps addresses to the programs deployed at them. Addresses
// without a program accept any transfer.
//
// A nil Receivers value is valid and has no programs.
type Receivers struct {
	programs map[string]Receiver
}

// NewReceivers returns an empty registry.
func NewReceivers() *Receivers {
	return &Receivers{programs: make(map[string]Receiver)}
}

// Deploy attaches a program to the address, replacing any previous one.
func (r *Receivers) Deploy(addr paysplit.Address, rcv Receiver) {
	r.programs[string(addr)] = rcv
}

// Lookup returns the program deployed at given address or nil.
func (r *Receivers) Lookup(addr paysplit.Address) Receiver {
	if r == nil {
		return nil
	}
	return r.programs[string(addr)]
}

// RejectAll is a receiver that refuses every transfer.
var RejectAll Receiver = ReceiverFunc(func(paysplit.Context, paysplit.KVStore, paysplit.Address, *big.Int) error {
	return ErrRejected
})
