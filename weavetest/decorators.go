package weavetest

import "github.com/iov-one/paysplit"

// Decorator is a pass through paysplit.Decorator that counts its calls.
// A non nil CheckErr or DeliverErr stops the chain before the next handler
// is reached.
type Decorator struct {
	calls

	CheckErr   error
	DeliverErr error
}

var _ paysplit.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx, next paysplit.Checker) (*paysplit.CheckResult, error) {
	d.check++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx, next paysplit.Deliverer) (*paysplit.DeliverResult, error) {
	d.deliver++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}
