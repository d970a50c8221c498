package weavetest

import "github.com/iov-one/paysplit"

// Handler is a mock implementation of the paysplit.Handler interface.
//
// Set CheckErr or DeliverErr to force an error response. Each method call is
// counted, regardless of its result.
type Handler struct {
	calls

	CheckResult paysplit.CheckResult
	CheckErr    error

	DeliverResult paysplit.DeliverResult
	DeliverErr    error

	// Writes are stored in the database on every Deliver call, before
	// the result is returned. Use it to test rollbacks.
	Writes []paysplit.Model

	// Panic if set is the value Deliver panics with.
	Panic interface{}
}

var _ paysplit.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.CheckResult, error) {
	h.check++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.DeliverResult, error) {
	h.deliver++
	for _, m := range h.Writes {
		if err := db.Set(m.Key, m.Value); err != nil {
			return nil, err
		}
	}
	if h.Panic != nil {
		panic(h.Panic)
	}
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

// calls counts the invocations of a test double. Failed calls are counted
// too.
type calls struct {
	check   int
	deliver int
}

func (c *calls) CheckCallCount() int {
	return c.check
}

func (c *calls) DeliverCallCount() int {
	return c.deliver
}

func (c *calls) CallCount() int {
	return c.check + c.deliver
}
