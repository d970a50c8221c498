package token

import (
	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/x"
)

// RegisterRoutes registers handlers for token message processing.
func RegisterRoutes(r paysplit.Registry, auth x.Authenticator, reg *Registry) {
	r.Handle(TransferMsg{}.Path(), &transferHandler{auth: auth, reg: reg})
}

type transferHandler struct {
	auth x.Authenticator
	reg  *Registry
}

var _ paysplit.Handler = (*transferHandler)(nil)

func (h *transferHandler) Check(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &paysplit.CheckResult{GasAllocated: transferCost}, nil
}

func (h *transferHandler) Deliver(ctx paysplit.Context, db paysplit.KVStore, tx paysplit.Tx) (*paysplit.DeliverResult, error) {
	msg, contract, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := contract.Transfer(ctx, db, msg.Source, msg.Destination, msg.GetAmount()); err != nil {
		return nil, err
	}
	return &paysplit.DeliverResult{}, nil
}

func (h *transferHandler) validate(ctx paysplit.Context, tx paysplit.Tx) (*TransferMsg, Contract, error) {
	var msg TransferMsg
	if err := paysplit.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireSigner(ctx, h.auth, msg.Source, "source"); err != nil {
		return nil, nil, err
	}
	contract, err := h.reg.Contract(msg.Ticker)
	if err != nil {
		return nil, nil, err
	}
	return &msg, contract, nil
}
