package weavetest

import (
	"context"

	"github.com/iov-one/paysplit"
)

// Auth is an x.Authenticator that authenticates a single fixed signer, or
// nobody when Signer is nil.
type Auth struct {
	Signer paysplit.Condition
}

func (a *Auth) GetConditions(paysplit.Context) []paysplit.Condition {
	if a.Signer == nil {
		return nil
	}
	return []paysplit.Condition{a.Signer}
}

func (a *Auth) HasAddress(_ paysplit.Context, addr paysplit.Address) bool {
	return a.Signer != nil && a.Signer.Address().Equals(addr)
}

// CtxAuth is an x.Authenticator reading the signers from the context. Use it
// when a single handler serves calls signed by different parties.
type CtxAuth struct {
	Key string
}

type ctxAuthKey string

// SetConditions returns a context in which given conditions are
// authenticated.
func (a *CtxAuth) SetConditions(ctx paysplit.Context, conds ...paysplit.Condition) paysplit.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), conds)
}

func (a *CtxAuth) GetConditions(ctx paysplit.Context) []paysplit.Condition {
	conds, _ := ctx.Value(ctxAuthKey(a.Key)).([]paysplit.Condition)
	return conds
}

func (a *CtxAuth) HasAddress(ctx paysplit.Context, addr paysplit.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if c.Address().Equals(addr) {
			return true
		}
	}
	return false
}
