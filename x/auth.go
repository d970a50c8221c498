package x

import (
	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/errors"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of
// handlers, so we can plug in another authentication system,
// rather than hard-coding x/sigs for all extensions.
type Authenticator interface {
	// GetConditions reveals all Conditions fulfilled.
	GetConditions(paysplit.Context) []paysplit.Condition
	// HasAddress checks if any condition matches this address
	HasAddress(paysplit.Context, paysplit.Address) bool
}

// MainSigner returns the first permission if any, otherwise nil
func MainSigner(ctx paysplit.Context, auth Authenticator) paysplit.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// RequireSigner fails with ErrUnauthorized unless the owner of given
// address authorized the current transaction. Role names the address in
// the error, for example "source" or "depositor".
func RequireSigner(ctx paysplit.Context, auth Authenticator, addr paysplit.Address, role string) error {
	if err := addr.Validate(); err != nil {
		return errors.Field(role, err, "invalid address")
	}
	if !auth.HasAddress(ctx, addr) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s signature missing", role)
	}
	return nil
}
