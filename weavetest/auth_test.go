package weavetest

import (
	"context"
	"testing"

	"github.com/iov-one/paysplit"
)

func TestAuth(t *testing.T) {
	depositor := NewCondition()
	stranger := NewCondition()

	cases := map[string]struct {
		Auth      *Auth
		WantConds int
		WantKnown bool
	}{
		"nobody signed": {
			Auth: &Auth{},
		},
		"depositor signed": {
			Auth:      &Auth{Signer: depositor},
			WantConds: 1,
			WantKnown: true,
		},
		"someone else signed": {
			Auth:      &Auth{Signer: stranger},
			WantConds: 1,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := len(tc.Auth.GetConditions(nil)); got != tc.WantConds {
				t.Fatalf("want %d conditions, got %d", tc.WantConds, got)
			}
			if got := tc.Auth.HasAddress(nil, depositor.Address()); got != tc.WantKnown {
				t.Fatalf("want depositor known %v, got %v", tc.WantKnown, got)
			}
		})
	}
}

func TestCtxAuthKeysAreIsolated(t *testing.T) {
	depositor := NewCondition()
	payer := &CtxAuth{Key: "payer"}
	other := &CtxAuth{Key: "other"}

	ctx := payer.SetConditions(context.Background(), depositor)
	if !payer.HasAddress(ctx, depositor.Address()) {
		t.Fatal("depositor not authenticated")
	}
	if other.HasAddress(ctx, depositor.Address()) {
		t.Fatal("depositor authenticated under a different key")
	}
	if got := other.GetConditions(ctx); got != nil {
		t.Fatalf("want no conditions, got %v", got)
	}

	// A plain string key must not collide with the authenticator key.
	ctx = context.WithValue(context.Background(), "payer", []paysplit.Condition{depositor})
	if payer.HasAddress(ctx, depositor.Address()) {
		t.Fatal("condition set outside of the authenticator was accepted")
	}
}
