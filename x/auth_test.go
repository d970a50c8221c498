package x

import (
	"context"
	"testing"

	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/weavetest"
	"github.com/iov-one/paysplit/weavetest/assert"
)

func TestRequireSigner(t *testing.T) {
	depositor := weavetest.NewCondition()
	stranger := weavetest.NewCondition()
	auth := &weavetest.CtxAuth{Key: "auth"}

	cases := map[string]struct {
		Signers    []paysplit.Condition
		Source     paysplit.Address
		WantErr    *errors.Error
		WantMain   paysplit.Condition
		WantFields bool
	}{
		"depositor signed": {
			Signers:  []paysplit.Condition{depositor},
			Source:   depositor.Address(),
			WantMain: depositor,
		},
		"depositor is a co-signer": {
			Signers:  []paysplit.Condition{stranger, depositor},
			Source:   depositor.Address(),
			WantMain: stranger,
		},
		"only a stranger signed": {
			Signers:  []paysplit.Condition{stranger},
			Source:   depositor.Address(),
			WantErr:  errors.ErrUnauthorized,
			WantMain: stranger,
		},
		"nobody signed": {
			Source:  depositor.Address(),
			WantErr: errors.ErrUnauthorized,
		},
		"missing source": {
			Signers:    []paysplit.Condition{depositor},
			WantErr:    errors.ErrEmpty,
			WantMain:   depositor,
			WantFields: true,
		},
		"malformed source": {
			Signers:    []paysplit.Condition{depositor},
			Source:     paysplit.Address{0x01},
			WantErr:    errors.ErrInput,
			WantMain:   depositor,
			WantFields: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ctx := auth.SetConditions(context.Background(), tc.Signers...)
			assert.Equal(t, tc.WantMain, MainSigner(ctx, auth))

			err := RequireSigner(ctx, auth, tc.Source, "depositor")
			assert.IsErr(t, tc.WantErr, err)
			if tc.WantFields {
				assert.FieldError(t, err, "depositor", tc.WantErr)
			}
		})
	}
}
