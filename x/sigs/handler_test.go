package sigs

import (
	"context"
	"testing"

	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/app"
	"github.com/iov-one/paysplit/crypto"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/store"
	"github.com/iov-one/paysplit/weavetest/assert"
)

func TestBumpSequence(t *testing.T) {
	const chainID = "bump-chain"

	cases := map[string]struct {
		increment uint32
		signed    bool
		wantErr   *errors.Error
		wantSeq   int64
	}{
		"increment by one is a regular transaction": {
			increment: 1,
			signed:    true,
			wantSeq:   1,
		},
		"increment skips sequences": {
			increment: 10,
			signed:    true,
			wantSeq:   10,
		},
		"zero increment": {
			increment: 0,
			signed:    true,
			wantErr:   errors.ErrMsg,
		},
		"too big increment": {
			increment: maxSequenceIncrement + 1,
			signed:    true,
			wantErr:   errors.ErrMsg,
		},
		"unsigned": {
			increment: 1,
			wantErr:   errors.ErrUnauthorized,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctx := paysplit.WithChainID(context.Background(), chainID)

			rt := app.NewRouter()
			RegisterRoutes(rt, Authenticate{})
			h := app.ChainDecorators(NewDecorator().AllowMissingSigs()).WithHandler(rt)

			priv := crypto.GenPrivKeyEd25519()
			tx := NewStdTx(&BumpSequenceMsg{Increment: tc.increment})
			if tc.signed {
				sig, err := SignTx(priv, tx, chainID, 0)
				assert.Nil(t, err)
				tx.Signatures = []*StdSignature{sig}
			}

			_, err := h.Deliver(ctx, db, tx)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)

			seq, err := NextNonce(db, priv.PublicKey().Address())
			assert.Nil(t, err)
			assert.Equal(t, tc.wantSeq, seq)
		})
	}
}
