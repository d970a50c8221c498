package token

import (
	"context"
	"math/big"
	"testing"

	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/store"
	"github.com/iov-one/paysplit/weavetest"
	"github.com/iov-one/paysplit/weavetest/assert"
)

func TestLedgerTransfer(t *testing.T) {
	alice := weavetest.NewAddress()
	bob := weavetest.NewAddress()

	cases := map[string]struct {
		Mint      int64
		Transfer  *big.Int
		WantErr   *errors.Error
		WantAlice int64
		WantBob   int64
	}{
		"transfer part": {
			Mint:      40,
			Transfer:  big.NewInt(10),
			WantAlice: 30,
			WantBob:   10,
		},
		"transfer all": {
			Mint:     40,
			Transfer: big.NewInt(40),
			WantBob:  40,
		},
		"insufficient funds": {
			Mint:      40,
			Transfer:  big.NewInt(41),
			WantErr:   errors.ErrInsufficientAmount,
			WantAlice: 40,
		},
		"zero amount": {
			Mint:      40,
			Transfer:  big.NewInt(0),
			WantErr:   errors.ErrAmount,
			WantAlice: 40,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			l := NewLedger("TKA")
			assert.Nil(t, l.Mint(db, alice, big.NewInt(tc.Mint)))

			err := l.Transfer(context.Background(), db, alice, bob, tc.Transfer)
			if !tc.WantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}

			got, err := l.BalanceOf(db, alice)
			assert.Nil(t, err)
			assert.Amount(t, tc.WantAlice, got)
			got, err = l.BalanceOf(db, bob)
			assert.Nil(t, err)
			assert.Amount(t, tc.WantBob, got)

			supply, err := l.TotalSupply(db)
			assert.Nil(t, err)
			assert.Amount(t, tc.Mint, supply)
		})
	}
}

func TestLedgerTransferAddresses(t *testing.T) {
	valid := weavetest.NewAddress()

	cases := map[string]struct {
		From    paysplit.Address
		To      paysplit.Address
		WantErr *errors.Error
	}{
		"missing source": {
			From:    nil,
			To:      valid,
			WantErr: errors.ErrEmpty,
		},
		"malformed source": {
			From:    paysplit.Address{0x01, 0x02},
			To:      valid,
			WantErr: errors.ErrInput,
		},
		"missing destination": {
			From:    valid,
			To:      nil,
			WantErr: errors.ErrEmpty,
		},
		"malformed destination": {
			From:    valid,
			To:      paysplit.Address{0x03},
			WantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			l := NewLedger("TKA")
			assert.Nil(t, l.Mint(db, valid, big.NewInt(5)))

			err := l.Transfer(context.Background(), db, tc.From, tc.To, big.NewInt(1))
			assert.IsErr(t, tc.WantErr, err)

			got, err := l.BalanceOf(db, valid)
			assert.Nil(t, err)
			assert.Amount(t, 5, got)
		})
	}
}

func TestLedgersAreIsolated(t *testing.T) {
	db := store.MemStore()
	alice := weavetest.NewAddress()
	a := NewLedger("TKA")
	b := NewLedger("TKB")

	assert.Nil(t, a.Mint(db, alice, big.NewInt(7)))

	got, err := b.BalanceOf(db, alice)
	assert.Nil(t, err)
	assert.Amount(t, 0, got)

	supply, err := b.TotalSupply(db)
	assert.Nil(t, err)
	assert.Amount(t, 0, supply)
}

func TestNewLedgerInvalidTicker(t *testing.T) {
	assert.Panics(t, func() { NewLedger("bad") })
}

