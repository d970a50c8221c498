package distribution

import (
	"context"
	"math/big"
	"testing"

	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/app"
	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/store"
	"github.com/iov-one/paysplit/weavetest"
	"github.com/iov-one/paysplit/weavetest/assert"
	"github.com/iov-one/paysplit/x/cash"
	"github.com/iov-one/paysplit/x/token"
	"github.com/iov-one/paysplit/x/utils"
)

func TestHandlers(t *testing.T) {
	depositor := weavetest.NewCondition()
	addr1 := weavetest.NewAddress()
	addr2 := weavetest.NewAddress()
	addr3 := weavetest.NewAddress()
	rejecting := weavetest.NewAddress()

	strict := Features{Native: true, Distribute: true, StrictTransfers: true}
	noRetry := Features{Native: true, Distribute: true, CheckTransfers: true}
	autoSplit := DefaultFeatures()
	autoSplit.AutoSplit = true

	// In below cases, weavetest.SequenceID(1) is the ID of the first
	// splitter created. Sequence is reset for each test case.
	splitter1 := SplitterAccount(weavetest.SequenceID(1))

	cases := map[string]struct {
		// prepareAccounts is used to set the native funds for each
		// declared account, before executing actions.
		prepareAccounts []account
		// actions is a set of messages that will be handled by the
		// router. Successfully handled messages are altering the
		// state.
		actions []action
		// wantAccounts is used to declare desired state of each
		// account after all actions are applied.
		wantAccounts []account
	}{
		"at least one destination is required": {
			actions: []action{
				{
					msg:            &CreateMsg{Features: DefaultFeatures()},
					wantCheckErr:   ErrConfiguration,
					wantDeliverErr: ErrConfiguration,
				},
			},
		},
		"splitter not found": {
			actions: []action{
				{
					msg:            &DistributeMsg{SplitterID: weavetest.SequenceID(42)},
					wantCheckErr:   errors.ErrNotFound,
					wantDeliverErr: errors.ErrNotFound,
				},
			},
		},
		"deposit and distribute with retry": {
			prepareAccounts: []account{
				{address: depositor.Address(), amount: 100},
			},
			actions: []action{
				{
					msg: &CreateMsg{
						Destinations: []Destination{
							{Address: addr1, Share: "1"},
							{Address: rejecting, Share: "1"},
							{Address: addr2, Share: "1"},
							{Address: addr3, Share: "1"},
						},
						Features: DefaultFeatures(),
					},
				},
				{
					conditions: []paysplit.Condition{depositor},
					msg: &DepositMsg{
						SplitterID: weavetest.SequenceID(1),
						Source:     depositor.Address(),
						Amount:     "100",
					},
				},
				{
					msg: &DistributeWithRetryMsg{SplitterID: weavetest.SequenceID(1)},
				},
			},
			wantAccounts: []account{
				{address: depositor.Address(), amount: 0},
				{address: addr1, amount: 33},
				{address: rejecting, amount: 0},
				{address: addr2, amount: 33},
				{address: addr3, amount: 33},
				{address: splitter1, amount: 1},
			},
		},
		"deposit requires the source signature": {
			prepareAccounts: []account{
				{address: depositor.Address(), amount: 100},
			},
			actions: []action{
				{
					msg: &CreateMsg{
						Destinations: []Destination{{Address: addr1, Share: "1"}},
						Features:     DefaultFeatures(),
					},
				},
				{
					msg: &DepositMsg{
						SplitterID: weavetest.SequenceID(1),
						Source:     depositor.Address(),
						Amount:     "100",
					},
					wantCheckErr:   errors.ErrUnauthorized,
					wantDeliverErr: errors.ErrUnauthorized,
				},
			},
			wantAccounts: []account{
				{address: depositor.Address(), amount: 100},
				{address: splitter1, amount: 0},
			},
		},
		"deposit with auto split": {
			prepareAccounts: []account{
				{address: depositor.Address(), amount: 100},
			},
			actions: []action{
				{
					msg: &CreateMsg{
						Destinations: []Destination{
							{Address: addr1, Share: "1"},
							{Address: addr2, Share: "2"},
						},
						Features: autoSplit,
					},
				},
				{
					conditions: []paysplit.Condition{depositor},
					msg: &DepositMsg{
						SplitterID: weavetest.SequenceID(1),
						Source:     depositor.Address(),
						Amount:     "100",
					},
				},
			},
			wantAccounts: []account{
				{address: addr1, amount: 33},
				{address: addr2, amount: 66},
				{address: splitter1, amount: 1},
			},
		},
		"strict transfer failure rolls back the whole call": {
			prepareAccounts: []account{
				{address: splitter1, amount: 100},
			},
			actions: []action{
				{
					msg: &CreateMsg{
						Destinations: []Destination{
							{Address: addr1, Share: "1"},
							{Address: rejecting, Share: "1"},
						},
						Features: strict,
					},
				},
				{
					msg:            &DistributeMsg{SplitterID: weavetest.SequenceID(1)},
					wantDeliverErr: ErrTransfer,
				},
			},
			wantAccounts: []account{
				{address: addr1, amount: 0},
				{address: splitter1, amount: 100},
			},
		},
		"single pass does not retry": {
			prepareAccounts: []account{
				{address: splitter1, amount: 100},
			},
			actions: []action{
				{
					msg: &CreateMsg{
						Destinations: []Destination{
							{Address: addr1, Share: "1"},
							{Address: rejecting, Share: "1"},
						},
						Features: noRetry,
					},
				},
				{
					msg: &DistributeMsg{SplitterID: weavetest.SequenceID(1)},
				},
				{
					msg:            &DistributeWithRetryMsg{SplitterID: weavetest.SequenceID(1)},
					wantDeliverErr: ErrDisabled,
				},
			},
			wantAccounts: []account{
				{address: addr1, amount: 50},
				{address: splitter1, amount: 50},
			},
		},
		"zero balance is guarded": {
			actions: []action{
				{
					msg: &CreateMsg{
						Destinations: []Destination{{Address: addr1, Share: "1"}},
						Features:     DefaultFeatures(),
					},
				},
				{
					msg:            &DistributeWithRetryMsg{SplitterID: weavetest.SequenceID(1)},
					wantDeliverErr: ErrZeroBalance,
				},
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := cash.NewController()
			for _, a := range tc.prepareAccounts {
				if a.amount != 0 {
					assert.Nil(t, ctrl.IssueCoins(db, a.address, big.NewInt(a.amount)))
				}
			}

			receivers := NewReceivers()
			receivers.Deploy(rejecting, RejectAll)
			rt := app.NewRouter()
			auth := &weavetest.CtxAuth{Key: "auth"}
			RegisterRoutes(rt, auth, Env{Cash: ctrl, Receivers: receivers})
			h := app.ChainDecorators(utils.NewSavepoint().OnDeliver()).WithHandler(rt)

			for i, a := range tc.actions {
				cache := db.CacheWrap()
				if _, err := h.Check(a.ctx(), cache, a.tx()); !a.wantCheckErr.Is(err) {
					t.Logf("want: %+v", a.wantCheckErr)
					t.Logf(" got: %+v", err)
					t.Fatalf("action %d check (%T)", i, a.msg)
				}
				cache.Discard()
				if a.wantCheckErr != nil {
					// Failed checks are causing the message to be ignored.
					continue
				}

				if _, err := h.Deliver(a.ctx(), db, a.tx()); !a.wantDeliverErr.Is(err) {
					t.Logf("want: %+v", a.wantDeliverErr)
					t.Logf(" got: %+v", err)
					t.Fatalf("action %d delivery (%T)", i, a.msg)
				}
			}

			for i, a := range tc.wantAccounts {
				got, err := ctrl.Balance(db, a.address)
				if err != nil {
					t.Fatalf("cannot get %+v balance: %s", a, err)
				}
				if got.Cmp(big.NewInt(a.amount)) != 0 {
					t.Errorf("account %d: want %d, got %s", i, a.amount, got)
				}
			}
		})
	}
}

type account struct {
	address paysplit.Address
	amount  int64
}

type action struct {
	conditions     []paysplit.Condition
	msg            paysplit.Msg
	wantCheckErr   *errors.Error
	wantDeliverErr *errors.Error
}

func (a *action) tx() paysplit.Tx {
	return &weavetest.Tx{Msg: a.msg}
}

func (a *action) ctx() paysplit.Context {
	ctx := paysplit.WithHeight(context.Background(), 100)
	ctx = paysplit.WithChainID(ctx, "testchain-123")
	auth := &weavetest.CtxAuth{Key: "auth"}
	return auth.SetConditions(ctx, a.conditions...)
}

func TestTokenHandlers(t *testing.T) {
	addr1 := weavetest.NewAddress()
	addr2 := weavetest.NewAddress()

	db := store.MemStore()
	ledgers := []*token.Ledger{token.NewLedger("AAA"), token.NewLedger("BBB")}
	reg := token.NewRegistry(ledgers[0], ledgers[1])

	rt := app.NewRouter()
	RegisterRoutes(rt, &weavetest.Auth{}, Env{Cash: cash.NewController(), Tokens: reg})
	ctx := context.Background()

	create := &weavetest.Tx{Msg: &CreateMsg{
		Destinations: []Destination{
			{Address: addr1, Share: "1"},
			{Address: addr2, Share: "3"},
		},
		Features: DefaultFeatures(),
	}}
	res, err := rt.Deliver(ctx, db, create)
	assert.Nil(t, err)
	id := res.Data
	assert.Equal(t, weavetest.SequenceID(1), id)

	account := SplitterAccount(id)
	assert.Nil(t, ledgers[0].Mint(db, account, big.NewInt(8)))
	assert.Nil(t, ledgers[1].Mint(db, account, big.NewInt(40)))

	single := &weavetest.Tx{Msg: &DistributeTokenMsg{SplitterID: id, Ticker: "AAA"}}
	check, err := rt.Check(ctx, db, single)
	assert.Nil(t, err)
	assert.Equal(t, 2*distributePerRecipientCost, check.GasAllocated)
	_, err = rt.Deliver(ctx, db, single)
	assert.Nil(t, err)

	// AAA has no balance left and is skipped.
	batch := &weavetest.Tx{Msg: &DistributeTokensMsg{SplitterID: id, Tickers: []string{"AAA", "BBB"}}}
	dres, err := rt.Deliver(ctx, db, batch)
	assert.Nil(t, err)
	if len(dres.Tags) == 0 {
		t.Fatal("no result tags")
	}

	want := []struct {
		ledger *token.Ledger
		addr   paysplit.Address
		amount int64
	}{
		{ledgers[0], addr1, 2},
		{ledgers[0], addr2, 6},
		{ledgers[1], addr1, 10},
		{ledgers[1], addr2, 30},
		{ledgers[1], account, 0},
	}
	for _, w := range want {
		got, err := w.ledger.BalanceOf(db, w.addr)
		assert.Nil(t, err)
		assert.Amount(t, w.amount, got)
	}
}

func TestCreateHandlerRespectsConfiguration(t *testing.T) {
	db := store.MemStore()
	assert.Nil(t, SaveConfiguration(db, Configuration{MaxRecipients: 1, MaxBatchTokens: 1}))

	rt := app.NewRouter()
	RegisterRoutes(rt, &weavetest.Auth{}, Env{Cash: cash.NewController()})
	ctx := context.Background()

	tooMany := &weavetest.Tx{Msg: &CreateMsg{
		Destinations: []Destination{
			{Address: weavetest.NewAddress(), Share: "1"},
			{Address: weavetest.NewAddress(), Share: "1"},
		},
		Features: DefaultFeatures(),
	}}
	if _, err := rt.Check(ctx, db, tooMany); !ErrConfiguration.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}

	create := &weavetest.Tx{Msg: &CreateMsg{
		Destinations: []Destination{{Address: weavetest.NewAddress(), Share: "1"}},
		Features:     DefaultFeatures(),
	}}
	res, err := rt.Deliver(ctx, db, create)
	assert.Nil(t, err)

	batch := &weavetest.Tx{Msg: &DistributeTokensMsg{SplitterID: res.Data, Tickers: []string{"AAA", "BBB"}}}
	if _, err := rt.Check(ctx, db, batch); !errors.ErrMsg.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
}
