package distribution

import (
	"math/big"
	"testing"

	"github.com/iov-one/paysplit/errors"
	"github.com/iov-one/paysplit/weavetest"
	"github.com/iov-one/paysplit/weavetest/assert"
)

func TestReportTags(t *testing.T) {
	native := newPass(NativeAsset, big.NewInt(100))
	native.record(Transfer{Recipient: weavetest.NewAddress(), Amount: big.NewInt(50), Phase: 1}, true)
	native.record(Transfer{Recipient: weavetest.NewAddress(), Amount: big.NewInt(50), Phase: 1, Err: ErrRejected}, true)

	skipped := newPass("IOV", big.NewInt(0))
	skipped.Skipped = errors.Wrap(ErrBatchItem, "IOV: zero balance")

	r := &Report{Passes: []*Pass{native, skipped}}

	got := make(map[string]string)
	for _, kv := range r.Tags() {
		got[string(kv.Key)] = string(kv.Value)
	}
	want := map[string]string{
		"distribution.native.delivered":   "50",
		"distribution.native.undelivered": "50",
		"distribution.native.failed":      "1",
		"distribution.IOV.skipped":        skipped.Skipped.Error(),
	}
	assert.Equal(t, want, got)
	assert.Equal(t, "distributed native 50 of 100, IOV skipped", r.String())
}

func TestPassRecordWithoutKeeping(t *testing.T) {
	p := newPass(NativeAsset, big.NewInt(10))
	p.record(Transfer{Amount: big.NewInt(3)}, false)
	p.record(Transfer{Amount: big.NewInt(3), Err: ErrRejected}, false)

	assert.Equal(t, 0, len(p.Transfers))
	assert.Amount(t, 3, p.Delivered)
	assert.Amount(t, 7, p.Undelivered())
}

func TestEmptyReport(t *testing.T) {
	var r *Report
	assert.Equal(t, "nothing distributed", r.String())
	assert.Equal(t, 0, len(r.Tags()))
	if r.Pass(NativeAsset) != nil {
		t.Fatal("nil report has a pass")
	}
}

func TestReceiversLookup(t *testing.T) {
	addr := weavetest.NewAddress()

	var none *Receivers
	if none.Lookup(addr) != nil {
		t.Fatal("nil registry has a program")
	}

	r := NewReceivers()
	if r.Lookup(addr) != nil {
		t.Fatal("unexpected program")
	}
	r.Deploy(addr, RejectAll)
	if r.Lookup(addr) == nil {
		t.Fatal("program not deployed")
	}
	if r.Lookup(weavetest.NewAddress()) != nil {
		t.Fatal("program deployed at a wrong address")
	}
}
