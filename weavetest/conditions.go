package weavetest

import (
	"encoding/binary"
	"sync/atomic"
	"testing"

	"github.com/iov-one/paysplit"
)

var condCnt uint64

// NewCondition returns a new, unique condition. Each call returns a condition
// that was never returned before, so its address is unique as well.
func NewCondition() paysplit.Condition {
	n := atomic.AddUint64(&condCnt, 1)
	return paysplit.NewCondition("test", "seq", SequenceID(n))
}

// NewAddress returns the address of a new, unique condition.
func NewAddress() paysplit.Address {
	return NewCondition().Address()
}

// SequenceID returns the binary representation of a sequence value, the same
// way a bucket sequence generates its keys.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}

// ParseAddress takes an address in a human readable format and returns its
// binary representation. The test fails if the address cannot be parsed.
func ParseAddress(t testing.TB, encodedAddress string) paysplit.Address {
	t.Helper()

	addr, err := paysplit.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
