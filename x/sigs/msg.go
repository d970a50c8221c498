package sigs

import (
	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/errors"
)

const (
	maxSequenceIncrement = 1000
	minSequenceIncrement = 1
)

// BumpSequenceMsg increments the sequence of the signer, invalidating all
// transactions signed with the skipped sequences.
type BumpSequenceMsg struct {
	Increment uint32
}

var _ paysplit.Msg = (*BumpSequenceMsg)(nil)

func (BumpSequenceMsg) Path() string {
	return "sigs/bump_sequence"
}

func (msg *BumpSequenceMsg) Marshal() ([]byte, error) {
	return paysplit.MarshalBinary(msg)
}

func (msg *BumpSequenceMsg) Unmarshal(raw []byte) error {
	return paysplit.UnmarshalBinary(raw, msg)
}

func (msg *BumpSequenceMsg) Validate() error {
	if msg.Increment < minSequenceIncrement {
		return errors.Wrapf(errors.ErrMsg, "increment must be at least %d", minSequenceIncrement)
	}
	if msg.Increment > maxSequenceIncrement {
		return errors.Wrapf(errors.ErrMsg, "increment must not be greater than %d", maxSequenceIncrement)
	}
	return nil
}
