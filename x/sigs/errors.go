package sigs

import "github.com/iov-one/paysplit/errors"

// Reserved codes 120~129
var (
	// ErrInvalidSequence is returned when a signature carries a sequence
	// other than the next expected one.
	ErrInvalidSequence = errors.Register(120, "invalid sequence number")
)
