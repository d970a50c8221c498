package distribution

import "github.com/iov-one/paysplit/errors"

// Reserved codes 1000~1009
var (
	// ErrConfiguration is returned when a splitter is declared with an
	// invalid recipient table or an invalid set of features.
	ErrConfiguration = errors.Register(1000, "invalid configuration")
	// ErrZeroBalance is returned when a guarded distribution is requested
	// for a zero balance.
	ErrZeroBalance = errors.Register(1001, "zero balance")
	// ErrTransfer is returned when a recipient or a token contract
	// rejects a transfer in a mode that does not tolerate failures.
	ErrTransfer = errors.Register(1002, "transfer failed")
	// ErrBatchItem marks a token that was not distributed as part of a
	// batch.
	ErrBatchItem = errors.Register(1003, "batch item failed")
	// ErrDisabled is returned when calling an operation that the
	// splitter features do not enable.
	ErrDisabled = errors.Register(1004, "operation disabled")
	// ErrRejected is returned by recipient programs that refuse an
	// inbound transfer.
	ErrRejected = errors.Register(1005, "transfer rejected")
)
