package utils

import (
	"time"

	"github.com/iov-one/paysplit"
	"github.com/iov-one/paysplit/errors"
)

// Logging is a decorator to log messages as they pass through
type Logging struct{}

var _ paysplit.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Check logs error -> error, success -> debug
func (r Logging) Check(ctx paysplit.Context, store paysplit.KVStore, tx paysplit.Tx, next paysplit.Checker) (*paysplit.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, start, resLog, err, true)
	return res, err
}

// Deliver logs error -> error, success -> info
func (r Logging) Deliver(ctx paysplit.Context, store paysplit.KVStore, tx paysplit.Tx, next paysplit.Deliverer) (*paysplit.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, start, resLog, err, false)
	return res, err
}

// logDuration writes information about the time and result to the logger
func logDuration(ctx paysplit.Context, start time.Time, msg string, err error, lowPrio bool) {
	delta := time.Since(start)
	logger := paysplit.GetLogger(ctx).With("duration", delta/time.Microsecond)
	if code, _ := errors.ABCIInfo(err, false); code != errors.SuccessABCICode {
		logger = logger.With("code", code)
	}

	if err != nil {
		logger = logger.With("err", err)
	}

	// Although message can be empty, we still want to emit a log entry
	// because it contains other relevant information beside the message.
	switch {
	case err != nil:
		logger.Error(msg)
	case lowPrio:
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}
