package utils

import (
	"time"

	"github.com/iov-one/milestone"
)

// Logging writes a log entry for every processed transaction. Failures are
// logged as errors, delivered transactions as info and checked ones as
// debug.
type Logging struct{}

var _ milestone.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx milestone.Context, db milestone.KVStore, tx milestone.Tx, next milestone.Checker) (*milestone.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	entry := logEntry{start: start, err: err, debug: true}
	if err == nil {
		entry.msg = res.Log
	}
	entry.write(ctx, tx)
	return res, err
}

func (Logging) Deliver(ctx milestone.Context, db milestone.KVStore, tx milestone.Tx, next milestone.Deliverer) (*milestone.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	entry := logEntry{start: start, err: err}
	if err == nil {
		entry.msg = res.Log
	}
	entry.write(ctx, tx)
	return res, err
}

type logEntry struct {
	start time.Time
	msg   string
	err   error
	debug bool
}

// write logs even an empty message, the duration and path are still
// useful.
func (e logEntry) write(ctx milestone.Context, tx milestone.Tx) {
	logger := milestone.GetLogger(ctx).With("duration_us", int64(time.Since(e.start)/time.Microsecond))
	if tx != nil {
		logger = logger.With("path", milestone.GetPath(tx))
	}
	switch {
	case e.err != nil:
		logger.Error(e.msg, "err", e.err)
	case e.debug:
		logger.Debug(e.msg)
	default:
		logger.Info(e.msg)
	}
}
