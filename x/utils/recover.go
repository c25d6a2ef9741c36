package utils

import (
	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/errors"
)

// Recovery turns a panic further down the stack into an ErrPanic error,
// so that a single bad transaction cannot stop the node.
type Recovery struct{}

var _ milestone.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx milestone.Context, db milestone.KVStore, tx milestone.Tx, next milestone.Checker) (res *milestone.CheckResult, err error) {
	defer recovered(ctx, &err)
	return next.Check(ctx, db, tx)
}

func (Recovery) Deliver(ctx milestone.Context, db milestone.KVStore, tx milestone.Tx, next milestone.Deliverer) (res *milestone.DeliverResult, err error) {
	defer recovered(ctx, &err)
	return next.Deliver(ctx, db, tx)
}

// recovered must be deferred directly for recover to see the panic, so it
// repeats errors.Recover instead of calling it.
func recovered(ctx milestone.Context, err *error) {
	if r := recover(); r != nil {
		*err = errors.Wrapf(errors.ErrPanic, "%v", r)
		milestone.GetLogger(ctx).Error("panic recovered", "panic", r)
	}
}
