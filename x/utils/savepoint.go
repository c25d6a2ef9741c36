package utils

import (
	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/errors"
)

// Savepoint runs the rest of the stack on a cache of the store. The cache is
// written only when the call succeeds, so a failed transaction leaves no
// trace in the state.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ milestone.Decorator = Savepoint{}

// NewSavepoint returns a disabled savepoint. Enable it with OnCheck and
// OnDeliver.
func NewSavepoint() Savepoint {
	return Savepoint{}
}

func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

func (s Savepoint) Check(ctx milestone.Context, db milestone.KVStore, tx milestone.Tx, next milestone.Checker) (*milestone.CheckResult, error) {
	if !s.onCheck {
		return next.Check(ctx, db, tx)
	}
	var res *milestone.CheckResult
	err := atomically(db, func(cache milestone.KVStore) (err error) {
		res, err = next.Check(ctx, cache, tx)
		return err
	})
	return res, err
}

func (s Savepoint) Deliver(ctx milestone.Context, db milestone.KVStore, tx milestone.Tx, next milestone.Deliverer) (*milestone.DeliverResult, error) {
	if !s.onDeliver {
		return next.Deliver(ctx, db, tx)
	}
	var res *milestone.DeliverResult
	err := atomically(db, func(cache milestone.KVStore) (err error) {
		res, err = next.Deliver(ctx, cache, tx)
		return err
	})
	return res, err
}

// atomically calls fn with a cache of db and writes it back on success. A
// store that cannot be cached is passed as it is.
func atomically(db milestone.KVStore, fn func(milestone.KVStore) error) error {
	c, ok := db.(milestone.CacheableKVStore)
	if !ok {
		return fn(db)
	}
	cache := c.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	return errors.Wrap(cache.Write(), "write savepoint")
}
