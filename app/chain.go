package app

import (
	"reflect"

	"github.com/iov-one/milestone"
)

// Decorators is a stack of decorators waiting for its final handler.
type Decorators struct {
	chain []milestone.Decorator
}

// ChainDecorators starts a stack. Decorators run in the given order, nil
// ones are skipped.
//
//   app.ChainDecorators(
//       utils.NewLogging(),
//       utils.NewRecovery(),
//       sigs.NewDecorator(),
//       utils.NewSavepoint().OnDeliver(),
//   ).WithHandler(router)
func ChainDecorators(ds ...milestone.Decorator) Decorators {
	return Decorators{}.Chain(ds...)
}

// Chain returns a new stack with ds appended. The receiver is not modified.
func (d Decorators) Chain(ds ...milestone.Decorator) Decorators {
	chain := make([]milestone.Decorator, len(d.chain), len(d.chain)+len(ds))
	copy(chain, d.chain)
	for _, dec := range ds {
		if !isNilDecorator(dec) {
			chain = append(chain, dec)
		}
	}
	return Decorators{chain: chain}
}

func isNilDecorator(d milestone.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler closes the stack with h.
func (d Decorators) WithHandler(h milestone.Handler) milestone.Handler {
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = layer{decorator: d.chain[i], next: h}
	}
	return h
}

// layer calls a decorator with the rest of the stack as its next handler.
type layer struct {
	decorator milestone.Decorator
	next      milestone.Handler
}

var _ milestone.Handler = layer{}

func (l layer) Check(ctx milestone.Context, db milestone.KVStore, tx milestone.Tx) (*milestone.CheckResult, error) {
	return l.decorator.Check(ctx, db, tx, l.next)
}

func (l layer) Deliver(ctx milestone.Context, db milestone.KVStore, tx milestone.Tx) (*milestone.DeliverResult, error) {
	return l.decorator.Deliver(ctx, db, tx, l.next)
}
