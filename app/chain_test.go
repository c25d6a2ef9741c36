package app

import (
	"context"
	"testing"

	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/errors"
	"github.com/iov-one/milestone/weavetest"
	"github.com/iov-one/milestone/weavetest/assert"
	"github.com/iov-one/milestone/x/utils"
)

func TestChain(t *testing.T) {
	c1 := &weavetest.Decorator{}
	c2 := &weavetest.Decorator{}
	c3 := &weavetest.Decorator{}
	h := &weavetest.Handler{}

	stack := ChainDecorators(
		c1,
		utils.NewLogging(),
		nil,
		utils.NewRecovery(),
		c2,
		panicAtHeight(6),
		c3,
	).WithHandler(h)

	bg := context.Background()
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/chain"}}

	_, err := stack.Check(milestone.WithHeight(bg, 4), nil, tx)
	assert.Nil(t, err)
	_, err = stack.Deliver(milestone.WithHeight(bg, 4), nil, tx)
	assert.Nil(t, err)

	assert.Equal(t, 2, c1.CallCount())
	assert.Equal(t, 2, c2.CallCount())
	assert.Equal(t, 2, c3.CallCount())
	assert.Equal(t, 2, h.CallCount())

	// Recovery turns the panic into an error. Decorators below the panic
	// are never reached.
	_, err = stack.Check(milestone.WithHeight(bg, 8), nil, tx)
	assert.IsErr(t, errors.ErrPanic, err)
	_, err = stack.Deliver(milestone.WithHeight(bg, 8), nil, tx)
	assert.IsErr(t, errors.ErrPanic, err)

	assert.Equal(t, 4, c1.CallCount())
	assert.Equal(t, 4, c2.CallCount())
	assert.Equal(t, 2, c3.CallCount())
	assert.Equal(t, 2, h.CallCount())
}

func TestChainDoesNotModifyParent(t *testing.T) {
	parent := ChainDecorators(&weavetest.Decorator{})
	a := &weavetest.Decorator{}
	b := &weavetest.Decorator{}

	_ = parent.Chain(a)
	_ = parent.Chain(b)
	assert.Equal(t, 1, len(parent.chain))

	h := &weavetest.Handler{}
	_, err := parent.Chain(a).WithHandler(h).Check(context.Background(), nil, &weavetest.Tx{})
	assert.Nil(t, err)
	assert.Equal(t, 1, a.CallCount())
	assert.Equal(t, 0, b.CallCount())
}

// panicAtHeight panics if the context height is greater than the given one.
type panicAtHeight int64

func (p panicAtHeight) Check(ctx milestone.Context, db milestone.KVStore, tx milestone.Tx, next milestone.Checker) (*milestone.CheckResult, error) {
	if h, _ := milestone.GetHeight(ctx); h > int64(p) {
		panic("too high")
	}
	return next.Check(ctx, db, tx)
}

func (p panicAtHeight) Deliver(ctx milestone.Context, db milestone.KVStore, tx milestone.Tx, next milestone.Deliverer) (*milestone.DeliverResult, error) {
	if h, _ := milestone.GetHeight(ctx); h > int64(p) {
		panic("too high")
	}
	return next.Deliver(ctx, db, tx)
}
