package weavetest

import "github.com/iov-one/milestone"

// calls counts Check and Deliver invocations of a mock.
type calls struct {
	check   int
	deliver int
}

func (c *calls) CheckCallCount() int   { return c.check }
func (c *calls) DeliverCallCount() int { return c.deliver }
func (c *calls) CallCount() int        { return c.check + c.deliver }

// Handler is a milestone.Handler mock. It returns the configured error, or a
// copy of the configured result when the error is nil.
type Handler struct {
	calls

	CheckResult milestone.CheckResult
	CheckErr    error

	DeliverResult milestone.DeliverResult
	DeliverErr    error
}

var _ milestone.Handler = (*Handler)(nil)

func (h *Handler) Check(milestone.Context, milestone.KVStore, milestone.Tx) (*milestone.CheckResult, error) {
	h.check++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(milestone.Context, milestone.KVStore, milestone.Tx) (*milestone.DeliverResult, error) {
	h.deliver++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

// Decorator is a milestone.Decorator mock. It returns the configured error
// without calling the next handler, or passes the call through.
type Decorator struct {
	calls

	CheckErr   error
	DeliverErr error
}

var _ milestone.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx milestone.Context, db milestone.KVStore, tx milestone.Tx, next milestone.Checker) (*milestone.CheckResult, error) {
	d.check++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx milestone.Context, db milestone.KVStore, tx milestone.Tx, next milestone.Deliverer) (*milestone.DeliverResult, error) {
	d.deliver++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

// Decorate puts d in front of h.
func Decorate(h milestone.Handler, d milestone.Decorator) milestone.Handler {
	return decorated{handler: h, decorator: d}
}

type decorated struct {
	handler   milestone.Handler
	decorator milestone.Decorator
}

func (d decorated) Check(ctx milestone.Context, db milestone.KVStore, tx milestone.Tx) (*milestone.CheckResult, error) {
	return d.decorator.Check(ctx, db, tx, d.handler)
}

func (d decorated) Deliver(ctx milestone.Context, db milestone.KVStore, tx milestone.Tx) (*milestone.DeliverResult, error) {
	return d.decorator.Deliver(ctx, db, tx, d.handler)
}

// WriteHandler stores Value under Key and then fails with Err, if set. Use
// it to test that writes of a failed call are discarded.
type WriteHandler struct {
	Key   []byte
	Value []byte
	Err   error
}

var _ milestone.Handler = (*WriteHandler)(nil)

func (h *WriteHandler) write(db milestone.KVStore) error {
	if err := db.Set(h.Key, h.Value); err != nil {
		return err
	}
	return h.Err
}

func (h *WriteHandler) Check(_ milestone.Context, db milestone.KVStore, _ milestone.Tx) (*milestone.CheckResult, error) {
	if err := h.write(db); err != nil {
		return nil, err
	}
	return &milestone.CheckResult{}, nil
}

func (h *WriteHandler) Deliver(_ milestone.Context, db milestone.KVStore, _ milestone.Tx) (*milestone.DeliverResult, error) {
	if err := h.write(db); err != nil {
		return nil, err
	}
	return &milestone.DeliverResult{}, nil
}
