package app

import (
	"strconv"
	"time"

	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp processes transactions on top of the state kept by StoreApp.
// Every transaction is decoded and passed to a single handler, usually a
// decorated router.
type BaseApp struct {
	*StoreApp
	decoder milestone.TxDecoder
	handler milestone.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

func NewBaseApp(
	store *StoreApp,
	decoder milestone.TxDecoder,
	handler milestone.Handler,
	debug bool,
) BaseApp {
	return BaseApp{
		StoreApp: store.WithDebug(debug),
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

func (b BaseApp) DeliverTx(raw []byte) abci.ResponseDeliverTx {
	m := measure("deliver")
	ctx, tx, err := b.prepare("deliver_tx", raw, m)
	if err != nil {
		m.done(err)
		return milestone.DeliverTxError(err, b.debug)
	}
	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	m.done(err)
	return milestone.DeliverOrError(res, err, b.debug)
}

func (b BaseApp) CheckTx(raw []byte) abci.ResponseCheckTx {
	m := measure("check")
	ctx, tx, err := b.prepare("check_tx", raw, m)
	if err != nil {
		m.done(err)
		return milestone.CheckTxError(err, b.debug)
	}
	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	m.done(err)
	return milestone.CheckOrError(res, err, b.debug)
}

// prepare decodes the transaction and builds the context it is processed
// in. Decoder panics are returned as errors.
func (b BaseApp) prepare(call string, raw []byte, m *measurement) (ctx milestone.Context, tx milestone.Tx, err error) {
	defer errors.Recover(&err)
	if tx, err = b.decoder(raw); err != nil {
		return nil, nil, err
	}
	m.path = milestone.GetPath(tx)
	ctx = milestone.WithLogInfo(b.BlockContext(), "call", call, "path", m.path)
	return ctx, tx, nil
}

// measurement records a single processed transaction in the app metrics.
type measurement struct {
	call  string
	path  string
	start time.Time
}

func measure(call string) *measurement {
	return &measurement{call: call, path: "(invalid)", start: time.Now()}
}

func (m *measurement) done(err error) {
	code, _ := errors.ABCIInfo(err, false)
	txCounter.WithLabelValues(m.call, m.path, strconv.FormatUint(uint64(code), 10)).Inc()
	txDuration.WithLabelValues(m.call).Observe(time.Since(m.start).Seconds())
}
