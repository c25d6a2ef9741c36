package multisig

import (
	"github.com/iov-one/milestone"
)

// Action is a privileged operation that can be run only by an executed
// transaction of the project it is bound to.
type Action interface {
	milestone.Msg
	GetProjectID() []byte
}

// ActionDecoder parses the serialized action of a transaction.
type ActionDecoder func(raw []byte) (Action, error)

// Executor runs a decoded action once the transaction is approved.
type Executor func(ctx milestone.Context, db milestone.KVStore, msg milestone.Msg) (*milestone.DeliverResult, error)

// HandlerAsExecutor wraps the msg in a fake Tx to satisfy the Handler
// interface. A router that registers only privileged actions is the
// expected handler.
func HandlerAsExecutor(h milestone.Handler) Executor {
	return func(ctx milestone.Context, db milestone.KVStore, msg milestone.Msg) (*milestone.DeliverResult, error) {
		return h.Deliver(ctx, db, &actionTx{msg: msg})
	}
}

type actionTx struct {
	msg milestone.Msg
}

var _ milestone.Tx = (*actionTx)(nil)

func (tx *actionTx) GetMsg() (milestone.Msg, error) {
	return tx.msg, nil
}

func (tx *actionTx) Marshal() ([]byte, error) {
	return tx.msg.Marshal()
}

func (tx *actionTx) Unmarshal(raw []byte) error {
	return tx.msg.Unmarshal(raw)
}
