package cash

import (
	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/errors"
	"github.com/iov-one/milestone/x"
)

// RegisterRoutes registers the coin transfer handler.
func RegisterRoutes(r milestone.Registry, auth x.Authenticator, control Controller) {
	r.Handle(SendMsg{}.Path(), &sendHandler{auth: auth, control: control})
}

// RegisterQuery exposes wallets under "/wallets".
func RegisterQuery(qr milestone.QueryRouter) {
	NewWalletBucket().Register("wallets", qr)
}

// sendHandler transfers coins between two wallets. Only the owner of the
// source wallet can authorize a transfer.
type sendHandler struct {
	auth    x.Authenticator
	control Controller
}

func (h *sendHandler) Check(ctx milestone.Context, db milestone.KVStore, tx milestone.Tx) (*milestone.CheckResult, error) {
	if _, err := h.authorized(ctx, tx); err != nil {
		return nil, err
	}
	return &milestone.CheckResult{GasAllocated: sendTxCost}, nil
}

func (h *sendHandler) Deliver(ctx milestone.Context, db milestone.KVStore, tx milestone.Tx) (*milestone.DeliverResult, error) {
	msg, err := h.authorized(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.MoveCoins(db, msg.Source, msg.Destination, *msg.Amount); err != nil {
		return nil, err
	}
	milestone.GetLogger(ctx).Debug("transfer",
		"from", msg.Source, "to", msg.Destination, "amount", msg.Amount.String())
	return &milestone.DeliverResult{}, nil
}

// authorized loads the message and ensures the source owner signed it.
func (h *sendHandler) authorized(ctx milestone.Context, tx milestone.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := milestone.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "transfer from %s", msg.Source)
	}
	return &msg, nil
}
