package sigs

import (
	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/errors"
	"github.com/iov-one/milestone/x"
)

// RegisterRoutes registers the sequence bump handler.
func RegisterRoutes(r milestone.Registry, auth x.Authenticator) {
	r.Handle(pathBumpSequenceMsg, &bumpSequenceHandler{
		auth:  auth,
		users: NewBucket(),
	})
}

// bumpSequenceHandler moves the nonce of the main signer forward,
// invalidating every transaction signed with a skipped value.
type bumpSequenceHandler struct {
	auth  x.Authenticator
	users Bucket
}

func (h *bumpSequenceHandler) Check(ctx milestone.Context, db milestone.KVStore, tx milestone.Tx) (*milestone.CheckResult, error) {
	if _, err := h.bumped(ctx, db, tx); err != nil {
		return nil, err
	}
	return &milestone.CheckResult{}, nil
}

func (h *bumpSequenceHandler) Deliver(ctx milestone.Context, db milestone.KVStore, tx milestone.Tx) (*milestone.DeliverResult, error) {
	user, err := h.bumped(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.users.Save(db, user); err != nil {
		return nil, errors.Wrap(err, "save signer")
	}
	return &milestone.DeliverResult{}, nil
}

// bumped returns the signer state after applying the message. Signature
// verification already consumed one sequence value, so only the remaining
// increment is added.
func (h *bumpSequenceHandler) bumped(ctx milestone.Context, db milestone.KVStore, tx milestone.Tx) (*UserData, error) {
	var msg BumpSequenceMsg
	if err := milestone.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "bump requires a signer")
	}
	var user UserData
	if err := h.users.One(db, signer.Address(), &user); err != nil {
		return nil, errors.Wrap(err, "signer")
	}
	rest := int64(msg.Increment) - 1
	if user.Sequence+rest > maxSequence {
		return nil, errors.Wrap(errors.ErrOverflow, "sequence")
	}
	user.Sequence += rest
	return &user, nil
}
