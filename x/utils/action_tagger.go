package utils

import (
	"github.com/iov-one/milestone"
)

// ActionKey is the tag key set by ActionTagger.
const ActionKey = "action"

// ActionTagger tags every delivered transaction with "action" set to the
// message path. Clients use it to search for, or subscribe to, a kind of
// action, for example all milestone approvals.
type ActionTagger struct{}

var _ milestone.Decorator = ActionTagger{}

func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

func (ActionTagger) Check(ctx milestone.Context, db milestone.KVStore, tx milestone.Tx, next milestone.Checker) (*milestone.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

func (ActionTagger) Deliver(ctx milestone.Context, db milestone.KVStore, tx milestone.Tx, next milestone.Deliverer) (*milestone.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.Tags = append(res.Tags, milestone.Tag(ActionKey, []byte(msg.Path())))
	return res, nil
}
