package project

import (
	"github.com/iov-one/milestone/errors"
	"github.com/iov-one/milestone/x/multisig"
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

func init() {
	cdc.RegisterInterface((*multisig.Action)(nil), nil)
	cdc.RegisterConcrete(&StartProjectMsg{}, pathStartProjectMsg, nil)
	cdc.RegisterConcrete(&MarkMilestoneMsg{}, pathMarkMilestoneMsg, nil)
	cdc.RegisterConcrete(&StopProjectMsg{}, pathStopProjectMsg, nil)
}

// EncodeAction serializes a privileged action so that it can be proposed as
// a multisig transaction.
func EncodeAction(a multisig.Action) ([]byte, error) {
	return cdc.MarshalBinaryBare(a)
}

// DecodeAction is the multisig.ActionDecoder of privileged project actions.
func DecodeAction(raw []byte) (multisig.Action, error) {
	var a multisig.Action
	if err := cdc.UnmarshalBinaryBare(raw, &a); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "not a project action: %s", err)
	}
	return a, nil
}
