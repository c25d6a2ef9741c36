package app

import (
	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/errors"
	"github.com/iov-one/milestone/x/cash"
	"github.com/iov-one/milestone/x/multisig"
	"github.com/iov-one/milestone/x/project"
	"github.com/iov-one/milestone/x/sigs"
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

func init() {
	cdc.RegisterInterface((*milestone.Msg)(nil), nil)
	cdc.RegisterConcrete(&cash.SendMsg{}, "milestone/cash/send", nil)
	cdc.RegisterConcrete(&sigs.BumpSequenceMsg{}, "milestone/sigs/bump_sequence", nil)
	cdc.RegisterConcrete(&multisig.CreateTransactionMsg{}, "milestone/multisig/create_tx", nil)
	cdc.RegisterConcrete(&multisig.ApproveMsg{}, "milestone/multisig/approve", nil)
	cdc.RegisterConcrete(&project.InitializeProjectMsg{}, "milestone/project/initialize", nil)
	cdc.RegisterConcrete(&project.WithdrawMsg{}, "milestone/project/withdraw", nil)
	cdc.RegisterConcrete(&project.CancelProjectMsg{}, "milestone/project/cancel", nil)
	cdc.RegisterConcrete(&project.UpdateConfigurationMsg{}, "milestone/project/update_configuration", nil)
	// Privileged actions are accepted only to be rejected by the router
	// with an authorization error.
	cdc.RegisterConcrete(&project.StartProjectMsg{}, "milestone/project/start", nil)
	cdc.RegisterConcrete(&project.MarkMilestoneMsg{}, "milestone/project/mark_milestone", nil)
	cdc.RegisterConcrete(&project.StopProjectMsg{}, "milestone/project/stop", nil)
}

// Tx is the transaction format of the milestone chain. It carries a single
// message and the signatures authorizing it.
type Tx struct {
	Msg        milestone.Msg        `json:"msg"`
	Signatures []*sigs.StdSignature `json:"signatures"`
}

var _ milestone.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (milestone.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

func (tx *Tx) GetMsg() (milestone.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "message")
	}
	return tx.Msg, nil
}

func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the serialized transaction without the signatures.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	unsigned := Tx{Msg: tx.Msg}
	return unsigned.Marshal()
}

func (tx *Tx) Marshal() ([]byte, error) {
	bz, err := cdc.MarshalBinaryBare(tx)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot serialize tx: %s", err)
	}
	return bz, nil
}

func (tx *Tx) Unmarshal(raw []byte) error {
	if err := cdc.UnmarshalBinaryBare(raw, tx); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot parse tx: %s", err)
	}
	return nil
}
