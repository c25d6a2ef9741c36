package multisig

import (
	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/errors"
)

const (
	pathCreateTransactionMsg = "multisig/create_tx"
	pathApproveMsg           = "multisig/approve"

	maxActionSize = 1024
)

var _ milestone.Msg = (*CreateTransactionMsg)(nil)

// CreateTransactionMsg proposes a privileged action of a project.
type CreateTransactionMsg struct {
	ProjectID []byte `json:"project_id"`
	// Action is the serialized privileged action. It must be bound to
	// the same project.
	Action []byte `json:"action"`
}

func (CreateTransactionMsg) Path() string {
	return pathCreateTransactionMsg
}

func (m *CreateTransactionMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *CreateTransactionMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

func (m *CreateTransactionMsg) Validate() error {
	if len(m.ProjectID) == 0 {
		return errors.Wrap(errors.ErrMsg, "missing project id")
	}
	switch n := len(m.Action); {
	case n == 0:
		return errors.Wrap(errors.ErrMsg, "missing action")
	case n > maxActionSize:
		return errors.Wrapf(errors.ErrInput, "action longer than %d bytes", maxActionSize)
	}
	return nil
}

var _ milestone.Msg = (*ApproveMsg)(nil)

// ApproveMsg approves a transaction on behalf of the main signer.
type ApproveMsg struct {
	TransactionID []byte `json:"transaction_id"`
}

func (ApproveMsg) Path() string {
	return pathApproveMsg
}

func (m *ApproveMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *ApproveMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

func (m *ApproveMsg) Validate() error {
	if len(m.TransactionID) != 8 {
		return errors.Wrapf(errors.ErrInput, "transaction id %X", m.TransactionID)
	}
	return nil
}
