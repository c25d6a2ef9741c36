package project

import (
	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/coin"
	"github.com/iov-one/milestone/errors"
	"github.com/iov-one/milestone/x/multisig"
)

const (
	pathInitializeProjectMsg   = "project/initialize"
	pathStartProjectMsg        = "project/start"
	pathMarkMilestoneMsg       = "project/mark_milestone"
	pathWithdrawMsg            = "project/withdraw"
	pathStopProjectMsg         = "project/stop"
	pathCancelProjectMsg       = "project/cancel"
	pathUpdateConfigurationMsg = "project/update_configuration"
)

var (
	_ milestone.Msg = (*InitializeProjectMsg)(nil)
	_ milestone.Msg = (*WithdrawMsg)(nil)
	_ milestone.Msg = (*CancelProjectMsg)(nil)
	_ milestone.Msg = (*UpdateConfigurationMsg)(nil)

	_ multisig.Action = (*StartProjectMsg)(nil)
	_ multisig.Action = (*MarkMilestoneMsg)(nil)
	_ multisig.Action = (*StopProjectMsg)(nil)
)

// InitializeProjectMsg is signed by the client. Funds are moved from the
// client wallet to the project custody.
type InitializeProjectMsg struct {
	Freelancer milestone.Address `json:"freelancer"`
	Observer   milestone.Address `json:"observer"`
	Funds      *coin.Coin        `json:"funds"`
	Milestones uint32            `json:"milestones"`
}

func (InitializeProjectMsg) Path() string {
	return pathInitializeProjectMsg
}

func (m *InitializeProjectMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *InitializeProjectMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

func (m *InitializeProjectMsg) Validate() error {
	if err := m.Freelancer.Validate(); err != nil {
		return errors.Wrap(err, "freelancer")
	}
	if err := m.Observer.Validate(); err != nil {
		return errors.Wrap(err, "observer")
	}
	if coin.IsEmpty(m.Funds) || !m.Funds.IsPositive() {
		return errors.Wrap(errors.ErrAmount, "funds must be positive")
	}
	if err := m.Funds.Validate(); err != nil {
		return errors.Wrap(err, "funds")
	}
	if m.Milestones == 0 {
		return errors.Wrap(errors.ErrMsg, "at least one milestone required")
	}
	return nil
}

func validateProjectID(id []byte) error {
	if len(id) != 8 {
		return errors.Wrapf(errors.ErrInput, "project id %X", id)
	}
	return nil
}

// StartProjectMsg moves a pending project to running. Privileged.
type StartProjectMsg struct {
	ProjectID []byte `json:"project_id"`
}

func (StartProjectMsg) Path() string {
	return pathStartProjectMsg
}

func (m *StartProjectMsg) GetProjectID() []byte {
	return m.ProjectID
}

func (m *StartProjectMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *StartProjectMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

func (m *StartProjectMsg) Validate() error {
	return validateProjectID(m.ProjectID)
}

// MarkMilestoneMsg marks the current milestone as reached. Privileged.
type MarkMilestoneMsg struct {
	ProjectID []byte `json:"project_id"`
}

func (MarkMilestoneMsg) Path() string {
	return pathMarkMilestoneMsg
}

func (m *MarkMilestoneMsg) GetProjectID() []byte {
	return m.ProjectID
}

func (m *MarkMilestoneMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *MarkMilestoneMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

func (m *MarkMilestoneMsg) Validate() error {
	return validateProjectID(m.ProjectID)
}

// StopProjectMsg cancels a project regardless of its status. Privileged.
type StopProjectMsg struct {
	ProjectID []byte `json:"project_id"`
}

func (StopProjectMsg) Path() string {
	return pathStopProjectMsg
}

func (m *StopProjectMsg) GetProjectID() []byte {
	return m.ProjectID
}

func (m *StopProjectMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *StopProjectMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

func (m *StopProjectMsg) Validate() error {
	return validateProjectID(m.ProjectID)
}

// WithdrawMsg pays the freelancer for the reached milestones.
type WithdrawMsg struct {
	ProjectID []byte `json:"project_id"`
}

func (WithdrawMsg) Path() string {
	return pathWithdrawMsg
}

func (m *WithdrawMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *WithdrawMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

func (m *WithdrawMsg) Validate() error {
	return validateProjectID(m.ProjectID)
}

// CancelProjectMsg returns the funds to the client and removes the project.
type CancelProjectMsg struct {
	ProjectID []byte `json:"project_id"`
}

func (CancelProjectMsg) Path() string {
	return pathCancelProjectMsg
}

func (m *CancelProjectMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *CancelProjectMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

func (m *CancelProjectMsg) Validate() error {
	return validateProjectID(m.ProjectID)
}

// UpdateConfigurationMsg patches the project configuration. Zero value
// fields of the patch are ignored.
type UpdateConfigurationMsg struct {
	Patch *Configuration `json:"patch"`
}

func (UpdateConfigurationMsg) Path() string {
	return pathUpdateConfigurationMsg
}

func (m *UpdateConfigurationMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *UpdateConfigurationMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

func (m *UpdateConfigurationMsg) Validate() error {
	if m.Patch == nil {
		return errors.Wrap(errors.ErrMsg, "missing patch")
	}
	if len(m.Patch.Owner) != 0 {
		if err := m.Patch.Owner.Validate(); err != nil {
			return errors.Wrap(err, "owner")
		}
	}
	if m.Patch.MaxMilestones > maxMilestonesLimit {
		return errors.Wrapf(errors.ErrInput, "max milestones must not exceed %d", maxMilestonesLimit)
	}
	if m.Patch.Ticker != "" && !coin.IsCC(m.Patch.Ticker) {
		return errors.Wrapf(errors.ErrCurrency, "invalid ticker %q", m.Patch.Ticker)
	}
	return nil
}
