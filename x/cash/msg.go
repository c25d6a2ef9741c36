package cash

import (
	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/coin"
	"github.com/iov-one/milestone/errors"
)

// Ensure we implement the Msg interface
var _ milestone.Msg = (*SendMsg)(nil)

const (
	sendTxCost int64 = 100

	maxMemoSize = 128
)

// SendMsg requests a transfer of coins between two wallets.
type SendMsg struct {
	Source      milestone.Address `json:"source"`
	Destination milestone.Address `json:"destination"`
	Amount      *coin.Coin        `json:"amount"`
	Memo        string            `json:"memo,omitempty"`
}

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "cash/send"
}

// Marshal serializes the message using the binary codec.
func (m *SendMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

// Unmarshal loads the message from its binary representation.
func (m *SendMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

// Validate makes sure that this is sensible
func (m *SendMsg) Validate() error {
	if coin.IsEmpty(m.Amount) || !m.Amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive SendMsg: %v", m.Amount)
	}
	if err := m.Amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if err := m.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := m.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if len(m.Memo) > maxMemoSize {
		return errors.Wrap(errors.ErrInput, "memo too long")
	}
	return nil
}
