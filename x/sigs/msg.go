package sigs

import (
	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/errors"
)

const (
	pathBumpSequenceMsg = "sigs/bump_sequence"

	maxSequenceIncrement = 1000
	minSequenceIncrement = 1
)

// BumpSequenceMsg increments the nonce of the main signer by given value.
// It can be used to invalidate signed transactions that were not submitted.
type BumpSequenceMsg struct {
	Increment uint32 `json:"increment"`
}

var _ milestone.Msg = (*BumpSequenceMsg)(nil)

func (msg *BumpSequenceMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(msg)
}

func (msg *BumpSequenceMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, msg)
}

func (msg *BumpSequenceMsg) Validate() error {
	if msg.Increment < minSequenceIncrement {
		return errors.Wrapf(errors.ErrMsg, "increment must be at least %d", minSequenceIncrement)
	}
	if msg.Increment > maxSequenceIncrement {
		return errors.Wrapf(errors.ErrMsg, "increment must not be greater than %d", maxSequenceIncrement)
	}
	return nil
}

func (BumpSequenceMsg) Path() string {
	return pathBumpSequenceMsg
}
