package weavetest

import (
	"encoding/binary"

	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/crypto"
)

// NewKey returns a random ed25519 private key.
func NewKey() crypto.Signer {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns a condition of a random signer.
func NewCondition() milestone.Condition {
	return NewKey().PublicKey().Condition()
}

// SequenceID returns the binary representation of a sequence value, as
// produced by orm.Sequence.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}
