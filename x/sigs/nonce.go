package sigs

import (
	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/errors"
)

// NextNonce returns the sequence the next signature of given address must
// carry. Addresses that never signed start at zero.
func NextNonce(db milestone.ReadOnlyKVStore, signer milestone.Address) (int64, error) {
	var u UserData
	err := NewBucket().One(db, signer, &u)
	if errors.ErrNotFound.Is(err) {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Wrap(err, "signer")
	}
	return u.Sequence, nil
}
