package sigs

import (
	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/crypto"
	"github.com/iov-one/milestone/errors"
	"github.com/iov-one/milestone/orm"
)

const BucketName = "sigs"

// maxSequence is the greatest integer a javascript client can represent
// exactly (Number.MAX_SAFE_INTEGER).
const maxSequence = 1<<53 - 1

// UserData holds the public key and the next expected nonce of a signer,
// stored under the signer address.
type UserData struct {
	Pubkey   *crypto.PublicKey `json:"pubkey"`
	Sequence int64             `json:"sequence"`
}

var _ orm.Model = (*UserData)(nil)

func (u *UserData) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(u)
}

func (u *UserData) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, u)
}

func (u *UserData) Validate() error {
	switch {
	case u.Pubkey == nil:
		return errors.Wrap(errors.ErrModel, "missing public key")
	case u.Sequence < 0:
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	return nil
}

// UseSequence consumes the given nonce. It fails unless seq is exactly the
// next expected value.
func (u *UserData) UseSequence(seq int64) error {
	if seq != u.Sequence {
		return errors.Wrapf(ErrInvalidSequence, "want %d, got %d", u.Sequence, seq)
	}
	if u.Sequence >= maxSequence {
		return errors.Wrap(errors.ErrOverflow, "sequence")
	}
	u.Sequence++
	return nil
}

type Bucket struct {
	orm.ModelBucket
}

func NewBucket() Bucket {
	return Bucket{ModelBucket: orm.NewModelBucket(BucketName, &UserData{})}
}

// GetOrCreate loads the signer owning given key. An unknown signer starts
// at sequence zero and is not stored until saved.
func (b Bucket) GetOrCreate(db milestone.ReadOnlyKVStore, pubkey *crypto.PublicKey) (*UserData, error) {
	var u UserData
	err := b.One(db, pubkey.Address(), &u)
	if errors.ErrNotFound.Is(err) {
		return &UserData{Pubkey: pubkey}, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (b Bucket) Save(db milestone.KVStore, u *UserData) error {
	if err := u.Validate(); err != nil {
		return err
	}
	_, err := b.Put(db, u.Pubkey.Address(), u)
	return err
}
