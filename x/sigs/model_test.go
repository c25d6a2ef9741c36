package sigs

import (
	"testing"

	"github.com/iov-one/milestone/crypto"
	"github.com/iov-one/milestone/errors"
	"github.com/iov-one/milestone/weavetest/assert"
)

func TestUseSequence(t *testing.T) {
	cases := map[string]struct {
		user    UserData
		use     int64
		wantErr *errors.Error
		wantSeq int64
	}{
		"next value":     {user: UserData{Sequence: 4}, use: 4, wantSeq: 5},
		"replayed value": {user: UserData{Sequence: 4}, use: 3, wantErr: ErrInvalidSequence, wantSeq: 4},
		"future value":   {user: UserData{Sequence: 4}, use: 5, wantErr: ErrInvalidSequence, wantSeq: 4},
		"last safe integer": {
			user:    UserData{Sequence: maxSequence},
			use:     maxSequence,
			wantErr: errors.ErrOverflow,
			wantSeq: maxSequence,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.user.UseSequence(tc.use)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			assert.Equal(t, tc.wantSeq, tc.user.Sequence)
		})
	}
}

func TestUserDataValidate(t *testing.T) {
	pub := crypto.GenPrivKeyEd25519().PublicKey()

	assert.Nil(t, (&UserData{Pubkey: pub, Sequence: 3}).Validate())
	assert.IsErr(t, ErrInvalidSequence, (&UserData{Pubkey: pub, Sequence: -1}).Validate())
	assert.IsErr(t, errors.ErrModel, (&UserData{Sequence: 1}).Validate())
}

func TestUserDataSerialization(t *testing.T) {
	u := &UserData{Pubkey: crypto.GenPrivKeyEd25519().PublicKey(), Sequence: 17}
	raw, err := u.Marshal()
	assert.Nil(t, err)

	var got UserData
	assert.Nil(t, got.Unmarshal(raw))
	assert.Equal(t, u, &got)
}
