package sigs

import (
	"crypto/sha512"
	"encoding/binary"

	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/crypto"
	"github.com/iov-one/milestone/errors"
)

// SignCodeV1 prefixes every signed message. Changing the signing format
// requires a new code.
var SignCodeV1 = []byte{0, 0xCA, 0xFE, 0}

// BuildSignBytes returns the sha512 digest of
//
//   SignCodeV1 | uint8 len(chainID) | chainID | uint64 BE seq | signBytes
//
// The fixed length digest is what the key signs, so that hardware wallets
// never have to process the whole transaction.
func BuildSignBytes(signBytes []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrapf(ErrInvalidSequence, "negative sequence %d", seq)
	}
	if !milestone.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id %q", chainID)
	}

	h := sha512.New()
	h.Write(SignCodeV1)
	h.Write([]byte{uint8(len(chainID))})
	h.Write([]byte(chainID))
	var nonce [8]byte
	binary.BigEndian.PutUint64(nonce[:], uint64(seq))
	h.Write(nonce[:])
	h.Write(signBytes)
	return h.Sum(nil), nil
}

// BuildSignBytesTx is BuildSignBytes for the content of tx.
func BuildSignBytesTx(tx SignedTx, chainID string, seq int64) ([]byte, error) {
	raw, err := tx.GetSignBytes()
	if err != nil {
		return nil, errors.Wrap(err, "sign bytes")
	}
	return BuildSignBytes(raw, chainID, seq)
}

// SignTx signs tx for given chain with the current sequence of the signer.
func SignTx(signer crypto.Signer, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	digest, err := BuildSignBytesTx(tx, chainID, seq)
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign(digest)
	if err != nil {
		return nil, errors.Wrap(err, "sign")
	}
	return &StdSignature{
		Pubkey:    signer.PublicKey(),
		Signature: sig,
		Sequence:  seq,
	}, nil
}

// VerifyTxSignatures verifies every signature of tx and returns the
// conditions of the signers in the order of signatures. A transaction
// without signatures returns no conditions and no error.
func VerifyTxSignatures(db milestone.KVStore, tx SignedTx, chainID string) ([]milestone.Condition, error) {
	raw, err := tx.GetSignBytes()
	if err != nil {
		return nil, errors.Wrap(err, "sign bytes")
	}
	sigs := tx.GetSignatures()
	conds := make([]milestone.Condition, len(sigs))
	for i, sig := range sigs {
		if conds[i], err = VerifySignature(db, sig, raw, chainID); err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
	}
	return conds, nil
}

// VerifySignature checks a single signature and bumps the sequence of the
// signer. The signer account is created on first use.
func VerifySignature(db milestone.KVStore, sig *StdSignature, signBytes []byte, chainID string) (milestone.Condition, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	b := NewBucket()
	user, err := b.GetOrCreate(db, sig.Pubkey)
	if err != nil {
		return nil, err
	}
	digest, err := BuildSignBytes(signBytes, chainID, sig.Sequence)
	if err != nil {
		return nil, err
	}
	if !user.Pubkey.Verify(digest, sig.Signature) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "signature does not match")
	}
	if err := user.UseSequence(sig.Sequence); err != nil {
		return nil, err
	}
	if err := b.Save(db, user); err != nil {
		return nil, errors.Wrap(err, "save signer")
	}
	return user.Pubkey.Condition(), nil
}
