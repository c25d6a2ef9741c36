/*
Package crypto provides the ed25519 keys used to sign milestone transactions.

A public key is turned into a condition of the sigs extension. Every signature
verified by the x/sigs decorator grants that condition for the rest of the
transaction.
*/
package crypto

import (
	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/errors"
	amino "github.com/tendermint/go-amino"
	"golang.org/x/crypto/ed25519"
)

// ExtensionName is used for the conditions we get from signatures
const ExtensionName = "sigs"

var cdc = amino.NewCodec()

// PubKey represents a crypto public key we use
type PubKey interface {
	Verify(message []byte, sig *Signature) bool
	Condition() milestone.Condition
}

// Signer is the functionality we use from a private key
// No serializing to support hardware devices as well.
type Signer interface {
	Sign(message []byte) (*Signature, error)
	PublicKey() *PublicKey
}

// PublicKey is the serializable form of a public key.
type PublicKey struct {
	Ed25519 []byte `json:"ed25519"`
}

// PrivateKey is the serializable form of a private key.
type PrivateKey struct {
	Ed25519 []byte `json:"ed25519"`
}

// Signature is the serializable form of a signature.
type Signature struct {
	Ed25519 []byte `json:"ed25519"`
}

// Address returns the address of the condition this key grants.
func (p *PublicKey) Address() milestone.Address {
	return p.Condition().Address()
}

func (p *PublicKey) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(p)
}

func (p *PublicKey) Unmarshal(raw []byte) error {
	if err := cdc.UnmarshalBinaryBare(raw, p); err != nil {
		return errors.Wrapf(errors.ErrInput, "public key: %s", err)
	}
	return nil
}

func (p *PrivateKey) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(p)
}

func (p *PrivateKey) Unmarshal(raw []byte) error {
	if err := cdc.UnmarshalBinaryBare(raw, p); err != nil {
		return errors.Wrapf(errors.ErrInput, "private key: %s", err)
	}
	return nil
}

func (s *Signature) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(s)
}

func (s *Signature) Unmarshal(raw []byte) error {
	if err := cdc.UnmarshalBinaryBare(raw, s); err != nil {
		return errors.Wrapf(errors.ErrInput, "signature: %s", err)
	}
	return nil
}

// Validate returns an error if the signature cannot be a valid ed25519
// signature.
func (s *Signature) Validate() error {
	if s == nil || len(s.Ed25519) != ed25519.SignatureSize {
		return errors.Wrap(errors.ErrInput, "invalid ed25519 signature")
	}
	return nil
}
