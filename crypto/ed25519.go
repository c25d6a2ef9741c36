package crypto

import (
	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/errors"
	"github.com/stellar/go/exp/crypto/derivation"
	"golang.org/x/crypto/ed25519"
)

var (
	_ PubKey = (*PublicKey)(nil)
	_ Signer = (*PrivateKey)(nil)
)

// Verify reports whether sig is a valid signature of message. Malformed
// keys and signatures never verify.
func (p *PublicKey) Verify(message []byte, sig *Signature) bool {
	switch {
	case sig == nil, len(sig.Ed25519) != ed25519.SignatureSize:
		return false
	case len(p.Ed25519) != ed25519.PublicKeySize:
		return false
	}
	return ed25519.Verify(p.Ed25519, message, sig.Ed25519)
}

// Condition returns the "sigs/ed25519/<key>" condition granted to the owner
// of this key, or nil for an empty key.
func (p *PublicKey) Condition() milestone.Condition {
	if p == nil || len(p.Ed25519) == 0 {
		return nil
	}
	return milestone.NewCondition(ExtensionName, "ed25519", p.Ed25519)
}

func (p *PrivateKey) Sign(message []byte) (*Signature, error) {
	if len(p.Ed25519) != ed25519.PrivateKeySize {
		return nil, errors.Wrapf(errors.ErrState, "private key of %d bytes", len(p.Ed25519))
	}
	return &Signature{Ed25519: ed25519.Sign(p.Ed25519, message)}, nil
}

func (p *PrivateKey) PublicKey() *PublicKey {
	// the second half of an ed25519 private key is its public key
	pub := make([]byte, ed25519.PublicKeySize)
	copy(pub, p.Ed25519[ed25519.PrivateKeySize-ed25519.PublicKeySize:])
	return &PublicKey{Ed25519: pub}
}

// GenPrivKeyEd25519 creates a random key. It panics if the system
// randomness source fails.
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Ed25519: priv}
}

// PrivKeyEd25519FromSeed returns the key of a 32 byte seed. It panics on
// any other seed length.
func PrivKeyEd25519FromSeed(seed []byte) *PrivateKey {
	return &PrivateKey{Ed25519: ed25519.NewKeyFromSeed(seed)}
}

// DeriveEd25519 returns the key at a hardened bip44 path such as
// "m/44'/234'/0'".
func DeriveEd25519(seed []byte, path string) (*PrivateKey, error) {
	k, err := derivation.DeriveForPath(path, seed)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "derive %q: %s", path, err)
	}
	return PrivKeyEd25519FromSeed(k.Key), nil
}
