package commands

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/crypto"
	"github.com/iov-one/milestone/errors"
)

// DefaultDerivationPath is the path used when none is given to KeysCmd.
const DefaultDerivationPath = "m/44'/234'/0'"

const seedSize = 32

// Key is the output of KeysCmd.
type Key struct {
	Seed    string             `json:"seed"`
	Path    string             `json:"path"`
	Address milestone.Address  `json:"address"`
	Pubkey  *crypto.PublicKey  `json:"pub_key"`
	Secret  *crypto.PrivateKey `json:"secret"`
}

// KeysCmd derives an ed25519 key from a hex encoded seed and a derivation
// path, and writes it as JSON. Without arguments a random seed is
// generated.
func KeysCmd(out io.Writer, args []string) error {
	var seed []byte
	if len(args) > 0 {
		raw, err := hex.DecodeString(args[0])
		if err != nil {
			return errors.Wrapf(errors.ErrInput, "seed: %s", err)
		}
		seed = raw
	} else {
		seed = make([]byte, seedSize)
		if _, err := rand.Read(seed); err != nil {
			return errors.Wrap(err, "cannot generate seed")
		}
	}
	path := DefaultDerivationPath
	if len(args) > 1 {
		path = args[1]
	}

	key, err := DeriveKey(seed, path)
	if err != nil {
		return err
	}
	js, err := json.MarshalIndent(key, "", "  ")
	if err != nil {
		return errors.Wrap(err, "cannot serialize key")
	}
	_, err = fmt.Fprintln(out, string(js))
	return err
}

// DeriveKey returns the key derived from seed for given path.
func DeriveKey(seed []byte, path string) (*Key, error) {
	priv, err := crypto.DeriveEd25519(seed, path)
	if err != nil {
		return nil, err
	}
	pub := priv.PublicKey()
	return &Key{
		Seed:    hex.EncodeToString(seed),
		Path:    path,
		Address: pub.Address(),
		Pubkey:  pub,
		Secret:  priv,
	}, nil
}
