package cash

import (
	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/coin"
	"github.com/iov-one/milestone/errors"
	"github.com/iov-one/milestone/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Wallet holds the coins of a single address. Coins are always kept in the
// normalized form.
type Wallet struct {
	Coins coin.Coins `json:"coins"`
}

var _ orm.Model = (*Wallet)(nil)

// Marshal serializes the wallet using the binary codec.
func (w *Wallet) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(w)
}

// Unmarshal loads the wallet from its binary representation.
func (w *Wallet) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, w)
}

// Validate requires that all coins are in alphabetical order and that none
// of them is negative.
func (w *Wallet) Validate() error {
	if err := w.Coins.Validate(); err != nil {
		return err
	}
	if !w.Coins.IsNonNegative() {
		return errors.Wrap(errors.ErrAmount, "negative balance")
	}
	return nil
}

// NewWalletBucket returns a bucket storing wallets under their address.
func NewWalletBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Wallet{})
}

// loadWallet returns the wallet of given address. A missing wallet is
// returned as an empty one.
func loadWallet(db milestone.ReadOnlyKVStore, b orm.ModelBucket, addr milestone.Address) (*Wallet, error) {
	var w Wallet
	switch err := b.One(db, addr, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return &Wallet{}, nil
	default:
		return nil, errors.Wrap(err, "cannot load wallet")
	}
}

// saveWallet stores given wallet. Empty wallets are removed.
func saveWallet(db milestone.KVStore, b orm.ModelBucket, addr milestone.Address, w *Wallet) error {
	if w.Coins.IsEmpty() {
		if err := b.Delete(db, addr); err != nil && !errors.ErrNotFound.Is(err) {
			return errors.Wrap(err, "cannot delete wallet")
		}
		return nil
	}
	if _, err := b.Put(db, addr, w); err != nil {
		return errors.Wrap(err, "cannot save wallet")
	}
	return nil
}
