package cash

import (
	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/coin"
	"github.com/iov-one/milestone/errors"
	"github.com/iov-one/milestone/orm"
)

// Controller is the functionality needed by cash.Handler and
// every extension that moves value (ie. a project escrow).
type Controller interface {
	CoinMover
	Balancer

	// IssueCoins adds given amount to the wallet of dest. Amount can be
	// negative, but the resulting balance cannot.
	IssueCoins(db milestone.KVStore, dest milestone.Address, amount coin.Coin) error
}

// CoinMover is an interface for moving coins between accounts.
type CoinMover interface {
	// MoveCoins removes funds from the source account and adds them to
	// the destination account. This operation is atomic. It fails when
	// the source account does not hold enough funds.
	MoveCoins(db milestone.KVStore, src, dest milestone.Address, amount coin.Coin) error
}

// Balancer is an interface for reading account balances.
type Balancer interface {
	// Balance returns all coins held by given address.
	Balance(db milestone.ReadOnlyKVStore, addr milestone.Address) (coin.Coins, error)
}

// BaseController is a simple implementation of controller backed by the
// wallet bucket.
type BaseController struct {
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller operating on the wallet bucket.
func NewController() BaseController {
	return BaseController{bucket: NewWalletBucket()}
}

// Balance returns the coins held by the wallet of given address. An address
// without a wallet holds nothing.
func (c BaseController) Balance(db milestone.ReadOnlyKVStore, addr milestone.Address) (coin.Coins, error) {
	if err := addr.Validate(); err != nil {
		return nil, errors.Wrap(err, "address")
	}
	w, err := loadWallet(db, c.bucket, addr)
	if err != nil {
		return nil, err
	}
	return w.Coins, nil
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient
// coins, it fails.
func (c BaseController) MoveCoins(db milestone.KVStore, src, dest milestone.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount %s", amount)
	}
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if err := src.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}

	sender, err := loadWallet(db, c.bucket, src)
	if err != nil {
		return err
	}
	if !sender.Coins.Contains(amount) {
		return errors.Wrapf(errors.ErrAmount, "insufficient funds: %s", amount)
	}
	if sender.Coins, err = sender.Coins.Clone().Subtract(amount); err != nil {
		return errors.Wrap(err, "subtract")
	}
	if err := saveWallet(db, c.bucket, src, sender); err != nil {
		return err
	}

	// Recipient is loaded after the sender is saved so that moving coins
	// to the same address is a no-op.
	recipient, err := loadWallet(db, c.bucket, dest)
	if err != nil {
		return err
	}
	if recipient.Coins, err = recipient.Coins.Clone().Add(amount); err != nil {
		return errors.Wrap(err, "add")
	}
	return saveWallet(db, c.bucket, dest, recipient)
}

// IssueCoins attempts to add the given amount of coins to
// the destination address. Fails if it overflows the wallet.
//
// Note the amount may also be negative:
// "the lord giveth and the lord taketh away"
func (c BaseController) IssueCoins(db milestone.KVStore, dest milestone.Address, amount coin.Coin) error {
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	w, err := loadWallet(db, c.bucket, dest)
	if err != nil {
		return err
	}
	if w.Coins, err = w.Coins.Clone().Add(amount); err != nil {
		return errors.Wrap(err, "add")
	}
	if !w.Coins.IsNonNegative() {
		return errors.Wrapf(errors.ErrAmount, "insufficient funds: %s", amount.Negative())
	}
	return saveWallet(db, c.bucket, dest, w)
}
