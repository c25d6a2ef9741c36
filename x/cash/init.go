package cash

import (
	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/coin"
	"github.com/iov-one/milestone/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file
// use milestone.Address, so address in hex, not base64
type GenesisAccount struct {
	Address milestone.Address `json:"address"`
	Coins   coin.Coins        `json:"coins"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ milestone.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (Initializer) FromGenesis(opts milestone.Options, kv milestone.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	bucket := NewWalletBucket()
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		coins, err := coin.NormalizeCoins(acct.Coins)
		if err != nil {
			return errors.Wrapf(err, "account %d coins", i)
		}
		if err := saveWallet(kv, bucket, acct.Address, &Wallet{Coins: coins}); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
	return nil
}
