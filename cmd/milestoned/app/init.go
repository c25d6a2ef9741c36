package app

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/coin"
	"github.com/iov-one/milestone/crypto"
	"github.com/iov-one/milestone/errors"
	"github.com/iov-one/milestone/x/cash"
	"github.com/iov-one/milestone/x/project"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	defaultTicker        = "IOV"
	defaultMaxMilestones = 16
	defaultBalance       = 123456789
)

// GenInitOptions returns a development app state: a single funded wallet
// that also owns the project configuration.
//
// Accepted arguments are a ticker and an address, both optional. Without an
// address a fresh key pair is created and printed.
func GenInitOptions(args []string) (json.RawMessage, error) {
	ticker := defaultTicker
	if len(args) > 0 {
		ticker = args[0]
	}
	if !coin.IsCC(ticker) {
		return nil, errors.Wrapf(errors.ErrCurrency, "ticker %q", ticker)
	}

	var owner milestone.Address
	if len(args) > 1 {
		addr, err := milestone.ParseAddress(args[1])
		if err != nil {
			return nil, err
		}
		owner = addr
	} else {
		key := crypto.GenPrivKeyEd25519()
		printed, err := json.MarshalIndent(struct {
			Pubkey *crypto.PublicKey  `json:"pub_key"`
			Secret *crypto.PrivateKey `json:"secret"`
		}{key.PublicKey(), key}, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "keys")
		}
		fmt.Println(string(printed))
		owner = key.PublicKey().Address()
	}
	return genesisState(owner, ticker)
}

func genesisState(owner milestone.Address, ticker string) (json.RawMessage, error) {
	funded := cash.GenesisAccount{
		Address: owner,
		Coins:   coin.Coins{coin.NewCoinp(defaultBalance, ticker)},
	}
	conf := project.Configuration{
		Owner:         owner,
		MaxMilestones: defaultMaxMilestones,
		Ticker:        ticker,
	}
	raw, err := json.MarshalIndent(map[string]interface{}{
		"cash": []cash.GenesisAccount{funded},
		"conf": map[string]interface{}{"project": conf},
	}, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "genesis state")
	}
	return raw, nil
}

// GenerateApp creates the application started by the "start" command. An
// empty home keeps the state in memory.
func GenerateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "milestone.db")
	}
	a, err := newApplication(dbPath, debug)
	if err != nil {
		return nil, err
	}
	a.WithLogger(logger)
	return a, nil
}
