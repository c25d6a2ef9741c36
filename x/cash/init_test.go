package cash

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/coin"
	"github.com/iov-one/milestone/errors"
	"github.com/iov-one/milestone/store"
	"github.com/iov-one/milestone/weavetest/assert"
)

func TestGenesis(t *testing.T) {
	const genesis = `{
		"cash": [
			{
				"address": "C30A2424104F542576EF01FECA2FF558F5EAA61A",
				"coins": ["10 IOV", {"ticker": "ETH", "amount": 5}, "2 IOV"]
			}
		]
	}`

	var opts milestone.Options
	assert.Nil(t, json.Unmarshal([]byte(genesis), &opts))

	db := store.MemStore()
	assert.Nil(t, Initializer{}.FromGenesis(opts, db))

	addr, err := milestone.ParseAddress("C30A2424104F542576EF01FECA2FF558F5EAA61A")
	assert.Nil(t, err)
	coins, err := NewController().Balance(db, addr)
	assert.Nil(t, err)
	want := coin.Coins{coin.NewCoinp(5, "ETH"), coin.NewCoinp(12, "IOV")}
	if !want.Equals(coins) {
		t.Fatalf("want %v, got %v", want, coins)
	}
}

func TestGenesisInvalidAddress(t *testing.T) {
	const genesis = `{"cash": [{"address": "", "coins": ["10 IOV"]}]}`
	var opts milestone.Options
	assert.Nil(t, json.Unmarshal([]byte(genesis), &opts))

	err := Initializer{}.FromGenesis(opts, store.MemStore())
	assert.IsErr(t, errors.ErrInput, err)
}
