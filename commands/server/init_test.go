package server

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/milestone/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func staticOptions(raw string) GenOptions {
	return func(args []string) (json.RawMessage, error) {
		return json.RawMessage(raw), nil
	}
}

func writeGenesis(t *testing.T, content string) string {
	t.Helper()
	home, err := ioutil.TempDir("", "milestone-init")
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(home, "config"), 0755))
	path := filepath.Join(home, "config", "genesis.json")
	require.NoError(t, ioutil.WriteFile(path, []byte(content), 0600))
	return home
}

func TestInitCmd(t *testing.T) {
	home := writeGenesis(t, `{"chain_id": "test-chain", "validators": []}`)
	defer os.RemoveAll(home)
	logger := log.NewNopLogger()

	err := InitCmd(staticOptions(`{"cash": []}`), logger, home, nil)
	require.NoError(t, err)

	doc, err := readGenesisDoc(filepath.Join(home, "config", "genesis.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"cash": []}`, string(doc[appStateKey]))
	assert.JSONEq(t, `"test-chain"`, string(doc["chain_id"]))

	err = InitCmd(staticOptions(`{"cash": [1]}`), logger, home, nil)
	assert.True(t, errors.ErrImmutable.Is(err))

	err = InitCmd(staticOptions(`{"cash": [1]}`), logger, home, []string{"-i"})
	require.NoError(t, err)
	doc, err = readGenesisDoc(filepath.Join(home, "config", "genesis.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"cash": [1]}`, string(doc[appStateKey]))
}

func TestInitCmdWithoutGenesis(t *testing.T) {
	home, err := ioutil.TempDir("", "milestone-init")
	require.NoError(t, err)
	defer os.RemoveAll(home)

	err = InitCmd(staticOptions(`{}`), log.NewNopLogger(), home, nil)
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestInitCmdGeneratorFailure(t *testing.T) {
	home := writeGenesis(t, `{}`)
	defer os.RemoveAll(home)

	gen := func([]string) (json.RawMessage, error) {
		return nil, errors.Wrap(errors.ErrCurrency, "bad ticker")
	}
	err := InitCmd(gen, log.NewNopLogger(), home, nil)
	assert.True(t, errors.ErrCurrency.Is(err))
}
