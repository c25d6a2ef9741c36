package server

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/milestone/errors"
	"github.com/tendermint/tendermint/libs/log"
)

const appStateKey = "app_state"

// GenOptions can parse command-line and flag to
// generate default app_state for the genesis file.
// This is application-specific
type GenOptions func(args []string) (json.RawMessage, error)

// InitCmd adds the application state to the genesis file created by
// "tendermint init" in the given home directory. It refuses to overwrite an
// existing application state unless -i flag is given.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	force := len(args) > 0 && args[0] == "-i"
	if force {
		args = args[1:]
	}

	genFile := filepath.Join(home, "config", "genesis.json")
	logger.Info("Loading genesis file", "path", genFile)

	doc, err := readGenesisDoc(genFile)
	if err != nil {
		return err
	}
	if _, ok := doc[appStateKey]; ok && !force {
		return errors.Wrap(errors.ErrImmutable, "app_state already set, use -i to overwrite")
	}

	options, err := gen(args)
	if err != nil {
		return errors.Wrap(err, "cannot generate app state")
	}
	doc[appStateKey] = options

	if err := writeGenesisDoc(genFile, doc); err != nil {
		return err
	}
	logger.Info("App state written", "path", genFile)
	return nil
}

// genesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type genesisDoc map[string]json.RawMessage

func readGenesisDoc(filename string) (genesisDoc, error) {
	raw, err := ioutil.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrNotFound, "%s, run tendermint init first", filename)
		}
		return nil, errors.Wrap(err, "cannot read genesis file")
	}
	var doc genesisDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "genesis file: %s", err)
	}
	return doc, nil
}

func writeGenesisDoc(filename string, doc genesisDoc) error {
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "cannot serialize genesis")
	}
	if err := ioutil.WriteFile(filename, out, 0600); err != nil {
		return errors.Wrap(err, "cannot write genesis file")
	}
	return nil
}
