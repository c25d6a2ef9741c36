package server

import (
	"encoding/json"

	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/errors"
	"github.com/iov-one/milestone/store"
)

// ValidateGenesis loads the app_state of every given genesis file into a
// scratch store and returns the first failure.
func ValidateGenesis(ini milestone.Initializer, genesisPaths []string) error {
	for _, path := range genesisPaths {
		doc, err := readGenesisDoc(path)
		if err != nil {
			return errors.Wrap(err, path)
		}
		if err := loadAppState(ini, doc); err != nil {
			return errors.Wrap(err, path)
		}
	}
	return nil
}

func loadAppState(ini milestone.Initializer, doc genesisDoc) error {
	var opts milestone.Options
	if raw, ok := doc[appStateKey]; ok {
		if err := json.Unmarshal(raw, &opts); err != nil {
			return errors.Wrapf(errors.ErrInput, "%s: %s", appStateKey, err)
		}
	}
	if len(opts) == 0 {
		return errors.Wrapf(errors.ErrEmpty, "%s not set", appStateKey)
	}
	return ini.FromGenesis(opts, store.MemStore())
}
