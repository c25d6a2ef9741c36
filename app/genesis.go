package app

import (
	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/errors"
)

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...milestone.Initializer) milestone.Initializer {
	return chainInitializer{inits: inits}
}

type chainInitializer struct {
	inits []milestone.Initializer
}

// FromGenesis will pass opts to all Initializers in the list,
// aborting at the first error.
func (c chainInitializer) FromGenesis(opts milestone.Options, kv milestone.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, kv); err != nil {
			return errors.Wrapf(err, "%T", i)
		}
	}
	return nil
}
