package gconf

import (
	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/errors"
)

// ReadStore is the part of milestone.ReadOnlyKVStore used by Load.
type ReadStore interface {
	Get([]byte) ([]byte, error)
}

// Store is the part of milestone.KVStore used by Save.
type Store interface {
	ReadStore
	Set([]byte, []byte) error
}

// Configuration is an entity that can be kept by this package.
type Configuration interface {
	Marshal() ([]byte, error)
	Unmarshal([]byte) error
	Validate() error
}

// key of the configuration singleton of a package. "_c:" is not used by any
// bucket.
func key(pkg string) []byte {
	return append([]byte("_c:"), pkg...)
}

// Save validates conf and writes it as the configuration of pkg.
func Save(db Store, pkg string, conf Configuration) error {
	if err := conf.Validate(); err != nil {
		return errors.Wrapf(err, "%s configuration", pkg)
	}
	raw, err := conf.Marshal()
	if err != nil {
		return errors.Wrapf(err, "marshal %s configuration", pkg)
	}
	return db.Set(key(pkg), raw)
}

// Load reads the configuration of pkg into dst. ErrNotFound is returned when
// it was never saved.
func Load(db ReadStore, pkg string, dst Configuration) error {
	raw, err := db.Get(key(pkg))
	switch {
	case err != nil:
		return err
	case raw == nil:
		return errors.Wrapf(errors.ErrNotFound, "%s configuration", pkg)
	}
	if err := dst.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "unmarshal %s configuration", pkg)
	}
	return nil
}

// InitConfig saves the genesis value found under conf.<pkg>.
func InitConfig(db Store, opts milestone.Options, pkg string, conf Configuration) error {
	var all milestone.Options
	if err := opts.ReadOptions("conf", &all); err != nil {
		return errors.Wrap(err, "genesis conf")
	}
	if _, ok := all[pkg]; !ok {
		return errors.Wrapf(errors.ErrNotFound, "genesis conf.%s", pkg)
	}
	if err := all.ReadOptions(pkg, conf); err != nil {
		return errors.Wrapf(err, "genesis conf.%s", pkg)
	}
	return Save(db, pkg, conf)
}
