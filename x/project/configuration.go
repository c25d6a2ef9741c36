package project

import (
	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/coin"
	"github.com/iov-one/milestone/errors"
	"github.com/iov-one/milestone/gconf"
)

const (
	confPkg = "project"

	// maxMilestonesLimit is the largest milestone count a configuration
	// can allow.
	maxMilestonesLimit = 255
)

// Configuration holds the limits applied to newly initialized projects.
type Configuration struct {
	// Owner is allowed to update the configuration.
	Owner milestone.Address `json:"owner"`
	// MaxMilestones is the largest milestone count of a project.
	MaxMilestones uint32 `json:"max_milestones"`
	// Ticker is the only currency projects can be funded with.
	Ticker string `json:"ticker"`
}

var _ gconf.OwnedConfig = (*Configuration)(nil)

func (c *Configuration) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, c)
}

func (c *Configuration) GetOwner() milestone.Address {
	return c.Owner
}

func (c *Configuration) Validate() error {
	if err := c.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if c.MaxMilestones == 0 || c.MaxMilestones > maxMilestonesLimit {
		return errors.Wrapf(errors.ErrInput, "max milestones must be between 1 and %d", maxMilestonesLimit)
	}
	if !coin.IsCC(c.Ticker) {
		return errors.Wrapf(errors.ErrCurrency, "invalid ticker %q", c.Ticker)
	}
	return nil
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, confPkg, &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}

// Initializer loads the project configuration from the genesis file.
type Initializer struct{}

var _ milestone.Initializer = Initializer{}

// FromGenesis reads "conf"/"project" and stores it.
func (Initializer) FromGenesis(opts milestone.Options, db milestone.KVStore) error {
	return gconf.InitConfig(db, opts, confPkg, &Configuration{})
}
