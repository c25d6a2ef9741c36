package project

import (
	"fmt"

	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/coin"
	"github.com/iov-one/milestone/errors"
	"github.com/iov-one/milestone/orm"
)

// BucketName is where we store the projects
const BucketName = "project"

// Status of a project.
type Status int32

const (
	// Pending projects can be cancelled by the client.
	Pending Status = 0
	// Running projects were started by the owners.
	Running Status = 1
	// Completed projects paid out all funds to the freelancer.
	Completed Status = 2
	// Cancelled projects were stopped by the owners.
	Cancelled Status = 3
)

var statusNames = map[Status]string{
	Pending:   "pending",
	Running:   "running",
	Completed: "completed",
	Cancelled: "cancelled",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int32(s))
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errors.Wrapf(errors.ErrState, "unknown status %d", int32(s))
	}
	return nil
}

// Project is the escrow state of a single client and freelancer agreement.
type Project struct {
	Client     milestone.Address `json:"client"`
	Freelancer milestone.Address `json:"freelancer"`
	// Multisig is the ID of the owner set governing this project.
	Multisig []byte `json:"multisig"`
	// Funds is the total value locked when the project was initialized.
	Funds                   *coin.Coin `json:"funds"`
	Milestones              uint32     `json:"milestones"`
	MilestonesReached       uint32     `json:"milestones_reached"`
	MilestoneFundsWithdrawn uint32     `json:"milestone_funds_withdrawn"`
	Status                  Status     `json:"status"`
	// Custody is the address holding the locked funds.
	Custody milestone.Address `json:"custody"`
}

var _ orm.Model = (*Project)(nil)

func (p *Project) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(p)
}

func (p *Project) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, p)
}

func (p *Project) Validate() error {
	if err := p.Client.Validate(); err != nil {
		return errors.Wrap(err, "client")
	}
	if err := p.Freelancer.Validate(); err != nil {
		return errors.Wrap(err, "freelancer")
	}
	if err := p.Custody.Validate(); err != nil {
		return errors.Wrap(err, "custody")
	}
	if len(p.Multisig) == 0 {
		return errors.Wrap(errors.ErrModel, "missing multisig")
	}
	if coin.IsEmpty(p.Funds) || !p.Funds.IsPositive() {
		return errors.Wrap(errors.ErrAmount, "funds must be positive")
	}
	if err := p.Funds.Validate(); err != nil {
		return errors.Wrap(err, "funds")
	}
	if p.Milestones == 0 {
		return errors.Wrap(errors.ErrModel, "at least one milestone required")
	}
	if p.MilestonesReached > p.Milestones {
		return errors.Wrap(errors.ErrModel, "more milestones reached than declared")
	}
	if p.MilestoneFundsWithdrawn > p.MilestonesReached {
		return errors.Wrap(errors.ErrModel, "more withdrawals than reached milestones")
	}
	return p.Status.Validate()
}

// CustodyCondition returns the condition owning the funds locked by the
// project with given ID.
func CustodyCondition(projectID []byte) milestone.Condition {
	return milestone.NewCondition("project", "custody", projectID)
}

var projectSeq = orm.NewSequence(BucketName, "id")

// NewBucket returns a bucket for storing projects. The parties index
// ensures there is only one project per client and freelancer pair.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Project{},
		orm.WithIDSequence(projectSeq),
		orm.WithIndex("parties", partiesIndexer, true),
	)
}

func partiesIndexer(m orm.Model) ([]byte, error) {
	p, ok := m.(*Project)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	return PartiesKey(p.Client, p.Freelancer), nil
}

// PartiesKey returns the parties index value of a client and freelancer
// pair.
func PartiesKey(client, freelancer milestone.Address) []byte {
	key := make([]byte, 0, len(client)+len(freelancer))
	key = append(key, client...)
	return append(key, freelancer...)
}
