package multisig

import (
	"bytes"

	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/errors"
	"github.com/iov-one/milestone/orm"
)

const (
	// ContractBucketName is where we store the owner sets
	ContractBucketName = "msig"
	// TransactionBucketName is where we store the proposed transactions
	TransactionBucketName = "msigtx"

	// maxOwners limits the size of the approval bitmap.
	maxOwners = 32
)

// Contract is the owner set of a single project. It is stored under the
// project ID and never modified after creation.
type Contract struct {
	ProjectID []byte              `json:"project_id"`
	Owners    []milestone.Address `json:"owners"`
	Threshold uint32              `json:"threshold"`
	// Sequence is stamped onto every created transaction. A transaction
	// can be approved only while both values match.
	Sequence int64 `json:"sequence"`
}

var _ orm.Model = (*Contract)(nil)

func (c *Contract) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(c)
}

func (c *Contract) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, c)
}

func (c *Contract) Validate() error {
	if len(c.ProjectID) == 0 {
		return errors.Wrap(errors.ErrModel, "missing project id")
	}
	if err := validateOwners(c.Owners, c.Threshold); err != nil {
		return err
	}
	if c.Sequence < 0 {
		return errors.Wrap(errors.ErrModel, "negative sequence")
	}
	return nil
}

// OwnerIndex returns the position of given address on the owner list or -1
// if it does not belong to the set.
func (c *Contract) OwnerIndex(addr milestone.Address) int {
	for i, o := range c.Owners {
		if o.Equals(addr) {
			return i
		}
	}
	return -1
}

func validateOwners(owners []milestone.Address, threshold uint32) error {
	switch n := len(owners); {
	case n == 0:
		return ErrInvalidOwnersLen
	case n > maxOwners:
		return errors.Wrapf(ErrInvalidOwnersLen, "more than %d owners", maxOwners)
	}
	for i, o := range owners {
		if err := o.Validate(); err != nil {
			return errors.Wrapf(err, "owner %d", i)
		}
		for _, prev := range owners[:i] {
			if prev.Equals(o) {
				return errors.Wrapf(ErrUniqueOwners, "duplicated %s", o)
			}
		}
	}
	if threshold == 0 || int(threshold) > len(owners) {
		return errors.Wrapf(ErrInvalidThreshold, "%d of %d", threshold, len(owners))
	}
	return nil
}

// Transaction is a proposal to run a privileged action of a project.
type Transaction struct {
	ContractID []byte `json:"contract_id"`
	ProjectID  []byte `json:"project_id"`
	// Action is the serialized privileged action.
	Action []byte `json:"action"`
	// Approvals holds one slot per contract owner, in the owners order.
	Approvals []bool            `json:"approvals"`
	Executed  bool              `json:"executed"`
	Sequence  int64             `json:"sequence"`
	Proposer  milestone.Address `json:"proposer"`
}

var _ orm.Model = (*Transaction)(nil)

func (t *Transaction) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(t)
}

func (t *Transaction) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, t)
}

func (t *Transaction) Validate() error {
	if len(t.ContractID) == 0 {
		return errors.Wrap(errors.ErrModel, "missing contract id")
	}
	if len(t.ProjectID) == 0 {
		return errors.Wrap(errors.ErrModel, "missing project id")
	}
	if len(t.Action) == 0 {
		return errors.Wrap(errors.ErrModel, "missing action")
	}
	if n := len(t.Approvals); n == 0 || n > maxOwners {
		return errors.Wrapf(errors.ErrModel, "approvals size %d", n)
	}
	if t.Sequence < 0 {
		return errors.Wrap(errors.ErrModel, "negative sequence")
	}
	if err := t.Proposer.Validate(); err != nil {
		return errors.Wrap(err, "proposer")
	}
	return nil
}

// ApprovalCount returns the number of owners that approved the transaction.
func (t *Transaction) ApprovalCount() int {
	var n int
	for _, ok := range t.Approvals {
		if ok {
			n++
		}
	}
	return n
}

// ContractBucket stores owner sets.
type ContractBucket struct {
	orm.ModelBucket
}

// NewContractBucket returns a bucket for storing owner sets.
func NewContractBucket() ContractBucket {
	return ContractBucket{
		ModelBucket: orm.NewModelBucket(ContractBucketName, &Contract{}),
	}
}

// InitOwnerSet creates the owner set of a project. Sequence starts at zero.
// Each project can have only one set.
func (b ContractBucket) InitOwnerSet(db milestone.KVStore, projectID []byte, owners []milestone.Address, threshold uint32) (*Contract, error) {
	if err := validateOwners(owners, threshold); err != nil {
		return nil, err
	}
	switch err := b.Has(db, projectID); {
	case err == nil:
		return nil, errors.Wrapf(ErrAlreadyInitialized, "project %X", projectID)
	case !errors.ErrNotFound.Is(err):
		return nil, err
	}
	c := &Contract{
		ProjectID: projectID,
		Owners:    owners,
		Threshold: threshold,
	}
	if _, err := b.Put(db, projectID, c); err != nil {
		return nil, errors.Wrap(err, "cannot store contract")
	}
	return c, nil
}

// GetContract returns the owner set of the project with given ID.
func (b ContractBucket) GetContract(db milestone.ReadOnlyKVStore, projectID []byte) (*Contract, error) {
	var c Contract
	if err := b.One(db, projectID, &c); err != nil {
		return nil, errors.Wrap(err, "cannot load contract")
	}
	return &c, nil
}

// NewTransactionBucket returns a bucket for storing transactions. Keys are
// allocated from a sequence and transactions are indexed by project.
func NewTransactionBucket() orm.ModelBucket {
	return orm.NewModelBucket(TransactionBucketName, &Transaction{},
		orm.WithIndex("project", projectIndexer, false))
}

func projectIndexer(m orm.Model) ([]byte, error) {
	t, ok := m.(*Transaction)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	return t.ProjectID, nil
}

// sameProject returns true if the transaction belongs to the contract.
func sameProject(c *Contract, t *Transaction) bool {
	return bytes.Equal(c.ProjectID, t.ContractID)
}
