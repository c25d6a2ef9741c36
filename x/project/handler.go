package project

import (
	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/coin"
	"github.com/iov-one/milestone/errors"
	"github.com/iov-one/milestone/gconf"
	"github.com/iov-one/milestone/orm"
	"github.com/iov-one/milestone/x"
	"github.com/iov-one/milestone/x/cash"
	"github.com/iov-one/milestone/x/multisig"
	"github.com/tendermint/tendermint/libs/common"
)

const (
	initializeProjectCost int64 = 300
	withdrawCost          int64 = 100
	cancelProjectCost     int64 = 100

	// Owner set of every project is client, freelancer and observer.
	ownersThreshold = 2

	tagProject = "project"
	tagStatus  = "status"
)

// OwnerSetInitializer creates the multisig owner set of a project.
type OwnerSetInitializer interface {
	InitOwnerSet(db milestone.KVStore, projectID []byte, owners []milestone.Address, threshold uint32) (*multisig.Contract, error)
}

// RegisterRoutes registers all project handlers. Privileged actions are
// authorized only by the multisig authority condition, so a direct
// submission is always rejected.
func RegisterRoutes(r milestone.Registry, auth x.Authenticator, bank cash.Controller) {
	bucket := NewBucket()
	r.Handle(pathInitializeProjectMsg, InitializeProjectHandler{
		auth:   auth,
		bucket: bucket,
		bank:   bank,
		owners: multisig.NewContractBucket(),
	})
	r.Handle(pathWithdrawMsg, WithdrawHandler{auth: auth, bucket: bucket, bank: bank})
	r.Handle(pathCancelProjectMsg, CancelProjectHandler{auth: auth, bucket: bucket, bank: bank})
	r.Handle(pathUpdateConfigurationMsg, gconf.NewUpdateConfigurationHandler(confPkg, &Configuration{}, auth))
	RegisterPrivilegedRoutes(r)
}

// RegisterPrivilegedRoutes registers handlers of the actions that can be
// proposed as multisig transactions. Use it to build the multisig executor.
func RegisterPrivilegedRoutes(r milestone.Registry) {
	auth := multisig.Authenticate{}
	bucket := NewBucket()
	r.Handle(pathStartProjectMsg, privilegedHandler{auth: auth, bucket: bucket, apply: startProject})
	r.Handle(pathMarkMilestoneMsg, privilegedHandler{auth: auth, bucket: bucket, apply: markMilestone})
	r.Handle(pathStopProjectMsg, privilegedHandler{auth: auth, bucket: bucket, apply: stopProject})
}

// RegisterQuery registers projects as "/projects". Lookup by client and
// freelancer pair is available as "/projects/parties".
func RegisterQuery(qr milestone.QueryRouter) {
	NewBucket().Register("projects", qr)
}

func loadProject(db milestone.ReadOnlyKVStore, bucket orm.ModelBucket, id []byte) (*Project, error) {
	var p Project
	if err := bucket.One(db, id, &p); err != nil {
		return nil, errors.Wrapf(err, "project %X", id)
	}
	return &p, nil
}

func projectTags(id []byte, p *Project) []common.KVPair {
	return []common.KVPair{
		milestone.Tag(tagProject, id),
		milestone.Tag(tagStatus, []byte(p.Status.String())),
	}
}

// custodyBalance returns the amount of the project currency held in custody.
func custodyBalance(db milestone.ReadOnlyKVStore, bank cash.Balancer, p *Project) (coin.Coin, error) {
	coins, err := bank.Balance(db, p.Custody)
	if err != nil {
		return coin.Coin{}, errors.Wrap(err, "custody balance")
	}
	return coins.Balance(p.Funds.Ticker), nil
}

// InitializeProjectHandler creates a project, its owner set and locks the
// funds of the client.
type InitializeProjectHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	bank   cash.CoinMover
	owners OwnerSetInitializer
}

var _ milestone.Handler = InitializeProjectHandler{}

func (h InitializeProjectHandler) Check(ctx milestone.Context, db milestone.KVStore, tx milestone.Tx) (*milestone.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &milestone.CheckResult{GasAllocated: initializeProjectCost}, nil
}

func (h InitializeProjectHandler) Deliver(ctx milestone.Context, db milestone.KVStore, tx milestone.Tx) (*milestone.DeliverResult, error) {
	msg, client, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	id, err := projectSeq.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "cannot acquire project id")
	}
	owners := []milestone.Address{client, msg.Freelancer, msg.Observer}
	if _, err := h.owners.InitOwnerSet(db, id, owners, ownersThreshold); err != nil {
		return nil, errors.Wrap(err, "owner set")
	}

	p := &Project{
		Client:     client,
		Freelancer: msg.Freelancer,
		Multisig:   id,
		Funds:      msg.Funds,
		Milestones: msg.Milestones,
		Status:     Pending,
		Custody:    CustodyCondition(id).Address(),
	}
	if _, err := h.bucket.Put(db, id, p); err != nil {
		return nil, errors.Wrap(err, "cannot store project")
	}
	if err := h.bank.MoveCoins(db, client, p.Custody, *msg.Funds); err != nil {
		return nil, errors.Wrap(err, "cannot lock funds")
	}

	milestone.GetLogger(ctx).Info("project initialized",
		"project", id, "client", client, "freelancer", p.Freelancer,
		"funds", p.Funds, "milestones", p.Milestones)
	return &milestone.DeliverResult{Data: id, Tags: projectTags(id, p)}, nil
}

func (h InitializeProjectHandler) validate(ctx milestone.Context, db milestone.KVStore, tx milestone.Tx) (*InitializeProjectMsg, milestone.Address, error) {
	var msg InitializeProjectMsg
	if err := milestone.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "client signature missing")
	}

	conf, err := loadConf(db)
	if err != nil {
		return nil, nil, err
	}
	if msg.Milestones > conf.MaxMilestones {
		return nil, nil, errors.Wrapf(errors.ErrInput, "at most %d milestones allowed", conf.MaxMilestones)
	}
	if msg.Funds.Ticker != conf.Ticker {
		return nil, nil, errors.Wrapf(errors.ErrCurrency, "funds must be in %s", conf.Ticker)
	}
	return &msg, signer.Address(), nil
}

// privilegedHandler runs a state transition that requires the multisig
// authority of the project.
type privilegedHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	apply  func(*Project) error
}

var _ milestone.Handler = privilegedHandler{}

func (h privilegedHandler) Check(ctx milestone.Context, db milestone.KVStore, tx milestone.Tx) (*milestone.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &milestone.CheckResult{}, nil
}

func (h privilegedHandler) Deliver(ctx milestone.Context, db milestone.KVStore, tx milestone.Tx) (*milestone.DeliverResult, error) {
	msg, id, p, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	prev := p.Status
	if err := h.apply(p); err != nil {
		return nil, err
	}
	if _, err := h.bucket.Put(db, id, p); err != nil {
		return nil, errors.Wrap(err, "cannot store project")
	}
	statusChanges.WithLabelValues(msg.Path(), p.Status.String()).Inc()
	milestone.GetLogger(ctx).Info("project updated",
		"project", id, "action", msg.Path(), "from", prev, "to", p.Status,
		"milestones_reached", p.MilestonesReached)
	return &milestone.DeliverResult{Tags: projectTags(id, p)}, nil
}

func (h privilegedHandler) validate(ctx milestone.Context, db milestone.KVStore, tx milestone.Tx) (multisig.Action, []byte, *Project, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "cannot get transaction message")
	}
	action, ok := msg.(multisig.Action)
	if !ok {
		return nil, nil, nil, errors.Wrapf(errors.ErrType, "%T is not a project action", msg)
	}
	if err := action.Validate(); err != nil {
		return nil, nil, nil, errors.Wrap(err, "invalid message")
	}
	id := action.GetProjectID()
	if !h.auth.HasAddress(ctx, multisig.AuthorityCondition(id).Address()) {
		return nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "project authority required")
	}
	p, err := loadProject(db, h.bucket, id)
	if err != nil {
		return nil, nil, nil, err
	}
	return action, id, p, nil
}

func startProject(p *Project) error {
	if p.Status != Pending {
		return errors.Wrapf(ErrInvalidStatus, "cannot start %s project", p.Status)
	}
	p.Status = Running
	return nil
}

// markMilestone only guards against reaching more milestones than the
// project has. The status is not checked.
func markMilestone(p *Project) error {
	if p.MilestonesReached >= p.Milestones {
		return errors.Wrapf(ErrMilestoneOverflow, "%d of %d", p.MilestonesReached, p.Milestones)
	}
	p.MilestonesReached++
	return nil
}

func stopProject(p *Project) error {
	p.Status = Cancelled
	return nil
}

// WithdrawHandler pays the freelancer for reached milestones.
type WithdrawHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	bank   cash.Controller
}

var _ milestone.Handler = WithdrawHandler{}

func (h WithdrawHandler) Check(ctx milestone.Context, db milestone.KVStore, tx milestone.Tx) (*milestone.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &milestone.CheckResult{GasAllocated: withdrawCost}, nil
}

func (h WithdrawHandler) Deliver(ctx milestone.Context, db milestone.KVStore, tx milestone.Tx) (*milestone.DeliverResult, error) {
	msg, p, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	amount, err := h.payable(db, p)
	if err != nil {
		return nil, err
	}
	if amount == nil {
		// Nothing reached since the last withdrawal.
		return &milestone.DeliverResult{Tags: projectTags(msg.ProjectID, p)}, nil
	}

	final := p.MilestonesReached == p.Milestones
	if amount.IsPositive() {
		if err := h.bank.MoveCoins(db, p.Custody, p.Freelancer, *amount); err != nil {
			return nil, errors.Wrap(err, "cannot pay freelancer")
		}
		payouts.WithLabelValues(payoutKind(final)).Inc()
	}
	if final {
		p.Status = Completed
	}
	// One withdrawal is counted per call, regardless of how many
	// milestones it paid for.
	p.MilestoneFundsWithdrawn++
	if _, err := h.bucket.Put(db, msg.ProjectID, p); err != nil {
		return nil, errors.Wrap(err, "cannot store project")
	}

	milestone.GetLogger(ctx).Info("milestone funds withdrawn",
		"project", msg.ProjectID, "amount", amount, "status", p.Status)
	return &milestone.DeliverResult{Tags: projectTags(msg.ProjectID, p)}, nil
}

// payable returns the amount due to the freelancer or nil when no reached
// milestone is waiting for a payout. When the last milestone is reached the
// whole custody balance is due.
func (h WithdrawHandler) payable(db milestone.ReadOnlyKVStore, p *Project) (*coin.Coin, error) {
	if p.MilestonesReached < p.MilestoneFundsWithdrawn {
		return nil, errors.Wrap(errors.ErrOverflow, "more withdrawals than reached milestones")
	}
	pending := int64(p.MilestonesReached - p.MilestoneFundsWithdrawn)
	if pending == 0 {
		return nil, nil
	}

	if p.MilestonesReached == p.Milestones {
		balance, err := custodyBalance(db, h.bank, p)
		if err != nil {
			return nil, err
		}
		return &balance, nil
	}

	perMilestone, _, err := p.Funds.Divide(int64(p.Milestones))
	if err != nil {
		return nil, errors.Wrap(err, "amount per milestone")
	}
	amount, err := perMilestone.Multiply(pending)
	if err != nil {
		return nil, errors.Wrap(err, "payable amount")
	}
	return &amount, nil
}

func (h WithdrawHandler) validate(ctx milestone.Context, db milestone.KVStore, tx milestone.Tx) (*WithdrawMsg, *Project, error) {
	var msg WithdrawMsg
	if err := milestone.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	p, err := loadProject(db, h.bucket, msg.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, p.Freelancer) {
		return nil, nil, ErrFreelancerOnly
	}
	if p.Status == Completed {
		return nil, nil, errors.Wrap(ErrInvalidStatus, "project completed")
	}
	return &msg, p, nil
}

// CancelProjectHandler returns the custody balance to the client and
// deletes the project.
type CancelProjectHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	bank   cash.Controller
}

var _ milestone.Handler = CancelProjectHandler{}

func (h CancelProjectHandler) Check(ctx milestone.Context, db milestone.KVStore, tx milestone.Tx) (*milestone.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &milestone.CheckResult{GasAllocated: cancelProjectCost}, nil
}

func (h CancelProjectHandler) Deliver(ctx milestone.Context, db milestone.KVStore, tx milestone.Tx) (*milestone.DeliverResult, error) {
	msg, p, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	refund, err := custodyBalance(db, h.bank, p)
	if err != nil {
		return nil, err
	}
	if refund.IsPositive() {
		if err := h.bank.MoveCoins(db, p.Custody, p.Client, refund); err != nil {
			return nil, errors.Wrap(err, "cannot refund client")
		}
		payouts.WithLabelValues("refund").Inc()
	}
	if err := h.bucket.Delete(db, msg.ProjectID); err != nil {
		return nil, errors.Wrap(err, "cannot delete project")
	}

	milestone.GetLogger(ctx).Info("project cancelled",
		"project", msg.ProjectID, "refund", refund)
	return &milestone.DeliverResult{
		Tags: []common.KVPair{milestone.Tag(tagProject, msg.ProjectID)},
	}, nil
}

func (h CancelProjectHandler) validate(ctx milestone.Context, db milestone.KVStore, tx milestone.Tx) (*CancelProjectMsg, *Project, error) {
	var msg CancelProjectMsg
	if err := milestone.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	p, err := loadProject(db, h.bucket, msg.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, p.Client) {
		return nil, nil, ErrClientOnly
	}
	if p.Status != Pending && p.Status != Cancelled {
		return nil, nil, errors.Wrapf(ErrInvalidStatus, "cannot cancel %s project", p.Status)
	}
	return &msg, p, nil
}
