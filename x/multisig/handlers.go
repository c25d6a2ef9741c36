package multisig

import (
	"bytes"

	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/errors"
	"github.com/iov-one/milestone/orm"
	"github.com/iov-one/milestone/x"
	"github.com/tendermint/tendermint/libs/common"
)

const (
	createTransactionCost int64 = 100
	approveCost           int64 = 50

	tagProject     = "project"
	tagTransaction = "transaction"
)

// RegisterRoutes will instantiate and register all handlers in this
// package. Approved actions are decoded with decode and run by exec.
func RegisterRoutes(r milestone.Registry, auth x.Authenticator, decode ActionDecoder, exec Executor) {
	contracts := NewContractBucket()
	txs := NewTransactionBucket()
	r.Handle(pathCreateTransactionMsg, CreateTransactionHandler{
		auth:      auth,
		contracts: contracts,
		txs:       txs,
		decode:    decode,
	})
	r.Handle(pathApproveMsg, ApproveHandler{
		auth:      auth,
		contracts: contracts,
		txs:       txs,
		decode:    decode,
		exec:      exec,
	})
}

// RegisterQuery registers owner sets as "/multisigs" and transactions as
// "/transactions", the latter with a "/transactions/project" index.
func RegisterQuery(qr milestone.QueryRouter) {
	NewContractBucket().Register("multisigs", qr)
	NewTransactionBucket().Register("transactions", qr)
}

// CreateTransactionHandler stores a proposal of a privileged action. The
// proposer approves it on creation.
type CreateTransactionHandler struct {
	auth      x.Authenticator
	contracts ContractBucket
	txs       orm.ModelBucket
	decode    ActionDecoder
}

var _ milestone.Handler = CreateTransactionHandler{}

func (h CreateTransactionHandler) Check(ctx milestone.Context, db milestone.KVStore, tx milestone.Tx) (*milestone.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &milestone.CheckResult{GasAllocated: createTransactionCost}, nil
}

func (h CreateTransactionHandler) Deliver(ctx milestone.Context, db milestone.KVStore, tx milestone.Tx) (*milestone.DeliverResult, error) {
	msg, contract, ownerIdx, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	approvals := make([]bool, len(contract.Owners))
	approvals[ownerIdx] = true
	t := &Transaction{
		ContractID: contract.ProjectID,
		ProjectID:  msg.ProjectID,
		Action:     msg.Action,
		Approvals:  approvals,
		Sequence:   contract.Sequence,
		Proposer:   contract.Owners[ownerIdx],
	}
	key, err := h.txs.Put(db, nil, t)
	if err != nil {
		return nil, errors.Wrap(err, "cannot store transaction")
	}
	transactionsCreated.Inc()

	milestone.GetLogger(ctx).Info("multisig transaction created",
		"project", msg.ProjectID, "transaction", key, "proposer", t.Proposer)
	return &milestone.DeliverResult{
		Data: key,
		Tags: []common.KVPair{
			milestone.Tag(tagProject, msg.ProjectID),
			milestone.Tag(tagTransaction, key),
		},
	}, nil
}

func (h CreateTransactionHandler) validate(ctx milestone.Context, db milestone.KVStore, tx milestone.Tx) (*CreateTransactionMsg, *Contract, int, error) {
	var msg CreateTransactionMsg
	if err := milestone.LoadMsg(tx, &msg); err != nil {
		return nil, nil, 0, errors.Wrap(err, "load msg")
	}
	contract, err := h.contracts.GetContract(db, msg.ProjectID)
	if err != nil {
		return nil, nil, 0, err
	}
	ownerIdx := x.MainSignerIndex(ctx, h.auth, contract.Owners)
	if ownerIdx < 0 {
		return nil, nil, 0, errors.Wrap(ErrInvalidOwner, "proposer")
	}
	action, err := h.decode(msg.Action)
	if err != nil {
		return nil, nil, 0, errors.Wrap(err, "action")
	}
	if !bytes.Equal(action.GetProjectID(), msg.ProjectID) {
		return nil, nil, 0, errors.Wrap(errors.ErrInput, "action bound to another project")
	}
	if err := action.Validate(); err != nil {
		return nil, nil, 0, errors.Wrap(err, "action")
	}
	return &msg, contract, ownerIdx, nil
}

// ApproveHandler records an approval and executes the transaction when the
// threshold is reached.
type ApproveHandler struct {
	auth      x.Authenticator
	contracts ContractBucket
	txs       orm.ModelBucket
	decode    ActionDecoder
	exec      Executor
}

var _ milestone.Handler = ApproveHandler{}

func (h ApproveHandler) Check(ctx milestone.Context, db milestone.KVStore, tx milestone.Tx) (*milestone.CheckResult, error) {
	if _, _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &milestone.CheckResult{GasAllocated: approveCost}, nil
}

func (h ApproveHandler) Deliver(ctx milestone.Context, db milestone.KVStore, tx milestone.Tx) (*milestone.DeliverResult, error) {
	msg, contract, t, ownerIdx, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	log := milestone.GetLogger(ctx)

	// Approving twice does not change the count.
	t.Approvals[ownerIdx] = true
	approvalsCounter.Inc()

	tags := []common.KVPair{
		milestone.Tag(tagProject, t.ProjectID),
		milestone.Tag(tagTransaction, msg.TransactionID),
	}

	if t.ApprovalCount() < int(contract.Threshold) {
		if _, err := h.txs.Put(db, msg.TransactionID, t); err != nil {
			return nil, errors.Wrap(err, "cannot store transaction")
		}
		log.Debug("multisig transaction approved",
			"transaction", msg.TransactionID, "approvals", t.ApprovalCount(), "threshold", contract.Threshold)
		return &milestone.DeliverResult{Tags: tags}, nil
	}

	if t.Executed {
		return nil, errors.Wrapf(ErrAlreadyExecuted, "transaction %X", msg.TransactionID)
	}

	action, err := h.decode(t.Action)
	if err != nil {
		return nil, errors.Wrap(err, "action")
	}
	res, err := h.execute(withAuthority(ctx, t.ProjectID), db, action)
	if err != nil {
		return nil, errors.Wrapf(err, "execute %s", action.Path())
	}

	t.Executed = true
	if _, err := h.txs.Put(db, msg.TransactionID, t); err != nil {
		return nil, errors.Wrap(err, "cannot store transaction")
	}
	executionsCounter.WithLabelValues(action.Path()).Inc()
	log.Info("multisig transaction executed",
		"transaction", msg.TransactionID, "project", t.ProjectID, "action", action.Path())

	if res == nil {
		res = &milestone.DeliverResult{}
	}
	res.Tags = append(res.Tags, tags...)
	return res, nil
}

// execute runs the action on a cache wrap so that a failed action leaves
// no changes behind.
func (h ApproveHandler) execute(ctx milestone.Context, db milestone.KVStore, action Action) (*milestone.DeliverResult, error) {
	cstore, ok := db.(milestone.CacheableKVStore)
	if !ok {
		return h.exec(ctx, db, action)
	}
	cache := cstore.CacheWrap()
	res, err := h.exec(ctx, cache, action)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "cannot write action changes")
	}
	return res, nil
}

func (h ApproveHandler) validate(ctx milestone.Context, db milestone.KVStore, tx milestone.Tx) (*ApproveMsg, *Contract, *Transaction, int, error) {
	var msg ApproveMsg
	if err := milestone.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, 0, errors.Wrap(err, "load msg")
	}
	var t Transaction
	if err := h.txs.One(db, msg.TransactionID, &t); err != nil {
		return nil, nil, nil, 0, errors.Wrap(err, "cannot load transaction")
	}
	contract, err := h.contracts.GetContract(db, t.ContractID)
	if err != nil {
		return nil, nil, nil, 0, err
	}
	if !sameProject(contract, &t) || len(t.Approvals) != len(contract.Owners) {
		return nil, nil, nil, 0, errors.Wrap(errors.ErrState, "transaction does not match contract")
	}
	ownerIdx := x.MainSignerIndex(ctx, h.auth, contract.Owners)
	if ownerIdx < 0 {
		return nil, nil, nil, 0, errors.Wrap(ErrInvalidOwner, "approver")
	}
	if t.Sequence != contract.Sequence {
		return nil, nil, nil, 0, errors.Wrapf(ErrStaleProposal, "transaction %d, contract %d", t.Sequence, contract.Sequence)
	}
	return &msg, contract, &t, ownerIdx, nil
}
