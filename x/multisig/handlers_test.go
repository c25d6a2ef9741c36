package multisig

import (
	"context"
	"testing"

	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/errors"
	"github.com/iov-one/milestone/store"
	"github.com/iov-one/milestone/weavetest"
	"github.com/iov-one/milestone/weavetest/assert"
)

func TestCreateTransaction(t *testing.T) {
	a := weavetest.NewCondition()
	b := weavetest.NewCondition()
	c := weavetest.NewCondition()
	stranger := weavetest.NewCondition()

	projectID := weavetest.SequenceID(7)
	otherProjectID := weavetest.SequenceID(8)

	cases := map[string]struct {
		signer         milestone.Condition
		msg            milestone.Msg
		wantCheckErr   *errors.Error
		wantDeliverErr *errors.Error
		wantApprovals  []bool
	}{
		"owner creates a transaction": {
			signer: b,
			msg: &CreateTransactionMsg{
				ProjectID: projectID,
				Action:    mustEncode(&testAction{Project: projectID, Key: "start"}),
			},
			wantApprovals: []bool{false, true, false},
		},
		"not an owner": {
			signer: stranger,
			msg: &CreateTransactionMsg{
				ProjectID: projectID,
				Action:    mustEncode(&testAction{Project: projectID, Key: "start"}),
			},
			wantCheckErr:   ErrInvalidOwner,
			wantDeliverErr: ErrInvalidOwner,
		},
		"action bound to another project": {
			signer: a,
			msg: &CreateTransactionMsg{
				ProjectID: projectID,
				Action:    mustEncode(&testAction{Project: otherProjectID, Key: "start"}),
			},
			wantCheckErr:   errors.ErrInput,
			wantDeliverErr: errors.ErrInput,
		},
		"action cannot be decoded": {
			signer: a,
			msg: &CreateTransactionMsg{
				ProjectID: projectID,
				Action:    []byte("not an action"),
			},
			wantCheckErr:   errors.ErrInput,
			wantDeliverErr: errors.ErrInput,
		},
		"invalid action": {
			signer: a,
			msg: &CreateTransactionMsg{
				ProjectID: projectID,
				Action:    mustEncode(&testAction{Project: projectID}),
			},
			wantCheckErr:   errors.ErrMsg,
			wantDeliverErr: errors.ErrMsg,
		},
		"unknown project": {
			signer: a,
			msg: &CreateTransactionMsg{
				ProjectID: otherProjectID,
				Action:    mustEncode(&testAction{Project: otherProjectID, Key: "start"}),
			},
			wantCheckErr:   errors.ErrNotFound,
			wantDeliverErr: errors.ErrNotFound,
		},
		"missing action": {
			signer:         a,
			msg:            &CreateTransactionMsg{ProjectID: projectID},
			wantCheckErr:   errors.ErrMsg,
			wantDeliverErr: errors.ErrMsg,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			contracts := NewContractBucket()
			owners := []milestone.Address{a.Address(), b.Address(), c.Address()}
			_, err := contracts.InitOwnerSet(db, projectID, owners, 2)
			assert.Nil(t, err)

			auth := &weavetest.Auth{Signer: tc.signer}
			rt := newTestRouter()
			RegisterRoutes(rt, auth, decodeTestAction, (&recordingExecutor{}).Execute)
			tx := &weavetest.Tx{Msg: tc.msg}

			cache := db.CacheWrap()
			if _, err := rt.Check(context.Background(), cache, tx); !tc.wantCheckErr.Is(err) {
				t.Fatalf("unexpected check error: %+v", err)
			}
			cache.Discard()
			res, err := rt.Deliver(context.Background(), db, tx)
			if !tc.wantDeliverErr.Is(err) {
				t.Fatalf("unexpected deliver error: %+v", err)
			}
			if tc.wantDeliverErr != nil {
				return
			}

			var stored Transaction
			assert.Nil(t, NewTransactionBucket().One(db, res.Data, &stored))
			assert.Equal(t, tc.wantApprovals, stored.Approvals)
			assert.Equal(t, false, stored.Executed)
			assert.Equal(t, int64(0), stored.Sequence)
			assert.Equal(t, tc.signer.Address(), stored.Proposer)
			assert.Equal(t, projectID, stored.ContractID)
		})
	}
}

func TestApproveExecutesOnce(t *testing.T) {
	a := weavetest.NewCondition()
	b := weavetest.NewCondition()
	c := weavetest.NewCondition()
	stranger := weavetest.NewCondition()
	projectID := weavetest.SequenceID(1)

	db := store.MemStore()
	owners := []milestone.Address{a.Address(), b.Address(), c.Address()}
	_, err := NewContractBucket().InitOwnerSet(db, projectID, owners, 2)
	assert.Nil(t, err)

	auth := &weavetest.CtxAuth{Key: "auth"}
	exec := &recordingExecutor{}
	rt := newTestRouter()
	RegisterRoutes(rt, auth, decodeTestAction, exec.Execute)

	run := func(signer milestone.Condition, msg milestone.Msg) (*milestone.DeliverResult, error) {
		ctx := auth.SetConditions(context.Background(), signer)
		return rt.Deliver(ctx, db, &weavetest.Tx{Msg: msg})
	}
	approvals := func(id []byte) []bool {
		var tx Transaction
		assert.Nil(t, NewTransactionBucket().One(db, id, &tx))
		return tx.Approvals
	}

	res, err := run(a, &CreateTransactionMsg{
		ProjectID: projectID,
		Action:    mustEncode(&testAction{Project: projectID, Key: "started"}),
	})
	assert.Nil(t, err)
	txID := res.Data
	approve := &ApproveMsg{TransactionID: txID}

	// Non owner cannot approve and the bitmap does not change.
	_, err = run(stranger, approve)
	assert.IsErr(t, ErrInvalidOwner, err)
	assert.Equal(t, []bool{true, false, false}, approvals(txID))

	// Approving again by the proposer is not counted twice.
	_, err = run(a, approve)
	assert.Nil(t, err)
	assert.Equal(t, []bool{true, false, false}, approvals(txID))
	assert.Equal(t, 0, exec.calls)

	// Second owner reaches the threshold.
	_, err = run(b, approve)
	assert.Nil(t, err)
	assert.Equal(t, 1, exec.calls)
	assert.Equal(t, []bool{true, true, false}, approvals(txID))
	val, err := db.Get([]byte("started"))
	assert.Nil(t, err)
	assert.Equal(t, projectID, val)

	var stored Transaction
	assert.Nil(t, NewTransactionBucket().One(db, txID, &stored))
	assert.Equal(t, true, stored.Executed)

	// Any further approval is rejected.
	_, err = run(c, approve)
	assert.IsErr(t, ErrAlreadyExecuted, err)
	_, err = run(a, approve)
	assert.IsErr(t, ErrAlreadyExecuted, err)
	assert.Equal(t, 1, exec.calls)
}

func TestApproveFailedExecution(t *testing.T) {
	a := weavetest.NewCondition()
	b := weavetest.NewCondition()
	projectID := weavetest.SequenceID(3)

	db := store.MemStore()
	owners := []milestone.Address{a.Address(), b.Address()}
	_, err := NewContractBucket().InitOwnerSet(db, projectID, owners, 2)
	assert.Nil(t, err)

	auth := &weavetest.CtxAuth{Key: "auth"}
	exec := &recordingExecutor{}
	rt := newTestRouter()
	RegisterRoutes(rt, auth, decodeTestAction, exec.Execute)

	ctx := auth.SetConditions(context.Background(), a)
	res, err := rt.Deliver(ctx, db, &weavetest.Tx{Msg: &CreateTransactionMsg{
		ProjectID: projectID,
		Action:    mustEncode(&testAction{Project: projectID, Key: "partial", Fail: true}),
	}})
	assert.Nil(t, err)

	ctx = auth.SetConditions(context.Background(), b)
	_, err = rt.Deliver(ctx, db, &weavetest.Tx{Msg: &ApproveMsg{TransactionID: res.Data}})
	assert.IsErr(t, errors.ErrState, err)
	assert.Equal(t, 1, exec.calls)

	// Changes made by the failed action are discarded.
	val, err := db.Get([]byte("partial"))
	assert.Nil(t, err)
	assert.Nil(t, val)

	var stored Transaction
	assert.Nil(t, NewTransactionBucket().One(db, res.Data, &stored))
	assert.Equal(t, false, stored.Executed)
	assert.Equal(t, []bool{true, false}, stored.Approvals)
}

func TestApproveStaleTransaction(t *testing.T) {
	a := weavetest.NewCondition()
	b := weavetest.NewCondition()
	projectID := weavetest.SequenceID(5)

	db := store.MemStore()
	contracts := NewContractBucket()
	owners := []milestone.Address{a.Address(), b.Address()}
	contract, err := contracts.InitOwnerSet(db, projectID, owners, 2)
	assert.Nil(t, err)

	auth := &weavetest.CtxAuth{Key: "auth"}
	exec := &recordingExecutor{}
	rt := newTestRouter()
	RegisterRoutes(rt, auth, decodeTestAction, exec.Execute)

	ctx := auth.SetConditions(context.Background(), a)
	res, err := rt.Deliver(ctx, db, &weavetest.Tx{Msg: &CreateTransactionMsg{
		ProjectID: projectID,
		Action:    mustEncode(&testAction{Project: projectID, Key: "stale"}),
	}})
	assert.Nil(t, err)

	contract.Sequence++
	_, err = contracts.Put(db, projectID, contract)
	assert.Nil(t, err)

	ctx = auth.SetConditions(context.Background(), b)
	_, err = rt.Deliver(ctx, db, &weavetest.Tx{Msg: &ApproveMsg{TransactionID: res.Data}})
	assert.IsErr(t, ErrStaleProposal, err)
	assert.Equal(t, 0, exec.calls)
}

func TestApproveUnknownTransaction(t *testing.T) {
	db := store.MemStore()
	rt := newTestRouter()
	RegisterRoutes(rt, &weavetest.Auth{Signer: weavetest.NewCondition()}, decodeTestAction, (&recordingExecutor{}).Execute)

	_, err := rt.Deliver(context.Background(), db, &weavetest.Tx{Msg: &ApproveMsg{TransactionID: weavetest.SequenceID(99)}})
	assert.IsErr(t, errors.ErrNotFound, err)
}

// testRouter dispatches messages by path.
type testRouter map[string]milestone.Handler

var _ milestone.Registry = testRouter{}

func newTestRouter() testRouter {
	return make(testRouter)
}

func (r testRouter) Handle(path string, h milestone.Handler) {
	r[path] = h
}

func (r testRouter) Check(ctx milestone.Context, db milestone.KVStore, tx milestone.Tx) (*milestone.CheckResult, error) {
	return r[milestone.GetPath(tx)].Check(ctx, db, tx)
}

func (r testRouter) Deliver(ctx milestone.Context, db milestone.KVStore, tx milestone.Tx) (*milestone.DeliverResult, error) {
	return r[milestone.GetPath(tx)].Deliver(ctx, db, tx)
}
