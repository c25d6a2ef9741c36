package project

import (
	"context"
	"testing"

	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/coin"
	"github.com/iov-one/milestone/errors"
	"github.com/iov-one/milestone/gconf"
	"github.com/iov-one/milestone/store"
	"github.com/iov-one/milestone/weavetest"
	"github.com/iov-one/milestone/x/cash"
	"github.com/iov-one/milestone/x/multisig"
)

const testTicker = "IOV"

// testEnv wires project, multisig and cash handlers the same way the
// application does.
type testEnv struct {
	db     milestone.CacheableKVStore
	auth   *weavetest.CtxAuth
	router testRouter
	bank   cash.BaseController
	admin  milestone.Condition
}

func newTestEnv(t testing.TB) *testEnv {
	t.Helper()

	env := &testEnv{
		db:     store.MemStore(),
		auth:   &weavetest.CtxAuth{Key: "auth"},
		router: make(testRouter),
		bank:   cash.NewController(),
		admin:  weavetest.NewCondition(),
	}

	privileged := make(testRouter)
	RegisterPrivilegedRoutes(privileged)

	cash.RegisterRoutes(env.router, env.auth, env.bank)
	RegisterRoutes(env.router, env.auth, env.bank)
	multisig.RegisterRoutes(env.router, env.auth, DecodeAction, multisig.HandlerAsExecutor(privileged))

	conf := &Configuration{
		Owner:         env.admin.Address(),
		MaxMilestones: 10,
		Ticker:        testTicker,
	}
	if err := gconf.Save(env.db, confPkg, conf); err != nil {
		t.Fatalf("cannot save configuration: %s", err)
	}
	return env
}

func (e *testEnv) fund(t testing.TB, who milestone.Condition, amount int64) {
	t.Helper()
	if err := e.bank.IssueCoins(e.db, who.Address(), coin.NewCoin(amount, testTicker)); err != nil {
		t.Fatalf("cannot issue coins: %s", err)
	}
}

// signedContext returns a context authenticated by the signer. A nil signer
// results in an unauthenticated context.
func (e *testEnv) signedContext(signer milestone.Condition) milestone.Context {
	if signer == nil {
		return e.auth.SetConditions(context.Background())
	}
	return e.auth.SetConditions(context.Background(), signer)
}

func (e *testEnv) check(signer milestone.Condition, msg milestone.Msg) error {
	ctx := e.signedContext(signer)
	cache := e.db.CacheWrap()
	defer cache.Discard()
	_, err := e.router.Check(ctx, cache, &weavetest.Tx{Msg: msg})
	return err
}

func (e *testEnv) deliver(signer milestone.Condition, msg milestone.Msg) (*milestone.DeliverResult, error) {
	ctx := e.signedContext(signer)
	// Each transaction is atomic, as it is in the application.
	cache := e.db.CacheWrap()
	res, err := e.router.Deliver(ctx, cache, &weavetest.Tx{Msg: msg})
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, err
	}
	return res, nil
}

// propose creates a multisig transaction for the action and returns its ID.
func (e *testEnv) propose(t testing.TB, proposer milestone.Condition, action multisig.Action) []byte {
	t.Helper()
	raw, err := EncodeAction(action)
	if err != nil {
		t.Fatalf("cannot encode action: %s", err)
	}
	res, err := e.deliver(proposer, &multisig.CreateTransactionMsg{
		ProjectID: action.GetProjectID(),
		Action:    raw,
	})
	if err != nil {
		t.Fatalf("cannot create transaction: %+v", err)
	}
	return res.Data
}

func (e *testEnv) approve(approver milestone.Condition, txID []byte) error {
	_, err := e.deliver(approver, &multisig.ApproveMsg{TransactionID: txID})
	return err
}

// execute proposes an action and approves it with a second owner.
func (e *testEnv) execute(t testing.TB, proposer, approver milestone.Condition, action multisig.Action) error {
	t.Helper()
	return e.approve(approver, e.propose(t, proposer, action))
}

// initialize creates a project funded by the client and returns its ID.
func (e *testEnv) initialize(t testing.TB, client, freelancer, observer milestone.Condition, funds int64, milestones uint32) []byte {
	t.Helper()
	res, err := e.deliver(client, &InitializeProjectMsg{
		Freelancer: freelancer.Address(),
		Observer:   observer.Address(),
		Funds:      coin.NewCoinp(funds, testTicker),
		Milestones: milestones,
	})
	if err != nil {
		t.Fatalf("cannot initialize project: %+v", err)
	}
	return res.Data
}

func (e *testEnv) project(t testing.TB, id []byte) *Project {
	t.Helper()
	var p Project
	if err := NewBucket().One(e.db, id, &p); err != nil {
		t.Fatalf("cannot load project: %+v", err)
	}
	return &p
}

func (e *testEnv) balance(t testing.TB, addr milestone.Address) int64 {
	t.Helper()
	coins, err := e.bank.Balance(e.db, addr)
	if err != nil {
		t.Fatalf("cannot get balance: %+v", err)
	}
	return coins.Balance(testTicker).Amount
}

// testRouter dispatches messages by path.
type testRouter map[string]milestone.Handler

var _ milestone.Registry = testRouter{}

func (r testRouter) Handle(path string, h milestone.Handler) {
	r[path] = h
}

func (r testRouter) handler(tx milestone.Tx) (milestone.Handler, error) {
	path := milestone.GetPath(tx)
	h, ok := r[path]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "no handler for %q", path)
	}
	return h, nil
}

func (r testRouter) Check(ctx milestone.Context, db milestone.KVStore, tx milestone.Tx) (*milestone.CheckResult, error) {
	h, err := r.handler(tx)
	if err != nil {
		return nil, err
	}
	return h.Check(ctx, db, tx)
}

func (r testRouter) Deliver(ctx milestone.Context, db milestone.KVStore, tx milestone.Tx) (*milestone.DeliverResult, error) {
	h, err := r.handler(tx)
	if err != nil {
		return nil, err
	}
	return h.Deliver(ctx, db, tx)
}
