/*
Package app assembles the milestoned application: the decorator stack, the
message and query routers and the genesis initializers of every extension.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/app"
	"github.com/iov-one/milestone/errors"
	"github.com/iov-one/milestone/orm"
	"github.com/iov-one/milestone/store/iavl"
	"github.com/iov-one/milestone/x"
	"github.com/iov-one/milestone/x/cash"
	"github.com/iov-one/milestone/x/multisig"
	"github.com/iov-one/milestone/x/project"
	"github.com/iov-one/milestone/x/sigs"
	"github.com/iov-one/milestone/x/utils"
)

// Name is reported by the ABCI Info call.
const Name = "milestoned"

// handler returns every message handler behind the decorator stack.
//
// Signature checks run inside the CheckTx savepoint and outside the
// DeliverTx one: a failing message still consumes the signer nonce.
func handler() milestone.Handler {
	auth := x.ChainAuth(sigs.Authenticate{}, multisig.Authenticate{})

	// Project state changes are only reachable through an approved
	// multisig transaction.
	privileged := app.NewRouter()
	project.RegisterPrivilegedRoutes(privileged)

	bank := cash.NewController()
	r := app.NewRouter()
	cash.RegisterRoutes(r, auth, bank)
	sigs.RegisterRoutes(r, auth)
	project.RegisterRoutes(r, auth, bank)
	multisig.RegisterRoutes(r, auth, project.DecodeAction, multisig.HandlerAsExecutor(privileged))

	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewActionTagger(),
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		utils.NewSavepoint().OnDeliver(),
	).WithHandler(r)
}

// queries exposes "/wallets", "/auth", "/multisigs", "/transactions",
// "/projects" and the raw store under "/".
func queries() milestone.QueryRouter {
	qr := milestone.NewQueryRouter()
	qr.RegisterAll(
		cash.RegisterQuery,
		sigs.RegisterQuery,
		multisig.RegisterQuery,
		project.RegisterQuery,
		orm.RegisterQuery,
	)
	return qr
}

// Initializers returns every extension reading the genesis app state.
func Initializers() milestone.Initializer {
	return app.ChainInitializers(
		cash.Initializer{},
		project.Initializer{},
	)
}

// openStore returns an iavl store persisted under dbPath, or an in memory
// one when the path is empty.
func openStore(dbPath string) (milestone.CommitKVStore, error) {
	if dbPath == "" {
		return iavl.MockCommitStore(), nil
	}
	abs, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "database path %q", dbPath)
	}
	// leveldb appends its own ".db" suffix
	abs = strings.TrimSuffix(abs, filepath.Ext(abs))
	return iavl.NewCommitStore(filepath.Dir(abs), filepath.Base(abs)), nil
}

func newApplication(dbPath string, debug bool) (app.BaseApp, error) {
	db, err := openStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	store := app.NewStoreApp(Name, db, queries(), context.Background()).
		WithInit(Initializers())
	return app.NewBaseApp(store, TxDecoder, handler(), debug), nil
}
