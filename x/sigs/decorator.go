/*
Package sigs verifies transaction signatures and keeps a sequence per signer
for replay protection.
*/
package sigs

import (
	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/errors"
)

// signatureVerifyCost is the gas charged by CheckTx per valid signature.
const signatureVerifyCost = 500

// RegisterQuery exposes the signer accounts under "/auth".
func RegisterQuery(qr milestone.QueryRouter) {
	NewBucket().Register("auth", qr)
}

// Decorator authenticates the signers of a transaction. Handlers further
// down the stack learn about them through Authenticate.
type Decorator struct {
	allowMissingSigs bool
}

var _ milestone.Decorator = Decorator{}

// NewDecorator returns a decorator that rejects unsigned transactions.
func NewDecorator() Decorator {
	return Decorator{}
}

// AllowMissingSigs lets unsigned transactions through.
func (d Decorator) AllowMissingSigs() Decorator {
	d.allowMissingSigs = true
	return d
}

func (d Decorator) Check(ctx milestone.Context, db milestone.KVStore, tx milestone.Tx, next milestone.Checker) (*milestone.CheckResult, error) {
	ctx, n, err := d.verify(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res, err := next.Check(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.GasAllocated += int64(n) * signatureVerifyCost
	return res, nil
}

func (d Decorator) Deliver(ctx milestone.Context, db milestone.KVStore, tx milestone.Tx, next milestone.Deliverer) (*milestone.DeliverResult, error) {
	ctx, _, err := d.verify(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, db, tx)
}

// verify returns a context carrying the signer conditions and their count.
func (d Decorator) verify(ctx milestone.Context, db milestone.KVStore, tx milestone.Tx) (milestone.Context, int, error) {
	stx, ok := tx.(SignedTx)
	if !ok {
		return ctx, 0, nil
	}
	signers, err := VerifyTxSignatures(db, stx, milestone.GetChainID(ctx))
	if err != nil {
		return nil, 0, errors.Wrap(err, "verify signatures")
	}
	if len(signers) == 0 && !d.allowMissingSigs {
		return nil, 0, errors.Wrap(errors.ErrUnauthorized, "transaction not signed")
	}
	return withSigners(ctx, signers), len(signers), nil
}
