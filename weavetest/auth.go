package weavetest

import (
	"context"
	"fmt"

	"github.com/iov-one/milestone"
)

// Auth is an x.Authenticator mock that authenticates a fixed set of
// conditions. Signer, when set, is reported after all Signers.
type Auth struct {
	Signer  milestone.Condition
	Signers []milestone.Condition
}

func (a *Auth) GetConditions(milestone.Context) []milestone.Condition {
	if a.Signer == nil {
		return a.Signers
	}
	conds := make([]milestone.Condition, 0, len(a.Signers)+1)
	conds = append(conds, a.Signers...)
	return append(conds, a.Signer)
}

func (a *Auth) HasAddress(ctx milestone.Context, addr milestone.Address) bool {
	return containsAddress(a.GetConditions(ctx), addr)
}

// CtxAuth is an x.Authenticator mock that reads conditions stored in the
// context under Key.
type CtxAuth struct {
	Key string
}

// SetConditions returns a context authenticating given conditions.
func (a *CtxAuth) SetConditions(ctx milestone.Context, conds ...milestone.Condition) milestone.Context {
	return context.WithValue(ctx, a.Key, conds)
}

func (a *CtxAuth) GetConditions(ctx milestone.Context) []milestone.Condition {
	switch v := ctx.Value(a.Key).(type) {
	case nil:
		return nil
	case []milestone.Condition:
		return v
	default:
		panic(fmt.Sprintf("context value %q is %T", a.Key, v))
	}
}

func (a *CtxAuth) HasAddress(ctx milestone.Context, addr milestone.Address) bool {
	return containsAddress(a.GetConditions(ctx), addr)
}

func containsAddress(conds []milestone.Condition, addr milestone.Address) bool {
	for _, c := range conds {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
