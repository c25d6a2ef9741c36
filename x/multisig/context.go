package multisig

import (
	"context"

	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/x"
)

type contextKey int // local to the multisig module

const (
	contextKeyAuthority contextKey = iota
)

// AuthorityCondition returns the condition that authorizes privileged
// actions of the project with given ID.
func AuthorityCondition(projectID []byte) milestone.Condition {
	return milestone.NewCondition("multisig", "project", projectID)
}

// withAuthority is a private method, as only an executed transaction
// can grant the project authority
func withAuthority(ctx milestone.Context, projectID []byte) milestone.Context {
	val, _ := ctx.Value(contextKeyAuthority).([]milestone.Condition)
	return context.WithValue(ctx, contextKeyAuthority, append(val, AuthorityCondition(projectID)))
}

// Authenticate gives access to the project authorities granted by an
// executed transaction.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns permissions previously set on this context
func (a Authenticate) GetConditions(ctx milestone.Context) []milestone.Condition {
	// (val, ok) form to return nil instead of panic if unset
	val, _ := ctx.Value(contextKeyAuthority).([]milestone.Condition)
	return val
}

// HasAddress returns true iff this address is in GetConditions
func (a Authenticate) HasAddress(ctx milestone.Context, addr milestone.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
