package x

import (
	"github.com/iov-one/milestone"
)

// Authenticator reports which conditions were fulfilled by the transaction
// processed in the given context. Handlers receive one in their constructor
// so that signatures and multisig approvals are checked the same way.
type Authenticator interface {
	GetConditions(milestone.Context) []milestone.Condition
	HasAddress(milestone.Context, milestone.Address) bool
}

// MultiAuth joins several authenticators.
type MultiAuth []Authenticator

var _ Authenticator = MultiAuth(nil)

func ChainAuth(auths ...Authenticator) MultiAuth {
	return MultiAuth(auths)
}

// GetConditions returns conditions of all authenticators in order. A
// condition reported by more than one of them is returned once.
func (m MultiAuth) GetConditions(ctx milestone.Context) []milestone.Condition {
	var all []milestone.Condition
	for _, a := range m {
		for _, c := range a.GetConditions(ctx) {
			if indexOf(all, c) < 0 {
				all = append(all, c)
			}
		}
	}
	return all
}

func (m MultiAuth) HasAddress(ctx milestone.Context, addr milestone.Address) bool {
	for _, a := range m {
		if a.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// GetAddresses returns the addresses of all fulfilled conditions.
func GetAddresses(ctx milestone.Context, auth Authenticator) []milestone.Address {
	conds := auth.GetConditions(ctx)
	addrs := make([]milestone.Address, 0, len(conds))
	for _, c := range conds {
		addrs = append(addrs, c.Address())
	}
	return addrs
}

// MainSigner returns the first fulfilled condition or nil.
func MainSigner(ctx milestone.Context, auth Authenticator) milestone.Condition {
	if conds := auth.GetConditions(ctx); len(conds) > 0 {
		return conds[0]
	}
	return nil
}

// MainSignerIndex returns the position of the main signer address in addrs
// or -1.
func MainSignerIndex(ctx milestone.Context, auth Authenticator, addrs []milestone.Address) int {
	signer := MainSigner(ctx, auth)
	if signer == nil {
		return -1
	}
	want := signer.Address()
	for i, a := range addrs {
		if want.Equals(a) {
			return i
		}
	}
	return -1
}

// HasAllAddresses is true when every address belongs to a fulfilled
// condition.
func HasAllAddresses(ctx milestone.Context, auth Authenticator, addrs []milestone.Address) bool {
	for _, a := range addrs {
		if !auth.HasAddress(ctx, a) {
			return false
		}
	}
	return true
}

// HasNConditions is true when at least n of the requested conditions are
// fulfilled.
func HasNConditions(ctx milestone.Context, auth Authenticator, requested []milestone.Condition, n int) bool {
	got := auth.GetConditions(ctx)
	for _, c := range requested {
		if n <= 0 {
			break
		}
		if indexOf(got, c) >= 0 {
			n--
		}
	}
	return n <= 0
}

func indexOf(conds []milestone.Condition, c milestone.Condition) int {
	for i, have := range conds {
		if have.Equals(c) {
			return i
		}
	}
	return -1
}
