package multisig

import (
	"github.com/iov-one/milestone/errors"
)

// ABCI Response Codes
// multisig takes 1030-1039
var (
	ErrInvalidOwnersLen   = errors.Register(1030, "owners length must be non zero")
	ErrUniqueOwners       = errors.Register(1031, "owners must be unique")
	ErrInvalidThreshold   = errors.Register(1032, "invalid threshold")
	ErrAlreadyInitialized = errors.Register(1033, "multisig already initialized")
	ErrInvalidOwner       = errors.Register(1034, "not an owner")
	ErrAlreadyExecuted    = errors.Register(1035, "transaction already executed")
	ErrStaleProposal      = errors.Register(1036, "stale transaction sequence")
)
