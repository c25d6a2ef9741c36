package project

import (
	"github.com/iov-one/milestone/errors"
)

// ABCI Response Codes
// project takes 1040-1049
var (
	ErrInvalidStatus     = errors.Register(1040, "invalid project status")
	ErrClientOnly        = errors.Register(1041, "only client can call this function")
	ErrFreelancerOnly    = errors.Register(1042, "only freelancer can call this function")
	ErrMilestoneOverflow = errors.Register(1043, "all milestones already reached")
)
