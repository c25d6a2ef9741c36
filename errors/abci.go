package errors

import "fmt"

const (
	// SuccessABCICode is the code of a response without an error.
	SuccessABCICode = 0

	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo returns the code and log of an ABCI response for err.
//
// An error that does not wrap a root error gets code 1. Outside of debug
// mode its message is hidden, and so is the message of a recovered panic.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if errIsNil(err) {
		return SuccessABCICode, ""
	}
	code := abciCode(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalABCICode:
		return code, internalABCILog
	case code == ErrPanic.code:
		return code, ErrPanic.desc
	}
	return code, err.Error()
}

type coder interface {
	ABCICode() uint32
}

func abciCode(err error) uint32 {
	for err != nil {
		if c, ok := err.(coder); ok {
			return c.ABCICode()
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return internalABCICode
}
