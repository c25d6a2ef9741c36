package errors

import (
	"fmt"
	"reflect"
)

// Root errors shared by all packages. Codes below 1000 are reserved for
// this package, extensions register their own codes starting at 1000.
var (
	ErrUnauthorized = Register(2, "unauthorized")
	ErrNotFound     = Register(3, "not found")
	ErrMsg          = Register(4, "invalid message")
	ErrModel        = Register(5, "invalid model")
	ErrDuplicate    = Register(6, "duplicate")
	// ErrHuman signals a programming mistake, never a bad input.
	ErrHuman     = Register(7, "coding error")
	ErrImmutable = Register(8, "cannot be modified")
	ErrEmpty     = Register(9, "value is empty")
	ErrState     = Register(10, "invalid state")
	ErrType      = Register(11, "invalid type")
	ErrAmount    = Register(12, "invalid amount")
	ErrInput     = Register(13, "invalid input")
	ErrOverflow  = Register(14, "an operation cannot be completed due to value overflow")
	ErrCurrency  = Register(15, "currency")
	ErrDatabase  = Register(16, "database")

	// ErrIteratorDone is not a failure. It ends an iteration.
	ErrIteratorDone = Register(17, "iterator is done")

	// ErrPanic wraps a recovered panic. Its message is never returned to
	// the client outside of debug mode.
	ErrPanic = Register(111222, "panic")
)

// registry maps every ABCI code in use to its root error. Code 1 is taken
// by errors that do not wrap any root error.
var registry = map[uint32]*Error{
	internalABCICode: {code: internalABCICode, desc: internalABCILog},
}

// Register declares a new root error. Codes are unique and registering one
// twice panics, so call it only from package level variable declarations.
func Register(code uint32, description string) *Error {
	if prev, ok := registry[code]; ok {
		panic(fmt.Sprintf("error code %d already registered as %q", code, prev.desc))
	}
	e := &Error{code: code, desc: description}
	registry[code] = e
	return e
}

// Error is a root error. Runtime errors wrap one of them to be classified.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string { return e.desc }

func (e Error) ABCICode() uint32 { return e.code }

// Is returns true if err is this root error or wraps it. A nil root
// matches only a nil error.
func (e *Error) Is(err error) bool {
	if e == nil {
		return errIsNil(err)
	}
	for err != nil {
		if err == e {
			return true
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return false
}

// errIsNil handles typed nil pointers stored in an error interface.
func errIsNil(err error) bool {
	if err == nil {
		return true
	}
	v := reflect.ValueOf(err)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
