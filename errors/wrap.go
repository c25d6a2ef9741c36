package errors

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

type causer interface {
	Cause() error
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// Wrap adds a description to err. Wrapping nil returns nil, so the result of
// a call can be wrapped without checking it first.
//
// The first wrap in a chain records the stack trace. Print it with %+v.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	if !hasStack(err) {
		err = errors.WithStack(err)
	}
	return &wrapped{msg: description, parent: err}
}

// Wrapf is Wrap with a formatted description.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Recover turns a panic into an ErrPanic assigned to err. It must be
// deferred.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

type wrapped struct {
	msg    string
	parent error
}

func (w *wrapped) Error() string {
	return w.msg + ": " + w.parent.Error()
}

func (w *wrapped) Cause() error {
	return w.parent
}

func (w *wrapped) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%s: %+v", w.msg, w.parent)
		return
	}
	_, _ = io.WriteString(s, w.Error())
}

func hasStack(err error) bool {
	for err != nil {
		if _, ok := err.(stackTracer); ok {
			return true
		}
		c, ok := err.(causer)
		if !ok {
			return false
		}
		err = c.Cause()
	}
	return false
}
