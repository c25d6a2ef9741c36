package milestone

import (
	"reflect"

	"github.com/iov-one/milestone/errors"
)

// Marshaller serializes itself to the binary form.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent is a Marshaller that can also be loaded back. Unmarshal needs
// a pointer receiver, so values usually implement only Marshaller.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Msg requests a single state transition.
type Msg interface {
	Persistent

	// Path routes the message to its handler.
	Path() string

	// Validate checks everything that can be checked without the state.
	Validate() error
}

// Tx is a message together with everything needed to authenticate it,
// such as signatures. Each application declares its own Tx type.
type Tx interface {
	Persistent
	GetMsg() (Msg, error)
}

// TxDecoder parses a raw transaction.
type TxDecoder func(txBytes []byte) (Tx, error)

// GetPath returns the path of the transaction message. "(missing)" is
// returned when the message cannot be read.
func GetPath(tx Tx) string {
	if msg, err := tx.GetMsg(); err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg copies the message of tx into dst and validates it. dst must be a
// pointer to the concrete message type.
func LoadMsg(tx Tx, dst interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "transaction message")
	}
	out := reflect.ValueOf(dst)
	if out.Kind() != reflect.Ptr || out.IsNil() {
		return errors.Wrapf(errors.ErrHuman, "destination %T is not a pointer", dst)
	}

	in := reflect.ValueOf(msg)
	if in.Kind() == reflect.Ptr {
		in = in.Elem()
	}
	if !in.IsValid() {
		return errors.Wrap(errors.ErrInput, "transaction without message")
	}
	if !in.Type().AssignableTo(out.Elem().Type()) {
		return errors.Wrapf(errors.ErrType, "%T message cannot be loaded into %T", msg, dst)
	}
	out.Elem().Set(in)

	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "message")
	}
	return nil
}
