package weavetest

import "github.com/iov-one/milestone"

// Tx carries a single message. When Err is set, GetMsg fails with it.
// Tx cannot be serialized.
type Tx struct {
	Msg milestone.Msg
	Err error
}

var _ milestone.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (milestone.Msg, error) { return tx.Msg, tx.Err }
func (tx *Tx) Marshal() ([]byte, error)       { panic("weavetest.Tx cannot be serialized") }
func (tx *Tx) Unmarshal([]byte) error         { panic("weavetest.Tx cannot be serialized") }

// Msg is routed to RoutePath. Its serialized form is kept as is in
// Serialized and every method returns Err.
type Msg struct {
	RoutePath  string
	Serialized []byte
	Err        error
}

var _ milestone.Msg = (*Msg)(nil)

func (m *Msg) Path() string             { return m.RoutePath }
func (m *Msg) Validate() error          { return m.Err }
func (m *Msg) Marshal() ([]byte, error) { return m.Serialized, m.Err }

func (m *Msg) Unmarshal(raw []byte) error {
	m.Serialized = raw
	return m.Err
}
