package weavetest

import "github.com/iov-one/tescrow"

// Tx carries a single message. Err, when set, is returned by GetMsg.
type Tx struct {
	Msg tescrow.Msg
	Err error
}

var _ tescrow.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (tescrow.Msg, error) { return tx.Msg, tx.Err }

// Marshal and Unmarshal are not supported; a Tx never goes over the wire.
func (tx *Tx) Marshal() ([]byte, error) { panic("weavetest.Tx is not serializable") }
func (tx *Tx) Unmarshal([]byte) error   { panic("weavetest.Tx is not serializable") }

// Msg is routed by RoutePath and serializes to the Serialized bytes. Err,
// when set, is returned by every method that can fail.
type Msg struct {
	RoutePath  string
	Serialized []byte
	Err        error
}

var _ tescrow.Msg = (*Msg)(nil)

func (m *Msg) Path() string             { return m.RoutePath }
func (m *Msg) Validate() error          { return m.Err }
func (m *Msg) Marshal() ([]byte, error) { return m.Serialized, m.Err }

func (m *Msg) Unmarshal(raw []byte) error {
	m.Serialized = raw
	return m.Err
}
