package tescrow

import (
	"reflect"

	"github.com/iov-one/tescrow/errors"
)

// Msg is a requested state transition. It carries no authentication, the
// signatures live in the enclosing Tx.
type Msg interface {
	Persistent

	// Path routes the message to its handler. It matches
	// [0-9A-Za-z_\-/]+ and is the same for every message of a type.
	Path() string

	// Validate checks the message without reading any state.
	Validate() error
}

// Marshaller can encode itself. It works on values, so read only code can
// take it without a pointer.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent can be encoded and decoded. Unmarshal needs a pointer
// receiver.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Tx is a transaction as sent by a client: one message plus whatever the
// decorators of the application need, such as signatures.
type Tx interface {
	Persistent
	GetMsg() (Msg, error)
}

// GetPath returns the path of the message of tx, or "(missing)".
func GetPath(tx Tx) string {
	if msg, err := tx.GetMsg(); err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// TxDecoder reads a Tx from its wire form.
type TxDecoder func(txBytes []byte) (Tx, error)

// LoadMsg copies the message of tx into dest, a pointer to the concrete
// message type such as *escrow.CreateMsg, and validates it.
func LoadMsg(tx Tx, dest interface{}) error {
	msg, err := tx.GetMsg()
	switch {
	case err != nil:
		return errors.Wrap(err, "cannot get transaction message")
	case msg == nil:
		return errors.Wrap(errors.ErrMsg, "no message")
	}

	ptr := reflect.ValueOf(dest)
	if ptr.Kind() != reflect.Ptr || ptr.IsNil() {
		return errors.Wrap(errors.ErrType, "destination must be a pointer")
	}
	src := reflect.Indirect(reflect.ValueOf(msg))
	if want := ptr.Elem().Type(); src.Type() != want {
		return errors.Wrapf(errors.ErrType, "want %s message, got %T", want, msg)
	}
	ptr.Elem().Set(src)
	return errors.Wrap(msg.Validate(), "invalid message")
}
