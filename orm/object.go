package orm

import (
	"reflect"

	"github.com/iov-one/tescrow/errors"
)

// SimpleObj is the Object implementation used by every bucket.
type SimpleObj struct {
	key   []byte
	value Model
}

var _ Object = (*SimpleObj)(nil)

// NewSimpleObj pairs key and value. The value must be a pointer to a
// struct so that Clone can allocate a new one.
func NewSimpleObj(key []byte, value Model) *SimpleObj {
	return &SimpleObj{key: key, value: value}
}

func (o SimpleObj) Key() []byte        { return o.key }
func (o SimpleObj) Value() Model       { return o.value }
func (o *SimpleObj) SetKey(key []byte) { o.key = key }

// Validate requires a key and a value and validates the value.
func (o SimpleObj) Validate() error {
	switch {
	case len(o.key) == 0:
		return errors.Wrap(errors.ErrEmpty, "key")
	case o.value == nil:
		return errors.Wrap(errors.ErrEmpty, "value")
	}
	return o.value.Validate()
}

// Clone returns an object with a copy of the key and a zero value of the
// same type.
func (o *SimpleObj) Clone() Object {
	zero := reflect.New(reflect.TypeOf(o.value).Elem()).Interface().(Model)
	var key []byte
	if len(o.key) > 0 {
		key = append(key, o.key...)
	}
	return &SimpleObj{key: key, value: zero}
}
