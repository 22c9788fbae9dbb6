package orm

import "github.com/iov-one/tescrow"

// Model is a value kept in a bucket.
type Model interface {
	tescrow.Persistent
	Validate() error
}

// Object is a model together with its primary key.
type Object interface {
	Keyed
	Cloneable
	Validate() error
	Value() Model
}

type Keyed interface {
	Key() []byte
	SetKey([]byte)
}

// Cloneable returns an empty object of the same model type, ready to
// unmarshal into.
type Cloneable interface {
	Clone() Object
}
