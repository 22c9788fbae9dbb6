package orm

import (
	"github.com/iov-one/tescrow/errors"
	amino "github.com/tendermint/go-amino"
)

// cdc serializes plain Go structures stored in buckets. Models use it from
// their Marshal and Unmarshal methods so they do not need generated code.
var cdc = amino.NewCodec()

// MarshalAmino serializes a model value.
func MarshalAmino(v interface{}) ([]byte, error) {
	bz, err := cdc.MarshalBinaryBare(v)
	if err != nil {
		return nil, errors.Wrap(errors.ErrModel, err.Error())
	}
	return bz, nil
}

// UnmarshalAmino loads data serialized with MarshalAmino into dest, which
// must be a pointer.
func UnmarshalAmino(raw []byte, dest interface{}) error {
	if err := cdc.UnmarshalBinaryBare(raw, dest); err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	return nil
}
