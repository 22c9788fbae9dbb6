package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/tescrow"
	"github.com/iov-one/tescrow/errors"
)

// ResultSet is the wire format of every query response. Keys and values
// are returned as two separate sets of the same length. Empty entries are
// kept so both sets stay aligned.
type ResultSet struct {
	Results [][]byte `protobuf:"bytes,1,rep,name=results,proto3"`
}

type resultSetPB ResultSet

func (r *resultSetPB) Reset()         { *r = resultSetPB{} }
func (r *resultSetPB) String() string { return proto.CompactTextString(r) }
func (*resultSetPB) ProtoMessage()    {}

// Marshal encodes every result as a repeated bytes field.
func (r *ResultSet) Marshal() ([]byte, error) {
	return proto.Marshal((*resultSetPB)(r))
}

// Unmarshal decodes a ResultSet created by Marshal.
func (r *ResultSet) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*resultSetPB)(r))
}

// ResultsFromKeys collects the keys of models.
func ResultsFromKeys(models []tescrow.Model) *ResultSet {
	return collectResults(models, func(m tescrow.Model) []byte { return m.Key })
}

// ResultsFromValues collects the values of models.
func ResultsFromValues(models []tescrow.Model) *ResultSet {
	return collectResults(models, func(m tescrow.Model) []byte { return m.Value })
}

func collectResults(models []tescrow.Model, field func(tescrow.Model) []byte) *ResultSet {
	set := &ResultSet{Results: make([][]byte, 0, len(models))}
	for _, m := range models {
		set.Results = append(set.Results, field(m))
	}
	return set
}

// JoinResults pairs the keys and values of a query response again.
func JoinResults(keys, values *ResultSet) ([]tescrow.Model, error) {
	if n, m := len(keys.Results), len(values.Results); n != m {
		return nil, errors.Wrapf(errors.ErrState, "%d keys and %d values", n, m)
	}
	models := make([]tescrow.Model, 0, len(keys.Results))
	for i, k := range keys.Results {
		models = append(models, tescrow.Pair(k, values.Results[i]))
	}
	return models, nil
}

// UnmarshalOneResult decodes the first entry of an encoded ResultSet into
// o. An empty set leaves o untouched.
func UnmarshalOneResult(raw []byte, o tescrow.Persistent) error {
	var set ResultSet
	if err := set.Unmarshal(raw); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if len(set.Results) == 0 {
		return nil
	}
	return o.Unmarshal(set.Results[0])
}
