package app

import (
	"github.com/iov-one/tescrow"
	"github.com/iov-one/tescrow/errors"
	"github.com/iov-one/tescrow/store"
	abci "github.com/tendermint/tendermint/abci/types"
)

// ABCIStore reads one query path of an application as if it were a local
// store, so a client can reuse a bucket's Get and Parse over abci.Query.
type ABCIStore struct {
	app  abci.Application
	path string
}

var _ tescrow.ReadOnlyKVStore = (*ABCIStore)(nil)

// NewABCIStore reads the path a bucket registered, such as "/escrows".
func NewABCIStore(app abci.Application, path string) *ABCIStore {
	return &ABCIStore{app: app, path: path}
}

// Get returns nil when the key is unknown and fails when the path yields
// more than one model.
func (a *ABCIStore) Get(key []byte) ([]byte, error) {
	models, err := a.query(a.path, key)
	switch {
	case err != nil:
		return nil, err
	case len(models) == 0:
		return nil, nil
	case len(models) > 1:
		return nil, errors.Wrapf(errors.ErrState, "expected one result, got %d", len(models))
	}
	return models[0].Value, nil
}

func (a *ABCIStore) Has(key []byte) (bool, error) {
	v, err := a.Get(key)
	return v != nil, err
}

// Iterator lists the whole path. Bounded ranges are not supported.
func (a *ABCIStore) Iterator(start, end []byte) (tescrow.Iterator, error) {
	if start != nil || end != nil {
		return nil, errors.Wrap(errors.ErrInput, "only the full range can be iterated")
	}
	models, err := a.query(a.path+"?"+tescrow.PrefixQueryMod, nil)
	if err != nil {
		return nil, err
	}
	return store.NewSliceIterator(models), nil
}

func (a *ABCIStore) ReverseIterator(start, end []byte) (tescrow.Iterator, error) {
	return nil, errors.Wrap(errors.ErrHuman, "reverse iteration over abci is not supported")
}

func (a *ABCIStore) query(path string, data []byte) ([]tescrow.Model, error) {
	res := a.app.Query(abci.RequestQuery{Path: path, Data: data})
	if res.Code != errors.SuccessABCICode {
		return nil, errors.Wrapf(errors.ErrState, "query %s: code %d: %s", path, res.Code, res.Log)
	}
	return toModels(res.Key, res.Value)
}

// toModels joins the serialized key and value sets of a query response.
func toModels(rawKeys, rawValues []byte) ([]tescrow.Model, error) {
	var keys, values ResultSet
	if err := keys.Unmarshal(rawKeys); err != nil {
		return nil, errors.Wrap(err, "query keys")
	}
	if err := values.Unmarshal(rawValues); err != nil {
		return nil, errors.Wrap(err, "query values")
	}
	return JoinResults(&keys, &values)
}
