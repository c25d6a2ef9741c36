package app

import (
	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/errors"
	"github.com/iov-one/milestone/store"
	abci "github.com/tendermint/tendermint/abci/types"
)

// ABCIStore reads the committed state of an application through its Query
// method. Wrapped by an orm bucket, it lets clients load models the same
// way handlers do.
type ABCIStore struct {
	app abci.Application
}

var _ milestone.ReadOnlyKVStore = (*ABCIStore)(nil)

func NewABCIStore(app abci.Application) *ABCIStore {
	return &ABCIStore{app: app}
}

// fetch runs a raw store query and returns the matching models.
func (a *ABCIStore) fetch(path string, data []byte) ([]milestone.Model, error) {
	res := a.app.Query(abci.RequestQuery{Path: path, Data: data})
	if res.Code != errors.SuccessABCICode {
		return nil, errors.Wrap(errors.ErrDatabase, res.Log)
	}
	var keys, values ResultSet
	if err := keys.Unmarshal(res.Key); err != nil {
		return nil, errors.Wrap(err, "keys")
	}
	if err := values.Unmarshal(res.Value); err != nil {
		return nil, errors.Wrap(err, "values")
	}
	return JoinResults(&keys, &values)
}

func (a *ABCIStore) Get(key []byte) ([]byte, error) {
	models, err := a.fetch("/", key)
	if err != nil {
		return nil, err
	}
	switch len(models) {
	case 0:
		return nil, nil
	case 1:
		return models[0].Value, nil
	}
	return nil, errors.Wrapf(errors.ErrDatabase, "%d results for a single key", len(models))
}

func (a *ABCIStore) Has(key []byte) (bool, error) {
	val, err := a.Get(key)
	return len(val) > 0, err
}

// Iterator supports only a scan of the whole store.
func (a *ABCIStore) Iterator(start, end []byte) (milestone.Iterator, error) {
	if start != nil || end != nil {
		return nil, errors.Wrap(errors.ErrHuman, "only full range iteration is supported")
	}
	models, err := a.fetch("/?prefix", nil)
	if err != nil {
		return nil, err
	}
	return store.NewSliceIterator(models), nil
}

func (a *ABCIStore) ReverseIterator(start, end []byte) (milestone.Iterator, error) {
	return nil, errors.Wrap(errors.ErrHuman, "reverse iteration is not supported")
}
