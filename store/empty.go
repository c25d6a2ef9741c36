package store

import "github.com/iov-one/milestone/errors"

// EmptyKVStore holds nothing and ignores all writes. It is the bottom layer
// of in memory stores.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

func (EmptyKVStore) Get([]byte) ([]byte, error) { return nil, nil }
func (EmptyKVStore) Has([]byte) (bool, error)   { return false, nil }
func (EmptyKVStore) Set(_, _ []byte) error      { return nil }
func (EmptyKVStore) Delete([]byte) error        { return nil }
func (e EmptyKVStore) NewBatch() Batch          { return NewNonAtomicBatch(e) }

func (EmptyKVStore) Iterator(_, _ []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

func (EmptyKVStore) ReverseIterator(_, _ []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

// NewSliceIterator iterates over models in the given order.
func NewSliceIterator(models []Model) Iterator {
	return &sliceIterator{models: models}
}

type sliceIterator struct {
	models []Model
}

func (s *sliceIterator) Next() ([]byte, []byte, error) {
	if len(s.models) == 0 {
		return nil, nil, errors.Wrap(errors.ErrIteratorDone, "slice")
	}
	m := s.models[0]
	s.models = s.models[1:]
	return m.Key, m.Value, nil
}

func (s *sliceIterator) Release() {
	s.models = nil
}
