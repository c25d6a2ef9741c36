package orm

import (
	"bytes"
	"encoding/binary"

	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/errors"
)

// Indexer calculates the secondary index key for a model. Returning a nil
// value excludes the model from the index.
type Indexer func(Model) ([]byte, error)

// index maintains a secondary key for models of a single bucket.
//
// A unique index stores the primary key under the indexed value:
//    _i.<bucket>_<name>:<value>
// A non unique index stores one entry per model, using the value length to
// keep different values from sharing a prefix:
//    _i.<bucket>_<name>:<len(value)><value><primary key>
type index struct {
	prefix  []byte
	indexer Indexer
	unique  bool
}

func newIndex(bucket, name string, indexer Indexer, unique bool) *index {
	return &index{
		prefix:  []byte("_i." + bucket + "_" + name + ":"),
		indexer: indexer,
		unique:  unique,
	}
}

func (i *index) valuePrefix(value []byte) []byte {
	res := make([]byte, 0, len(i.prefix)+4+len(value))
	res = append(res, i.prefix...)
	if !i.unique {
		var l [4]byte
		binary.BigEndian.PutUint32(l[:], uint32(len(value)))
		res = append(res, l[:]...)
	}
	return append(res, value...)
}

func (i *index) entryKey(value, pk []byte) []byte {
	if i.unique {
		return i.valuePrefix(value)
	}
	return append(i.valuePrefix(value), pk...)
}

// update moves the entry of primary key pk from the value of prev to the
// value of next. Either model can be nil.
func (i *index) update(db milestone.KVStore, pk []byte, prev, next Model) error {
	var prevVal, nextVal []byte
	var err error
	if prev != nil {
		if prevVal, err = i.indexer(prev); err != nil {
			return errors.Wrap(err, "indexer")
		}
	}
	if next != nil {
		if nextVal, err = i.indexer(next); err != nil {
			return errors.Wrap(err, "indexer")
		}
	}
	if prev != nil && next != nil && bytes.Equal(prevVal, nextVal) {
		return nil
	}

	if prevVal != nil {
		if err := db.Delete(i.entryKey(prevVal, pk)); err != nil {
			return errors.Wrap(err, "cannot remove index entry")
		}
	}
	if nextVal != nil {
		key := i.entryKey(nextVal, pk)
		if i.unique {
			owner, err := db.Get(key)
			if err != nil {
				return errors.Wrap(err, "cannot read index entry")
			}
			if owner != nil && !bytes.Equal(owner, pk) {
				return errors.Wrapf(errors.ErrDuplicate, "value %X already used", nextVal)
			}
		}
		if err := db.Set(key, pk); err != nil {
			return errors.Wrap(err, "cannot store index entry")
		}
	}
	return nil
}

// keys returns primary keys of all models indexed under given value.
func (i *index) keys(db milestone.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	if i.unique {
		pk, err := db.Get(i.valuePrefix(value))
		if err != nil {
			return nil, errors.Wrap(err, "cannot read index entry")
		}
		if pk == nil {
			return nil, nil
		}
		return [][]byte{pk}, nil
	}

	start := i.valuePrefix(value)
	it, err := db.Iterator(start, prefixEnd(start))
	if err != nil {
		return nil, errors.Wrap(err, "cannot iterate index")
	}
	defer it.Release()

	var res [][]byte
	for {
		_, pk, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			return res, nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "index iterator")
		}
		res = append(res, pk)
	}
}

// prefixEnd returns the first key that does not start with given prefix, or
// nil if there is no such key.
func prefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
