package orm

import (
	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/errors"
)

// RegisterQuery exposes the raw key value store as "/".
func RegisterQuery(qr milestone.QueryRouter) {
	qr.Register("/", rawQuery{})
}

// rawQuery returns a single value by its full key, or all values with a key
// starting with given prefix.
type rawQuery struct{}

func (rawQuery) Query(db milestone.ReadOnlyKVStore, mod string, data []byte) ([]milestone.Model, error) {
	switch mod {
	case milestone.KeyQueryMod:
		raw, err := db.Get(data)
		if err != nil {
			return nil, err
		}
		if raw == nil {
			return nil, nil
		}
		return []milestone.Model{milestone.Pair(data, raw)}, nil
	case milestone.PrefixQueryMod:
		it, err := db.Iterator(data, prefixEnd(data))
		if err != nil {
			return nil, err
		}
		return consumeIterator(it)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mode %q", mod)
	}
}

func (mb *modelBucket) Register(name string, r milestone.QueryRouter) {
	root := "/" + name
	r.Register(root, bucketQuery{mb: mb})
	for _, idx := range mb.indexNames {
		r.Register(root+"/"+idx, indexQuery{mb: mb, name: idx})
	}
}

// bucketQuery returns models by primary key, or all models with a primary
// key starting with given prefix.
type bucketQuery struct {
	mb *modelBucket
}

func (q bucketQuery) Query(db milestone.ReadOnlyKVStore, mod string, data []byte) ([]milestone.Model, error) {
	switch mod {
	case milestone.KeyQueryMod:
		key := q.mb.dbKey(data)
		raw, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		if raw == nil {
			return nil, nil
		}
		return []milestone.Model{milestone.Pair(key, raw)}, nil
	case milestone.PrefixQueryMod:
		start := q.mb.dbKey(data)
		it, err := db.Iterator(start, prefixEnd(start))
		if err != nil {
			return nil, err
		}
		return consumeIterator(it)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mode %q", mod)
	}
}

// indexQuery returns all models referenced by an index value.
type indexQuery struct {
	mb   *modelBucket
	name string
}

func (q indexQuery) Query(db milestone.ReadOnlyKVStore, mod string, data []byte) ([]milestone.Model, error) {
	if mod != milestone.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unsupported index query mode %q", mod)
	}
	keys, err := q.mb.indexes[q.name].keys(db, data)
	if err != nil {
		return nil, err
	}
	res := make([]milestone.Model, 0, len(keys))
	for _, k := range keys {
		key := q.mb.dbKey(k)
		raw, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		if raw == nil {
			return nil, errors.Wrapf(errors.ErrNotFound, "index %q references %X", q.name, k)
		}
		res = append(res, milestone.Pair(key, raw))
	}
	return res, nil
}

// consumeIterator will read all remaining data into an
// array and release the iterator
func consumeIterator(it milestone.Iterator) ([]milestone.Model, error) {
	defer it.Release()

	var res []milestone.Model
	for {
		key, value, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			return res, nil
		}
		if err != nil {
			return nil, err
		}
		res = append(res, milestone.Pair(key, value))
	}
}
