/*
Package orm provides an easy to use db wrapper.

Entities are stored in a ModelBucket under a bucket specific prefix. A bucket
can maintain any number of secondary indexes and can allocate primary keys
from a Sequence.
*/
package orm

import (
	"reflect"
	"regexp"

	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/errors"
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	milestone.Persistent
	Validate() error
}

// ModelSlicePtr is a pointer to a slice of a concrete model type, such as
// *[]*Project. Its type is checked at runtime.
type ModelSlicePtr interface{}

// ModelBucket stores models of a single type under a common key prefix.
type ModelBucket interface {
	// One loads the model stored under key into dest. A missing key gives
	// ErrNotFound and a dest of the wrong type gives ErrType.
	One(db milestone.ReadOnlyKVStore, key []byte, dest Model) error

	// Has fails with ErrNotFound unless key is stored.
	Has(db milestone.ReadOnlyKVStore, key []byte) error

	// ByIndex loads into dest, a *[]Model of the bucket type, every model
	// the named index maps key to and returns their primary keys.
	ByIndex(db milestone.ReadOnlyKVStore, indexName string, key []byte, dest ModelSlicePtr) ([][]byte, error)

	// Put validates and stores m, overwriting any previous value. An empty
	// key is replaced by the next value of the ID sequence. The used key is
	// returned.
	Put(db milestone.KVStore, key []byte, m Model) ([]byte, error)

	// Delete fails with ErrNotFound unless key is stored.
	Delete(db milestone.KVStore, key []byte) error

	// Register exposes the bucket and its indexes to queries under
	// "/<name>" and "/<name>/<index>".
	Register(name string, r milestone.QueryRouter)
}

// ModelBucketOption configures a bucket created by NewModelBucket.
type ModelBucketOption func(mb *modelBucket)

// WithIndex maintains a named secondary index over the keys returned by
// indexer. A unique index rejects a second model with the same index key.
func WithIndex(name string, indexer Indexer, unique bool) ModelBucketOption {
	return func(mb *modelBucket) {
		if !isIndexName(name) {
			panic("illegal index name: " + name)
		}
		if _, ok := mb.indexes[name]; ok {
			panic("duplicated index: " + name)
		}
		mb.indexes[name] = newIndex(mb.name, name, indexer, unique)
		mb.indexNames = append(mb.indexNames, name)
	}
}

// WithIDSequence allocates the keys of models put without one.
func WithIDSequence(s Sequence) ModelBucketOption {
	return func(mb *modelBucket) {
		mb.idSeq = s
	}
}

var (
	isIndexName  = regexp.MustCompile(`^[a-z_]{1,20}$`).MatchString
	isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString
)

// NewModelBucket returns a ModelBucket instance. The given model instance
// declares the type of entities stored in the bucket.
func NewModelBucket(name string, m Model, opts ...ModelBucketOption) ModelBucket {
	if !isBucketName(name) {
		panic("illegal bucket name: " + name)
	}
	tp := reflect.TypeOf(m)
	if tp.Kind() != reflect.Ptr {
		panic("model must be a pointer: " + tp.String())
	}
	mb := &modelBucket{
		name:      name,
		prefix:    []byte(name + ":"),
		modelType: tp,
		idSeq:     NewSequence(name, "id"),
		indexes:   make(map[string]*index),
	}
	for _, fn := range opts {
		fn(mb)
	}
	return mb
}

type modelBucket struct {
	name       string
	prefix     []byte
	modelType  reflect.Type
	idSeq      Sequence
	indexes    map[string]*index
	indexNames []string
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) dbKey(key []byte) []byte {
	return append(append([]byte(nil), mb.prefix...), key...)
}

func (mb *modelBucket) One(db milestone.ReadOnlyKVStore, key []byte, dest Model) error {
	if reflect.TypeOf(dest) != mb.modelType {
		return errors.Wrapf(errors.ErrType, "%T cannot be represented as %s", dest, mb.modelType)
	}
	raw, err := db.Get(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot get from the database")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", mb.name, key)
	}
	// Reset the destination, decoding must not merge with a previous state.
	reflect.ValueOf(dest).Elem().Set(reflect.Zero(mb.modelType.Elem()))
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot decode %s: %s", mb.name, err)
	}
	return nil
}

func (mb *modelBucket) Has(db milestone.ReadOnlyKVStore, key []byte) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrNotFound, "empty key")
	}
	ok, err := db.Has(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot query the database")
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", mb.name, key)
	}
	return nil
}

func (mb *modelBucket) ByIndex(db milestone.ReadOnlyKVStore, indexName string, key []byte, destination ModelSlicePtr) ([][]byte, error) {
	idx, ok := mb.indexes[indexName]
	if !ok {
		return nil, errors.Wrapf(ErrInvalidIndex, "unknown index %q", indexName)
	}

	dest := reflect.ValueOf(destination)
	if dest.Kind() != reflect.Ptr || dest.Elem().Kind() != reflect.Slice {
		return nil, errors.Wrap(errors.ErrType, "destination must be a pointer to a slice of models")
	}
	elemType := dest.Elem().Type().Elem()
	if elemType != mb.modelType && elemType != mb.modelType.Elem() {
		return nil, errors.Wrapf(errors.ErrType, "slice of %s cannot hold %s", elemType, mb.modelType)
	}

	keys, err := idx.keys(db, key)
	if err != nil {
		return nil, err
	}

	slice := dest.Elem()
	for _, k := range keys {
		m := reflect.New(mb.modelType.Elem())
		if err := mb.One(db, k, m.Interface().(Model)); err != nil {
			return nil, errors.Wrapf(err, "index %q references %X", indexName, k)
		}
		if elemType.Kind() == reflect.Ptr {
			slice = reflect.Append(slice, m)
		} else {
			slice = reflect.Append(slice, m.Elem())
		}
	}
	dest.Elem().Set(slice)
	return keys, nil
}

func (mb *modelBucket) Put(db milestone.KVStore, key []byte, m Model) ([]byte, error) {
	if reflect.TypeOf(m) != mb.modelType {
		return nil, errors.Wrapf(errors.ErrType, "cannot store %T in %s", m, mb.name)
	}
	if err := m.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid model")
	}

	if len(key) == 0 {
		k, err := mb.idSeq.NextVal(db)
		if err != nil {
			return nil, errors.Wrap(err, "ID sequence")
		}
		key = k
	}

	if len(mb.indexes) != 0 {
		prev, err := mb.load(db, key)
		if err != nil {
			return nil, err
		}
		for _, name := range mb.indexNames {
			if err := mb.indexes[name].update(db, key, prev, m); err != nil {
				return nil, errors.Wrapf(err, "index %q", name)
			}
		}
	}

	raw, err := m.Marshal()
	if err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "cannot serialize: %s", err)
	}
	if err := db.Set(mb.dbKey(key), raw); err != nil {
		return nil, errors.Wrap(err, "cannot store in the database")
	}
	return key, nil
}

func (mb *modelBucket) Delete(db milestone.KVStore, key []byte) error {
	prev, err := mb.load(db, key)
	if err != nil {
		return err
	}
	if prev == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", mb.name, key)
	}
	for _, name := range mb.indexNames {
		if err := mb.indexes[name].update(db, key, prev, nil); err != nil {
			return errors.Wrapf(err, "index %q", name)
		}
	}
	if err := db.Delete(mb.dbKey(key)); err != nil {
		return errors.Wrap(err, "cannot delete from the database")
	}
	return nil
}

// load returns the model stored under given key or nil if it does not exist.
func (mb *modelBucket) load(db milestone.ReadOnlyKVStore, key []byte) (Model, error) {
	m := reflect.New(mb.modelType.Elem()).Interface().(Model)
	switch err := mb.One(db, key, m); {
	case err == nil:
		return m, nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, err
	}
}
