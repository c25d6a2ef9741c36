/*
Package iavl provides the persistent, merkelized root store of the
application. Every committed block produces a new tree version whose hash is
reported to tendermint as the app hash.
*/
package iavl

import (
	"path/filepath"

	"github.com/iov-one/milestone/errors"
	"github.com/iov-one/milestone/store"
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// DefaultHistory is the number of versions kept on disk. Older versions are
// pruned on commit.
const DefaultHistory = 2

const cacheSize = 10000

// CommitStore reads the working tree and commits it as a new version.
type CommitStore struct {
	reader
	history int64
}

var _ store.CommitKVStore = CommitStore{}

// NewCommitStore opens a leveldb database called name in dir.
func NewCommitStore(dir, name string) CommitStore {
	return newCommitStore(dbm.NewDB(name, dbm.GoLevelDBBackend, filepath.Clean(dir)))
}

// MockCommitStore returns a store kept in memory only.
func MockCommitStore() CommitStore {
	return newCommitStore(dbm.NewMemDB())
}

func newCommitStore(db dbm.DB) CommitStore {
	return CommitStore{
		reader:  reader{tree: iavl.NewMutableTree(db, cacheSize)},
		history: DefaultHistory,
	}
}

// Commit saves the working tree as a new version and prunes the version
// falling out of history.
func (s CommitStore) Commit() (store.CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return store.CommitID{}, errors.Wrapf(errors.ErrDatabase, "save version: %s", err)
	}
	if old := version - s.history; s.history > 0 && old > 0 && s.tree.VersionExists(old) {
		if err := s.tree.DeleteVersion(old); err != nil {
			return store.CommitID{}, errors.Wrapf(errors.ErrDatabase, "delete version %d: %s", old, err)
		}
	}
	return store.CommitID{Version: version, Hash: hash}, nil
}

// LoadLatestVersion loads the last version that was saved completely.
func (s CommitStore) LoadLatestVersion() error {
	if _, err := s.tree.Load(); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "load: %s", err)
	}
	return nil
}

func (s CommitStore) LatestVersion() (store.CommitID, error) {
	return store.CommitID{Version: s.tree.Version(), Hash: s.tree.Hash()}, nil
}

// Adapter writes directly into the working tree. Writes are persisted by
// the next Commit.
func (s CommitStore) Adapter() store.CacheableKVStore {
	return store.BTreeCacheable{KVStore: adapter{s.reader}}
}

func (s CommitStore) CacheWrap() store.KVCacheWrap {
	return s.Adapter().CacheWrap()
}

// reader reads the working tree. Keys must not be nil.
type reader struct {
	tree *iavl.MutableTree
}

func (r reader) Get(key []byte) ([]byte, error) {
	_, value := r.tree.Get(key)
	return value, nil
}

func (r reader) Has(key []byte) (bool, error) {
	return r.tree.Has(key), nil
}

func (r reader) Iterator(start, end []byte) (store.Iterator, error) {
	return r.collect(start, end, true), nil
}

func (r reader) ReverseIterator(start, end []byte) (store.Iterator, error) {
	return r.collect(start, end, false), nil
}

// collect loads the whole range, so the tree can be written while the
// iterator is in use.
func (r reader) collect(start, end []byte, ascending bool) store.Iterator {
	var models []store.Model
	r.tree.IterateRange(start, end, ascending, func(key, value []byte) bool {
		models = append(models, store.Model{Key: key, Value: value})
		return false
	})
	return store.NewSliceIterator(models)
}

// adapter is a KVStore over the working tree.
type adapter struct {
	reader
}

var _ store.KVStore = adapter{}

func (a adapter) Set(key, value []byte) error {
	a.tree.Set(key, value)
	return nil
}

func (a adapter) Delete(key []byte) error {
	a.tree.Remove(key)
	return nil
}

func (a adapter) NewBatch() store.Batch {
	return store.NewNonAtomicBatch(a)
}
