package milestone

// ReadOnlyKVStore reads the state. Keys must not be nil.
type ReadOnlyKVStore interface {
	// Get returns nil for a missing key.
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)

	// Iterator returns keys in [start, end) in ascending order. A nil
	// bound is open. The domain must not be written while iterating.
	Iterator(start, end []byte) (Iterator, error)

	// ReverseIterator is Iterator in descending order.
	ReverseIterator(start, end []byte) (Iterator, error)
}

// SetDeleter writes the state. Neither keys nor values may be modified
// after they are passed in.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

type KVStore interface {
	ReadOnlyKVStore
	SetDeleter
	NewBatch() Batch
}

// Batch collects writes and applies them on Write.
type Batch interface {
	SetDeleter
	Write() error
}

// Iterator walks a key range. Next returns ErrIteratorDone after the last
// item. Always call Release.
//
//   it, err := db.Iterator(nil, nil)
//   ...
//   defer it.Release()
//   for {
//       key, value, err := it.Next()
//       if errors.ErrIteratorDone.Is(err) {
//           break
//       }
//       ...
//   }
type Iterator interface {
	Next() (key, value []byte, err error)
	Release()
}

// CacheableKVStore can stack a cache on top of itself.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap holds writes until they are written to the parent store or
// discarded. A failed transaction discards its cache, so none of its
// writes are visible.
type KVCacheWrap interface {
	CacheableKVStore
	Write() error
	Discard()
}

// CommitKVStore is the persistent root store. Each Commit creates a new
// version identified by the merkle root of the state.
type CommitKVStore interface {
	ReadOnlyKVStore
	CacheWrap() KVCacheWrap
	Commit() (CommitID, error)
	// LoadLatestVersion recovers the last stable version after a crash.
	LoadLatestVersion() error
	LatestVersion() (CommitID, error)
}

// CommitID identifies a committed version.
type CommitID struct {
	Version int64
	Hash    []byte
}
