package store

import "github.com/iov-one/milestone"

// Move references for all storage types into this package
// for shorter names everywhere

type (
	ReadOnlyKVStore  = milestone.ReadOnlyKVStore
	SetDeleter       = milestone.SetDeleter
	KVStore          = milestone.KVStore
	Batch            = milestone.Batch
	Iterator         = milestone.Iterator
	CacheableKVStore = milestone.CacheableKVStore
	KVCacheWrap      = milestone.KVCacheWrap
	CommitKVStore    = milestone.CommitKVStore
	CommitID         = milestone.CommitID
	Model            = milestone.Model
)

// Pair constructs a model from a key-value pair
var Pair = milestone.Pair
