package store

import (
	"bytes"

	"github.com/google/btree"
)

// btreeDegree is the degree of every cache tree.
const btreeDegree = 2

// BTreeCacheable gives a KVStore a btree based CacheWrap.
type BTreeCacheable struct {
	KVStore
}

var _ CacheableKVStore = BTreeCacheable{}

func (b BTreeCacheable) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b.KVStore, b.NewBatch(), nil)
}

// MemStore returns an in memory store without persistence.
func MemStore() CacheableKVStore {
	var empty EmptyKVStore
	return NewBTreeCacheWrap(empty, empty.NewBatch(), nil)
}

// LogableStore returns an in memory store and the batch recording every
// write made to it.
func LogableStore() (CacheableKVStore, *NonAtomicBatch) {
	var empty EmptyKVStore
	ops := NewNonAtomicBatch(empty)
	return NewBTreeCacheWrap(empty, ops, nil), ops
}

// BTreeCacheWrap keeps writes in a btree until they are written to the
// batch of the parent store. Reads fall through to the parent for every key
// not touched in the cache.
type BTreeCacheWrap struct {
	tree   *btree.BTree
	free   *btree.FreeList
	parent ReadOnlyKVStore
	batch  Batch
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap returns a cache over parent. All writes are forwarded to
// batch, which must eventually write into parent. free can be shared between
// nested caches, nil allocates a new list.
func NewBTreeCacheWrap(parent ReadOnlyKVStore, batch Batch, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(btree.DefaultFreeListSize)
	}
	return BTreeCacheWrap{
		tree:   btree.NewWithFreeList(btreeDegree, free),
		free:   free,
		parent: parent,
		batch:  batch,
	}
}

// CacheWrap returns a nested cache that writes into this one.
func (b BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, b.NewBatch(), b.free)
}

func (b BTreeCacheWrap) NewBatch() Batch {
	return NewNonAtomicBatch(b)
}

// Write flushes the batch into the parent store and empties the cache.
func (b BTreeCacheWrap) Write() error {
	defer b.Discard()
	return b.batch.Write()
}

// Discard drops every cached write. Released nodes go to the free list.
func (b BTreeCacheWrap) Discard() {
	for b.tree.DeleteMin() != nil {
	}
}

func (b BTreeCacheWrap) Set(key, value []byte) error {
	b.tree.ReplaceOrInsert(entry{key: key, value: value})
	return b.batch.Set(key, value)
}

func (b BTreeCacheWrap) Delete(key []byte) error {
	b.tree.ReplaceOrInsert(entry{key: key, deleted: true})
	return b.batch.Delete(key)
}

func (b BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	if e, ok := b.cached(key); ok {
		if e.deleted {
			return nil, nil
		}
		return e.value, nil
	}
	return b.parent.Get(key)
}

func (b BTreeCacheWrap) Has(key []byte) (bool, error) {
	if e, ok := b.cached(key); ok {
		return !e.deleted, nil
	}
	return b.parent.Has(key)
}

func (b BTreeCacheWrap) cached(key []byte) (entry, bool) {
	found := b.tree.Get(entry{key: key})
	if found == nil {
		return entry{}, false
	}
	return found.(entry), true
}

// Iterator merges the cached entries with the parent, in ascending order.
func (b BTreeCacheWrap) Iterator(start, end []byte) (Iterator, error) {
	it, err := b.parent.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return newItemIter(entriesIn(b.tree, start, end, false), it, false), nil
}

// ReverseIterator merges the cached entries with the parent, in descending
// order.
func (b BTreeCacheWrap) ReverseIterator(start, end []byte) (Iterator, error) {
	it, err := b.parent.ReverseIterator(start, end)
	if err != nil {
		return nil, err
	}
	return newItemIter(entriesIn(b.tree, start, end, true), it, true), nil
}

// entry is a cached write. A deleted entry hides the parent value.
type entry struct {
	key     []byte
	value   []byte
	deleted bool
}

func (e entry) Less(than btree.Item) bool {
	return bytes.Compare(e.key, than.(entry).key) < 0
}
