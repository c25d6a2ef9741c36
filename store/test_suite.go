package store

import (
	"bytes"
	"fmt"
	"sort"
	"testing"

	"github.com/iov-one/milestone/errors"
	"github.com/iov-one/milestone/weavetest/assert"
)

// StoreFactory returns a fresh store and a function releasing its
// resources.
type StoreFactory func() (CacheableKVStore, func())

// VerifyKVStore runs the behaviour every CacheableKVStore implementation
// must provide. It is shared by the btree and iavl tests.
func VerifyKVStore(t *testing.T, newStore StoreFactory) {
	t.Run("cache layers", func(t *testing.T) { verifyCacheLayers(t, newStore) })
	t.Run("overwrites", func(t *testing.T) { verifyOverwrites(t, newStore) })
	t.Run("iteration", func(t *testing.T) { verifyIteration(t, newStore) })
}

func verifyCacheLayers(t *testing.T, newStore StoreFactory) {
	base, cleanup := newStore()
	defer cleanup()

	project, custody := []byte("project"), []byte("custody")
	AssertGetHas(t, base, project, nil, false)
	assert.Nil(t, base.Set(project, []byte("pending")))
	AssertGetHas(t, base, project, []byte("pending"), true)

	// Writes of a cache are visible only after the cache is written.
	cache := base.CacheWrap()
	AssertGetHas(t, cache, project, []byte("pending"), true)
	assert.Nil(t, cache.Set(custody, []byte("100")))
	AssertGetHas(t, cache, custody, []byte("100"), true)
	AssertGetHas(t, base, custody, nil, false)
	assert.Nil(t, cache.Write())
	AssertGetHas(t, base, custody, []byte("100"), true)

	discarded := base.CacheWrap()
	assert.Nil(t, discarded.Set([]byte("refund"), []byte("100")))
	discarded.Discard()

	deleting := base.CacheWrap()
	assert.Nil(t, deleting.Delete(project))
	assert.Nil(t, deleting.Write())

	AssertGetHas(t, base, project, nil, false)
	AssertGetHas(t, base, custody, []byte("100"), true)
	AssertGetHas(t, base, []byte("refund"), nil, false)
}

func verifyOverwrites(t *testing.T, newStore StoreFactory) {
	m := testModels(4)

	parent, cleanup := newStore()
	defer cleanup()
	assert.Nil(t, SetOp(m[0].Key, m[0].Value).Apply(parent))
	assert.Nil(t, SetOp(m[1].Key, m[1].Value).Apply(parent))

	child := parent.CacheWrap()
	assert.Nil(t, SetOp(m[0].Key, []byte("changed")).Apply(child))
	assert.Nil(t, DelOp(m[1].Key).Apply(child))
	assert.Nil(t, SetOp(m[2].Key, m[2].Value).Apply(child))

	AssertGetHas(t, parent, m[0].Key, m[0].Value, true)
	AssertGetHas(t, parent, m[1].Key, m[1].Value, true)
	AssertGetHas(t, parent, m[2].Key, nil, false)

	want := []Model{Pair(m[0].Key, []byte("changed")), Pair(m[1].Key, nil), m[2]}
	for _, w := range want {
		AssertGetHas(t, child, w.Key, w.Value, w.Value != nil)
	}
	assert.Nil(t, child.Write())
	for _, w := range want {
		AssertGetHas(t, parent, w.Key, w.Value, w.Value != nil)
	}
}

func verifyIteration(t *testing.T, newStore StoreFactory) {
	m := testModels(12)
	overwrite := Pair(m[3].Key, []byte("overwritten"))

	cases := map[string]struct {
		parent []Op
		child  []Op
		// content is the expected state of the child, in key order
		content []Model
	}{
		"child only": {
			child:   setOps(m[0:6]...),
			content: m[0:6],
		},
		"parent only": {
			parent:  setOps(m[0:6]...),
			content: m[0:6],
		},
		"child and parent are merged": {
			parent:  setOps(m[0], m[2], m[4], m[6]),
			child:   setOps(m[1], m[3], m[5]),
			content: m[0:7],
		},
		"child overwrites and deletes parent values": {
			parent:  setOps(m[0:8]...),
			child:   append(setOps(overwrite), delOps(m[0], m[5], m[7], m[9])...),
			content: []Model{m[1], m[2], overwrite, m[4], m[6]},
		},
		"everything deleted": {
			parent: setOps(m[0:3]...),
			child:  delOps(m[0:3]...),
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			base, cleanup := newStore()
			defer cleanup()
			for _, op := range tc.parent {
				assert.Nil(t, op.Apply(base))
			}
			child := base.CacheWrap()
			for _, op := range tc.child {
				assert.Nil(t, op.Apply(child))
			}

			all := tc.content
			assertIterates(t, child, nil, nil, false, all)
			assertIterates(t, child, nil, nil, true, reversed(all))
			if len(all) < 3 {
				return
			}
			first, last := all[1].Key, all[len(all)-1].Key
			// The end of a range is exclusive.
			assertIterates(t, child, first, last, false, all[1:len(all)-1])
			assertIterates(t, child, first, last, true, reversed(all[1:len(all)-1]))
			assertIterates(t, child, first, nil, false, all[1:])
			assertIterates(t, child, nil, last, true, reversed(all[:len(all)-1]))
		})
	}
}

func assertIterates(t testing.TB, kv ReadOnlyKVStore, start, end []byte, reverse bool, want []Model) {
	t.Helper()

	var it Iterator
	var err error
	if reverse {
		it, err = kv.ReverseIterator(start, end)
	} else {
		it, err = kv.Iterator(start, end)
	}
	assert.Nil(t, err)
	defer it.Release()

	for i, w := range want {
		key, value, err := it.Next()
		assert.Nil(t, err)
		if !bytes.Equal(w.Key, key) {
			t.Fatalf("entry %d: want %q key, got %q", i, w.Key, key)
		}
		assert.Equal(t, w.Value, value)
	}
	if _, _, err := it.Next(); !errors.ErrIteratorDone.Is(err) {
		t.Fatalf("want iterator to be done, got %+v", err)
	}
}

// AssertGetHas checks both the value and the presence of a key.
func AssertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, has, exists)
}

// testModels returns count models with keys in ascending order.
func testModels(count int) []Model {
	res := make([]Model, count)
	for i := range res {
		res[i] = Pair(
			[]byte(fmt.Sprintf("project/%04d", i)),
			[]byte(fmt.Sprintf("milestone %d", i)),
		)
	}
	return res
}

func reversed(models []Model) []Model {
	res := make([]Model, len(models))
	copy(res, models)
	sort.SliceStable(res, func(i, j int) bool {
		return bytes.Compare(res[i].Key, res[j].Key) > 0
	})
	return res
}

func setOps(ms ...Model) []Op {
	res := make([]Op, len(ms))
	for i, m := range ms {
		res[i] = SetOp(m.Key, m.Value)
	}
	return res
}

func delOps(ms ...Model) []Op {
	res := make([]Op, len(ms))
	for i, m := range ms {
		res[i] = DelOp(m.Key)
	}
	return res
}
