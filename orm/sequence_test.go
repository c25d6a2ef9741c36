package orm

import (
	"bytes"
	"testing"

	"github.com/iov-one/milestone/store"
	"github.com/iov-one/milestone/weavetest/assert"
)

func TestSequence(t *testing.T) {
	db := store.MemStore()

	s := NewSequence("projects", "id")
	other := NewSequence("projects", "other")

	val, raw, err := s.Latest(db)
	assert.Nil(t, err)
	assert.Equal(t, int64(0), val)

	prev := raw
	for i := int64(1); i <= 300; i++ {
		next, err := s.NextVal(db)
		assert.Nil(t, err)
		// raw values must keep the order of the integers
		if bytes.Compare(next, prev) != 1 {
			t.Fatalf("sequence value %d is not greater than the previous one", i)
		}
		prev = next
	}

	val, _, err = s.Latest(db)
	assert.Nil(t, err)
	assert.Equal(t, int64(300), val)

	n, err := other.NextInt(db)
	assert.Nil(t, err)
	assert.Equal(t, int64(1), n)
}

func TestPrefixEnd(t *testing.T) {
	assert.Equal(t, []byte("ab"), prefixEnd([]byte("aa")))
	assert.Equal(t, []byte{1}, prefixEnd([]byte{0, 0xff}))
	assert.Equal(t, []byte(nil), prefixEnd([]byte{0xff, 0xff}))
}
