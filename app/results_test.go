package app

import (
	"testing"

	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/errors"
	"github.com/iov-one/milestone/weavetest/assert"
)

func TestJoinResults(t *testing.T) {
	models := []milestone.Model{
		milestone.Pair([]byte("a"), []byte("1")),
		milestone.Pair([]byte("b"), []byte("2")),
	}

	rawKeys, err := ResultsFromKeys(models).Marshal()
	assert.Nil(t, err)
	rawValues, err := ResultsFromValues(models).Marshal()
	assert.Nil(t, err)

	var keys, values ResultSet
	assert.Nil(t, keys.Unmarshal(rawKeys))
	assert.Nil(t, values.Unmarshal(rawValues))
	got, err := JoinResults(&keys, &values)
	assert.Nil(t, err)
	assert.Equal(t, models, got)

	_, err = JoinResults(&ResultSet{Results: [][]byte{[]byte("a")}}, &ResultSet{})
	assert.IsErr(t, errors.ErrInput, err)
}

func TestUnmarshalOneResult(t *testing.T) {
	raw, err := ResultsFromValues([]milestone.Model{
		milestone.Pair([]byte("a"), []byte("first")),
		milestone.Pair([]byte("b"), []byte("second")),
	}).Marshal()
	assert.Nil(t, err)

	dst := &rawPersistent{}
	assert.Nil(t, UnmarshalOneResult(raw, dst))
	assert.Equal(t, []byte("first"), dst.raw)

	// Empty result set leaves the destination untouched.
	empty, err := (&ResultSet{}).Marshal()
	assert.Nil(t, err)
	dst = &rawPersistent{}
	assert.Nil(t, UnmarshalOneResult(empty, dst))
	assert.Nil(t, dst.raw)
}

type rawPersistent struct {
	raw []byte
}

func (p *rawPersistent) Marshal() ([]byte, error) { return p.raw, nil }

func (p *rawPersistent) Unmarshal(raw []byte) error {
	p.raw = raw
	return nil
}
