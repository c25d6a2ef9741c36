package orm

import (
	"encoding/binary"

	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/errors"
)

// Sequence is a persisted counter. Every value it returns is greater than
// the previous one, both as an integer and as 8 big endian bytes, so it
// can be used to generate ordered keys.
type Sequence struct {
	key []byte
}

// NewSequence returns the counter stored under "_s.<bucket>:<name>".
func NewSequence(bucket, name string) Sequence {
	return Sequence{key: []byte("_s." + bucket + ":" + name)}
}

// NextVal increments the counter and returns the new value encoded.
func (s *Sequence) NextVal(db milestone.KVStore) ([]byte, error) {
	n, err := s.NextInt(db)
	if err != nil {
		return nil, err
	}
	return EncodeSequence(n), nil
}

// NextInt increments the counter and returns the new value.
func (s *Sequence) NextInt(db milestone.KVStore) (int64, error) {
	n, _, err := s.Latest(db)
	if err != nil {
		return 0, err
	}
	n++
	if err := db.Set(s.key, EncodeSequence(n)); err != nil {
		return 0, errors.Wrap(err, "save sequence")
	}
	return n, nil
}

// Latest returns the last value given out, zero if none was. The counter
// is not modified.
func (s *Sequence) Latest(db milestone.ReadOnlyKVStore) (int64, []byte, error) {
	raw, err := db.Get(s.key)
	if err != nil {
		return 0, nil, errors.Wrap(err, "read sequence")
	}
	n := DecodeSequence(raw)
	return n, EncodeSequence(n), nil
}

// DecodeSequence reads an 8 byte big endian value. Any other length is
// zero.
func DecodeSequence(raw []byte) int64 {
	if len(raw) != 8 {
		return 0
	}
	return int64(binary.BigEndian.Uint64(raw))
}

func EncodeSequence(n int64) []byte {
	var raw [8]byte
	binary.BigEndian.PutUint64(raw[:], uint64(n))
	return raw[:]
}
