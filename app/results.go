package app

import (
	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/errors"
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

// ResultSet is the encoding of both the Key and the Value field of a query
// response. Keys and values of the same response line up by index.
type ResultSet struct {
	Results [][]byte `json:"results"`
}

func (r *ResultSet) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(r)
}

func (r *ResultSet) Unmarshal(raw []byte) error {
	r.Results = nil
	if len(raw) == 0 {
		return nil
	}
	return cdc.UnmarshalBinaryBare(raw, r)
}

func ResultsFromKeys(models []milestone.Model) *ResultSet {
	return project(models, func(m milestone.Model) []byte { return m.Key })
}

func ResultsFromValues(models []milestone.Model) *ResultSet {
	return project(models, func(m milestone.Model) []byte { return m.Value })
}

func project(models []milestone.Model, field func(milestone.Model) []byte) *ResultSet {
	out := ResultSet{Results: make([][]byte, 0, len(models))}
	for _, m := range models {
		out.Results = append(out.Results, field(m))
	}
	return &out
}

// JoinResults pairs the keys and values of a query response back into
// models.
func JoinResults(keys, values *ResultSet) ([]milestone.Model, error) {
	if n, m := len(keys.Results), len(values.Results); n != m {
		return nil, errors.Wrapf(errors.ErrInput, "%d keys, %d values", n, m)
	}
	models := make([]milestone.Model, 0, len(keys.Results))
	for i, k := range keys.Results {
		models = append(models, milestone.Pair(k, values.Results[i]))
	}
	return models, nil
}

// UnmarshalOneResult loads the first entry of an encoded ResultSet into
// dst. An empty set leaves dst untouched.
func UnmarshalOneResult(raw []byte, dst milestone.Persistent) error {
	var set ResultSet
	if err := set.Unmarshal(raw); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if len(set.Results) == 0 {
		return nil
	}
	return dst.Unmarshal(set.Results[0])
}
