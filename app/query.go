package app

import (
	"strings"

	"github.com/iov-one/milestone/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// Query reads the committed state through a handler registered for the
// request path. The path has the form "/<bucket>[/<index>]" and may end
// with a "?prefix" modifier.
//
// Only the latest height can be queried and proofs are not provided.
// Both the key and the value of a response are encoded ResultSets of the
// same length.
func (s *StoreApp) Query(req abci.RequestQuery) abci.ResponseQuery {
	res, err := s.query(req)
	if err != nil {
		code, log := errors.ABCIInfo(err, s.debug)
		return abci.ResponseQuery{Code: code, Log: log}
	}
	return res
}

func (s *StoreApp) query(req abci.RequestQuery) (abci.ResponseQuery, error) {
	var none abci.ResponseQuery

	path, mod := splitPath(req.Path)
	h := s.queryRouter.Handler(path)
	if h == nil {
		return none, errors.Wrapf(errors.ErrNotFound, "no query handler for %q", req.Path)
	}
	last, err := s.state.latest()
	if err != nil {
		return none, err
	}
	switch {
	case req.Height != 0 && req.Height != last.Version:
		return none, errors.Wrapf(errors.ErrInput, "only the latest height %d can be queried", last.Version)
	case req.Prove:
		return none, errors.Wrap(errors.ErrInput, "proofs are not supported")
	}

	db := s.state.snapshot()
	defer db.Discard()
	models, err := h.Query(db, mod, req.Data)
	if err != nil {
		return none, err
	}
	keys, err := ResultsFromKeys(models).Marshal()
	if err != nil {
		return none, errors.Wrap(err, "marshal keys")
	}
	values, err := ResultsFromValues(models).Marshal()
	if err != nil {
		return none, errors.Wrap(err, "marshal values")
	}
	return abci.ResponseQuery{Height: last.Version, Key: keys, Value: values}, nil
}

// splitPath separates the query modifier following "?" from the path.
func splitPath(full string) (path, mod string) {
	if i := strings.IndexByte(full, '?'); i >= 0 {
		return full[:i], full[i+1:]
	}
	return full, ""
}
