package milestone

import (
	"github.com/iov-one/milestone/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

// DeliverResult is the outcome of a successful DeliverTx. Failures are
// always reported as errors.
type DeliverResult struct {
	// Data is returned to the client, for example the ID of a created
	// entity.
	Data []byte
	Log  string
	// Tags are indexed by tendermint and make the transaction searchable.
	Tags    []common.KVPair
	GasUsed int64
}

func (d DeliverResult) ToABCI() abci.ResponseDeliverTx {
	return abci.ResponseDeliverTx{Data: d.Data, Log: d.Log, Tags: d.Tags, GasUsed: d.GasUsed}
}

// CheckResult is the outcome of a successful CheckTx.
type CheckResult struct {
	Data []byte
	Log  string
	// GasAllocated is the most work the transaction may need.
	GasAllocated int64
}

// NewCheck returns a result with the gas and log set.
func NewCheck(gasAllocated int64, log string) *CheckResult {
	return &CheckResult{GasAllocated: gasAllocated, Log: log}
}

func (c CheckResult) ToABCI() abci.ResponseCheckTx {
	return abci.ResponseCheckTx{Data: c.Data, Log: c.Log, GasWanted: c.GasAllocated}
}

// DeliverOrError returns the response for the result of a handler.
func DeliverOrError(res *DeliverResult, err error, debug bool) abci.ResponseDeliverTx {
	if err != nil {
		return DeliverTxError(err, debug)
	}
	return res.ToABCI()
}

// CheckOrError returns the response for the result of a handler.
func CheckOrError(res *CheckResult, err error, debug bool) abci.ResponseCheckTx {
	if err != nil {
		return CheckTxError(err, debug)
	}
	return res.ToABCI()
}

// DeliverTxError returns the failed response for err. Outside of debug mode
// internal details are hidden.
func DeliverTxError(err error, debug bool) abci.ResponseDeliverTx {
	code, log := abciError("cannot deliver tx", err, debug)
	return abci.ResponseDeliverTx{Code: code, Log: log}
}

// CheckTxError returns the failed response for err. Outside of debug mode
// internal details are hidden.
func CheckTxError(err error, debug bool) abci.ResponseCheckTx {
	code, log := abciError("cannot check tx", err, debug)
	return abci.ResponseCheckTx{Code: code, Log: log}
}

func abciError(prefix string, err error, debug bool) (uint32, string) {
	code, log := errors.ABCIInfo(err, debug)
	if code == errors.SuccessABCICode {
		return code, log
	}
	return code, prefix + ": " + log
}

// Tag returns an indexed key value pair for a DeliverResult.
func Tag(key string, value []byte) common.KVPair {
	return common.KVPair{Key: []byte(key), Value: value}
}
