package app

import (
	"encoding/json"
	"fmt"

	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// StoreApp implements the state and query part of the ABCI application:
// Info, InitChain, BeginBlock, EndBlock, Commit and Query. Transaction
// processing is added on top of it by BaseApp.
//
// Failures in the calls that carry no user input (Info, InitChain and
// Commit) leave the node in an unknown state and therefore panic.
type StoreApp struct {
	name        string
	state       *blockState
	initializer milestone.Initializer
	queryRouter milestone.QueryRouter
	logger      log.Logger
	debug       bool

	// chainID is empty until genesis was loaded.
	chainID string

	// appCtx lives as long as the process, blockCtx is replaced on every
	// BeginBlock.
	appCtx   milestone.Context
	blockCtx milestone.Context
}

// NewStoreApp returns an application reading its state from given store.
// It panics if the store cannot be loaded.
func NewStoreApp(
	name string,
	db milestone.CommitKVStore,
	queryRouter milestone.QueryRouter,
	ctx milestone.Context,
) *StoreApp {
	state, err := loadBlockState(db)
	if err != nil {
		panic(err)
	}
	s := &StoreApp{
		name:        name,
		state:       state,
		queryRouter: queryRouter,
		appCtx:      ctx,
	}
	s.WithLogger(log.NewNopLogger())

	chainID, err := readChainID(state.deliver)
	if err != nil {
		panic(err)
	}
	if chainID != "" {
		s.setChainID(chainID)
	}

	last, err := state.latest()
	if err != nil {
		panic(err)
	}
	s.blockCtx = milestone.WithHeight(s.appCtx, last.Version)
	return s
}

// WithInit sets the genesis initializer called from InitChain.
func (s *StoreApp) WithInit(init milestone.Initializer) *StoreApp {
	s.initializer = init
	return s
}

// WithDebug makes error responses carry the full error description.
func (s *StoreApp) WithDebug(debug bool) *StoreApp {
	s.debug = debug
	return s
}

// WithLogger sets the logger used by the application and every handler.
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.logger = logger
	s.appCtx = milestone.WithLogger(s.appCtx, logger)
	return s
}

func (s *StoreApp) Logger() log.Logger {
	return s.logger
}

func (s *StoreApp) GetChainID() string {
	return s.chainID
}

// BlockContext returns the context of the block currently processed.
func (s *StoreApp) BlockContext() milestone.Context {
	return s.blockCtx
}

func (s *StoreApp) DeliverStore() milestone.CacheableKVStore {
	return s.state.deliver
}

func (s *StoreApp) CheckStore() milestone.CacheableKVStore {
	return s.state.check
}

func (s *StoreApp) setChainID(chainID string) {
	s.chainID = chainID
	s.appCtx = milestone.WithChainID(s.appCtx, chainID)
}

// loadGenesis is called only once, when the chain is created.
func (s *StoreApp) loadGenesis(chainID string, raw []byte) error {
	if s.chainID != "" {
		return errors.Wrapf(errors.ErrImmutable, "genesis of %q already loaded", s.chainID)
	}
	if len(raw) == 0 {
		return errors.Wrap(errors.ErrEmpty, "genesis app_state is missing, initialize the application first")
	}
	var opts milestone.Options
	if err := json.Unmarshal(raw, &opts); err != nil {
		return errors.Wrapf(errors.ErrInput, "app_state: %s", err)
	}
	if err := writeChainID(s.state.deliver, chainID); err != nil {
		return err
	}
	s.setChainID(chainID)

	if s.initializer == nil {
		return nil
	}
	return s.initializer.FromGenesis(opts, s.state.deliver)
}

// Info returns the name and version of the application together with the
// last committed block height and state hash.
func (s *StoreApp) Info(abci.RequestInfo) abci.ResponseInfo {
	last, err := s.state.latest()
	if err != nil {
		panic(err)
	}
	s.logger.Info("info", "height", last.Version, "hash", fmt.Sprintf("%X", last.Hash))
	return abci.ResponseInfo{
		Data:             s.name,
		Version:          milestone.Version(),
		LastBlockHeight:  last.Version,
		LastBlockAppHash: last.Hash,
	}
}

// SetOption is not supported.
func (s *StoreApp) SetOption(abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "not supported"}
}

// InitChain loads the genesis app state into the store.
func (s *StoreApp) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	if err := s.loadGenesis(req.ChainId, req.AppStateBytes); err != nil {
		panic(err)
	}
	s.logger.Info("genesis loaded", "chain_id", req.ChainId)
	return abci.ResponseInitChain{}
}

func (s *StoreApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	ctx := milestone.WithHeight(s.appCtx, req.Header.Height)
	s.blockCtx = milestone.WithBlockTime(ctx, req.Header.Time)
	return abci.ResponseBeginBlock{}
}

// EndBlock never updates the validator set.
func (s *StoreApp) EndBlock(abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}

func (s *StoreApp) Commit() abci.ResponseCommit {
	id, err := s.state.commit()
	if err != nil {
		panic(err)
	}
	s.logger.Debug("commit", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseCommit{Data: id.Hash}
}
